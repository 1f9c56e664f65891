// Package server exposes the solve and run-query operations over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"periplus/internal/apperr"
	"periplus/internal/logger"
	"periplus/internal/model"
	"periplus/internal/solver"
	"periplus/internal/storage"
)

// ConfigOverrides carries the optional solver parameters a request may
// set; absent fields keep their defaults.
type ConfigOverrides struct {
	FixedOrigin      *int   `json:"fixed_origin,omitempty"`
	ReturnToOrigin   *bool  `json:"return_to_origin,omitempty"`
	PopulationSize   *int   `json:"population_size,omitempty"`
	NNAPercentage    *int   `json:"nna_percentage,omitempty"`
	MaxGenerations   *int   `json:"max_generations,omitempty"`
	MaxChromosomeAge *int   `json:"max_chromosome_age,omitempty"`
	MutationRate     *int   `json:"mutation_rate,omitempty"`
	EliteCount       *int   `json:"elite_count,omitempty"`
	Seed             *int64 `json:"seed,omitempty"`
}

// Apply lays the overrides over a default configuration.
func (o *ConfigOverrides) Apply(cfg model.SolverConfig) model.SolverConfig {
	if o == nil {
		return cfg
	}
	if o.FixedOrigin != nil {
		cfg.FixedOrigin = *o.FixedOrigin
	}
	if o.ReturnToOrigin != nil {
		cfg.ReturnToOrigin = *o.ReturnToOrigin
	}
	if o.PopulationSize != nil {
		cfg.PopulationSize = *o.PopulationSize
	}
	if o.NNAPercentage != nil {
		cfg.NNAPercentage = *o.NNAPercentage
	}
	if o.MaxGenerations != nil {
		cfg.MaxGenerations = *o.MaxGenerations
	}
	if o.MaxChromosomeAge != nil {
		cfg.MaxChromosomeAge = *o.MaxChromosomeAge
	}
	if o.MutationRate != nil {
		cfg.MutationRate = *o.MutationRate
	}
	if o.EliteCount != nil {
		cfg.EliteCount = *o.EliteCount
	}
	if o.Seed != nil {
		cfg.Seed = *o.Seed
	}
	return cfg
}

type solveRequest struct {
	Problem model.Problem    `json:"problem"`
	Config  *ConfigOverrides `json:"config,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// BuildRoutes wires the API handlers onto a fresh mux.
func BuildRoutes(sv *solver.Solver, st storage.Store) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /solve", func(w http.ResponseWriter, r *http.Request) {
		var req solveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperr.BadInput("malformed solve request"))
			return
		}
		cfg := model.DefaultSolverConfig(req.Problem.Dimension)
		cfg = req.Config.Apply(cfg)

		run, err := sv.Solve(r.Context(), req.Problem, cfg)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, run)
	})

	mux.HandleFunc("GET /runs", func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, apperr.BadInputf("malformed limit %q", v))
				return
			}
			limit = n
		}
		runs, err := st.ListRuns(r.Context(), limit)
		if err != nil {
			writeError(w, err)
			return
		}
		if runs == nil {
			runs = []model.SolveRun{}
		}
		writeJSON(w, http.StatusOK, runs)
	})

	mux.HandleFunc("GET /runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		run, ok, err := st.GetRun(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			writeError(w, apperr.MissingResource("run not found", nil))
			return
		}
		writeJSON(w, http.StatusOK, run)
	})

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.L().Error("response_encode_error", "err", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := apperr.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.L().Error("request_failed", "err", err)
	} else {
		logger.L().Warn("request_rejected", "err", err)
	}
	message := err.Error()
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	writeJSON(w, status, errorResponse{Error: message, Kind: string(apperr.KindOf(err))})
}
