// Package solver resolves a problem descriptor to a cost table, runs the
// genetic algorithm and records the outcome as a solve run.
package solver

import (
	"bufio"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"periplus/internal/apperr"
	"periplus/internal/cost"
	"periplus/internal/ga"
	"periplus/internal/logger"
	"periplus/internal/metrics"
	"periplus/internal/model"
	"periplus/internal/routing"
	"periplus/internal/storage"
	"periplus/internal/tsplib"
)

// Options configures a Solver. Store is optional; without one the solve
// result is returned but not persisted. TableCache is optional and only
// consulted for real instances.
type Options struct {
	InstancesDir string
	APIKey       string
	HTTPClient   *http.Client
	TableCache   *routing.TableCache
	Store        storage.Store
}

type Solver struct {
	opts Options
}

func New(opts Options) *Solver {
	if opts.InstancesDir == "" {
		opts.InstancesDir = filepath.Join("data", "instances")
	}
	return &Solver{opts: opts}
}

// Solve validates the descriptor once, builds the cost table, runs the
// engine and persists the run when a store is configured.
func (s *Solver) Solve(ctx context.Context, problem model.Problem, cfg model.SolverConfig) (model.SolveRun, error) {
	metrics.SolveRequestsTotal.Inc()
	run, err := s.solve(ctx, problem, cfg)
	if err != nil {
		metrics.SolveFailuresTotal.Inc()
		return model.SolveRun{}, err
	}
	return run, nil
}

func (s *Solver) solve(ctx context.Context, problem model.Problem, cfg model.SolverConfig) (model.SolveRun, error) {
	if err := validateProblem(problem); err != nil {
		return model.SolveRun{}, err
	}
	if cfg.Dimension == 0 {
		cfg.Dimension = problem.Dimension
	}
	if cfg.Dimension != problem.Dimension {
		return model.SolveRun{}, apperr.BadInputf("config dimension %d does not match problem dimension %d", cfg.Dimension, problem.Dimension)
	}

	table, err := s.resolveTable(ctx, problem)
	if err != nil {
		return model.SolveRun{}, err
	}

	engine, err := ga.New(cfg, table)
	if err != nil {
		return model.SolveRun{}, err
	}

	start := time.Now()
	result, err := engine.Run(ctx)
	if err != nil {
		return model.SolveRun{}, err
	}
	metrics.SolveDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	metrics.GenerationsTotal.Add(float64(result.Generations))
	logger.L().Info("solve_done",
		"problem", problem.Name,
		"dimension", problem.Dimension,
		"generations", result.Generations,
		"best_cost", result.BestCost,
		"took_ms", result.SolvedInMs,
	)

	run := model.SolveRun{
		ID:           uuid.NewString(),
		CreatedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Problem:      problem,
		Config:       engine.Config(),
		Result:       result,
	}
	if s.opts.Store != nil {
		if err := s.opts.Store.SaveRun(ctx, run); err != nil {
			return model.SolveRun{}, apperr.Internal("persisting solve run failed", err)
		}
	}
	return run, nil
}

func validateProblem(problem model.Problem) error {
	switch problem.Type {
	case model.ProblemTSP, model.ProblemATSP:
	default:
		return apperr.BadInput("problem type not supported")
	}
	switch problem.EdgeWeightType {
	case model.EdgeWeightGEO, model.EdgeWeightEUC2D, model.EdgeWeightExplicit:
	default:
		return apperr.BadInput("problem type not supported")
	}
	if problem.Dimension < ga.MinDimension || problem.Dimension > ga.MaxDimension {
		return apperr.BadInputf("dimension must be in [%d, %d], got %d", ga.MinDimension, ga.MaxDimension, problem.Dimension)
	}
	if problem.Algorithm != model.AlgorithmGA {
		return apperr.Internalf("unsupported algorithm: %q", problem.Algorithm)
	}
	if problem.RealInstance {
		if problem.APIName == "" || problem.CoordinatesPath == "" {
			return apperr.BadInput("real instance requires an API name and a coordinates file")
		}
	} else if problem.InstanceName == "" {
		return apperr.BadInput("synthetic instance requires an instance name")
	}
	return nil
}

func (s *Solver) resolveTable(ctx context.Context, problem model.Problem) (*cost.Table, error) {
	if problem.RealInstance {
		return s.buildRealTable(ctx, problem)
	}
	return s.buildSyntheticTable(problem)
}

func (s *Solver) buildSyntheticTable(problem model.Problem) (*cost.Table, error) {
	name := problem.InstanceName
	if filepath.Ext(name) == "" {
		name += ".tsp"
	}
	inst, err := tsplib.ParseFile(filepath.Join(s.opts.InstancesDir, name))
	if err != nil {
		return nil, err
	}
	if inst.Dimension != problem.Dimension {
		return nil, apperr.BadInputf("instance %s has dimension %d, problem declares %d", problem.InstanceName, inst.Dimension, problem.Dimension)
	}
	return inst.CostTable()
}

func (s *Solver) buildRealTable(ctx context.Context, problem model.Problem) (*cost.Table, error) {
	coords, err := readCoordinates(problem.CoordinatesPath)
	if err != nil {
		return nil, err
	}
	if len(coords) != problem.Dimension {
		return nil, apperr.BadInputf("coordinates file has %d entries, problem declares %d", len(coords), problem.Dimension)
	}
	if s.opts.APIKey == "" {
		return nil, apperr.BadInput("API key missing")
	}

	cacheKey := ""
	if s.opts.TableCache != nil {
		cacheKey = s.opts.TableCache.Key(problem.APIName, problem.VehicleType, coords)
		if table := s.opts.TableCache.Get(ctx, cacheKey); table != nil {
			logger.L().Debug("table_cache_hit", "problem", problem.Name)
			return table, nil
		}
	}

	provider, err := routing.NewProvider(problem.APIName, s.opts.APIKey, problem.VehicleType, s.opts.HTTPClient)
	if err != nil {
		return nil, err
	}
	table, err := routing.BuildTable(ctx, provider, coords)
	if err != nil {
		return nil, err
	}
	if s.opts.TableCache != nil {
		s.opts.TableCache.Put(ctx, cacheKey, table)
	}
	return table, nil
}

// readCoordinates loads one "lat,long" pair per line, tolerating blank
// lines. Each pair is validated at ingestion.
func readCoordinates(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.MissingResource("coordinates file not found", err)
	}
	defer f.Close()

	var coords []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !routing.ValidCoordinate(line) {
			return nil, apperr.BadInput("origin or destination invalid")
		}
		coords = append(coords, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperr.MissingResource("reading coordinates file failed", err)
	}
	if len(coords) == 0 {
		return nil, apperr.MissingResource("coordinates file is empty", nil)
	}
	return coords, nil
}
