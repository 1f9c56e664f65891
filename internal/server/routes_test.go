package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"periplus/internal/model"
	"periplus/internal/solver"
	"periplus/internal/storage"
)

const toyInstance = "NAME: toy\nTYPE: TSP\nDIMENSION: 3\nEDGE_WEIGHT_TYPE: EUC_2D\nNODE_COORD_SECTION\n1 0 0\n2 3 0\n3 0 4\nEOF\n"

func testMux(t *testing.T) (*http.ServeMux, storage.Store) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "toy.tsp"), []byte(toyInstance), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	store := storage.NewMemoryStore()
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}
	sv := solver.New(solver.Options{InstancesDir: dir, Store: store})
	return BuildRoutes(sv, store), store
}

const solveBody = `{
	"problem": {
		"name": "toy",
		"type": "TSP",
		"edge_weight_type": "EUC_2D",
		"dimension": 3,
		"algorithm": "GA",
		"instance_name": "toy"
	},
	"config": {"seed": 11}
}`

func TestSolveEndpoint(t *testing.T) {
	mux, _ := testMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(solveBody)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var run model.SolveRun
	if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if run.Result.BestCost != 12 {
		t.Fatalf("best cost = %d, want 12", run.Result.BestCost)
	}
	if run.ID == "" {
		t.Fatal("run id missing")
	}
}

func TestSolveEndpointRejectsBadDimension(t *testing.T) {
	mux, _ := testMux(t)
	body := strings.Replace(solveBody, `"dimension": 3`, `"dimension": 2`, 1)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Kind != "bad_input" {
		t.Fatalf("kind = %q", resp.Kind)
	}
}

func TestSolveEndpointRejectsMalformedJSON(t *testing.T) {
	mux, _ := testMux(t)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader("{")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRunsEndpoints(t *testing.T) {
	mux, _ := testMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(solveBody)))
	if rec.Code != http.StatusOK {
		t.Fatalf("solve status = %d", rec.Code)
	}
	var run model.SolveRun
	if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
		t.Fatalf("decode run: %v", err)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("runs status = %d", rec.Code)
	}
	var runs []model.SolveRun
	if err := json.Unmarshal(rec.Body.Bytes(), &runs); err != nil {
		t.Fatalf("decode runs: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != run.ID {
		t.Fatalf("listing mismatch: %+v", runs)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/"+run.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("run status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing run status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs?limit=bogus", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad limit status = %d, want 400", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	mux, _ := testMux(t)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestConfigOverridesApply(t *testing.T) {
	cfg := model.DefaultSolverConfig(5)
	origin := 2
	pop := 40
	open := false
	o := &ConfigOverrides{FixedOrigin: &origin, PopulationSize: &pop, ReturnToOrigin: &open}

	applied := o.Apply(cfg)
	if applied.FixedOrigin != 2 || applied.PopulationSize != 40 || applied.ReturnToOrigin {
		t.Fatalf("overrides not applied: %+v", applied)
	}
	if applied.MaxGenerations != cfg.MaxGenerations {
		t.Fatalf("untouched field changed: %+v", applied)
	}

	var none *ConfigOverrides
	if got := none.Apply(cfg); got != cfg {
		t.Fatalf("nil overrides changed config: %+v", got)
	}
}
