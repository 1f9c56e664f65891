// Package periplus is the embedding API over the solver and run store,
// used by periplusctl and available to other Go programs.
package periplus

import (
	"context"
	"net/http"

	"periplus/internal/model"
	"periplus/internal/routing"
	"periplus/internal/solver"
	"periplus/internal/storage"
)

const defaultDBPath = "periplus.db"

// Options selects the store backend and solver environment.
type Options struct {
	StoreKind    string
	DBPath       string
	InstancesDir string
	APIKey       string
	HTTPClient   *http.Client
	TableCache   *routing.TableCache
}

type Client struct {
	store  storage.Store
	solver *solver.Solver
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(context.Background()); err != nil {
		return nil, err
	}

	return &Client{
		store: store,
		solver: solver.New(solver.Options{
			InstancesDir: opts.InstancesDir,
			APIKey:       opts.APIKey,
			HTTPClient:   opts.HTTPClient,
			TableCache:   opts.TableCache,
			Store:        store,
		}),
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// Store exposes the underlying run store for route construction.
func (c *Client) Store() storage.Store { return c.store }

// Solver exposes the configured solver for route construction.
func (c *Client) Solver() *solver.Solver { return c.solver }

// Solve runs one problem with cfg as given and persists the run. No
// defaults are filled in apart from a zero dimension, which is taken from
// the problem.
func (c *Client) Solve(ctx context.Context, problem model.Problem, cfg model.SolverConfig) (model.SolveRun, error) {
	return c.solver.Solve(ctx, problem, cfg)
}

// Runs lists persisted runs, newest first.
func (c *Client) Runs(ctx context.Context, limit int) ([]model.SolveRun, error) {
	return c.store.ListRuns(ctx, limit)
}

// Run fetches one run by id.
func (c *Client) Run(ctx context.Context, id string) (model.SolveRun, bool, error) {
	return c.store.GetRun(ctx, id)
}
