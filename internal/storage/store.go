package storage

import (
	"context"

	"periplus/internal/model"
)

// Store defines persistence operations for solve runs.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.SolveRun) error
	GetRun(ctx context.Context, id string) (model.SolveRun, bool, error)
	ListRuns(ctx context.Context, limit int) ([]model.SolveRun, error)
	DeleteRun(ctx context.Context, id string) error
}
