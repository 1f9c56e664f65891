package storage

import (
	"context"
	"sort"
	"sync"

	"periplus/internal/model"
)

type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]model.SolveRun
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = make(map[string]model.SolveRun)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.SolveRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runs == nil {
		s.runs = make(map[string]model.SolveRun)
	}
	s.runs[run.ID] = Stamp(run)
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.SolveRun, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context, limit int) ([]model.SolveRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]model.SolveRun, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	// Newest first; IDs tie-break for a deterministic listing.
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAtUTC != runs[j].CreatedAtUTC {
			return runs[i].CreatedAtUTC > runs[j].CreatedAtUTC
		}
		return runs[i].ID < runs[j].ID
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (s *MemoryStore) DeleteRun(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.runs, id)
	return nil
}
