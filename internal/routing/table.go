package routing

import (
	"context"
	"sort"
	"sync"

	"periplus/internal/apperr"
	"periplus/internal/cost"
)

// maxInFlight bounds concurrent provider requests; a 100-node instance
// produces 9 900 pairs.
const maxInFlight = 64

type entry struct {
	from, to int
	duration int
}

// BuildTable fetches every ordered off-diagonal pair through the provider
// and assembles a dense cost table. All requests are dispatched before any
// result is awaited; the first failure cancels outstanding requests and
// fails the whole build, so no partial table is ever returned.
func BuildTable(ctx context.Context, provider Provider, coordinates []string) (*cost.Table, error) {
	if provider == nil {
		return nil, apperr.BadInput("unsupported API")
	}
	n := len(coordinates)
	if n < 2 {
		return nil, apperr.BadInputf("cost table needs at least 2 coordinates, got %d", n)
	}
	for _, c := range coordinates {
		if !ValidCoordinate(c) {
			return nil, apperr.BadInput("origin or destination invalid")
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		entry entry
		err   error
	}

	sem := make(chan struct{}, maxInFlight)
	results := make(chan result, n*(n-1))

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			wg.Add(1)
			go func(i, j int) {
				defer wg.Done()
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-ctx.Done():
					results <- result{err: ctx.Err()}
					return
				}
				d, err := provider.Duration(ctx, coordinates[i], coordinates[j])
				if err != nil {
					results <- result{err: err}
					return
				}
				results <- result{entry: entry{from: i, to: j, duration: d}}
			}(i, j)
		}
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	entries := make([]entry, 0, n*(n-1))
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil || apperr.KindOf(firstErr) == apperr.KindInternal {
				firstErr = res.err
			}
			cancel()
			continue
		}
		entries = append(entries, res.entry)
	}
	if firstErr != nil {
		if apperr.KindOf(firstErr) == apperr.KindInternal {
			return nil, apperr.UpstreamFailure("fetching routing data failed", firstErr)
		}
		return nil, firstErr
	}

	// Canonical (origin, destination) order before assembly.
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].from != entries[b].from {
			return entries[a].from < entries[b].from
		}
		return entries[a].to < entries[b].to
	})

	table, err := cost.NewTable(n)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := table.Set(e.from, e.to, e.duration); err != nil {
			return nil, err
		}
	}
	return table, nil
}
