package ga

import (
	"math/rand"

	"periplus/internal/cost"
	"periplus/internal/model"
)

// seedPopulation builds the initial population from two pools: greedy
// nearest-neighbour tours started at random nodes, and uniform random
// permutations. Duplicates across both pools are rejected; random tours
// are regenerated until the population holds exactly the configured size.
func seedPopulation(rng *rand.Rand, table *cost.Table, cfg model.SolverConfig) *Population {
	n := cfg.Dimension
	pop := NewPopulation(cfg.PopulationSize)

	nnaTarget := (cfg.NNAPercentage*cfg.PopulationSize + 50) / 100
	maxStarts := n
	if cfg.FixedOrigin != model.NoFixedOrigin {
		maxStarts = n - 1
	}
	if nnaTarget > maxStarts {
		nnaTarget = maxStarts
	}
	if nnaTarget > cfg.PopulationSize {
		nnaTarget = cfg.PopulationSize
	}

	for i := 0; i < nnaTarget; i++ {
		pop.Add(nearestNeighborTour(rng, table, cfg.FixedOrigin))
	}
	for pop.Len() < cfg.PopulationSize {
		pop.Add(randomTour(rng, n, cfg.FixedOrigin))
	}
	return pop
}

// nearestNeighborTour starts from a random unvisited node (after the fixed
// origin, when one is configured) and repeatedly extends by the cheapest
// unvisited node from the current tail, ties broken by scan order.
func nearestNeighborTour(rng *rand.Rand, table *cost.Table, fixedOrigin int) Tour {
	n := table.Dimension()
	tour := make(Tour, 0, n)
	visited := make([]bool, n)

	if fixedOrigin != model.NoFixedOrigin {
		tour = append(tour, fixedOrigin)
		visited[fixedOrigin] = true
	}

	start := rng.Intn(n)
	for visited[start] {
		start = rng.Intn(n)
	}
	tour = append(tour, start)
	visited[start] = true

	for len(tour) < n {
		tail := tour[len(tour)-1]
		next := -1
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			if next == -1 || table.At(tail, j) < table.At(tail, next) {
				next = j
			}
		}
		tour = append(tour, next)
		visited[next] = true
	}
	return tour
}

// randomTour draws a uniform permutation, pinning the fixed origin at
// position 0 when one is configured.
func randomTour(rng *rand.Rand, n, fixedOrigin int) Tour {
	if fixedOrigin == model.NoFixedOrigin {
		return Tour(rng.Perm(n))
	}
	tour := make(Tour, 0, n)
	tour = append(tour, fixedOrigin)
	for _, i := range rng.Perm(n - 1) {
		gene := i
		if gene >= fixedOrigin {
			gene++
		}
		tour = append(tour, gene)
	}
	return tour
}
