package ga

import (
	"periplus/internal/apperr"
	"periplus/internal/model"
)

const (
	// MinDimension and MaxDimension bound solvable instance sizes.
	MinDimension = 3
	MaxDimension = 100
)

// normalizeConfig validates a solver configuration and caps the population
// size to the permutation space, which is (N-1)! with a fixed origin and
// N! without.
func normalizeConfig(cfg model.SolverConfig) (model.SolverConfig, error) {
	if cfg.Dimension < MinDimension || cfg.Dimension > MaxDimension {
		return cfg, apperr.BadInputf("dimension must be in [%d, %d], got %d", MinDimension, MaxDimension, cfg.Dimension)
	}
	if cfg.FixedOrigin != model.NoFixedOrigin && (cfg.FixedOrigin < 0 || cfg.FixedOrigin >= cfg.Dimension) {
		return cfg, apperr.BadInputf("fixed origin %d out of range [0, %d)", cfg.FixedOrigin, cfg.Dimension)
	}
	if cfg.PopulationSize < 2 {
		return cfg, apperr.BadInputf("population size must be at least 2, got %d", cfg.PopulationSize)
	}
	if cfg.NNAPercentage < 0 || cfg.NNAPercentage > 100 {
		return cfg, apperr.BadInputf("nna percentage must be in [0, 100], got %d", cfg.NNAPercentage)
	}
	if cfg.MaxGenerations < 0 {
		return cfg, apperr.BadInputf("max generations must be non-negative, got %d", cfg.MaxGenerations)
	}
	if cfg.MaxChromosomeAge < 0 {
		return cfg, apperr.BadInputf("max chromosome age must be non-negative, got %d", cfg.MaxChromosomeAge)
	}
	if cfg.MutationRate < 0 || cfg.MutationRate > 100 {
		return cfg, apperr.BadInputf("mutation rate must be in [0, 100], got %d", cfg.MutationRate)
	}
	if cfg.EliteCount < 0 || cfg.EliteCount >= cfg.PopulationSize {
		return cfg, apperr.BadInputf("elite count must be in [0, population size), got %d", cfg.EliteCount)
	}

	if space := permutationSpace(cfg.Dimension, cfg.FixedOrigin != model.NoFixedOrigin, cfg.PopulationSize+1); space < cfg.PopulationSize {
		cfg.PopulationSize = space
		if cfg.EliteCount >= cfg.PopulationSize {
			cfg.EliteCount = cfg.PopulationSize - 1
		}
	}
	return cfg, nil
}

// permutationSpace returns the number of distinct tours, capped at limit
// to keep the factorial out of overflow territory; callers comparing the
// space against a population size pass limit one above it. With a fixed
// origin the free positions are N-1.
func permutationSpace(dimension int, fixedOrigin bool, limit int) int {
	free := dimension
	if fixedOrigin {
		free--
	}
	total := 1
	for i := 2; i <= free; i++ {
		total *= i
		if total >= limit {
			return limit
		}
	}
	return total
}

// mutationPoolSize derives the per-generation mutant count. Integer
// truncation with a floor of one: a zero rate still mutates once.
func mutationPoolSize(populationSize, mutationRate int) int {
	count := populationSize * mutationRate / 100
	if count < 1 {
		return 1
	}
	return count
}
