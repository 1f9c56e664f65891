package ga

import (
	"testing"

	"periplus/internal/model"
)

func TestNormalizeConfigRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.SolverConfig)
	}{
		{"dimension too small", func(c *model.SolverConfig) { c.Dimension = 2 }},
		{"dimension too large", func(c *model.SolverConfig) { c.Dimension = 101 }},
		{"origin out of range", func(c *model.SolverConfig) { c.FixedOrigin = 10 }},
		{"population too small", func(c *model.SolverConfig) { c.PopulationSize = 1 }},
		{"nna percentage", func(c *model.SolverConfig) { c.NNAPercentage = 101 }},
		{"mutation rate", func(c *model.SolverConfig) { c.MutationRate = -1 }},
		{"elite count", func(c *model.SolverConfig) { c.EliteCount = 100 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := model.DefaultSolverConfig(10)
			tc.mutate(&cfg)
			if _, err := normalizeConfig(cfg); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestNormalizeConfigCapsPopulationToSpace(t *testing.T) {
	cfg := model.DefaultSolverConfig(4)
	cfg.FixedOrigin = 0
	normalized, err := normalizeConfig(cfg)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	// (4-1)! = 6 distinct tours with a pinned origin.
	if normalized.PopulationSize != 6 {
		t.Fatalf("population size = %d, want 6", normalized.PopulationSize)
	}
	if normalized.EliteCount != cfg.EliteCount {
		t.Fatalf("elite count changed to %d", normalized.EliteCount)
	}
}

func TestPermutationSpace(t *testing.T) {
	cases := []struct {
		dimension int
		fixed     bool
		limit     int
		want      int
	}{
		{3, false, 101, 6},
		{3, true, 101, 2},
		{4, true, 101, 6},
		{5, false, 101, 101},
		{100, false, 101, 101},
	}
	for _, tc := range cases {
		if got := permutationSpace(tc.dimension, tc.fixed, tc.limit); got != tc.want {
			t.Fatalf("permutationSpace(%d, %v, %d) = %d, want %d", tc.dimension, tc.fixed, tc.limit, got, tc.want)
		}
	}
}

func TestMutationPoolSizeFloorsAtOne(t *testing.T) {
	cases := []struct {
		population, rate, want int
	}{
		{100, 2, 2},
		{100, 0, 1},
		{6, 2, 1},
		{50, 10, 5},
	}
	for _, tc := range cases {
		if got := mutationPoolSize(tc.population, tc.rate); got != tc.want {
			t.Fatalf("mutationPoolSize(%d, %d) = %d, want %d", tc.population, tc.rate, got, tc.want)
		}
	}
}
