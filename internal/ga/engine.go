package ga

import (
	"context"
	"math/rand"
	"time"

	"periplus/internal/apperr"
	"periplus/internal/cost"
	"periplus/internal/logger"
	"periplus/internal/model"
)

// Engine runs one genetic algorithm solve over an immutable cost table.
// A solve is single-threaded; cancellation is honoured at generation
// boundaries only.
type Engine struct {
	cfg   model.SolverConfig
	table *cost.Table
	rng   *rand.Rand

	// small marks problems whose permutation space fits inside the
	// population, so the seeded generation already enumerates every tour.
	small bool
}

// New validates the configuration against the table and prepares a solve.
// A zero seed falls back to wall-clock seeding; supplying one makes the
// solve reproducible.
func New(cfg model.SolverConfig, table *cost.Table) (*Engine, error) {
	if table == nil {
		return nil, apperr.Internalf("cost table is required")
	}
	if cfg.Dimension == 0 {
		cfg.Dimension = table.Dimension()
	}
	cfg, err := normalizeConfig(cfg)
	if err != nil {
		return nil, err
	}
	if table.Dimension() != cfg.Dimension {
		return nil, apperr.BadInputf("config dimension %d does not match cost table dimension %d", cfg.Dimension, table.Dimension())
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	space := permutationSpace(cfg.Dimension, cfg.FixedOrigin != model.NoFixedOrigin, cfg.PopulationSize+1)
	return &Engine{
		cfg:   cfg,
		table: table,
		rng:   rand.New(rand.NewSource(seed)),
		small: space <= cfg.PopulationSize,
	}, nil
}

// Config returns the normalized configuration the engine runs with.
func (e *Engine) Config() model.SolverConfig { return e.cfg }

// Run seeds the initial population and evolves it until a termination
// condition fires, returning the accumulated solve state.
func (e *Engine) Run(ctx context.Context) (model.SolvedProblem, error) {
	start := time.Now()
	state := &solveState{start: start}

	pop := seedPopulation(e.rng, e.table, e.cfg)
	current := evaluate(e.table, pop.Tours(), e.cfg.ReturnToOrigin)
	state.register(current)

	// A fully enumerated space has nothing left to evolve.
	if e.small {
		logger.L().Debug("solve_small_problem", "dimension", e.cfg.Dimension, "population", e.cfg.PopulationSize)
		return state.result(), nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return model.SolvedProblem{}, err
		}
		if state.generations() > e.cfg.MaxGenerations {
			break
		}
		if state.currentIndex()-state.bestIndex > e.cfg.MaxChromosomeAge {
			break
		}

		next, err := e.evolve(current)
		if err != nil {
			return model.SolvedProblem{}, err
		}
		evolved := evaluate(e.table, next.Tours(), e.cfg.ReturnToOrigin)
		current = survive(current, evolved, e.cfg.EliteCount)
		state.register(current)
	}
	return state.result(), nil
}

// evolve produces the next unevaluated population: a mutation pool first,
// then roulette-crossover offspring until the population is full. Tours
// already present in the new population are skipped, as are tours still
// alive in the previous generation.
func (e *Engine) evolve(current Evaluated) (*Population, error) {
	next := NewPopulation(e.cfg.PopulationSize)
	previous := current.keySet()

	mutants := mutationPoolSize(e.cfg.PopulationSize, e.cfg.MutationRate)
	if mutants > e.cfg.PopulationSize {
		mutants = e.cfg.PopulationSize
	}
	for next.Len() < mutants {
		parent, err := selectRandom(e.rng, current)
		if err != nil {
			return nil, err
		}
		child, err := mutate(e.rng, parent.Tour, e.cfg.FixedOrigin)
		if err != nil {
			return nil, err
		}
		if _, alive := previous[child.Key()]; alive {
			continue
		}
		next.Add(child)
	}

	for next.Len() < e.cfg.PopulationSize {
		first, second, err := selectPair(e.rng, current)
		if err != nil {
			return nil, err
		}
		childA, childB, err := crossover(e.rng, first.Tour, second.Tour, e.cfg.FixedOrigin)
		if err != nil {
			return nil, err
		}
		for _, child := range []Tour{childA, childB} {
			if next.Len() >= e.cfg.PopulationSize {
				break
			}
			if _, alive := previous[child.Key()]; alive {
				continue
			}
			next.Add(child)
		}
	}
	return next, nil
}
