package ga

import (
	"math/rand"

	"periplus/internal/apperr"
)

// selectRandom returns one uniformly chosen chromosome.
func selectRandom(rng *rand.Rand, population Evaluated) (Scored, error) {
	if len(population) < 2 {
		return Scored{}, apperr.Internalf("selection requires a population of at least 2, got %d", len(population))
	}
	return population[rng.Intn(len(population))], nil
}

// selectPair picks two distinct parents by roulette-wheel selection. Each
// draw walks the population in slice order accumulating fitness and
// returns the first chromosome whose running total reaches the draw; an
// identical second pick is resampled.
func selectPair(rng *rand.Rand, population Evaluated) (Scored, Scored, error) {
	if len(population) < 2 {
		return Scored{}, Scored{}, apperr.Internalf("selection requires a population of at least 2, got %d", len(population))
	}
	total := 0.0
	for _, s := range population {
		total += s.Fitness
	}

	spin := func() Scored {
		r := rng.Float64() * total
		acc := 0.0
		for _, s := range population {
			acc += s.Fitness
			if acc >= r {
				return s
			}
		}
		return population[len(population)-1]
	}

	first := spin()
	firstKey := first.Tour.Key()
	second := spin()
	for second.Tour.Key() == firstKey {
		second = spin()
	}
	return first, second, nil
}
