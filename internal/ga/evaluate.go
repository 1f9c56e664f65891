package ga

import (
	"periplus/internal/cost"
)

// tourCost sums the consecutive edge costs of a tour, adding the closing
// last-to-first edge when the tour is a cycle.
func tourCost(table *cost.Table, t Tour, returnToOrigin bool) int {
	total := 0
	for k := 0; k < len(t)-1; k++ {
		total += table.At(t[k], t[k+1])
	}
	if returnToOrigin {
		total += table.At(t[len(t)-1], t[0])
	}
	return total
}

// evaluate scores every tour in the population. Fitness is the reciprocal
// of the tour cost; a zero cost cannot occur for dimensions the engine
// accepts.
func evaluate(table *cost.Table, tours []Tour, returnToOrigin bool) Evaluated {
	scored := make(Evaluated, 0, len(tours))
	for _, t := range tours {
		c := tourCost(table, t, returnToOrigin)
		scored = append(scored, Scored{Tour: t, Cost: c, Fitness: 1 / float64(c)})
	}
	return scored
}
