package ga

import (
	"time"

	"periplus/internal/model"
)

// solveState accumulates per-generation statistics; the engine threads one
// instance through the loop and returns its final snapshot.
type solveState struct {
	start time.Time

	solution  Tour
	bestCost  int
	worstCost int
	bestIndex int
	worstIdx  int

	bestHistory  []int
	worstHistory []int
	solvedInMs   int64
}

// register records the statistics of one evaluated generation. The
// population is sorted ascending by fitness, so the tail is the best tour
// (lowest cost) and the head the worst. Best and worst only move on strict
// improvement.
func (s *solveState) register(population Evaluated) {
	population.sortAscending()
	best := population[len(population)-1]
	worst := population[0]
	index := len(s.bestHistory)

	if s.solution == nil || best.Cost < s.bestCost {
		s.solution = best.Tour.Clone()
		s.bestCost = best.Cost
		s.bestIndex = index
	}
	if index == 0 || worst.Cost > s.worstCost {
		s.worstCost = worst.Cost
		s.worstIdx = index
	}

	s.bestHistory = append(s.bestHistory, s.bestCost)
	s.worstHistory = append(s.worstHistory, s.worstCost)
	s.solvedInMs = time.Since(s.start).Milliseconds()
}

// generations returns how many generations have been registered; the
// seeded population counts as the first.
func (s *solveState) generations() int { return len(s.bestHistory) }

// currentIndex is the 0-based index of the latest registered generation.
func (s *solveState) currentIndex() int { return len(s.bestHistory) - 1 }

func (s *solveState) result() model.SolvedProblem {
	return model.SolvedProblem{
		Solution:        append([]int(nil), s.solution...),
		BestCost:        s.bestCost,
		WorstCost:       s.worstCost,
		BestGeneration:  s.bestIndex,
		WorstGeneration: s.worstIdx,
		BestHistory:     append([]int(nil), s.bestHistory...),
		WorstHistory:    append([]int(nil), s.worstHistory...),
		Generations:     s.generations(),
		SolvedInMs:      s.solvedInMs,
	}
}
