package ga

// survive composes the next generation: both populations are sorted
// ascending by fitness and the bottom eliteCount entries of the evolved
// generation are replaced by the top eliteCount of the previous one, so
// the best chromosomes are never lost and the population size is
// preserved exactly.
func survive(previous, evolved Evaluated, eliteCount int) Evaluated {
	previous.sortAscending()
	evolved.sortAscending()
	if eliteCount > len(previous) {
		eliteCount = len(previous)
	}
	elite := previous[len(previous)-eliteCount:]
	for i := 0; i < eliteCount && i < len(evolved); i++ {
		evolved[i] = elite[i]
	}
	return evolved
}
