package ga

import "sort"

// Population is a set of distinct tours. Uniqueness is keyed on the
// ordered sequence, not the gene set.
type Population struct {
	tours []Tour
	keys  map[string]struct{}
}

func NewPopulation(capacity int) *Population {
	return &Population{
		tours: make([]Tour, 0, capacity),
		keys:  make(map[string]struct{}, capacity),
	}
}

// Add admits a tour unless an equal one is already present.
func (p *Population) Add(t Tour) bool {
	key := t.Key()
	if _, ok := p.keys[key]; ok {
		return false
	}
	p.keys[key] = struct{}{}
	p.tours = append(p.tours, t)
	return true
}

func (p *Population) Contains(t Tour) bool {
	_, ok := p.keys[t.Key()]
	return ok
}

func (p *Population) Len() int { return len(p.tours) }

func (p *Population) Tours() []Tour { return p.tours }

// Scored pairs a tour with its evaluated cost and fitness.
type Scored struct {
	Tour    Tour
	Cost    int
	Fitness float64
}

// Evaluated is an evaluated population. Its slice order is the iteration
// order the roulette accumulator walks, so it must not change during one
// selection call.
type Evaluated []Scored

// sortAscending orders by fitness, worst first. The comparator is
// deterministic so repeated solves with the same seed reproduce exactly.
func (e Evaluated) sortAscending() {
	sort.SliceStable(e, func(i, j int) bool {
		return e[i].Fitness < e[j].Fitness
	})
}

// keySet returns the canonical forms of all member tours.
func (e Evaluated) keySet() map[string]struct{} {
	keys := make(map[string]struct{}, len(e))
	for _, s := range e {
		keys[s.Tour.Key()] = struct{}{}
	}
	return keys
}
