// Package cost holds the dense travel-cost matrix consumed by the solver.
package cost

import (
	"fmt"

	"periplus/internal/apperr"
)

// Table is a dense N×N cost matrix stored row-major. Entry (i, j) is the
// cost of travelling from node i to node j; the diagonal is always zero.
// A table is immutable for the duration of a solve.
type Table struct {
	n int
	w []int
}

// NewTable returns a zeroed table for n nodes.
func NewTable(n int) (*Table, error) {
	if n <= 0 {
		return nil, apperr.BadInputf("cost table dimension must be positive, got %d", n)
	}
	return &Table{n: n, w: make([]int, n*n)}, nil
}

// FromMatrix builds a table from a square matrix of non-negative costs.
func FromMatrix(rows [][]int) (*Table, error) {
	n := len(rows)
	t, err := NewTable(n)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != n {
			return nil, apperr.BadInputf("cost table row %d has %d entries, want %d", i, len(row), n)
		}
		for j, v := range row {
			if err := t.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

// Dimension returns the node count N.
func (t *Table) Dimension() int { return t.n }

// Len returns the number of stored entries, N².
func (t *Table) Len() int { return len(t.w) }

// At returns the cost of the (origin, destination) pair.
func (t *Table) At(origin, destination int) int {
	return t.w[origin*t.n+destination]
}

// Set stores one entry during table construction. Diagonal entries must
// stay zero and costs must be non-negative.
func (t *Table) Set(origin, destination, cost int) error {
	if origin < 0 || origin >= t.n || destination < 0 || destination >= t.n {
		return apperr.Internalf("cost table index (%d,%d) out of range for dimension %d", origin, destination, t.n)
	}
	if cost < 0 {
		return apperr.BadInputf("negative cost %d for pair (%d,%d)", cost, origin, destination)
	}
	if origin == destination && cost != 0 {
		return apperr.Internalf("diagonal entry (%d,%d) must be zero, got %d", origin, destination, cost)
	}
	t.w[origin*t.n+destination] = cost
	return nil
}

func (t *Table) String() string {
	return fmt.Sprintf("cost.Table(n=%d)", t.n)
}
