package ga

import (
	"math/rand"
	"testing"

	"periplus/internal/model"
)

func TestCrossoverPreservesPermutations(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	parentA := Tour{0, 1, 2, 3, 4, 5}
	parentB := Tour{5, 3, 1, 0, 4, 2}

	for draw := 0; draw < 1000; draw++ {
		childA, childB, err := crossover(rng, parentA, parentB, model.NoFixedOrigin)
		if err != nil {
			t.Fatalf("crossover: %v", err)
		}
		assertPermutation(t, childA, len(parentA))
		assertPermutation(t, childB, len(parentB))
	}
}

func TestCrossoverKeepsFixedOrigin(t *testing.T) {
	rng := rand.New(rand.NewSource(32))
	parentA := Tour{3, 0, 1, 2, 4}
	parentB := Tour{3, 4, 2, 0, 1}

	for draw := 0; draw < 1000; draw++ {
		childA, childB, err := crossover(rng, parentA, parentB, 3)
		if err != nil {
			t.Fatalf("crossover: %v", err)
		}
		if childA[0] != 3 || childB[0] != 3 {
			t.Fatalf("draw %d moved the origin: %v %v", draw, childA, childB)
		}
		assertPermutation(t, childA, 5)
		assertPermutation(t, childB, 5)
	}
}

// Selecting every eligible locus turns each child into the other parent.
func TestBuildChildAllLoci(t *testing.T) {
	parentA := Tour{0, 1, 2, 3}
	parentB := Tour{3, 2, 1, 0}

	child, err := buildChild(parentA, parentB, []int{0, 1, 2, 3})
	if err != nil {
		t.Fatalf("build child: %v", err)
	}
	if child.Key() != parentB.Key() {
		t.Fatalf("child %v, want %v", child, parentB)
	}
}

func TestBuildChildSingleLocusIsIdentity(t *testing.T) {
	parentA := Tour{0, 1, 2, 3}
	parentB := Tour{0, 1, 2, 3}

	// Equal parents: deleting and refilling the same gene reproduces the
	// parent.
	child, err := buildChild(parentA, parentB, []int{2})
	if err != nil {
		t.Fatalf("build child: %v", err)
	}
	if child.Key() != parentA.Key() {
		t.Fatalf("child %v, want %v", child, parentA)
	}
}
