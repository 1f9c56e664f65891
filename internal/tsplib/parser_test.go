package tsplib

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"periplus/internal/apperr"
)

const toyInstance = "NAME: toy\nTYPE: TSP\nDIMENSION: 3\nEDGE_WEIGHT_TYPE: EUC_2D\nNODE_COORD_SECTION\n1 0 0\n2 3 0\n3 0 4\nEOF\n"

func TestParseToyInstance(t *testing.T) {
	inst, err := Parse(strings.NewReader(toyInstance))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if inst.Name != "toy" || inst.Type != "TSP" || inst.Dimension != 3 || inst.EdgeWeightType != "EUC_2D" {
		t.Fatalf("header mismatch: %+v", inst)
	}
	if len(inst.Nodes) != 3 {
		t.Fatalf("parsed %d nodes, want 3", len(inst.Nodes))
	}
	if inst.Nodes[1].X != 3 || inst.Nodes[1].Y != 0 {
		t.Fatalf("node 1 = %+v", inst.Nodes[1])
	}
}

// The 3-4-5 triangle: off-diagonals truncate to 3, 4 and 5 with symmetric
// counterparts, diagonals stay 0.
func TestToyInstanceCostTable(t *testing.T) {
	inst, err := Parse(strings.NewReader(toyInstance))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	table, err := inst.CostTable()
	if err != nil {
		t.Fatalf("cost table: %v", err)
	}
	if table.Len() != 9 {
		t.Fatalf("table len = %d, want 9", table.Len())
	}
	want := [][]int{
		{0, 3, 4},
		{3, 0, 5},
		{4, 5, 0},
	}
	for i := range want {
		for j := range want[i] {
			if got := table.At(i, j); got != want[i][j] {
				t.Fatalf("entry (%d,%d) = %d, want %d", i, j, got, want[i][j])
			}
		}
	}
}

func TestCostTableTruncatesDistance(t *testing.T) {
	in := "DIMENSION: 2\nEDGE_WEIGHT_TYPE: EUC_2D\nNODE_COORD_SECTION\n1 0 0\n2 1 1\nEOF\n"
	inst, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	table, err := inst.CostTable()
	if err != nil {
		t.Fatalf("cost table: %v", err)
	}
	// sqrt(2) truncates to 1.
	if got := table.At(0, 1); got != 1 {
		t.Fatalf("entry (0,1) = %d, want 1", got)
	}
}

func TestCostTableThreeDimensional(t *testing.T) {
	in := "DIMENSION: 2\nEDGE_WEIGHT_TYPE: EUC_2D\nNODE_COORD_SECTION\n1 0 0 0\n2 2 3 6\nEOF\n"
	inst, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	table, err := inst.CostTable()
	if err != nil {
		t.Fatalf("cost table: %v", err)
	}
	// sqrt(4+9+36) = 7.
	if got := table.At(0, 1); got != 7 {
		t.Fatalf("entry (0,1) = %d, want 7", got)
	}
}

func TestCostTableRejectsUnsupportedWeightType(t *testing.T) {
	in := "DIMENSION: 3\nEDGE_WEIGHT_TYPE: EXPLICIT\nNODE_COORD_SECTION\n1 0 0\n2 3 0\n3 0 4\nEOF\n"
	inst, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = inst.CostTable()
	if err == nil {
		t.Fatal("expected unsupported weight type error")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindBadInput {
		t.Fatalf("error %v is not bad input", err)
	}
	if appErr.Message != "problem type not supported" {
		t.Fatalf("message %q", appErr.Message)
	}
}

func TestParseRejectsDimensionMismatch(t *testing.T) {
	in := "DIMENSION: 4\nEDGE_WEIGHT_TYPE: EUC_2D\nNODE_COORD_SECTION\n1 0 0\n2 3 0\nEOF\n"
	if _, err := Parse(strings.NewReader(in)); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestParseRejectsOutOfOrderNodes(t *testing.T) {
	in := "DIMENSION: 2\nEDGE_WEIGHT_TYPE: EUC_2D\nNODE_COORD_SECTION\n2 0 0\n1 3 0\nEOF\n"
	if _, err := Parse(strings.NewReader(in)); err == nil {
		t.Fatal("expected out-of-order node error")
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.tsp"))
	if err == nil {
		t.Fatal("expected missing file error")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindMissingResource {
		t.Fatalf("error %v is not missing resource", err)
	}
}

func TestParseFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toy.tsp")
	if err := os.WriteFile(path, []byte(toyInstance), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	inst, err := ParseFile(path)
	if err != nil {
		t.Fatalf("parse file: %v", err)
	}
	if inst.Dimension != 3 {
		t.Fatalf("dimension = %d, want 3", inst.Dimension)
	}
}
