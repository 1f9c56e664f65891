// Package tsplib parses the TSPLIB subset used for synthetic instances and
// derives Euclidean cost tables from node coordinates.
package tsplib

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"periplus/internal/apperr"
	"periplus/internal/cost"
)

// Node is one parsed coordinate. Z is meaningful only when HasZ is set.
type Node struct {
	X, Y, Z float64
	HasZ    bool
}

// Instance is a parsed TSPLIB file. Nodes are stored 0-based regardless of
// the 1-based indices in the file.
type Instance struct {
	Name           string
	Type           string
	Dimension      int
	EdgeWeightType string
	Nodes          []Node
}

// ParseFile reads and parses a TSPLIB instance from disk.
func ParseFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.MissingResource("instance file not found", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a TSPLIB instance. Recognised directives are NAME, TYPE,
// DIMENSION and EDGE_WEIGHT_TYPE; recognised sections are
// NODE_COORD_SECTION, EDGE_WEIGHT_SECTION, DISPLAY_DATA_SECTION and EOF.
func Parse(r io.Reader) (*Instance, error) {
	inst := &Instance{}
	scanner := bufio.NewScanner(r)

	section := ""
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tokens := strings.Fields(line)
		switch tokens[0] {
		case "EOF":
			section = ""
			continue
		case "NODE_COORD_SECTION", "EDGE_WEIGHT_SECTION", "DISPLAY_DATA_SECTION":
			section = tokens[0]
			continue
		}

		switch section {
		case "NODE_COORD_SECTION":
			if err := inst.appendNode(tokens); err != nil {
				return nil, err
			}
		case "EDGE_WEIGHT_SECTION", "DISPLAY_DATA_SECTION":
			// Sections are recognised but their payload is not used for
			// EUC_2D instances.
			continue
		default:
			if err := inst.applyDirective(line); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, apperr.MissingResource("reading instance file failed", err)
	}

	if inst.Dimension > 0 && len(inst.Nodes) != inst.Dimension {
		return nil, apperr.BadInputf("instance declares dimension %d but has %d nodes", inst.Dimension, len(inst.Nodes))
	}
	if inst.Dimension == 0 {
		inst.Dimension = len(inst.Nodes)
	}
	return inst, nil
}

func (inst *Instance) applyDirective(line string) error {
	key, value, found := strings.Cut(line, ":")
	if !found {
		return apperr.BadInputf("malformed instance line %q", line)
	}
	value = strings.TrimSpace(value)
	switch strings.TrimSpace(key) {
	case "NAME":
		inst.Name = value
	case "TYPE":
		inst.Type = value
	case "DIMENSION":
		n, err := strconv.Atoi(value)
		if err != nil {
			return apperr.BadInputf("malformed dimension %q", value)
		}
		inst.Dimension = n
	case "EDGE_WEIGHT_TYPE":
		inst.EdgeWeightType = value
	}
	// Unknown directives are tolerated; TSPLIB files carry several the
	// solver has no use for (COMMENT, CAPACITY, ...).
	return nil
}

func (inst *Instance) appendNode(tokens []string) error {
	if len(tokens) != 3 && len(tokens) != 4 {
		return apperr.BadInputf("malformed node line %q", strings.Join(tokens, " "))
	}
	idx, err := strconv.Atoi(tokens[0])
	if err != nil || idx != len(inst.Nodes)+1 {
		return apperr.BadInputf("node index %q out of order", tokens[0])
	}
	var node Node
	node.X, err = strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return apperr.BadInputf("malformed node coordinate %q", tokens[1])
	}
	node.Y, err = strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return apperr.BadInputf("malformed node coordinate %q", tokens[2])
	}
	if len(tokens) == 4 {
		node.Z, err = strconv.ParseFloat(tokens[3], 64)
		if err != nil {
			return apperr.BadInputf("malformed node coordinate %q", tokens[3])
		}
		node.HasZ = true
	}
	inst.Nodes = append(inst.Nodes, node)
	return nil
}

// CostTable enumerates all ordered node pairs and fills a dense table with
// truncated Euclidean distances. Only EUC_2D instances are supported.
func (inst *Instance) CostTable() (*cost.Table, error) {
	if inst.EdgeWeightType != "EUC_2D" {
		return nil, apperr.BadInput("problem type not supported")
	}
	if len(inst.Nodes) == 0 {
		return nil, apperr.BadInput("instance has no nodes")
	}
	table, err := cost.NewTable(len(inst.Nodes))
	if err != nil {
		return nil, err
	}
	for i, a := range inst.Nodes {
		for j, b := range inst.Nodes {
			if i == j {
				continue
			}
			if err := table.Set(i, j, distance(a, b)); err != nil {
				return nil, err
			}
		}
	}
	return table, nil
}

// distance is the Euclidean distance truncated to an integer. The Z axis
// participates only when both endpoints carry one.
func distance(a, b Node) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	sum := dx*dx + dy*dy
	if a.HasZ && b.HasZ {
		dz := a.Z - b.Z
		sum += dz * dz
	}
	return int(math.Sqrt(sum))
}
