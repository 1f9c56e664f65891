package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

type ProblemType string

const (
	ProblemTSP  ProblemType = "TSP"
	ProblemATSP ProblemType = "ATSP"
)

type EdgeWeightType string

const (
	EdgeWeightGEO      EdgeWeightType = "GEO"
	EdgeWeightEUC2D    EdgeWeightType = "EUC_2D"
	EdgeWeightExplicit EdgeWeightType = "EXPLICIT"
)

// AlgorithmGA is the only solver currently registered.
const AlgorithmGA = "GA"

// Problem describes one TSP instance to solve. Real instances carry an API
// name and a coordinates file; synthetic instances carry a TSPLIB instance
// name plus the best known tour cost for reference.
type Problem struct {
	Name            string         `json:"name"`
	Type            ProblemType    `json:"type"`
	EdgeWeightType  EdgeWeightType `json:"edge_weight_type"`
	Dimension       int            `json:"dimension"`
	Algorithm       string         `json:"algorithm"`
	RealInstance    bool           `json:"real_instance"`
	APIName         string         `json:"api_name,omitempty"`
	CoordinatesPath string         `json:"coordinates_path,omitempty"`
	InstanceName    string         `json:"instance_name,omitempty"`
	BestKnownCost   int            `json:"best_known_cost,omitempty"`
	VehicleType     string         `json:"vehicle_type,omitempty"`
}

// NoFixedOrigin marks a SolverConfig without a pinned depot node.
const NoFixedOrigin = -1

// SolverConfig carries the genetic algorithm parameters for one solve.
type SolverConfig struct {
	Dimension        int   `json:"dimension"`
	FixedOrigin      int   `json:"fixed_origin"`
	ReturnToOrigin   bool  `json:"return_to_origin"`
	PopulationSize   int   `json:"population_size"`
	NNAPercentage    int   `json:"nna_percentage"`
	MaxGenerations   int   `json:"max_generations"`
	MaxChromosomeAge int   `json:"max_chromosome_age"`
	MutationRate     int   `json:"mutation_rate"`
	EliteCount       int   `json:"elite_count"`
	Seed             int64 `json:"seed,omitempty"`
}

// DefaultSolverConfig returns the stock parameters for a problem of the
// given dimension. The population cap against the permutation space is
// applied by the engine, not here.
func DefaultSolverConfig(dimension int) SolverConfig {
	return SolverConfig{
		Dimension:        dimension,
		FixedOrigin:      NoFixedOrigin,
		ReturnToOrigin:   true,
		PopulationSize:   100,
		NNAPercentage:    40,
		MaxGenerations:   1000,
		MaxChromosomeAge: 250,
		MutationRate:     2,
		EliteCount:       2,
	}
}

// SolvedProblem is the outcome of one genetic algorithm run.
//
// BestGeneration and WorstGeneration are 0-based indices into the history
// slices, so BestHistory[BestGeneration] == BestCost always holds.
type SolvedProblem struct {
	Solution        []int   `json:"solution"`
	BestCost        int     `json:"best_cost"`
	WorstCost       int     `json:"worst_cost"`
	BestGeneration  int     `json:"best_generation"`
	WorstGeneration int     `json:"worst_generation"`
	BestHistory     []int   `json:"best_history"`
	WorstHistory    []int   `json:"worst_history"`
	Generations     int     `json:"generations"`
	SolvedInMs      int64   `json:"solved_in_ms"`
}

// SolveRun is the persisted record of one solve request.
type SolveRun struct {
	VersionedRecord
	ID           string        `json:"id"`
	CreatedAtUTC string        `json:"created_at_utc"`
	Problem      Problem       `json:"problem"`
	Config       SolverConfig  `json:"config"`
	Result       SolvedProblem `json:"result"`
}
