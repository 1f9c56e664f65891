package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"periplus/internal/model"
	"periplus/internal/storage"
	periplusapi "periplus/pkg/periplus"
)

func main() {
	_ = godotenv.Load(".env")
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "solve":
		return runSolve(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "run":
		return runShow(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(message string) error {
	return fmt.Errorf("%s\nusage: periplusctl <init|solve|runs|run> [flags]", message)
}

func storeFlags(fs *flag.FlagSet) (*string, *string) {
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "periplus.db", "sqlite database path")
	return storeKind, dbPath
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := periplusapi.New(periplusapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer client.Close()

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runSolve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	instance := fs.String("instance", "", "TSPLIB instance name under the instances dir")
	instancesDir := fs.String("instances-dir", "data/instances", "directory with TSPLIB instances")
	coordinates := fs.String("coordinates", "", "coordinates file for a real instance")
	apiName := fs.String("api", "neshan", "routing API for real instances")
	vehicleType := fs.String("vehicle", "car", "vehicle type for real instances")
	dimension := fs.Int("dimension", 0, "node count")
	fixedOrigin := fs.Int("fixed-origin", model.NoFixedOrigin, "node pinned at tour position 0, -1 for none")
	openTour := fs.Bool("open-tour", false, "skip the closing last-to-first edge")
	population := fs.Int("population", 0, "population size override")
	generations := fs.Int("generations", 0, "max generations override")
	seed := fs.Int64("seed", 0, "deterministic RNG seed, 0 for wall clock")
	asJSON := fs.Bool("json", false, "print the full run as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dimension == 0 {
		return usageError("solve requires -dimension")
	}
	if (*instance == "") == (*coordinates == "") {
		return usageError("solve requires exactly one of -instance or -coordinates")
	}

	problem := model.Problem{
		Name:           *instance,
		Type:           model.ProblemTSP,
		EdgeWeightType: model.EdgeWeightEUC2D,
		Dimension:      *dimension,
		Algorithm:      model.AlgorithmGA,
	}
	if *coordinates != "" {
		problem.Name = *coordinates
		problem.Type = model.ProblemTSP
		problem.EdgeWeightType = model.EdgeWeightGEO
		problem.RealInstance = true
		problem.APIName = *apiName
		problem.CoordinatesPath = *coordinates
		problem.VehicleType = *vehicleType
	} else {
		problem.InstanceName = *instance
	}

	cfg := model.DefaultSolverConfig(*dimension)
	cfg.FixedOrigin = *fixedOrigin
	cfg.ReturnToOrigin = !*openTour
	cfg.Seed = *seed
	if *population > 0 {
		cfg.PopulationSize = *population
	}
	if *generations > 0 {
		cfg.MaxGenerations = *generations
	}

	client, err := periplusapi.New(periplusapi.Options{
		StoreKind:    *storeKind,
		DBPath:       *dbPath,
		InstancesDir: *instancesDir,
		APIKey:       os.Getenv("NESHAN_API_KEY"),
	})
	if err != nil {
		return err
	}
	defer client.Close()

	run, err := client.Solve(ctx, problem, cfg)
	if err != nil {
		return err
	}
	if *asJSON {
		return printJSON(run)
	}
	fmt.Printf("run %s\n", run.ID)
	fmt.Printf("  best cost   %s (generation %d)\n", humanize.Comma(int64(run.Result.BestCost)), run.Result.BestGeneration)
	fmt.Printf("  worst cost  %s (generation %d)\n", humanize.Comma(int64(run.Result.WorstCost)), run.Result.WorstGeneration)
	fmt.Printf("  generations %d in %dms\n", run.Result.Generations, run.Result.SolvedInMs)
	fmt.Printf("  tour        %v\n", run.Result.Solution)
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	limit := fs.Int("limit", 20, "maximum runs to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := periplusapi.New(periplusapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer client.Close()

	runs, err := client.Runs(ctx, *limit)
	if err != nil {
		return err
	}
	for _, run := range runs {
		fmt.Printf("%s  %s  n=%d  best=%s  gens=%d  %s\n",
			run.ID,
			run.CreatedAtUTC,
			run.Problem.Dimension,
			humanize.Comma(int64(run.Result.BestCost)),
			run.Result.Generations,
			run.Problem.Name,
		)
	}
	return nil
}

func runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	id := fs.String("id", "", "run id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return usageError("run requires -id")
	}

	client, err := periplusapi.New(periplusapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer client.Close()

	run, ok, err := client.Run(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("run %s not found", *id)
	}
	return printJSON(run)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
