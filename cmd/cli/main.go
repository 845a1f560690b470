package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/EyadMostafa/automated-timetable-generator/internal/csvio"
	"github.com/EyadMostafa/automated-timetable-generator/internal/model"
	"github.com/EyadMostafa/automated-timetable-generator/internal/solver"
)

var (
	validModes = []string{"findfirst", "optimize"}
	modes      = map[string]solver.Mode{
		"findfirst": solver.FindFirst,
		"optimize":  solver.Optimize,
	}
)

type output struct {
	Score   float64         `json:"score"`
	Classes []solver.Record `json:"classes"`
}

func main() {
	// Define arguments
	inputPtr := flag.String("input", "", "Path to a JSON problem instance")
	csvDirPtr := flag.String("csv-dir", "", "Directory holding the six CSV entity tables (alternative to -input)")
	modePtr := flag.String("mode", "findfirst", `Solver mode. Allowed values are:
- "findfirst" (stop at the first conflict-free timetable, fastest) and
- "optimize" (keep searching for the lowest penalty until the timeout), where "findfirst" is the default`)
	timeoutPtr := flag.Int("timeout", 60, "Optimization time budget in seconds (optimize mode only)")
	outPtr := flag.String("out", "", "Path to the output file (.csv for CSV, anything else for JSON); if empty, JSON is written to the standard output")
	flag.Parse()
	mode := strings.ToLower(*modePtr)

	// Validate arguments
	if !slices.Contains(validModes, mode) {
		log.Fatalf("%v is not a valid mode", mode)
	} else if (*inputPtr == "") == (*csvDirPtr == "") {
		log.Fatal("exactly one of -input and -csv-dir must be specified")
	} else if *timeoutPtr <= 0 {
		log.Fatalf("timeout must be positive: %v", *timeoutPtr)
	}

	// Extract input
	var dataset *model.Dataset
	var err error
	if *inputPtr != "" {
		input, err := model.InputFromJson(*inputPtr)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}
		dataset, err = input.Dataset()
		if err != nil {
			log.Fatalf("invalid input data: %v", err)
		}
	} else {
		dataset, err = csvio.LoadDataset(*csvDirPtr)
		if err != nil {
			log.Fatalf("invalid input data: %v", err)
		}
	}

	// Initialize engine
	engine, err := solver.NewSolver(dataset, solver.DefaultConfig())
	if err != nil {
		log.Fatalf("invalid input data: %v", err)
	}

	// Build timetable
	solution, err := engine.Solve(modes[mode], time.Duration(*timeoutPtr)*time.Second)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(20)
	}

	// Verify timetable correctness
	if !engine.Verify(solution) {
		log.Fatal("verification failed: the solver returned an inconsistent timetable")
	}

	records := solution.Records()

	if *outPtr == "" || !strings.HasSuffix(*outPtr, ".csv") {
		outputJson, err := json.MarshalIndent(output{Score: solution.Score, Classes: records}, "", "  ")
		if err != nil {
			log.Fatalf("an error occurred while building output json: %v", err)
		}
		if *outPtr == "" {
			fmt.Println(string(outputJson))
		} else if err := os.WriteFile(*outPtr, outputJson, 0666); err != nil {
			log.Fatalf("an error occurred while writing to the output file: %v", err)
		}
	} else if err := csvio.WriteRecords(records, *outPtr); err != nil {
		log.Fatalf("an error occurred while writing to the output file: %v", err)
	}

	fmt.Fprintf(os.Stderr, "Classes: %v\n", len(records))
	fmt.Fprintf(os.Stderr, "Score: %.2f\n", solution.Score)
}
