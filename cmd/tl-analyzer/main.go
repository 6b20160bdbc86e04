package main

import (
	"TrafficLens/internal/engine/analysis"
	"TrafficLens/internal/engine/parser"
	"TrafficLens/internal/render"
	"errors"
	"fmt"
	"log"
	"os"
)

func main() {
	// 1. Get traffic file path from command-line arguments
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <input_file>\n", os.Args[0])
		os.Exit(1)
	}
	inputPath := os.Args[1]

	// 2. Parse the input file, reporting skipped lines on stderr
	records, diags, err := parser.ParseFile(inputPath)
	if err != nil {
		log.Fatalf("Failed to read input file: %v", err)
	}
	for _, d := range diags {
		log.Printf("Warning: line %d (%s): %q. Skipping.", d.Line, d.Detail, d.Raw)
	}

	// 3. Run the four analyses over the chronologically sorted records
	rep, err := analysis.Run(records)
	if errors.Is(err, analysis.ErrNoRecords) {
		fmt.Println("No records found in input file.")
		return
	}
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	// 4. Write the plain-text report
	if err := render.WriteText(os.Stdout, rep); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
}
