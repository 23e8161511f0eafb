// Command contour evaluates a sketch script, validates the resulting
// sketch, and optionally emits discretized polylines as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/chazu/contour/pkg/discretize"
	"github.com/chazu/contour/pkg/engine"
	"github.com/chazu/contour/pkg/sketch"
)

// Report aggregates everything a single script run produces.
type Report struct {
	Sketch     *sketch.Sketch
	EvalErrors []engine.EvalError
	Errors     []sketch.ValidationError
	Warnings   []sketch.ValidationWarning
	Polylines  []*discretize.Polyline
}

// Failed reports whether the run produced any blocking problem.
func (r *Report) Failed() bool {
	return len(r.EvalErrors) > 0 || len(r.Errors) > 0
}

// runScript evaluates source and validates the sketch. Polylines are
// produced only when evaluation and validation both pass.
func runScript(source string, segments int) (*Report, error) {
	eng := engine.NewEngine()

	sk, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	report := &Report{Sketch: sk, EvalErrors: evalErrs}
	if len(evalErrs) > 0 {
		return report, nil
	}

	report.Errors, report.Warnings = sketch.Validate(sk)
	if len(report.Errors) > 0 {
		return report, nil
	}

	report.Polylines, err = discretize.Discretize(sk, segments)
	if err != nil {
		return nil, fmt.Errorf("discretize: %w", err)
	}
	return report, nil
}

// writeJSON emits the polylines as a JSON array.
func writeJSON(w io.Writer, polylines []*discretize.Polyline) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(polylines)
}

func main() {
	segments := flag.Int("segments", discretize.DefaultSegments, "samples per edge")
	emitJSON := flag.Bool("json", false, "emit discretized polylines as JSON on stdout")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <script.clisp>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("read script: %v", err)
	}

	report, err := runScript(string(source), *segments)
	if err != nil {
		log.Fatalf("%v", err)
	}

	for _, e := range report.EvalErrors {
		log.Printf("eval error: %s", e.Error())
	}
	for _, e := range report.Errors {
		log.Printf("validation error: %s", e.Error())
	}
	for _, w := range report.Warnings {
		log.Printf("warning: %s", w)
	}
	if report.Failed() {
		os.Exit(1)
	}

	log.Printf("sketch: %d shapes", report.Sketch.Len())
	if *emitJSON {
		if err := writeJSON(os.Stdout, report.Polylines); err != nil {
			log.Fatalf("encode: %v", err)
		}
	}
}
