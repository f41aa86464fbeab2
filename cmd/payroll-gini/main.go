// Command payroll-gini prints per-season payroll Gini coefficients and
// payroll/win% correlations for a CSV of team seasons, and charts both.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"payroll-gini/internal/pipeline"
	"payroll-gini/internal/plot"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 3 {
		fmt.Fprintf(stdout, "Usage: %s <input file> <output image>\n", args[0])
		return 1
	}

	inputPath := strings.TrimSpace(args[1])
	outputPath := strings.TrimSpace(args[2])

	p := pipeline.New(pipeline.CSVSource{Path: inputPath}, pipeline.Options{
		ChartPath: outputPath,
		Plot:      plot.DefaultOptions(),
	})

	if _, err := p.Run(context.Background(), stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
