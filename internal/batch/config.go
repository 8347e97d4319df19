// Package batch provides batch resolution of page cluster files. Pages are
// independent, so files are processed in parallel by a worker pool.
package batch

import (
	"fmt"
	"os"
	"time"

	"github.com/MeKo-Tech/declutter/internal/layout"
)

// Config holds all configuration for batch processing.
type Config struct {
	// Resolver thresholds
	Resolver layout.Options

	// Output settings
	Format     string
	OutputFile string

	// Overlay settings
	OverlayDir       string
	OverlayCellBoxes bool

	// Parallel processing settings
	Workers int

	// File discovery settings
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Reporting settings
	Quiet     bool
	ShowStats bool
}

// Result holds the result of batch processing.
type Result struct {
	Pages       []*layout.Page
	PagePaths   []string
	Errors      []error
	Duration    time.Duration
	WorkerCount int
}

// Failed returns the number of pages that could not be resolved.
func (r *Result) Failed() int {
	n := 0
	for _, err := range r.Errors {
		if err != nil {
			n++
		}
	}
	return n
}

// FormatResults formats the batch processing results in the specified format.
func (r *Result) FormatResults(format string) (string, error) {
	return formatBatchResults(r.Pages, r.PagePaths, format)
}

// SaveResults saves the formatted results to a file or stdout.
func (r *Result) SaveResults(format, outputFile string, quiet bool) error {
	output, err := r.FormatResults(format)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(os.Stdout, "Results written to %s\n", outputFile)
		}
	} else {
		_, _ = fmt.Fprint(os.Stdout, output)
	}

	return nil
}

// PrintStats prints processing statistics.
func (r *Result) PrintStats(quiet bool) {
	if quiet {
		return
	}
	processed := len(r.Pages) - r.Failed()
	var perPage time.Duration
	if processed > 0 {
		perPage = r.Duration / time.Duration(processed)
	}
	_, _ = fmt.Fprintf(os.Stdout, "\nProcessing Statistics:\n")
	_, _ = fmt.Fprintf(os.Stdout, "  Total pages: %d\n", len(r.PagePaths))
	_, _ = fmt.Fprintf(os.Stdout, "  Processed: %d\n", processed)
	_, _ = fmt.Fprintf(os.Stdout, "  Failed: %d\n", r.Failed())
	_, _ = fmt.Fprintf(os.Stdout, "  Workers: %d\n", r.WorkerCount)
	_, _ = fmt.Fprintf(os.Stdout, "  Duration: %v\n", r.Duration.Round(time.Millisecond))
	_, _ = fmt.Fprintf(os.Stdout, "  Avg per page: %v\n", perPage.Round(time.Microsecond))
}
