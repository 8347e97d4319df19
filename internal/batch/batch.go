package batch

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/MeKo-Tech/declutter/internal/layout"
)

// ProcessBatch resolves a batch of page files with the given configuration.
func ProcessBatch(paths []string, config *Config) (*Result, error) {
	files, err := discoverPageFiles(paths, config.Recursive, config.IncludePatterns, config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover page files: %w", err)
	}

	if len(files) == 0 {
		return nil, errors.New("no page files found")
	}

	resolver := layout.NewResolver(config.Resolver)

	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	startTime := time.Now()
	pages, errs := processPagesParallel(resolver, files, config)
	duration := time.Since(startTime)

	return &Result{
		Pages:       pages,
		PagePaths:   files,
		Errors:      errs,
		Duration:    duration,
		WorkerCount: workers,
	}, nil
}
