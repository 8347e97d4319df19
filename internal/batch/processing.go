package batch

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/MeKo-Tech/declutter/internal/layout"
	"github.com/MeKo-Tech/declutter/internal/render"
)

// pageJob represents a single page resolution job.
type pageJob struct {
	index int
	path  string
}

// pageResult represents the outcome of resolving a single page file.
type pageResult struct {
	index int
	page  *layout.Page
	err   error
}

// LoadPage reads and decodes one page cluster file.
func LoadPage(path string) (layout.Page, error) {
	data, err := os.ReadFile(path) //nolint:gosec // paths come from CLI args
	if err != nil {
		return layout.Page{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var page layout.Page
	if err := json.Unmarshal(data, &page); err != nil {
		return layout.Page{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return page, nil
}

// resolvePageFile loads one page file, resolves it, and optionally saves a
// debug overlay.
func resolvePageFile(resolver *layout.Resolver, path string, config *Config) (*layout.Page, error) {
	page, err := LoadPage(path)
	if err != nil {
		return nil, err
	}

	resolved := resolver.ProcessPage(page)

	if config.OverlayDir != "" {
		saveOverlay(resolver, resolved, path, config)
	}

	return &resolved, nil
}

// saveOverlay renders and stores the debug overlay for a resolved page.
// Overlay failures are logged, not fatal; the resolved page is still good.
func saveOverlay(resolver *layout.Resolver, page layout.Page, path string, config *Config) {
	ov := render.Overlay(resolver, page, render.DefaultStyle(), config.OverlayCellBoxes)
	if ov == nil {
		return
	}
	if _, err := render.Save(ov, config.OverlayDir, path); err != nil {
		slog.Warn("failed to save overlay", "file", path, "error", err)
	}
}

// processPagesParallel resolves page files using a worker pool. Results are
// returned in input order; per-file failures are reported positionally
// rather than aborting the batch.
func processPagesParallel(resolver *layout.Resolver, files []string, config *Config) ([]*layout.Page, []error) {
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan pageJob, len(files))
	results := make(chan pageResult, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				page, err := resolvePageFile(resolver, job.path, config)
				results <- pageResult{index: job.index, page: page, err: err}
			}
		}()
	}

	for i, path := range files {
		jobs <- pageJob{index: i, path: path}
	}
	close(jobs)

	wg.Wait()
	close(results)

	pages := make([]*layout.Page, len(files))
	errs := make([]error, len(files))
	for res := range results {
		pages[res.index] = res.page
		errs[res.index] = res.err
		if res.err != nil {
			slog.Warn("page resolution failed", "file", files[res.index], "error", res.err)
		}
	}
	return pages, errs
}
