package batch

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/MeKo-Tech/declutter/internal/layout"
)

// pageEntry pairs a resolved page with its source file for output.
type pageEntry struct {
	File string       `json:"file" yaml:"file"`
	Page *layout.Page `json:"page" yaml:"page"`
}

// batchOutput is the aggregate output document for a batch run.
type batchOutput struct {
	Pages []pageEntry `json:"pages" yaml:"pages"`
}

// formatBatchResults formats the batch results in the specified format.
// Pages that failed to resolve are skipped; their errors are reported
// separately by the caller.
func formatBatchResults(pages []*layout.Page, pagePaths []string, format string) (string, error) {
	out := batchOutput{Pages: make([]pageEntry, 0, len(pages))}
	for i, page := range pages {
		if page == nil {
			continue
		}
		out.Pages = append(out.Pages, pageEntry{File: pagePaths[i], Page: page})
	}

	switch format {
	case "", "json":
		bts, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode JSON: %w", err)
		}
		return string(bts) + "\n", nil
	case "yaml":
		bts, err := yaml.Marshal(out)
		if err != nil {
			return "", fmt.Errorf("failed to encode YAML: %w", err)
		}
		return string(bts), nil
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}

// FormatPage formats a single resolved page in the specified format.
func FormatPage(page *layout.Page, format string) (string, error) {
	switch format {
	case "", "json":
		bts, err := json.MarshalIndent(page, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode JSON: %w", err)
		}
		return string(bts) + "\n", nil
	case "yaml":
		bts, err := yaml.Marshal(page)
		if err != nil {
			return "", fmt.Errorf("failed to encode YAML: %w", err)
		}
		return string(bts), nil
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}
