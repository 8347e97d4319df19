package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/declutter/internal/batch"
	"github.com/MeKo-Tech/declutter/internal/config"
)

// batchCmd represents the batch command for parallel page processing.
var batchCmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Resolve many page files in parallel",
	Long: `Resolve overlapping layout clusters in many page files using parallel
workers. Directories are expanded to the page files they contain.

Examples:
  declutter batch pages/*.json
  declutter batch pages/ --recursive --workers 8
  declutter batch pages/ --format yaml --output results.yaml
  declutter batch pages/ --include 'page_*.json' --stats`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runBatchCommand,
}

// configToBatchConfig maps centralized configuration to batch.Config.
// CLI flags override config file values through Viper's precedence system.
func configToBatchConfig(cfg *config.Config, cmd *cobra.Command) *batch.Config {
	batchConfig := &batch.Config{
		Resolver: cfg.Resolver.ResolverOptions(),
	}

	batchConfig.Format = cfg.Output.Format
	if cmd.Flags().Changed("format") {
		batchConfig.Format, _ = cmd.Flags().GetString("format")
	}

	batchConfig.OutputFile = cfg.Output.File
	if cmd.Flags().Changed("output") {
		batchConfig.OutputFile, _ = cmd.Flags().GetString("output")
	}

	batchConfig.OverlayDir = cfg.Output.OverlayDir
	if cmd.Flags().Changed("overlay-dir") {
		batchConfig.OverlayDir, _ = cmd.Flags().GetString("overlay-dir")
	}

	batchConfig.OverlayCellBoxes = cfg.Output.OverlayCellBoxes
	if cmd.Flags().Changed("overlay-cells") {
		batchConfig.OverlayCellBoxes, _ = cmd.Flags().GetBool("overlay-cells")
	}

	batchConfig.Workers = cfg.Batch.Workers
	if cmd.Flags().Changed("workers") {
		batchConfig.Workers, _ = cmd.Flags().GetInt("workers")
	}

	batchConfig.Recursive = cfg.Batch.Recursive
	if cmd.Flags().Changed("recursive") {
		batchConfig.Recursive, _ = cmd.Flags().GetBool("recursive")
	}

	batchConfig.IncludePatterns = cfg.Batch.IncludePatterns
	if cmd.Flags().Changed("include") {
		batchConfig.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
	}

	batchConfig.ExcludePatterns = cfg.Batch.ExcludePatterns
	if cmd.Flags().Changed("exclude") {
		batchConfig.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")
	}

	batchConfig.Quiet = cfg.Batch.Quiet
	if cmd.Flags().Changed("quiet") {
		batchConfig.Quiet, _ = cmd.Flags().GetBool("quiet")
	}

	batchConfig.ShowStats = cfg.Batch.ShowStats
	if cmd.Flags().Changed("stats") {
		batchConfig.ShowStats, _ = cmd.Flags().GetBool("stats")
	}

	return batchConfig
}

func runBatchCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	batchConfig := configToBatchConfig(cfg, cmd)

	result, err := batch.ProcessBatch(args, batchConfig)
	if err != nil {
		return fmt.Errorf("batch processing failed: %w", err)
	}

	if err := result.SaveResults(batchConfig.Format, batchConfig.OutputFile, batchConfig.Quiet); err != nil {
		return err
	}

	if batchConfig.ShowStats {
		result.PrintStats(batchConfig.Quiet)
	}

	if failed := result.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, len(result.PagePaths))
	}

	return nil
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringP("format", "f", "json", "output format (json, yaml)")
	batchCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	batchCmd.Flags().String("overlay-dir", "", "directory to save debug overlay images")
	batchCmd.Flags().Bool("overlay-cells", false, "draw text cell boxes in overlays")
	batchCmd.Flags().IntP("workers", "w", 0, "number of parallel workers (0 = number of CPUs)")
	batchCmd.Flags().BoolP("recursive", "r", false, "recurse into subdirectories")
	batchCmd.Flags().StringSlice("include", nil, "glob patterns for files to include")
	batchCmd.Flags().StringSlice("exclude", nil, "glob patterns for files to exclude")
	batchCmd.Flags().BoolP("quiet", "q", false, "suppress progress output")
	batchCmd.Flags().Bool("stats", false, "print processing statistics")
}
