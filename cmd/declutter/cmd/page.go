package cmd

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/declutter/internal/batch"
	"github.com/MeKo-Tech/declutter/internal/layout"
	"github.com/MeKo-Tech/declutter/internal/render"
)

const (
	outputFormatJSON = "json"
	outputFormatYAML = "yaml"
)

// pageCmd represents the page command.
var pageCmd = &cobra.Command{
	Use:   "page [files...]",
	Short: "Resolve overlapping layout clusters in page files",
	Long: `Resolve overlapping layout clusters in one or more page cluster files.

Each input file is a JSON document with a "clusters" array as produced by a
layout analysis stage. Overlapping clusters are merged into survivors and the
resolved pages are printed or written to a file.

Examples:
  declutter page input.json
  declutter page *.json --format yaml
  declutter page input.json --output resolved.json --overlay-dir out/`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files provided")
		}

		cfg := GetConfig()

		format := cfg.Output.Format
		if cmd.Flags().Changed("format") {
			format, _ = cmd.Flags().GetString("format")
		}

		outputFile := cfg.Output.File
		if cmd.Flags().Changed("output") {
			outputFile, _ = cmd.Flags().GetString("output")
		}

		overlayDir := cfg.Output.OverlayDir
		if cmd.Flags().Changed("overlay-dir") {
			overlayDir, _ = cmd.Flags().GetString("overlay-dir")
		}

		overlayCells := cfg.Output.OverlayCellBoxes
		if cmd.Flags().Changed("overlay-cells") {
			overlayCells, _ = cmd.Flags().GetBool("overlay-cells")
		}

		overlayBackground, _ := cmd.Flags().GetString("overlay-background")
		overlayColor, _ := cmd.Flags().GetString("overlay-color")

		validFormats := []string{outputFormatJSON, outputFormatYAML}
		isValidFormat := false
		for _, f := range validFormats {
			if format == f {
				isValidFormat = true
				break
			}
		}
		if !isValidFormat {
			return fmt.Errorf("invalid output format: %s (must be one of: %s)", format, strings.Join(validFormats, ", "))
		}

		style := render.DefaultStyle()
		if overlayColor != "" {
			col := render.ParseHexColor(overlayColor)
			if col == nil {
				return fmt.Errorf("invalid overlay color: %s (expected hex like #FF0000)", overlayColor)
			}
			style.Regular = col
			style.Picture = col
			style.Wrapper = col
		}

		var background image.Image
		if overlayBackground != "" {
			var err error
			background, err = render.LoadBackground(overlayBackground)
			if err != nil {
				return err
			}
		}

		resolver := layout.NewResolver(cfg.Resolver.ResolverOptions())

		var output strings.Builder
		for _, path := range args {
			page, err := batch.LoadPage(path)
			if err != nil {
				return err
			}

			resolved := resolver.ProcessPage(page)

			if overlayDir != "" {
				var ov image.Image
				if background != nil {
					ov = render.OverlayOn(background, resolver, resolved, style, overlayCells)
				} else if drawn := render.Overlay(resolver, resolved, style, overlayCells); drawn != nil {
					ov = drawn
				}
				if ov != nil {
					if _, err := render.Save(ov, overlayDir, path); err != nil {
						return fmt.Errorf("failed to save overlay for %s: %w", path, err)
					}
				}
			}

			formatted, err := batch.FormatPage(&resolved, format)
			if err != nil {
				return err
			}
			output.WriteString(formatted)
		}

		if outputFile != "" {
			if err := os.WriteFile(outputFile, []byte(output.String()), 0o600); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}

		_, err := fmt.Fprint(cmd.OutOrStdout(), output.String())
		return err
	},
}

func init() {
	rootCmd.AddCommand(pageCmd)
	pageCmd.Flags().StringP("format", "f", "json", "output format (json, yaml)")
	pageCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	pageCmd.Flags().String("overlay-dir", "", "directory to save debug overlay images")
	pageCmd.Flags().Bool("overlay-cells", false, "draw text cell boxes in overlays")
	pageCmd.Flags().String("overlay-background", "", "page raster image to draw overlays on (PNG, JPEG, BMP, TIFF)")
	pageCmd.Flags().String("overlay-color", "", "cluster stroke color for overlays (hex, e.g. #FF0000)")
}
