// Package config provides configuration loading for the declutter CLI and
// server. Configuration is merged from defaults, an optional config file,
// environment variables, and command-line flags, in increasing precedence.
package config

import (
	"fmt"

	"github.com/MeKo-Tech/declutter/internal/layout"
)

// Config represents the complete configuration for the declutter application.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Overlap-resolution thresholds
	Resolver ResolverConfig `mapstructure:"resolver" yaml:"resolver" json:"resolver"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Batch processing configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// ResolverConfig contains the overlap-resolution thresholds and label sets.
// Zero values mean "use the stage default".
type ResolverConfig struct {
	OverlapThreshold                float64  `mapstructure:"overlap_threshold" yaml:"overlap_threshold" json:"overlap_threshold"`
	ContainmentThreshold            float64  `mapstructure:"containment_threshold" yaml:"containment_threshold" json:"containment_threshold"`
	RegularAreaThreshold            float64  `mapstructure:"regular_area_threshold" yaml:"regular_area_threshold" json:"regular_area_threshold"`
	RegularConfThreshold            float64  `mapstructure:"regular_conf_threshold" yaml:"regular_conf_threshold" json:"regular_conf_threshold"`
	PictureAreaThreshold            float64  `mapstructure:"picture_area_threshold" yaml:"picture_area_threshold" json:"picture_area_threshold"`
	PictureConfThreshold            float64  `mapstructure:"picture_conf_threshold" yaml:"picture_conf_threshold" json:"picture_conf_threshold"`
	WrapperAreaThreshold            float64  `mapstructure:"wrapper_area_threshold" yaml:"wrapper_area_threshold" json:"wrapper_area_threshold"`
	WrapperConfThreshold            float64  `mapstructure:"wrapper_conf_threshold" yaml:"wrapper_conf_threshold" json:"wrapper_conf_threshold"`
	ListItemAreaSimilarityThreshold float64  `mapstructure:"list_item_area_similarity_threshold" yaml:"list_item_area_similarity_threshold" json:"list_item_area_similarity_threshold"`
	CodeContainmentThreshold        float64  `mapstructure:"code_containment_threshold" yaml:"code_containment_threshold" json:"code_containment_threshold"`
	WrapperLabels                   []string `mapstructure:"wrapper_labels" yaml:"wrapper_labels" json:"wrapper_labels"`
	PictureLabels                   []string `mapstructure:"picture_labels" yaml:"picture_labels" json:"picture_labels"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format           string `mapstructure:"format" yaml:"format" json:"format"`
	File             string `mapstructure:"file" yaml:"file" json:"file"`
	OverlayDir       string `mapstructure:"overlay_dir" yaml:"overlay_dir" json:"overlay_dir"`
	OverlayCellBoxes bool   `mapstructure:"overlay_cell_boxes" yaml:"overlay_cell_boxes" json:"overlay_cell_boxes"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host       string `mapstructure:"host" yaml:"host" json:"host"`
	Port       int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxBodyMB  int64  `mapstructure:"max_body_mb" yaml:"max_body_mb" json:"max_body_mb"`
	TimeoutSec int    `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers         int      `mapstructure:"workers" yaml:"workers" json:"workers"`
	Recursive       bool     `mapstructure:"recursive" yaml:"recursive" json:"recursive"`
	IncludePatterns []string `mapstructure:"include" yaml:"include" json:"include"`
	ExcludePatterns []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`
	Quiet           bool     `mapstructure:"quiet" yaml:"quiet" json:"quiet"`
	ShowStats       bool     `mapstructure:"stats" yaml:"stats" json:"stats"`
}

// ResolverOptions converts the resolver section into layout options,
// substituting stage defaults for unset values.
func (c *ResolverConfig) ResolverOptions() layout.Options {
	opts := layout.DefaultOptions()
	if c.OverlapThreshold > 0 {
		opts.OverlapThreshold = c.OverlapThreshold
	}
	if c.ContainmentThreshold > 0 {
		opts.ContainmentThreshold = c.ContainmentThreshold
	}
	if c.RegularAreaThreshold > 0 {
		opts.RegularAreaThreshold = c.RegularAreaThreshold
	}
	if c.RegularConfThreshold > 0 {
		opts.RegularConfThreshold = c.RegularConfThreshold
	}
	if c.PictureAreaThreshold > 0 {
		opts.PictureAreaThreshold = c.PictureAreaThreshold
	}
	if c.PictureConfThreshold > 0 {
		opts.PictureConfThreshold = c.PictureConfThreshold
	}
	if c.WrapperAreaThreshold > 0 {
		opts.WrapperAreaThreshold = c.WrapperAreaThreshold
	}
	if c.WrapperConfThreshold > 0 {
		opts.WrapperConfThreshold = c.WrapperConfThreshold
	}
	if c.ListItemAreaSimilarityThreshold > 0 {
		opts.ListItemAreaSimilarityThreshold = c.ListItemAreaSimilarityThreshold
	}
	if c.CodeContainmentThreshold > 0 {
		opts.CodeContainmentThreshold = c.CodeContainmentThreshold
	}
	if len(c.WrapperLabels) > 0 {
		opts.WrapperLabels = c.WrapperLabels
	}
	if len(c.PictureLabels) > 0 {
		opts.PictureLabels = c.PictureLabels
	}
	return opts
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}

	if err := c.Resolver.validate(); err != nil {
		return err
	}

	switch c.Output.Format {
	case "", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q (expected json or yaml)", c.Output.Format)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.MaxBodyMB < 0 {
		return fmt.Errorf("invalid max_body_mb %d", c.Server.MaxBodyMB)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("invalid batch workers %d", c.Batch.Workers)
	}
	return nil
}

func (c *ResolverConfig) validate() error {
	unit := map[string]float64{
		"overlap_threshold":          c.OverlapThreshold,
		"containment_threshold":      c.ContainmentThreshold,
		"regular_conf_threshold":     c.RegularConfThreshold,
		"picture_conf_threshold":     c.PictureConfThreshold,
		"wrapper_conf_threshold":     c.WrapperConfThreshold,
		"code_containment_threshold": c.CodeContainmentThreshold,
	}
	for name, v := range unit {
		if v < 0 || v > 1 {
			return fmt.Errorf("resolver.%s must be within [0,1], got %v", name, v)
		}
	}
	nonNegative := map[string]float64{
		"regular_area_threshold":              c.RegularAreaThreshold,
		"picture_area_threshold":              c.PictureAreaThreshold,
		"wrapper_area_threshold":              c.WrapperAreaThreshold,
		"list_item_area_similarity_threshold": c.ListItemAreaSimilarityThreshold,
	}
	for name, v := range nonNegative {
		if v < 0 {
			return fmt.Errorf("resolver.%s must not be negative, got %v", name, v)
		}
	}
	return nil
}
