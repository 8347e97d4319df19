package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "declutter"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "DECLUTTER"
)

// Loader handles loading configuration from various sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader backed by the global viper
// instance, so cobra flag bindings take effect.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// NewLoaderWith creates a loader around a specific viper instance, used by
// tests to avoid global state.
func NewLoaderWith(v *viper.Viper) *Loader {
	return &Loader{v: v}
}

// Load loads configuration from files, environment variables, and defaults.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")

	l.addConfigPaths()
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return l.unmarshal()
}

// LoadWithFile loads configuration from a specific file path.
func (l *Loader) LoadWithFile(path string) (*Config, error) {
	l.v.SetConfigFile(path)

	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return l.unmarshal()
}

// GetViper returns the underlying viper instance.
func (l *Loader) GetViper() *viper.Viper {
	return l.v
}

func (l *Loader) unmarshal() (*Config, error) {
	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// addConfigPaths registers the config file search locations.
func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
		l.v.AddConfigPath(filepath.Join(home, ".config", "declutter"))
	}
	l.v.AddConfigPath("/etc/declutter")
}

// setupEnvironmentVariables configures DECLUTTER_* environment overrides.
func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()
}

// setDefaults seeds every known key with its default value.
func (l *Loader) setDefaults() {
	l.v.SetDefault("log_level", "info")
	l.v.SetDefault("verbose", false)

	l.v.SetDefault("resolver.overlap_threshold", 0.8)
	l.v.SetDefault("resolver.containment_threshold", 0.8)
	l.v.SetDefault("resolver.regular_area_threshold", 1.3)
	l.v.SetDefault("resolver.regular_conf_threshold", 0.05)
	l.v.SetDefault("resolver.picture_area_threshold", 2.0)
	l.v.SetDefault("resolver.picture_conf_threshold", 0.3)
	l.v.SetDefault("resolver.wrapper_area_threshold", 2.0)
	l.v.SetDefault("resolver.wrapper_conf_threshold", 0.2)
	l.v.SetDefault("resolver.list_item_area_similarity_threshold", 0.2)
	l.v.SetDefault("resolver.code_containment_threshold", 0.8)
	l.v.SetDefault("resolver.wrapper_labels", []string{"form", "key_value_region", "table", "document_index"})
	l.v.SetDefault("resolver.picture_labels", []string{"picture"})

	l.v.SetDefault("output.format", "json")
	l.v.SetDefault("output.file", "")
	l.v.SetDefault("output.overlay_dir", "")
	l.v.SetDefault("output.overlay_cell_boxes", false)

	l.v.SetDefault("server.host", "localhost")
	l.v.SetDefault("server.port", 8080)
	l.v.SetDefault("server.cors_origin", "*")
	l.v.SetDefault("server.max_body_mb", 50)
	l.v.SetDefault("server.timeout", 30)

	l.v.SetDefault("batch.workers", 0)
	l.v.SetDefault("batch.recursive", false)
	l.v.SetDefault("batch.include", []string{})
	l.v.SetDefault("batch.exclude", []string{})
	l.v.SetDefault("batch.quiet", false)
	l.v.SetDefault("batch.stats", false)
}
