// Package config loads gogdf settings from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gogdf/pkg/gdf"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Format represents the configuration file format
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// DefaultFileNames are looked up by Discover, in order
var DefaultFileNames = []string{".gogdf.yaml", ".gogdf.yml", ".gogdf.toml"}

// Config is the complete gogdf configuration
type Config struct {
	Validation ValidationConfig `yaml:"validation" toml:"validation"`
	Output     OutputConfig     `yaml:"output" toml:"output"`
	Log        LogConfig        `yaml:"log" toml:"log"`
}

// ValidationConfig holds the GDF parser thresholds
type ValidationConfig struct {
	CoincidenceFactor    float64      `yaml:"coincidence_factor" toml:"coincidence_factor"`
	MinAreaFactor        float64      `yaml:"min_area_factor" toml:"min_area_factor"`
	MinULEN              float64      `yaml:"min_ulen" toml:"min_ulen"`
	FreeSurfaceTolerance float64      `yaml:"free_surface_tolerance" toml:"free_surface_tolerance"`
	HeaderMaxLength      int          `yaml:"header_max_length" toml:"header_max_length"`
	SelfIntersection     gdf.Severity `yaml:"self_intersection" toml:"self_intersection"`
	// Strict makes the validate command fail on warnings too.
	Strict bool `yaml:"strict" toml:"strict"`
}

// OutputConfig controls GDF files written by convert
type OutputConfig struct {
	Precision int  `yaml:"precision" toml:"precision"`
	Annotate  bool `yaml:"annotate" toml:"annotate"`
}

// LogConfig selects the zap level and encoder
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Default returns the built-in configuration
func Default() *Config {
	opts := gdf.DefaultOptions()
	return &Config{
		Validation: ValidationConfig{
			CoincidenceFactor:    opts.CoincidenceFactor,
			MinAreaFactor:        opts.MinAreaFactor,
			MinULEN:              opts.MinULEN,
			FreeSurfaceTolerance: opts.FreeSurfaceTolerance,
			HeaderMaxLength:      opts.HeaderMaxLength,
			SelfIntersection:     opts.SelfIntersectionSeverity,
		},
		Output: OutputConfig{
			Precision: gdf.DefaultWriteOptions().Precision,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load reads filePath over the defaults. Keys missing from the file keep
// their default values.
func Load(filePath string) (*Config, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := parseContent(content, detectFormat(filePath), cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return cfg, nil
}

// Discover returns the first default config file present in dir, or "".
func Discover(dir string) string {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// detectFormat determines the configuration format from file extension
func detectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func parseContent(content []byte, format Format, cfg *Config) error {
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return fmt.Errorf("YAML parse error: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return fmt.Errorf("TOML parse error: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}

// Validate checks that every threshold is usable
func (c *Config) Validate() error {
	v := c.Validation
	switch {
	case v.CoincidenceFactor <= 0:
		return fmt.Errorf("%w: validation.coincidence_factor must be positive", ErrInvalidConfig)
	case v.MinAreaFactor <= 0:
		return fmt.Errorf("%w: validation.min_area_factor must be positive", ErrInvalidConfig)
	case v.MinULEN < 0:
		return fmt.Errorf("%w: validation.min_ulen must not be negative", ErrInvalidConfig)
	case v.FreeSurfaceTolerance < 0:
		return fmt.Errorf("%w: validation.free_surface_tolerance must not be negative", ErrInvalidConfig)
	case v.HeaderMaxLength < 0:
		return fmt.Errorf("%w: validation.header_max_length must not be negative", ErrInvalidConfig)
	case c.Output.Precision < -1:
		return fmt.Errorf("%w: output.precision must be -1 or more", ErrInvalidConfig)
	}
	return nil
}

// ParserOptions maps the validation settings onto gdf parser options
func (c *Config) ParserOptions(log *zap.Logger) []gdf.Option {
	v := c.Validation
	return []gdf.Option{gdf.WithOptions(gdf.Options{
		CoincidenceFactor:        v.CoincidenceFactor,
		MinAreaFactor:            v.MinAreaFactor,
		MinULEN:                  v.MinULEN,
		FreeSurfaceTolerance:     v.FreeSurfaceTolerance,
		HeaderMaxLength:          v.HeaderMaxLength,
		SelfIntersectionSeverity: v.SelfIntersection,
		Logger:                   log,
	})}
}

// WriteOptions returns the GDF writer settings
func (c *Config) WriteOptions() gdf.WriteOptions {
	return gdf.WriteOptions{
		Annotate:  c.Output.Annotate,
		Precision: c.Output.Precision,
	}
}
