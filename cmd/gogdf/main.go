package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gogdf/internal/config"
	"github.com/philipparndt/gogdf/internal/logging"
	"github.com/philipparndt/gogdf/pkg/gdf"
	"github.com/philipparndt/gogdf/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	cfg    = config.Default()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "gogdf",
	Short: "Inspect, validate and convert WAMIT GDF panel files",
	Long: `gogdf reads WAMIT Geometric Data Files (.gdf), the panel description of a
body surface used by WAMIT, and checks them the way WAMIT does: coincident
vertices, minimum panel area, free-surface panels, intersecting sides and
reflex angles. It can also summarise the panels and convert to and from STL.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default .gogdf.yaml or .gogdf.toml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console or json")
}

// setup loads the configuration and builds the logger before any command runs
func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.Discover(wd)
		}
	}

	cfg = config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = logFormat
	}

	l, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	logger = l
	if path != "" {
		logger.Debug("configuration loaded", zap.String("file", path))
	}
	return nil
}

// loadModel parses filename with the configured thresholds. Warnings are
// logged; errors make the model unusable and are returned.
func loadModel(filename string) (*gdf.Model, gdf.Diagnostics, error) {
	model, diags, err := gdf.ParseFile(filename, cfg.ParserOptions(logger)...)
	if err != nil {
		return nil, nil, err
	}
	for _, d := range diags.Warnings() {
		logger.Warn(d.Message,
			zap.String("file", filename),
			zap.Int("line", d.Line),
			zap.String("code", string(d.Code)))
	}
	if model == nil {
		return nil, diags, fmt.Errorf("%s: %w", filename, diags.Err())
	}
	return model, diags, nil
}

func main() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
