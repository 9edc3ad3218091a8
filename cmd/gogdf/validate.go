package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/philipparndt/gogdf/pkg/gdf"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// errValidationFailed is returned when a file has errors, or warnings in strict mode
var errValidationFailed = errors.New("validation failed")

var (
	validateStrict   bool
	validateSeverity = gdf.SeverityError
)

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check GDF files and report every diagnostic",
	Long: `Parse each file and print every warning and error with its line number.
The command fails when any file has errors, or warnings when --strict is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

// severityValue adapts gdf.Severity to a pflag.Value
type severityValue struct {
	target *gdf.Severity
}

var _ pflag.Value = severityValue{}

func (s severityValue) String() string {
	if s.target == nil {
		return gdf.SeverityError.String()
	}
	return s.target.String()
}

func (s severityValue) Set(value string) error {
	return s.target.UnmarshalText([]byte(value))
}

func (s severityValue) Type() string {
	return "severity"
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Fail on warnings as well as errors")
	validateCmd.Flags().Var(severityValue{&validateSeverity}, "self-intersection", "Severity of intersecting panel sides: error or warning")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("self-intersection") {
		cfg.Validation.SelfIntersection = validateSeverity
	}
	strict := validateStrict || cfg.Validation.Strict

	out := cmd.OutOrStdout()
	failed := 0
	for _, filename := range args {
		diags, err := validateFile(out, filename)
		if err != nil {
			return err
		}
		if diags.HasErrors() || (strict && len(diags) > 0) {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", errValidationFailed, failed, len(args))
	}
	return nil
}

// validateFile parses filename and prints its diagnostics followed by a
// one-line summary. The returned error is for I/O failures only.
func validateFile(out io.Writer, filename string) (gdf.Diagnostics, error) {
	model, diags, err := gdf.ParseFile(filename, cfg.ParserOptions(logger)...)
	if err != nil {
		return nil, err
	}

	for _, d := range diags {
		fmt.Fprintf(out, "%s: %s\n", filename, d)
	}

	errorCount := len(diags.Errors())
	warningCount := len(diags) - errorCount
	if model == nil {
		fmt.Fprintf(out, "%s: invalid (%d errors, %d warnings)\n", filename, errorCount, warningCount)
	} else {
		fmt.Fprintf(out, "%s: ok, %d panels (%d warnings)\n", filename, model.PanelCount(), warningCount)
	}
	return diags, nil
}
