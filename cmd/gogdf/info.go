package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/philipparndt/gogdf/pkg/analysis"
	"github.com/philipparndt/gogdf/pkg/gdf"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var infoFormat string

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a GDF file",
	Long:  "Show the header, length scale, gravity, symmetry planes, panel counts, wetted area, bounding box and side length statistics.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().StringVarP(&infoFormat, "format", "f", "text", "Output format: text or yaml")
}

// infoSummary is the yaml form of the info output
type infoSummary struct {
	File              string     `yaml:"file"`
	Header            string     `yaml:"header"`
	ULEN              float64    `yaml:"ulen"`
	GRAV              float64    `yaml:"grav"`
	SymmetryX         bool       `yaml:"symmetry_x"`
	SymmetryY         bool       `yaml:"symmetry_y"`
	DeclaredPanels    int        `yaml:"declared_panels"`
	Panels            int        `yaml:"panels"`
	Quads             int        `yaml:"quads"`
	Triangles         int        `yaml:"triangles"`
	FreeSurfacePanels int        `yaml:"free_surface_panels"`
	FullBodyPanels    int        `yaml:"full_body_panels"`
	WettedArea        float64    `yaml:"wetted_area"`
	BoundingBoxMin    [3]float64 `yaml:"bbox_min,flow"`
	BoundingBoxMax    [3]float64 `yaml:"bbox_max,flow"`
	MinEdgeLength     float64    `yaml:"min_edge_length"`
	MaxEdgeLength     float64    `yaml:"max_edge_length"`
	Warnings          int        `yaml:"warnings"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	model, diags, err := loadModel(filename)
	if err != nil {
		return err
	}
	result := analysis.AnalyzeModel(model, cfg.ParserOptions(logger)...)

	out := cmd.OutOrStdout()
	switch strings.ToLower(infoFormat) {
	case "yaml":
		return writeInfoYAML(out, filename, model, result, len(diags.Warnings()))
	case "text":
		writeInfoText(out, filename, model, result)
		return nil
	default:
		return fmt.Errorf("unknown format %q (expected text or yaml)", infoFormat)
	}
}

func writeInfoYAML(out io.Writer, filename string, model *gdf.Model, result *analysis.MeasurementResult, warnings int) error {
	bbox := result.BoundingBox
	summary := infoSummary{
		File:              filename,
		Header:            model.Header,
		ULEN:              model.ULEN,
		GRAV:              model.GRAV,
		SymmetryX:         model.SymmetryX,
		SymmetryY:         model.SymmetryY,
		DeclaredPanels:    result.DeclaredPanelCount,
		Panels:            result.PanelCount,
		Quads:             result.QuadCount,
		Triangles:         result.TriangleCount,
		FreeSurfacePanels: result.FreeSurfacePanels,
		FullBodyPanels:    result.FullBodyPanelCount,
		WettedArea:        result.WettedArea,
		MinEdgeLength:     result.MinEdgeLength,
		MaxEdgeLength:     result.MaxEdgeLength,
		Warnings:          warnings,
	}
	if !bbox.IsEmpty() {
		summary.BoundingBoxMin = [3]float64{bbox.Min.X, bbox.Min.Y, bbox.Min.Z}
		summary.BoundingBoxMax = [3]float64{bbox.Max.X, bbox.Max.Y, bbox.Max.Z}
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return enc.Close()
}

func writeInfoText(out io.Writer, filename string, model *gdf.Model, result *analysis.MeasurementResult) {
	fmt.Fprintln(out, "GDF File Information")
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "File: %s\n", filename)
	fmt.Fprintf(out, "Header: %s\n\n", model.Header)

	fmt.Fprintln(out, "Parameters:")
	fmt.Fprintf(out, "  ULEN: %g\n", model.ULEN)
	fmt.Fprintf(out, "  GRAV: %g\n", model.GRAV)
	fmt.Fprintf(out, "  x=0 symmetry (ISX): %s\n", yesNo(model.SymmetryX))
	fmt.Fprintf(out, "  y=0 symmetry (ISY): %s\n\n", yesNo(model.SymmetryY))

	fmt.Fprintln(out, "Panels:")
	fmt.Fprintf(out, "  Declared (NPAN): %d\n", result.DeclaredPanelCount)
	fmt.Fprintf(out, "  Read: %d\n", result.PanelCount)
	fmt.Fprintf(out, "  Quads: %d\n", result.QuadCount)
	fmt.Fprintf(out, "  Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(out, "  On free surface: %d\n", result.FreeSurfacePanels)
	if model.SymmetryPlanes() > 0 {
		fmt.Fprintf(out, "  Full body equivalent: %d\n", result.FullBodyPanelCount)
	}
	fmt.Fprintf(out, "  Wetted area: %s\n\n", analysis.FormatMeasurement(result.WettedArea, "square units"))

	if result.PanelCount == 0 {
		return
	}

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", result.BoundingBox.Min)
	fmt.Fprintf(out, "  Max: %s\n", result.BoundingBox.Max)
	fmt.Fprintf(out, "  Center: %s\n", result.BoundingBox.Center())
	fmt.Fprintf(out, "  Size: %s\n\n", result.Dimensions)

	fmt.Fprintln(out, "Panel Sides:")
	fmt.Fprintf(out, "  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Fprintf(out, "  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Fprintf(out, "  Average: %.6f units\n", result.AvgEdgeLength)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
