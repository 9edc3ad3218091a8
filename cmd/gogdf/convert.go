package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gogdf/pkg/convert"
	"github.com/philipparndt/gogdf/pkg/gdf"
	"github.com/philipparndt/gogdf/pkg/openscad"
	"github.com/philipparndt/gogdf/pkg/stl"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	convertBinary    bool
	convertULEN      float64
	convertGRAV      float64
	convertAnnotate  bool
	convertPrecision int
)

var convertCmd = &cobra.Command{
	Use:   "convert [input] [output]",
	Short: "Convert between GDF and STL",
	Long: `Convert a GDF file to STL or an STL file to GDF, chosen by file extension.

GDF to STL splits each quadrilateral panel into two triangles and keeps the
vertex order, so normals point into the fluid. Symmetry planes are reported
but not mirrored. STL to GDF writes each facet as a degenerate triangle panel.
OpenSCAD (.scad) hulls are rendered with the openscad binary first and then
converted like STL input.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolVar(&convertBinary, "binary", false, "Write binary STL instead of ASCII")
	convertCmd.Flags().Float64Var(&convertULEN, "ulen", 1.0, "Length scale written to the GDF file")
	convertCmd.Flags().Float64Var(&convertGRAV, "grav", 9.80665, "Gravity written to the GDF file")
	convertCmd.Flags().BoolVar(&convertAnnotate, "annotate", false, "Append ULEN GRAV, ISX ISY and NPAN labels")
	convertCmd.Flags().IntVar(&convertPrecision, "precision", -1, "Digits after the decimal point (-1 for shortest exact form)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]

	switch {
	case hasExt(input, ".gdf") && hasExt(output, ".stl"):
		return gdfToSTL(cmd.OutOrStdout(), input, output)
	case hasExt(input, ".stl") && hasExt(output, ".gdf"):
		return stlToGDF(cmd.OutOrStdout(), input, output, gdfWriteOptions(cmd))
	case hasExt(input, ".scad") && hasExt(output, ".gdf"):
		rendered, cleanup, err := renderSCAD(cmd.Context(), input)
		if err != nil {
			return err
		}
		defer cleanup()
		return stlToGDF(cmd.OutOrStdout(), rendered, output, gdfWriteOptions(cmd))
	default:
		return fmt.Errorf("unsupported conversion %s -> %s (expected .gdf -> .stl, .stl -> .gdf or .scad -> .gdf)",
			filepath.Ext(input), filepath.Ext(output))
	}
}

func gdfWriteOptions(cmd *cobra.Command) gdf.WriteOptions {
	opts := cfg.WriteOptions()
	if cmd.Flags().Changed("annotate") {
		opts.Annotate = convertAnnotate
	}
	if cmd.Flags().Changed("precision") {
		opts.Precision = convertPrecision
	}
	return opts
}

// renderSCAD renders an OpenSCAD file into a temporary STL file
func renderSCAD(ctx context.Context, input string) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "gogdf-scad-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	absInput, err := filepath.Abs(input)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to resolve path %s: %w", input, err)
	}

	output := filepath.Join(tmpDir, strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))+".stl")
	renderer := openscad.NewRenderer(filepath.Dir(absInput), logger)
	deps, err := renderer.ResolveDependencies(absInput)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	logger.Debug("rendering OpenSCAD hull", zap.Strings("files", deps))

	if err := renderer.RenderToSTL(ctx, absInput, output); err != nil {
		cleanup()
		return "", nil, err
	}
	return output, cleanup, nil
}

func gdfToSTL(out io.Writer, input, output string) error {
	model, _, err := loadModel(input)
	if err != nil {
		return err
	}

	mesh := convert.ToSTL(model)
	write := stl.WriteASCII
	if convertBinary {
		write = stl.WriteBinary
	}
	if err := writeFile(output, func(w io.Writer) error { return write(w, mesh) }); err != nil {
		return err
	}

	logger.Info("converted GDF to STL",
		zap.String("input", input),
		zap.String("output", output),
		zap.Int("panels", model.PanelCount()),
		zap.Int("triangles", mesh.TriangleCount()))

	fmt.Fprintf(out, "Wrote %d triangles from %d panels to %s\n", mesh.TriangleCount(), model.PanelCount(), output)
	if planes := model.SymmetryPlanes(); planes > 0 {
		fmt.Fprintf(out, "Note: %d symmetry plane(s) declared; only the panels in the file were written\n", planes)
	}
	return nil
}

func stlToGDF(out io.Writer, input, output string, opts gdf.WriteOptions) error {
	mesh, err := stl.Parse(input)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	model := convert.FromSTL(mesh, convertULEN, convertGRAV)
	if err := writeFile(output, func(w io.Writer) error { return gdf.Write(w, model, opts) }); err != nil {
		return err
	}

	logger.Info("converted STL to GDF",
		zap.String("input", input),
		zap.String("output", output),
		zap.Int("panels", model.PanelCount()))

	fmt.Fprintf(out, "Wrote %d panels from %d triangles to %s\n", model.PanelCount(), mesh.TriangleCount(), output)
	return nil
}

func writeFile(filename string, write func(io.Writer) error) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()
	return write(f)
}

func hasExt(filename, ext string) bool {
	return strings.EqualFold(filepath.Ext(filename), ext)
}
