package main

import (
	"fmt"

	"github.com/philipparndt/gogdf/pkg/analysis"
	"github.com/spf13/cobra"
)

var (
	panelCount    int
	panelLargest  bool
	panelSmallest bool
)

var panelsCmd = &cobra.Command{
	Use:   "panels [file]",
	Short: "Analyze panels in a GDF file",
	Long:  "Display information about panels including kind, area, perimeter, centroid and source line.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPanels,
}

func init() {
	rootCmd.AddCommand(panelsCmd)

	panelsCmd.Flags().IntVarP(&panelCount, "count", "n", 10, "Number of panels to display")
	panelsCmd.Flags().BoolVarP(&panelLargest, "largest", "l", false, "Show largest panels by area")
	panelsCmd.Flags().BoolVarP(&panelSmallest, "smallest", "s", false, "Show smallest panels by area")
	panelsCmd.MarkFlagsMutuallyExclusive("largest", "smallest")
}

func runPanels(cmd *cobra.Command, args []string) error {
	model, _, err := loadModel(args[0])
	if err != nil {
		return err
	}
	result := analysis.AnalyzeModel(model, cfg.ParserOptions(logger)...)

	panels := result.Panels
	var title string
	switch {
	case panelLargest:
		panels = analysis.SortPanelsByArea(panels, true)
		title = fmt.Sprintf("Top %d Largest Panels", panelCount)
	case panelSmallest:
		panels = analysis.SortPanelsByArea(panels, false)
		title = fmt.Sprintf("Top %d Smallest Panels", panelCount)
	default:
		title = fmt.Sprintf("First %d Panels", panelCount)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "Total panels: %d\n", result.PanelCount)
	fmt.Fprintf(out, "Wetted area: %.6f square units\n", result.WettedArea)
	if result.PanelCount > 0 {
		fmt.Fprintf(out, "Min panel area: %.6f square units\n", result.MinPanelArea)
		fmt.Fprintf(out, "Max panel area: %.6f square units\n", result.MaxPanelArea)
		fmt.Fprintf(out, "Avg panel area: %.6f square units\n", result.WettedArea/float64(result.PanelCount))
	}
	fmt.Fprintln(out)

	n := min(max(panelCount, 0), len(panels))
	for _, p := range panels[:n] {
		fmt.Fprintf(out, "Panel #%d (line %d, %s):\n", p.Index, p.Line, p.Kind)
		fmt.Fprintf(out, "  Area: %.6f square units\n", p.Area)
		fmt.Fprintf(out, "  Perimeter: %.6f units\n", p.Perimeter)
		fmt.Fprintf(out, "  Centroid: %s\n", p.Centroid)
		for i, v := range model.Panels[p.Index].Vertices {
			fmt.Fprintf(out, "  Vertex %d: %s\n", i+1, v)
		}
		fmt.Fprintln(out)
	}
	return nil
}
