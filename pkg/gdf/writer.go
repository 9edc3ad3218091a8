package gdf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteOptions controls GDF output formatting.
type WriteOptions struct {
	// Annotate appends the ULEN GRAV, ISX ISY and NPAN labels after the values.
	Annotate bool
	// Precision is the number of decimals per coordinate; -1 writes the
	// shortest representation that parses back to the same value.
	Precision int
}

// DefaultWriteOptions writes exact coordinates without labels
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{Precision: -1}
}

// Write serialises m in GDF format with one panel per line.
func Write(w io.Writer, m *Model, opts WriteOptions) error {
	bw := bufio.NewWriter(w)

	label := func(text string) string {
		if opts.Annotate {
			return " " + text
		}
		return ""
	}

	fmt.Fprintln(bw, m.Header)
	fmt.Fprintf(bw, "%s %s%s\n", formatFloat(m.ULEN, -1), formatFloat(m.GRAV, -1), label("ULEN GRAV"))
	fmt.Fprintf(bw, "%d %d%s\n", flag(m.SymmetryX), flag(m.SymmetryY), label("ISX ISY"))
	fmt.Fprintf(bw, "%d%s\n", m.DeclaredPanelCount, label("NPAN"))

	coords := make([]string, 0, coordinatesPerPanel)
	for _, panel := range m.Panels {
		coords = coords[:0]
		for _, v := range panel.Vertices {
			coords = append(coords,
				formatFloat(v.X, opts.Precision),
				formatFloat(v.Y, opts.Precision),
				formatFloat(v.Z, opts.Precision))
		}
		fmt.Fprintln(bw, strings.Join(coords, " "))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write GDF data: %w", err)
	}
	return nil
}

func formatFloat(v float64, precision int) string {
	if precision < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
