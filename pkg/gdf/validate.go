package gdf

import "fmt"

// validator applies the per-panel rules. Tolerances scale with ULEN.
type validator struct {
	coincidence      float64
	minArea          float64
	freeSurface      float64
	selfIntersection Severity
}

func newValidator(opts Options, ulen float64) validator {
	return validator{
		coincidence:      ulen * opts.CoincidenceFactor,
		minArea:          ulen * ulen * opts.MinAreaFactor,
		freeSurface:      opts.FreeSurfaceToleranceFor(ulen),
		selfIntersection: opts.SelfIntersectionSeverity,
	}
}

// validate returns the diagnostics for the panel at index. It never stops
// early on geometric problems so every rule gets a chance to report.
func (v validator) validate(index int, panel Panel) []Diagnostic {
	var diags []Diagnostic
	report := func(severity Severity, code Code, msg string) {
		diags = append(diags, Diagnostic{
			Severity: severity,
			Code:     code,
			Line:     panel.Line,
			Panel:    index,
			Message:  msg,
		})
	}

	if panel.Kind == KindCollapsed {
		report(SeverityError, CodeCollapsedPanel,
			"more than one pair of adjacent vertices coincide, panel is neither a quadrilateral nor a triangle")
	}

	area := panel.Area()
	if area < v.minArea {
		report(SeverityError, CodePanelArea,
			fmt.Sprintf("panel area %g is below the minimum %g", area, v.minArea))
	}

	switch fs := panel.FreeSurfaceVertexCount(v.freeSurface); fs {
	case 4:
		report(SeverityWarning, CodeFreeSurfacePanel,
			"all four vertices lie on the free surface (zero draft)")
	case 3:
		if !v.hasCoincidentSideOnFreeSurface(panel) {
			report(SeverityError, CodeFreeSurfaceTriangle,
				"three vertices lie on the free surface without a coincident pair")
		}
	}

	if panel.HasSelfIntersection() {
		report(v.selfIntersection, CodeSelfIntersection, "panel has two intersecting sides")
	} else if !panel.IsConvex() {
		report(SeverityWarning, CodeReflexAngle, "panel has an interior angle above 180 degrees")
	}

	return diags
}

// hasCoincidentSideOnFreeSurface allows a triangle with one side in the free
// surface: its three free-surface vertices include a coincident pair.
func (v validator) hasCoincidentSideOnFreeSurface(panel Panel) bool {
	for i, coincident := range panel.CoincidentSides {
		if !coincident {
			continue
		}
		a, b := panel.Side(i)
		if onFreeSurface(a, v.freeSurface) && onFreeSurface(b, v.freeSurface) {
			return true
		}
	}
	return false
}
