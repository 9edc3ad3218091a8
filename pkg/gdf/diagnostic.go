package gdf

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGDF is wrapped by Diagnostics.Err when parsing produced errors.
var ErrInvalidGDF = errors.New("invalid GDF")

// NoPanel marks a diagnostic that is not tied to a panel.
const NoPanel = -1

// Severity classifies a diagnostic
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns "warning" or "error"
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Severity) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "warning", "warn":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		return fmt.Errorf("unknown severity %q (expected error or warning)", string(text))
	}
	return nil
}

// Code identifies the rule that produced a diagnostic.
type Code string

const (
	CodeEmptyInput          Code = "empty-input"
	CodeHeaderTruncated     Code = "header-truncated"
	CodeScaleGravity        Code = "scale-gravity"
	CodeULEN                Code = "ulen-range"
	CodeGRAV                Code = "grav-range"
	CodeSymmetry            Code = "symmetry"
	CodePanelCount          Code = "panel-count"
	CodePanelCountMismatch  Code = "panel-count-mismatch"
	CodePanelToken          Code = "panel-token"
	CodeTruncatedPanel      Code = "truncated-panel"
	CodePanelArea           Code = "panel-area"
	CodeCollapsedPanel      Code = "collapsed-panel"
	CodeFreeSurfaceTriangle Code = "free-surface-triangle"
	CodeFreeSurfacePanel    Code = "free-surface-panel"
	CodeSelfIntersection    Code = "self-intersection"
	CodeReflexAngle         Code = "reflex-angle"
)

// Diagnostic is a single problem found while parsing. Line is 0 when the
// problem has no source line; Panel is NoPanel when it concerns the file
// rather than one panel.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Line     int
	Panel    int
	Message  string
}

// String renders the diagnostic as "line 7: error [panel-area] panel #2: ...".
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", d.Line)
	}
	fmt.Fprintf(&b, "%s [%s] ", d.Severity, d.Code)
	if d.Panel != NoPanel {
		fmt.Fprintf(&b, "panel #%d: ", d.Panel)
	}
	b.WriteString(d.Message)
	return b.String()
}

// Diagnostics is the ordered list of problems reported by a parse.
type Diagnostics []Diagnostic

// HasErrors reports whether any diagnostic has error severity
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns the error-severity diagnostics in order
func (ds Diagnostics) Errors() Diagnostics {
	return ds.filter(func(d Diagnostic) bool { return d.Severity == SeverityError })
}

// Warnings returns the warning-severity diagnostics in order
func (ds Diagnostics) Warnings() Diagnostics {
	return ds.filter(func(d Diagnostic) bool { return d.Severity == SeverityWarning })
}

// ForPanel returns the diagnostics attached to the panel at index
func (ds Diagnostics) ForPanel(index int) Diagnostics {
	return ds.filter(func(d Diagnostic) bool { return d.Panel == index })
}

// WithCode returns the diagnostics produced by the given rule
func (ds Diagnostics) WithCode(code Code) Diagnostics {
	return ds.filter(func(d Diagnostic) bool { return d.Code == code })
}

// Err returns nil if there are no errors, otherwise an error wrapping
// ErrInvalidGDF that lists every error diagnostic.
func (ds Diagnostics) Err() error {
	errs := ds.Errors()
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, d := range errs {
		msgs[i] = d.String()
	}
	return fmt.Errorf("%w: %s", ErrInvalidGDF, strings.Join(msgs, "; "))
}

func (ds Diagnostics) filter(keep func(Diagnostic) bool) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}
