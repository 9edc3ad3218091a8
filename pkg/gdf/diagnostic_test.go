package gdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Severity: SeverityError, Code: CodePanelArea, Line: 7, Panel: 2, Message: "too small"}
	assert.Equal(t, "line 7: error [panel-area] panel #2: too small", d.String())

	d = Diagnostic{Severity: SeverityWarning, Code: CodePanelCountMismatch, Panel: NoPanel, Message: "mismatch"}
	assert.Equal(t, "warning [panel-count-mismatch] mismatch", d.String())
}

func TestDiagnosticsFilters(t *testing.T) {
	diags := Diagnostics{
		{Severity: SeverityWarning, Code: CodeHeaderTruncated, Line: 1, Panel: NoPanel},
		{Severity: SeverityError, Code: CodePanelArea, Line: 5, Panel: 0},
		{Severity: SeverityWarning, Code: CodeReflexAngle, Line: 6, Panel: 1},
		{Severity: SeverityError, Code: CodeSelfIntersection, Line: 6, Panel: 1},
	}

	assert.True(t, diags.HasErrors())
	assert.Len(t, diags.Errors(), 2)
	assert.Len(t, diags.Warnings(), 2)
	assert.Len(t, diags.ForPanel(1), 2)
	assert.Len(t, diags.WithCode(CodePanelArea), 1)

	err := diags.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidGDF)
	assert.Contains(t, err.Error(), "panel-area")
	assert.NotContains(t, err.Error(), "reflex-angle")

	assert.NoError(t, diags.Warnings().Err())
	assert.False(t, Diagnostics(nil).HasErrors())
}

func TestSeverityText(t *testing.T) {
	var s Severity
	require.NoError(t, s.UnmarshalText([]byte("Warning")))
	assert.Equal(t, SeverityWarning, s)
	require.NoError(t, s.UnmarshalText([]byte("error")))
	assert.Equal(t, SeverityError, s)
	assert.Error(t, s.UnmarshalText([]byte("fatal")))

	text, err := SeverityError.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "error", string(text))
}
