package gdf

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/philipparndt/gogdf/pkg/geometry"
	"go.uber.org/zap"
)

const (
	// coordinatesPerPanel is three coordinates for each of four vertices.
	coordinatesPerPanel = 12
	// maxPreallocatedPanels caps the capacity reserved from an untrusted NPAN.
	maxPreallocatedPanels = 1 << 16
)

// state is a section of the GDF grammar. Each state consumes one line,
// except statePanels which consumes the rest of the input.
type state int

const (
	stateHeader state = iota
	stateScaleGravity
	stateSymmetry
	statePanelCount
	statePanels
)

func (s state) String() string {
	switch s {
	case stateHeader:
		return "header"
	case stateScaleGravity:
		return "ulen-grav"
	case stateSymmetry:
		return "symmetry"
	case statePanelCount:
		return "panel-count"
	case statePanels:
		return "panels"
	default:
		return "unknown"
	}
}

// Parse reads GDF text and returns the validated model together with every
// diagnostic found. The model is nil if and only if a diagnostic has error
// severity. Malformed input never panics and is never reported as an error
// value; it only produces diagnostics.
func Parse(text string, opts ...Option) (*Model, Diagnostics) {
	p := newParser(opts)
	for line := range Lines(text) {
		if !p.consume(line) {
			break
		}
	}
	return p.finish()
}

// ParseReader is Parse over a stream. The returned error is only set when
// reading from r fails.
func ParseReader(r io.Reader, opts ...Option) (*Model, Diagnostics, error) {
	p := newParser(opts)
	for line, err := range ReadLines(r) {
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read GDF data at line %d: %w", line.Number, err)
		}
		if !p.consume(line) {
			break
		}
	}
	model, diags := p.finish()
	return model, diags, nil
}

// ParseFile opens filename and parses its contents
func ParseFile(filename string, opts ...Option) (*Model, Diagnostics, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file, opts...)
}

// parser accumulates a Model while walking the grammar states.
type parser struct {
	opts  Options
	log   *zap.Logger
	state state
	model Model
	diags Diagnostics
	check validator

	coords        []float64
	panelLine     int
	lastLine      int
	lastTokenLine int
	fatal         bool
}

func newParser(opts []Option) *parser {
	o := buildOptions(opts)
	return &parser{
		opts:   o,
		log:    o.Logger,
		state:  stateHeader,
		coords: make([]float64, 0, coordinatesPerPanel),
	}
}

// consume feeds one line to the current state. It returns false once a fatal
// error has been recorded.
func (p *parser) consume(line Line) bool {
	p.lastLine = line.Number

	if p.state == stateHeader {
		p.parseHeader(line)
		return true
	}

	// FORTRAN list-directed reads skip empty records
	if line.Blank() {
		return true
	}

	switch p.state {
	case stateScaleGravity:
		p.parseScaleGravity(line)
	case stateSymmetry:
		p.parseSymmetry(line)
	case statePanelCount:
		p.parsePanelCount(line)
	case statePanels:
		p.parsePanelTokens(line)
	}
	return !p.fatal
}

func (p *parser) advance(next state, line int) {
	p.log.Debug("GDF section complete",
		zap.Stringer("section", p.state),
		zap.Stringer("next", next),
		zap.Int("line", line))
	p.state = next
}

func (p *parser) parseHeader(line Line) {
	header := strings.TrimRightFunc(line.Text, unicode.IsSpace)
	if limit := p.opts.HeaderMaxLength; limit > 0 && utf8.RuneCountInString(header) > limit {
		header = string([]rune(header)[:limit])
		p.warn(CodeHeaderTruncated, line.Number, NoPanel,
			fmt.Sprintf("header longer than %d characters, truncated", limit))
	}
	p.model.Header = header
	p.advance(stateScaleGravity, line.Number)
}

func (p *parser) parseScaleGravity(line Line) {
	values := leadingNumbers(line.Tokens)
	if len(values) != 2 {
		p.fail(CodeScaleGravity, line.Number,
			fmt.Sprintf("expected 2 numeric values ULEN GRAV, found %d in %q", len(values), line.Text))
		return
	}
	ulen, grav := values[0], values[1]

	if ulen <= 0 || ulen <= p.opts.MinULEN {
		p.fail(CodeULEN, line.Number, fmt.Sprintf("ULEN must be greater than %g, got %g", max(p.opts.MinULEN, 0), ulen))
		return
	}
	if grav <= 0 {
		p.fail(CodeGRAV, line.Number, fmt.Sprintf("GRAV must be positive, got %g", grav))
		return
	}

	p.model.ULEN = ulen
	p.model.GRAV = grav
	p.check = newValidator(p.opts, ulen)
	p.advance(stateSymmetry, line.Number)
}

func (p *parser) parseSymmetry(line Line) {
	values, err := leadingIntegers(line.Tokens, 2)
	if err != nil {
		p.fail(CodeSymmetry, line.Number, fmt.Sprintf("invalid ISX ISY line %q: %v", line.Text, err))
		return
	}

	flags := [2]bool{}
	for i, name := range []string{"ISX", "ISY"} {
		switch values[i] {
		case 0:
		case 1:
			flags[i] = true
		default:
			p.fail(CodeSymmetry, line.Number, fmt.Sprintf("%s must be 0 or 1, got %d", name, values[i]))
			return
		}
	}

	p.model.SymmetryX, p.model.SymmetryY = flags[0], flags[1]
	p.advance(statePanelCount, line.Number)
}

func (p *parser) parsePanelCount(line Line) {
	values, err := leadingIntegers(line.Tokens, 1)
	if err != nil {
		p.fail(CodePanelCount, line.Number, fmt.Sprintf("invalid NPAN line %q: %v", line.Text, err))
		return
	}
	if values[0] < 0 {
		p.fail(CodePanelCount, line.Number, fmt.Sprintf("NPAN must not be negative, got %d", values[0]))
		return
	}

	p.model.DeclaredPanelCount = values[0]
	p.model.Panels = make([]Panel, 0, min(values[0], maxPreallocatedPanels))
	p.advance(statePanels, line.Number)
}

// parsePanelTokens collects coordinates regardless of how they are spread
// over lines and emits a panel for every 12 values.
func (p *parser) parsePanelTokens(line Line) {
	for _, tok := range line.Tokens {
		v, ok := parseNumber(tok)
		if !ok {
			p.fail(CodePanelToken, line.Number,
				fmt.Sprintf("invalid coordinate %q for panel #%d", tok, len(p.model.Panels)))
			return
		}
		if len(p.coords) == 0 {
			p.panelLine = line.Number
		}
		p.lastTokenLine = line.Number
		p.coords = append(p.coords, v)

		if len(p.coords) == coordinatesPerPanel {
			p.addPanel()
		}
	}
}

func (p *parser) addPanel() {
	var vertices [4]geometry.Vector3
	for i := range vertices {
		c := p.coords[i*3 : i*3+3]
		vertices[i] = geometry.NewVector3(c[0], c[1], c[2])
	}
	p.coords = p.coords[:0]

	index := len(p.model.Panels)
	panel := NewPanel(vertices, p.check.coincidence)
	panel.Line = p.panelLine
	p.model.Panels = append(p.model.Panels, panel)
	p.diags = append(p.diags, p.check.validate(index, panel)...)
}

// finish reports sections that never appeared and the NPAN consistency check.
func (p *parser) finish() (*Model, Diagnostics) {
	if !p.fatal {
		switch p.state {
		case stateHeader:
			p.fail(CodeEmptyInput, 0, "empty input, expected a header line")
		case stateScaleGravity:
			p.fail(CodeScaleGravity, p.lastLine, "unexpected end of input, expected ULEN GRAV")
		case stateSymmetry:
			p.fail(CodeSymmetry, p.lastLine, "unexpected end of input, expected ISX ISY")
		case statePanelCount:
			p.fail(CodePanelCount, p.lastLine, "unexpected end of input, expected NPAN")
		case statePanels:
			if n := len(p.coords); n > 0 {
				p.fail(CodeTruncatedPanel, p.lastTokenLine,
					fmt.Sprintf("truncated panel data: panel #%d has %d of %d coordinates",
						len(p.model.Panels), n, coordinatesPerPanel))
			} else if got := len(p.model.Panels); got != p.model.DeclaredPanelCount {
				p.warn(CodePanelCountMismatch, 0, NoPanel,
					fmt.Sprintf("NPAN declares %d panels but %d were read", p.model.DeclaredPanelCount, got))
			}
		}
	}

	p.log.Debug("GDF parse finished",
		zap.Int("panels", len(p.model.Panels)),
		zap.Int("errors", len(p.diags.Errors())),
		zap.Int("warnings", len(p.diags.Warnings())))

	if p.diags.HasErrors() {
		return nil, p.diags
	}
	model := p.model
	return &model, p.diags
}

func (p *parser) fail(code Code, line int, msg string) {
	p.fatal = true
	p.diags = append(p.diags, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Line:     line,
		Panel:    NoPanel,
		Message:  msg,
	})
}

func (p *parser) warn(code Code, line, panel int, msg string) {
	p.diags = append(p.diags, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Line:     line,
		Panel:    panel,
		Message:  msg,
	})
}

// leadingNumbers parses tokens up to the first non-numeric one. Anything
// after that is an annotation such as "ULEN GRAV" and is ignored.
func leadingNumbers(tokens []string) []float64 {
	var values []float64
	for _, tok := range tokens {
		v, ok := parseNumber(tok)
		if !ok {
			break
		}
		values = append(values, v)
	}
	return values
}

// leadingIntegers requires exactly n leading numeric tokens, all integral.
func leadingIntegers(tokens []string, n int) ([]int, error) {
	numeric := len(leadingNumbers(tokens))
	if numeric != n {
		return nil, fmt.Errorf("expected %d integer value(s), found %d", n, numeric)
	}
	values := make([]int, n)
	for i, tok := range tokens[:n] {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", tok)
		}
		values[i] = v
	}
	return values, nil
}

// fortranExponent rewrites FORTRAN double precision exponents (1.0D+00).
var fortranExponent = strings.NewReplacer("D", "E", "d", "e")

// parseNumber accepts finite decimal numbers, including FORTRAN D exponents.
// Go-only syntax such as hex floats and digit separators is rejected.
func parseNumber(tok string) (float64, bool) {
	if strings.ContainsAny(tok, "xX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil && strings.ContainsAny(tok, "Dd") {
		v, err = strconv.ParseFloat(fortranExponent.Replace(tok), 64)
	}
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
