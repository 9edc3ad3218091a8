package gdf

import "go.uber.org/zap"

// Defaults taken from the WAMIT manual, section 6.1.
const (
	DefaultCoincidenceFactor = 1e-6
	DefaultMinAreaFactor     = 1e-10
	DefaultMinULEN           = 1e-5
	DefaultHeaderMaxLength   = 72
)

// Options controls the validation thresholds used by Parse.
type Options struct {
	// CoincidenceFactor times ULEN is the distance below which two adjacent
	// vertices coincide.
	CoincidenceFactor float64
	// MinAreaFactor times ULEN squared is the smallest legal panel area.
	MinAreaFactor float64
	// MinULEN is the exclusive lower bound for ULEN.
	MinULEN float64
	// FreeSurfaceTolerance is the absolute |z| below which a vertex lies on
	// the free surface. Zero means the coincidence tolerance.
	FreeSurfaceTolerance float64
	// HeaderMaxLength is the header length in characters before truncation.
	HeaderMaxLength int
	// SelfIntersectionSeverity is used for panels with crossing sides.
	SelfIntersectionSeverity Severity
	Logger                   *zap.Logger
}

// DefaultOptions returns the thresholds WAMIT itself applies
func DefaultOptions() Options {
	return Options{
		CoincidenceFactor:        DefaultCoincidenceFactor,
		MinAreaFactor:            DefaultMinAreaFactor,
		MinULEN:                  DefaultMinULEN,
		HeaderMaxLength:          DefaultHeaderMaxLength,
		SelfIntersectionSeverity: SeverityError,
	}
}

// Option adjusts Options
type Option func(*Options)

// WithOptions replaces all options at once, e.g. from a config file.
func WithOptions(o Options) Option {
	return func(dst *Options) { *dst = o }
}

// WithCoincidenceFactor sets the coincidence distance as a fraction of ULEN.
func WithCoincidenceFactor(f float64) Option {
	return func(o *Options) { o.CoincidenceFactor = f }
}

// WithMinAreaFactor sets the minimum panel area as a fraction of ULEN squared.
func WithMinAreaFactor(f float64) Option {
	return func(o *Options) { o.MinAreaFactor = f }
}

// WithMinULEN sets the exclusive lower bound for ULEN. ULEN must be positive
// regardless of this value.
func WithMinULEN(v float64) Option {
	return func(o *Options) { o.MinULEN = v }
}

// WithFreeSurfaceTolerance sets the absolute |z| tolerance for free-surface
// vertices. Zero falls back to the coincidence distance.
func WithFreeSurfaceTolerance(tol float64) Option {
	return func(o *Options) { o.FreeSurfaceTolerance = tol }
}

// WithHeaderMaxLength sets the header length after which it is truncated.
// Zero disables truncation.
func WithHeaderMaxLength(n int) Option {
	return func(o *Options) { o.HeaderMaxLength = n }
}

// WithSelfIntersectionSeverity sets how panels with crossing sides are reported.
func WithSelfIntersectionSeverity(s Severity) Option {
	return func(o *Options) { o.SelfIntersectionSeverity = s }
}

// WithLogger enables debug logging of parser state transitions.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// FreeSurfaceToleranceFor returns the free-surface tolerance the parser applies
// to a file with the given ULEN.
func (o Options) FreeSurfaceToleranceFor(ulen float64) float64 {
	if o.FreeSurfaceTolerance > 0 {
		return o.FreeSurfaceTolerance
	}
	return ulen * o.CoincidenceFactor
}

// FreeSurfaceTolerance resolves opts over the defaults and returns the
// free-surface tolerance for ulen.
func FreeSurfaceTolerance(ulen float64, opts ...Option) float64 {
	return buildOptions(opts).FreeSurfaceToleranceFor(ulen)
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
