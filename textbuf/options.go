package textbuf

type config struct {
	mode      BoundaryMode
	normalize bool
}

// Option is a functional option for configuring a Buffer at construction.
type Option func(*config)

// WithBoundaryMode sets the granularity used by IsBoundary.
func WithBoundaryMode(mode BoundaryMode) Option {
	return func(c *config) {
		c.mode = mode
	}
}

// WithGraphemeBoundaries configures boundary checks to land on grapheme
// cluster starts instead of rune starts.
func WithGraphemeBoundaries() Option {
	return WithBoundaryMode(BoundaryGrapheme)
}

// WithNormalization applies NFC normalization to the text before storing
// it. Offsets supplied by callers must refer to the normalized form.
func WithNormalization() Option {
	return func(c *config) {
		c.normalize = true
	}
}
