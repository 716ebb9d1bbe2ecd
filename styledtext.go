package styledtext

import (
	"fmt"
	"sync"

	"github.com/dshills/styledtext/attr"
	"github.com/dshills/styledtext/runs"
	"github.com/dshills/styledtext/span"
	"github.com/dshills/styledtext/style"
	"github.com/dshills/styledtext/textbuf"
)

// AttributedText is a block of text with attributes applied to byte
// ranges within it. It couples a text buffer, an attribute store, a run
// builder, and a style resolver.
//
// Mutating methods re-enter the build phase; query methods return cached
// immutable snapshots until the next mutation.
type AttributedText struct {
	mu       sync.Mutex
	buf      *textbuf.Buffer
	store    *attr.Store
	builder  *runs.Builder
	resolver *style.Resolver

	// styled caches the resolved output for styledRev.
	styled    []style.StyledRun
	styledRev uint64
	styledOK  bool
}

// Option is a functional option for configuring an AttributedText.
type Option func(*config)

type config struct {
	bufOpts  []textbuf.Option
	resolver *style.Resolver
}

// WithResolver supplies the style resolver used by Runs. Without one,
// Runs produces styled runs with empty property maps.
func WithResolver(r *style.Resolver) Option {
	return func(c *config) {
		c.resolver = r
	}
}

// WithGraphemeBoundaries validates attribute spans at grapheme-cluster
// granularity instead of rune granularity.
func WithGraphemeBoundaries() Option {
	return func(c *config) {
		c.bufOpts = append(c.bufOpts, textbuf.WithGraphemeBoundaries())
	}
}

// WithNormalization NFC-normalizes the text before storing it.
func WithNormalization() Option {
	return func(c *config) {
		c.bufOpts = append(c.bufOpts, textbuf.WithNormalization())
	}
}

// New creates an AttributedText over the given text with no attributes
// applied.
func New(text string, opts ...Option) *AttributedText {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	buf := textbuf.NewFromString(text, cfg.bufOpts...)
	store := attr.NewStore(buf)
	resolver := cfg.resolver
	if resolver == nil {
		resolver = style.NewResolver()
	}

	return &AttributedText{
		buf:      buf,
		store:    store,
		builder:  runs.NewBuilder(store),
		resolver: resolver,
	}
}

// Text returns the current text.
func (at *AttributedText) Text() string {
	at.mu.Lock()
	defer at.mu.Unlock()
	return at.buf.Text()
}

// Len returns the byte length of the current text.
func (at *AttributedText) Len() int {
	at.mu.Lock()
	defer at.mu.Unlock()
	return at.buf.Len()
}

// Buffer returns the underlying immutable buffer.
func (at *AttributedText) Buffer() *textbuf.Buffer {
	at.mu.Lock()
	defer at.mu.Unlock()
	return at.buf
}

// Store returns the underlying attribute store for direct access to
// policies, behaviors, and raw assertion queries.
func (at *AttributedText) Store() *attr.Store {
	return at.store
}

// ApplyAttribute asserts that kind has the given value over sp.
// It returns the assertion's sequence id, usable with RemoveAttribute.
// The span must be non-empty, within the text, and anchored on character
// boundaries; otherwise attr.ErrInvalidSpan is returned and nothing
// changes.
func (at *AttributedText) ApplyAttribute(kind attr.Kind, sp span.Span, value attr.Value) (attr.Seq, error) {
	return at.store.Insert(kind, sp, value)
}

// RemoveAttribute deletes a previously applied assertion by sequence id.
// Returns attr.ErrNotFound if no assertion has that id.
func (at *AttributedText) RemoveAttribute(seq attr.Seq) error {
	return at.store.Remove(seq)
}

// ClearKind removes every assertion of a kind.
func (at *AttributedText) ClearKind(kind attr.Kind) {
	at.store.Clear(kind)
}

// AttributesAt returns every assertion covering the given byte offset.
// Conflicting assertions are all reported; precedence is applied only
// when building runs.
func (at *AttributedText) AttributesAt(offset int) []attr.Assertion {
	return at.store.AssertionsAt(offset)
}

// AttributesForRange returns every assertion overlapping sp.
func (at *AttributedText) AttributesForRange(sp span.Span) []attr.Assertion {
	return at.store.AssertionsOverlapping(sp)
}

// RawRuns returns the unresolved run partition: maximal spans with one
// attribute value per covered kind. The snapshot is cached until the
// next mutation.
func (at *AttributedText) RawRuns() (*runs.Snapshot, error) {
	return at.builder.Runs()
}

// Runs returns the resolved styled-run stream in left-to-right byte
// order, partitioning the text exactly. The output is cached until the
// next mutation; callers must not modify it.
func (at *AttributedText) Runs() ([]style.StyledRun, error) {
	snap, err := at.builder.Runs()
	if err != nil {
		return nil, err
	}

	at.mu.Lock()
	defer at.mu.Unlock()

	if at.styledOK && at.styledRev == snap.Revision() {
		return at.styled, nil
	}

	at.styled = at.resolver.ResolveSnapshot(snap)
	at.styledRev = snap.Revision()
	at.styledOK = true
	return at.styled, nil
}

// Delete removes the text in sp and adjusts every attribute span
// according to its kind's edit behavior (attr.EditKeep by default; see
// Store().SetEditBehavior). Previously obtained snapshots become stale.
// An empty span is a no-op.
func (at *AttributedText) Delete(sp span.Span) error {
	at.mu.Lock()
	defer at.mu.Unlock()

	if !sp.IsValid() || sp.Start < 0 || sp.End > at.buf.Len() {
		return fmt.Errorf("%w: deletion %s outside text of length %d", attr.ErrInvalidSpan, sp, at.buf.Len())
	}
	if sp.IsEmpty() {
		return nil
	}
	if !at.buf.IsBoundary(sp.Start) || !at.buf.IsBoundary(sp.End) {
		return fmt.Errorf("%w: deletion %s splits a character", attr.ErrInvalidSpan, sp)
	}

	remaining := at.buf.Slice(0, sp.Start) + at.buf.Slice(sp.End, at.buf.Len())
	newBuf := textbuf.NewFromString(remaining, textbuf.WithBoundaryMode(at.buf.Mode()))

	if err := at.store.ApplyDelete(sp, newBuf); err != nil {
		return err
	}
	at.buf = newBuf
	return nil
}
