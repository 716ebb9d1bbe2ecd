package textbuf

import (
	"io"
	"sort"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// BoundaryMode selects the granularity used for span boundary validation.
type BoundaryMode uint8

const (
	// BoundaryRune accepts any offset that starts a UTF-8 encoded rune.
	BoundaryRune BoundaryMode = iota

	// BoundaryGrapheme accepts only offsets that start a grapheme cluster,
	// so spans cannot split user-perceived characters such as emoji
	// sequences or combining marks.
	BoundaryGrapheme
)

// String returns the string representation of the boundary mode.
func (m BoundaryMode) String() string {
	switch m {
	case BoundaryRune:
		return "rune"
	case BoundaryGrapheme:
		return "grapheme"
	default:
		return "unknown"
	}
}

// Buffer is an immutable UTF-8 text buffer. It is safe for concurrent use
// without synchronization.
type Buffer struct {
	text string
	mode BoundaryMode

	// graphemes holds the start offset of every grapheme cluster, in
	// ascending order. Populated only in BoundaryGrapheme mode.
	graphemes []int
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	return NewFromString("", opts...)
}

// NewFromString creates a buffer holding the given text.
func NewFromString(s string, opts ...Option) *Buffer {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.normalize {
		s = norm.NFC.String(s)
	}

	b := &Buffer{text: s, mode: cfg.mode}
	if cfg.mode == BoundaryGrapheme {
		b.graphemes = graphemeStarts(s)
	}
	return b
}

// NewFromReader creates a buffer from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewFromString(string(data), opts...), nil
}

// graphemeStarts returns the start offset of each grapheme cluster in s.
func graphemeStarts(s string) []int {
	starts := make([]int, 0, len(s))
	state := -1
	offset := 0
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		starts = append(starts, offset)
		offset += len(cluster)
	}
	return starts
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	return b.text
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() int {
	return len(b.text)
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return len(b.text) == 0
}

// Mode returns the buffer's boundary mode.
func (b *Buffer) Mode() BoundaryMode {
	return b.mode
}

// Slice returns the text in [start, end). Offsets outside the buffer are
// clamped rather than panicking; callers validate spans before use.
func (b *Buffer) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(b.text) {
		end = len(b.text)
	}
	if start >= end {
		return ""
	}
	return b.text[start:end]
}

// RuneAt returns the rune starting at the given byte offset.
// Returns utf8.RuneError and size 0 if the offset is out of range.
func (b *Buffer) RuneAt(offset int) (rune, int) {
	if offset < 0 || offset >= len(b.text) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(b.text[offset:])
}

// IsBoundary reports whether offset is a valid anchor for a span edge.
// Offset len(text) is always a boundary; offsets outside [0, len] never are.
func (b *Buffer) IsBoundary(offset int) bool {
	if offset < 0 || offset > len(b.text) {
		return false
	}
	if offset == 0 || offset == len(b.text) {
		return true
	}

	switch b.mode {
	case BoundaryGrapheme:
		i := sort.SearchInts(b.graphemes, offset)
		return i < len(b.graphemes) && b.graphemes[i] == offset
	default:
		return utf8.RuneStart(b.text[offset])
	}
}

// GraphemeCount returns the number of grapheme clusters in the buffer.
// In rune mode this still segments on demand rather than caching.
func (b *Buffer) GraphemeCount() int {
	if b.mode == BoundaryGrapheme {
		return len(b.graphemes)
	}
	return uniseg.GraphemeClusterCount(b.text)
}
