// Package span provides the half-open byte interval type shared by the
// attribute store and the run builder.
package span

import "fmt"

// Span is a half-open byte interval [Start, End) over a text buffer.
// Start is inclusive, End is exclusive.
type Span struct {
	Start int // Inclusive start offset
	End   int // Exclusive end offset
}

// New creates a Span from start and end offsets.
func New(start, end int) Span {
	return Span{Start: start, End: end}
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d)", s.Start, s.End)
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// IsValid returns true if Start <= End.
func (s Span) IsValid() bool {
	return s.Start <= s.End
}

// Contains returns true if the given offset is within the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// ContainsSpan returns true if other lies entirely within this span.
func (s Span) ContainsSpan(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Overlaps returns true if this span shares at least one byte with other.
// Abutting spans (s.End == other.Start) do not overlap.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Intersect returns the intersection of two spans, or an empty span
// anchored at the later start if they do not overlap.
func (s Span) Intersect(other Span) Span {
	start := s.Start
	if other.Start > start {
		start = other.Start
	}
	end := s.End
	if other.End < end {
		end = other.End
	}
	if start >= end {
		return Span{Start: start, End: start}
	}
	return Span{Start: start, End: end}
}

// Union returns the smallest span containing both spans.
func (s Span) Union(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Shift returns a new span moved by delta bytes.
func (s Span) Shift(delta int) Span {
	return Span{Start: s.Start + delta, End: s.End + delta}
}

// Clamp returns the span restricted to [0, limit].
func (s Span) Clamp(limit int) Span {
	out := s
	if out.Start < 0 {
		out.Start = 0
	}
	if out.End > limit {
		out.End = limit
	}
	if out.Start > out.End {
		out.Start = out.End
	}
	return out
}
