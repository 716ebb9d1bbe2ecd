package attr

import (
	"fmt"

	"github.com/dshills/styledtext/span"
)

// Kind names a category of attribute, such as "weight" or "color".
type Kind string

// Seq is a monotonically increasing insertion id. Higher values were
// inserted later and win last-writer-wins conflicts.
type Seq uint64

// Assertion is one ranged claim that a kind has a value over a span.
type Assertion struct {
	Kind  Kind
	Span  span.Span
	Value Value
	Seq   Seq
}

// String returns a human-readable representation of the assertion.
func (a Assertion) String() string {
	return fmt.Sprintf("%s=%s@%s#%d", a.Kind, a.Value, a.Span, a.Seq)
}

// Covers reports whether the assertion's span contains the given offset.
func (a Assertion) Covers(offset int) bool {
	return a.Span.Contains(offset)
}

// EditBehavior decides what happens to an assertion whose span overlaps
// an edited region of text.
type EditBehavior uint8

const (
	// EditKeep shrinks or clips the span around the edit. Typical for
	// style attributes.
	EditKeep EditBehavior = iota

	// EditRemove drops the assertion entirely. Typical for attributes
	// whose meaning depends on the exact text, like spell-check or
	// diagnostic markers.
	EditRemove
)

// String returns the string representation of the edit behavior.
func (b EditBehavior) String() string {
	switch b {
	case EditKeep:
		return "keep"
	case EditRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// OverlapPolicy chooses the winning value when several assertions of the
// same kind cover one byte. The covering slice is ordered by ascending
// Seq and is never empty.
type OverlapPolicy func(covering []Assertion) Value

// LastWriterWins is the default overlap policy: the assertion inserted
// most recently supplies the value.
func LastWriterWins(covering []Assertion) Value {
	return covering[len(covering)-1].Value
}
