package runs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/styledtext/attr"
	"github.com/dshills/styledtext/span"
)

// Run is a maximal span with one resolved value per attribute kind.
// Kinds absent over the span are omitted from Values.
type Run struct {
	Span   span.Span
	Values map[attr.Kind]attr.Value
}

// Value returns the resolved value for a kind. The bool reports whether
// the kind is present on this run.
func (r Run) Value(kind attr.Kind) (attr.Value, bool) {
	v, ok := r.Values[kind]
	return v, ok
}

// Kinds returns the kinds present on this run, sorted by name.
func (r Run) Kinds() []attr.Kind {
	out := make([]attr.Kind, 0, len(r.Values))
	for k := range r.Values {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String returns a human-readable representation of the run.
func (r Run) String() string {
	var sb strings.Builder
	sb.WriteString(r.Span.String())
	sb.WriteByte('{')
	for i, k := range r.Kinds() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%s", k, r.Values[k])
	}
	sb.WriteByte('}')
	return sb.String()
}

// sameValues reports whether two runs resolve every kind identically.
func (r Run) sameValues(other Run) bool {
	if len(r.Values) != len(other.Values) {
		return false
	}
	for k, v := range r.Values {
		ov, ok := other.Values[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// InvariantError reports that a computed run list failed to partition the
// buffer. It indicates a defect in the engine, not bad caller input, and
// is deliberately a distinct type so callers can tell the two apart.
type InvariantError struct {
	Message string
	Runs    []Run
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return "run partition invariant violated: " + e.Message
}
