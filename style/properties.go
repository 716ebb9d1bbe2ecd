package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/styledtext/attr"
	"github.com/dshills/styledtext/span"
)

// Properties maps style property names to resolved concrete values.
type Properties map[string]any

// Get returns the value of a property. The bool reports presence.
func (p Properties) Get(name string) (any, bool) {
	v, ok := p[name]
	return v, ok
}

// Names returns the property names, sorted.
func (p Properties) Names() []string {
	out := make([]string, 0, len(p))
	for name := range p {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether two property maps hold the same entries.
// Values are compared with ==, so property values must be comparable.
func (p Properties) Equal(other Properties) bool {
	if len(p) != len(other) {
		return false
	}
	for name, v := range p {
		ov, ok := other[name]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// StyledRun is a span with its final style property map. Styled runs are
// created fresh on each resolution pass and never mutated afterwards.
type StyledRun struct {
	Span       span.Span
	Properties Properties
}

// String returns a human-readable representation of the styled run.
func (sr StyledRun) String() string {
	var sb strings.Builder
	sb.WriteString(sr.Span.String())
	sb.WriteByte('{')
	for i, name := range sr.Properties.Names() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%v", name, sr.Properties[name])
	}
	sb.WriteByte('}')
	return sb.String()
}

// Property builds a rule that copies the attribute value into a single
// named property, absent or not.
func Property(name string) Rule {
	return func(value attr.Value, _ bool) Properties {
		return Properties{name: value.Interface()}
	}
}

// PropertyIfPresent builds a rule that emits the property only when an
// assertion of the kind actually covers the run.
func PropertyIfPresent(name string) Rule {
	return func(value attr.Value, present bool) Properties {
		if !present {
			return nil
		}
		return Properties{name: value.Interface()}
	}
}
