// Package style maps resolved attribute runs onto concrete style
// properties. Rules are registered per attribute kind; registration order
// decides which rule wins when two kinds emit the same property name.
package style

import (
	"errors"
	"fmt"

	"github.com/dshills/styledtext/attr"
	"github.com/dshills/styledtext/runs"
)

// ErrRuleRegistered is returned when a kind already has a rule.
var ErrRuleRegistered = errors.New("rule already registered")

// Rule turns an attribute value into style properties. present is false
// when no assertion of the kind covered the run; the value is then the
// default declared at registration.
type Rule func(value attr.Value, present bool) Properties

// registration couples a kind with its rule and declared default.
type registration struct {
	kind attr.Kind
	rule Rule
	def  attr.Value
}

// Resolver turns runs into styled runs. Configure it once with Register
// calls, then share it freely: Resolve has no side effects and never
// mutates the resolver, the store, or cached runs.
type Resolver struct {
	rules []registration
	index map[attr.Kind]int
}

// NewResolver creates a resolver with no rules registered.
func NewResolver() *Resolver {
	return &Resolver{index: make(map[attr.Kind]int)}
}

// Register installs the rule for a kind along with the default value used
// when the kind is absent from a run. Registration order is significant:
// when two kinds produce the same property name, the later-registered
// rule wins. Registering a kind twice returns ErrRuleRegistered.
func (r *Resolver) Register(kind attr.Kind, rule Rule, def attr.Value) error {
	if _, ok := r.index[kind]; ok {
		return fmt.Errorf("%w: %s", ErrRuleRegistered, kind)
	}
	r.index[kind] = len(r.rules)
	r.rules = append(r.rules, registration{kind: kind, rule: rule, def: def})
	return nil
}

// Registered reports whether a kind has a rule.
func (r *Resolver) Registered(kind attr.Kind) bool {
	_, ok := r.index[kind]
	return ok
}

// Kinds returns the registered kinds in registration (precedence) order.
func (r *Resolver) Kinds() []attr.Kind {
	out := make([]attr.Kind, len(r.rules))
	for i, reg := range r.rules {
		out[i] = reg.kind
	}
	return out
}

// Resolve maps one run's attribute values into a styled run. Kinds
// present on the run without a registered rule are ignored.
func (r *Resolver) Resolve(run runs.Run) StyledRun {
	props := make(Properties)
	for _, reg := range r.rules {
		value, present := run.Value(reg.kind)
		if !present {
			value = reg.def
		}
		for name, v := range reg.rule(value, present) {
			props[name] = v
		}
	}
	return StyledRun{Span: run.Span, Properties: props}
}

// ResolveAll maps an ordered run list into styled runs.
func (r *Resolver) ResolveAll(list []runs.Run) []StyledRun {
	out := make([]StyledRun, len(list))
	for i, run := range list {
		out[i] = r.Resolve(run)
	}
	return out
}

// ResolveSnapshot maps a run snapshot into styled runs. The output is
// freshly allocated on every call and owned by the caller.
func (r *Resolver) ResolveSnapshot(snap *runs.Snapshot) []StyledRun {
	return r.ResolveAll(snap.Runs())
}
