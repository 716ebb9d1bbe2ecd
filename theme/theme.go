// Package theme loads declarative rule sets and compiles them into style
// resolvers. A theme file lists rules in precedence order; each rule maps
// one attribute kind to one style property with a typed default.
package theme

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dshills/styledtext/attr"
	"github.com/dshills/styledtext/style"
)

// Errors returned by theme loading.
var (
	ErrNoRules     = errors.New("theme declares no rules")
	ErrBadRule     = errors.New("invalid theme rule")
	ErrUnknownType = errors.New("unknown default type")
)

// ParseError describes a failure to parse a theme file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing theme %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying parse error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// RuleSpec is one declarative rule: kind -> property, with a default used
// when the kind is absent from a run. File order is precedence order.
type RuleSpec struct {
	// Kind is the attribute kind the rule consumes.
	Kind string

	// Property is the style property name the rule emits.
	Property string

	// Type selects how Default is parsed: "string" (the default),
	// "color", "int", "float", or "bool".
	Type string

	// Default is the property value used when no assertion of Kind
	// covers a run. Ignored when IfPresent is set.
	Default string

	// IfPresent suppresses the property entirely on runs the kind does
	// not cover, instead of emitting the default.
	IfPresent bool
}

// Theme is a named, ordered rule set ready to be compiled into resolvers.
type Theme struct {
	Name  string
	Rules []RuleSpec
}

// Resolver compiles the theme into a freshly configured style resolver.
// Each call returns an independent resolver, so one loaded theme can
// serve many documents.
func (t *Theme) Resolver() (*style.Resolver, error) {
	if len(t.Rules) == 0 {
		return nil, ErrNoRules
	}

	r := style.NewResolver()
	for i, rs := range t.Rules {
		if rs.Kind == "" || rs.Property == "" {
			return nil, fmt.Errorf("%w: rule %d needs both kind and property", ErrBadRule, i)
		}

		var rule style.Rule
		var def attr.Value
		if rs.IfPresent {
			rule = style.PropertyIfPresent(rs.Property)
		} else {
			rule = style.Property(rs.Property)
			var err error
			def, err = parseDefault(rs.Type, rs.Default)
			if err != nil {
				return nil, fmt.Errorf("rule %d (%s): %w", i, rs.Kind, err)
			}
		}

		if err := r.Register(attr.Kind(rs.Kind), rule, def); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return r, nil
}

// parseDefault converts a textual default into a typed attribute value.
func parseDefault(typ, raw string) (attr.Value, error) {
	switch typ {
	case "", "string":
		return attr.String(raw), nil
	case "color":
		return attr.HexColor(raw)
	case "int":
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return attr.Value{}, fmt.Errorf("parsing int default %q: %w", raw, err)
		}
		return attr.Int(n), nil
	case "float":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return attr.Value{}, fmt.Errorf("parsing float default %q: %w", raw, err)
		}
		return attr.Float(f), nil
	case "bool":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return attr.Value{}, fmt.Errorf("parsing bool default %q: %w", raw, err)
		}
		return attr.Bool(b), nil
	default:
		return attr.Value{}, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
}
