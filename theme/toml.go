package theme

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// tomlFile mirrors the TOML theme layout:
//
//	name = "Editorial"
//
//	[[rule]]
//	kind = "weight"
//	property = "font-weight"
//	default = "normal"
//
//	[[rule]]
//	kind = "foreground"
//	property = "color"
//	type = "color"
//	default = "#d4d4d4"
type tomlFile struct {
	Name  string     `toml:"name"`
	Rules []tomlRule `toml:"rule"`
}

type tomlRule struct {
	Kind      string `toml:"kind"`
	Property  string `toml:"property"`
	Type      string `toml:"type"`
	Default   string `toml:"default"`
	IfPresent bool   `toml:"if_present"`
}

// Load reads a TOML theme from a file.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file %s: %w", path, err)
	}
	return parseTOML(path, data)
}

// Parse reads a TOML theme from raw bytes.
func Parse(data []byte) (*Theme, error) {
	return parseTOML("<data>", data)
}

func parseTOML(source string, data []byte) (*Theme, error) {
	var file tomlFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}

	t := &Theme{Name: file.Name, Rules: make([]RuleSpec, len(file.Rules))}
	for i, r := range file.Rules {
		t.Rules[i] = RuleSpec{
			Kind:      r.Kind,
			Property:  r.Property,
			Type:      r.Type,
			Default:   r.Default,
			IfPresent: r.IfPresent,
		}
	}
	return t, nil
}
