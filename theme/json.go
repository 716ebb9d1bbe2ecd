package theme

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// LoadJSON reads a JSON theme from a file. The layout mirrors the TOML
// form:
//
//	{
//	  "name": "Editorial",
//	  "rules": [
//	    {"kind": "weight", "property": "font-weight", "default": "normal"},
//	    {"kind": "foreground", "property": "color",
//	     "type": "color", "default": "#d4d4d4"}
//	  ]
//	}
func LoadJSON(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file %s: %w", path, err)
	}
	return parseJSON(path, data)
}

// ParseJSON reads a JSON theme from raw bytes.
func ParseJSON(data []byte) (*Theme, error) {
	return parseJSON("<data>", data)
}

func parseJSON(source string, data []byte) (*Theme, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON"}
	}

	root := gjson.ParseBytes(data)
	t := &Theme{Name: root.Get("name").String()}
	for _, r := range root.Get("rules").Array() {
		t.Rules = append(t.Rules, RuleSpec{
			Kind:      r.Get("kind").String(),
			Property:  r.Get("property").String(),
			Type:      r.Get("type").String(),
			Default:   r.Get("default").String(),
			IfPresent: r.Get("if_present").Bool(),
		})
	}
	return t, nil
}
