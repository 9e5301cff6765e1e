package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the surface syntax of an input document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown input format %q (want yaml or json)", s)
}

// DecodeError is a structural failure of the input document itself, as
// opposed to a field that decoded but failed validation.
type DecodeError struct {
	Format Format
	Line   int
	Msg    string
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s parse error: Location: line %d, Error: %s", e.Format, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Msg)
}

var yamlErrLine = regexp.MustCompile(`line (\d+):`)

// Decode parses raw document bytes into a RawNode tree. Both surface
// syntaxes route through the yaml decoder: every JSON document is a
// valid YAML document, and yaml.v3 is the only mainstream decoder that
// keeps line/column information for every node.
func Decode(data []byte, format Format) (*RawNode, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		line := 0
		if m := yamlErrLine.FindStringSubmatch(err.Error()); m != nil {
			line, _ = strconv.Atoi(m[1])
		}
		return nil, &DecodeError{
			Format: format,
			Line:   line,
			Msg:    strings.TrimPrefix(err.Error(), "yaml: "),
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		// An empty input is a legal, empty document.
		return wrap(&yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: 1, Column: 1}, ""), nil
	}
	root := wrap(doc.Content[0], "")
	if root.IsNull() {
		return wrap(&yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: 1, Column: 1}, ""), nil
	}
	if !root.IsMapping() {
		return nil, &DecodeError{Format: format, Line: root.Line(), Msg: "top level must be a mapping"}
	}
	return root, nil
}

// Load decodes and validates a document in one step.
func Load(data []byte, format Format) (*Document, error) {
	root, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return Validate(root, format)
}
