package config

import (
	"fmt"
	"strings"
)

// FieldError is a single field-level rejection with exact source
// attribution.
type FieldError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("Path: '%s', Location: line %d column %d, Error: %s",
		e.Path, e.Line, e.Column, e.Message)
}

// ErrorList carries every field error found in one document, in source
// order. Validation never stops at the first bad field.
type ErrorList struct {
	Format Format
	Fields []*FieldError
}

func (l *ErrorList) Error() string {
	lines := make([]string, len(l.Fields))
	for i, fe := range l.Fields {
		lines[i] = fmt.Sprintf("%s parse error: %s", l.Format, fe.Error())
	}
	return strings.Join(lines, "\n")
}
