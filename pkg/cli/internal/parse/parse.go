// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"fmt"
	"strings"
)

// KeyValue parses a "key=value" string. Only the first '=' separates.
func KeyValue(s string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(s, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return "", "", false
	}
	return strings.TrimSpace(key), value, true
}

// Field is one element to place in a request fragment. Path holds the
// element names from the operation element down, so "doctor.email=x"
// yields Path ["doctor", "email"].
type Field struct {
	Path  []string
	Value string
}

// Fields parses "path=value" arguments in order.
func Fields(args []string) ([]Field, error) {
	out := make([]Field, 0, len(args))
	for _, arg := range args {
		key, value, ok := KeyValue(arg)
		if !ok {
			return nil, fmt.Errorf("invalid field %q: want name=value", arg)
		}
		path := strings.Split(key, ".")
		for _, p := range path {
			if p == "" {
				return nil, fmt.Errorf("invalid field %q: empty element name", arg)
			}
		}
		out = append(out, Field{Path: path, Value: value})
	}
	return out, nil
}
