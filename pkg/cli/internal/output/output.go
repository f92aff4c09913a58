// Package output provides common output formatting utilities.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Stdout is where results are written.
var Stdout io.Writer = os.Stdout

// JSON writes indented JSON to Stdout.
func JSON(v any) error {
	enc := json.NewEncoder(Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Query evaluates a JSONPath expression against the JSON form of v and
// returns every match.
func Query(v any, path string) ([]any, error) {
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", path, err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, err
	}
	results := x.Get(doc)
	if results == nil {
		results = []any{}
	}
	return results, nil
}

// Table creates an aligned table writer for Stdout.
// Remember to call Flush() when done writing.
func Table() *tabwriter.Writer {
	return tabwriter.NewWriter(Stdout, 0, 0, 2, ' ', 0)
}

// Header writes a tab separated upper-case heading row.
func Header(w io.Writer, columns ...string) {
	upper := cases.Upper(language.Und)
	for i, c := range columns {
		columns[i] = upper.String(c)
	}
	fmt.Fprintln(w, strings.Join(columns, "\t"))
}

// Title renders a value such as a status for display, e.g. "Scheduled".
func Title(s string) string {
	return cases.Title(language.English).String(s)
}

// Dash returns "-" for empty cells.
func Dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Warn prints a warning message to stderr.
func Warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
