// Package codegen holds the line printer shared by the Go source generators.
package codegen

import (
	"fmt"
	"go/format"
	"strings"
)

// Writer emits Go source line by line
type Writer struct {
	indent int
	output strings.Builder
}

func NewWriter() *Writer {
	return &Writer{}
}

// Indent and Dedent change the nesting level of the following lines.
func (w *Writer) Indent() { w.indent++ }

func (w *Writer) Dedent() {
	if w.indent > 0 {
		w.indent--
	}
}

func (w *Writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.output.WriteString("\t")
	}
}

// Line writes one formatted line at the current nesting level. An empty
// format writes a blank line.
func (w *Writer) Line(format string, args ...interface{}) {
	if format != "" {
		w.writeIndent()
		w.output.WriteString(fmt.Sprintf(format, args...))
	}
	w.output.WriteString("\n")
}

// String returns the source as written.
func (w *Writer) String() string {
	return w.output.String()
}

// Source returns the gofmt'ed source.
func (w *Writer) Source() ([]byte, error) {
	source, err := format.Source([]byte(w.output.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to format generated source: %w", err)
	}
	return source, nil
}
