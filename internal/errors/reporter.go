package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of a diagnostic
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
)

// Diagnostic is a non-fatal finding raised while extracting or checking a grammar
type Diagnostic struct {
	Level       ErrorLevel
	Code        string   // Code like E0003
	Message     string   // Primary message
	Block       int      // 1-based grammar block index, 0 when not tied to a block
	Rule        string   // Rule name, empty when not tied to a rule
	Suggestions []string // Suggested fixes
	Notes       []string // Additional context notes
	HelpText    string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s[%s]: %s", d.Level, d.Code, d.Message)
}

// HasErrors reports whether any diagnostic is error-level
func HasErrors(diagnostics []Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Level == Error {
			return true
		}
	}
	return false
}

// ErrorReporter formats diagnostics against the grammar blocks they refer to
type ErrorReporter struct {
	source string
	blocks []string
}

// NewErrorReporter creates a reporter for a source page and its raw blocks
func NewErrorReporter(source string, blocks []string) *ErrorReporter {
	return &ErrorReporter{
		source: source,
		blocks: blocks,
	}
}

// FormatError renders one diagnostic. The header keeps the "ERROR ->" prefix
// the extractor has always printed.
func (er *ErrorReporter) FormatError(d Diagnostic) string {
	var result strings.Builder

	levelColor := er.getLevelColor(d.Level)
	dim := color.New(color.Faint).SprintFunc()
	indent := "    "

	result.WriteString(fmt.Sprintf("%s %s (%s)\n",
		levelColor(strings.ToUpper(string(d.Level))+" ->"), d.Message, d.Code))

	if d.Block > 0 {
		result.WriteString(fmt.Sprintf("%s%s %s block #%d\n", indent, dim("-->"), er.source, d.Block))
		if line := er.blockLine(d.Block); line != "" {
			result.WriteString(fmt.Sprintf("%s%s %s\n", indent, dim("│"), line))
		}
	} else if d.Rule != "" {
		result.WriteString(fmt.Sprintf("%s%s rule %s\n", indent, dim("-->"), d.Rule))
	}

	for i, suggestion := range d.Suggestions {
		cyan := color.New(color.FgCyan).SprintFunc()
		if i == 0 {
			result.WriteString(fmt.Sprintf("%s%s %s\n", indent, cyan("try:"), suggestion))
		} else {
			result.WriteString(fmt.Sprintf("%s     %s\n", indent, suggestion))
		}
	}

	for _, note := range d.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		result.WriteString(fmt.Sprintf("%s%s %s %s\n", indent, dim("│"), noteColor("note:"), note))
	}

	if d.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s%s %s %s\n", indent, dim("│"), helpColor("help:"), d.HelpText))
	}

	return result.String()
}

// Report writes every diagnostic to w
func (er *ErrorReporter) Report(w io.Writer, diagnostics []Diagnostic) {
	for _, d := range diagnostics {
		fmt.Fprint(w, er.FormatError(d))
	}
}

// getLevelColor returns the color function for a level
func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// blockLine returns the first non-empty line of a block, shortened for display
func (er *ErrorReporter) blockLine(block int) string {
	if block < 1 || block > len(er.blocks) {
		return ""
	}
	for _, line := range strings.Split(er.blocks[block-1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if runes := []rune(line); len(runes) > 72 {
			line = string(runes[:69]) + "..."
		}
		return line
	}
	return ""
}
