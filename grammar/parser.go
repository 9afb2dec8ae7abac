package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
)

var productionParser = participle.MustBuild[Production](
	participle.Lexer(ProductionLexer),
	participle.Elide("Whitespace"),
)

// ParseProduction parses the tokens of one production. Collapsed group
// tokens such as "{c d}*" are re-read into nested groups.
func ParseProduction(tokens []string) (*Production, error) {
	return ParseString(strings.Join(tokens, " "))
}

// ParseString parses a production written as one line of text.
func ParseString(source string) (*Production, error) {
	production, err := productionParser.ParseString("", source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse production %q: %w", source, err)
	}
	return production, nil
}

// FormatParseError renders a caret-style message pointing at the offending
// column of source.
func FormatParseError(source string, err error) string {
	var pe participle.Error
	if !errors.As(err, &pe) {
		return fmt.Sprintf("Unexpected error: %s", err)
	}

	pos := pe.Position()
	if pos.Column <= 0 || pos.Column > len(source)+1 {
		return fmt.Sprintf("Syntax error at unknown location: %s", pe.Message())
	}

	caret := strings.Repeat(" ", pos.Column-1) + "^"
	return fmt.Sprintf("Syntax error at column %d:\n%s\n%s\n→ %s", pos.Column, source, caret, pe.Message())
}
