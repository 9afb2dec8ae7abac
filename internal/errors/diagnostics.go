package errors

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics with suggestions
type DiagnosticBuilder struct {
	d Diagnostic
}

// NewError creates a new error-level diagnostic builder
func NewError(code, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{d: Diagnostic{Level: Error, Code: code, Message: message}}
}

// NewWarning creates a new warning-level diagnostic builder
func NewWarning(code, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{d: Diagnostic{Level: Warning, Code: code, Message: message}}
}

// InBlock attaches the 1-based index of the grammar block
func (b *DiagnosticBuilder) InBlock(block int) *DiagnosticBuilder {
	b.d.Block = block
	return b
}

// InRule attaches the rule name the diagnostic refers to
func (b *DiagnosticBuilder) InRule(rule string) *DiagnosticBuilder {
	b.d.Rule = rule
	return b
}

// WithSuggestion adds a suggestion
func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.d.Suggestions = append(b.d.Suggestions, message)
	return b
}

// WithNote adds a note
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.d.Notes = append(b.d.Notes, note)
	return b
}

// WithHelp sets the help text
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.d.HelpText = help
	return b
}

// Build returns the completed diagnostic
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.d
}

// FetchFailed reports a page that could not be retrieved
func FetchFailed(url string, cause error) Diagnostic {
	return NewError(ErrorFetchFailed, "Failed to fetch URL: "+url).
		WithNote(cause.Error()).
		WithHelp("pass -input to extract from a saved copy of the page").
		Build()
}

// NoBlocks reports a page without any preformatted block
func NoBlocks() Diagnostic {
	return NewError(ErrorNoBlocks, "No preformatted grammar blocks found").
		WithNote("the page markup may have changed or the fetch returned an empty body").
		Build()
}

// CountMismatch reports a block count that differs from the expected one
func CountMismatch(expected, found int) Diagnostic {
	return NewError(ErrorCountMismatch,
		fmt.Sprintf("Expected %d rules but found %d rules instead", expected, found)).
		WithHelp("set extract.expected_rule_count if the source page legitimately changed").
		Build()
}

// MalformedBlock reports a block that has no '::=' delimiter or no rule name
func MalformedBlock(block int, cause error) Diagnostic {
	return NewError(ErrorMalformedBlock, cause.Error()).
		InBlock(block).
		WithNote("the block was counted but contributes no productions").
		Build()
}

// EmptyAlternative reports an alternative that produced no tokens
func EmptyAlternative(block int, rule string) Diagnostic {
	return NewWarning(WarningEmptyAlternative,
		fmt.Sprintf("empty alternative in rule '%s' skipped", rule)).
		InBlock(block).
		InRule(rule).
		Build()
}

// UnterminatedGroup reports a group fragment that was dropped
func UnterminatedGroup(block int, rule, fragment string) Diagnostic {
	return NewWarning(WarningUnterminatedGroup,
		fmt.Sprintf("unterminated group in rule '%s' discarded: %q", rule, fragment)).
		InBlock(block).
		InRule(rule).
		WithNote("groups open with a token starting with '{' and close with a token ending with '}*'").
		Build()
}

// UnparsableProduction reports a production that the symbol grammar rejects
func UnparsableProduction(rule string, index int, cause error) Diagnostic {
	return NewError(ErrorUnparsableProduction,
		fmt.Sprintf("production %d of rule '%s' cannot be parsed", index+1, rule)).
		InRule(rule).
		WithNote(cause.Error()).
		Build()
}

// UndefinedSymbol reports a reference to a symbol that is not declared
func UndefinedSymbol(rule, symbol string, candidates []string) Diagnostic {
	builder := NewWarning(WarningUndefinedSymbol,
		fmt.Sprintf("rule '%s' references undefined symbol '%s'", rule, symbol)).
		InRule(rule)

	similar := FindSimilarNames(symbol, candidates)
	switch len(similar) {
	case 0:
		builder = builder.WithHelp("add it to the terminal symbols, the bottom rules or define a rule for it")
	case 1:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	default:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}

	return builder.Build()
}

// FindSimilarNames returns the candidates within edit distance 2 of target.
func FindSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if candidate == target || len(candidate) <= 2 {
			continue
		}
		if levenshtein.ComputeDistance(target, candidate) <= 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}
