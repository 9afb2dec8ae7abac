package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fortgrammar/internal/document"
	"fortgrammar/internal/errors"
)

func sampleDocument() *document.GrammarDocument {
	doc := document.New()
	doc.TerminalSymbols = []string{"ICON", "SCON"}
	doc.BottomRules = []string{"Ident"}
	doc.Keywords = []string{"if", "then"}

	doc.AddProduction("Stmt", []string{"IF", "'('", "Expr", "')'", "THEN", "{Stmt}*"})
	doc.AddProduction("Expr", []string{"ICON"})
	doc.AddProduction("Expr", []string{"Ident", "{'**' Expr}*"})
	doc.AddProduction("Expr", []string{"ε"})
	return doc
}

func TestCheckConsistentDocument(t *testing.T) {
	report := Check(sampleDocument())

	assert.True(t, report.OK())
	assert.Equal(t, 2, report.Rules)
	assert.Equal(t, 4, report.Productions)
	assert.Equal(t, 2, report.Groups)
	assert.Empty(t, report.Undefined)

	assert.Equal(t, 3, report.Symbols[SymbolRule])
	assert.Equal(t, 1, report.Symbols[SymbolBottom])
	assert.Equal(t, 1, report.Symbols[SymbolTerminal])
	assert.Equal(t, 2, report.Symbols[SymbolKeyword])
	assert.Equal(t, 3, report.Symbols[SymbolSpecial])
	assert.Equal(t, 1, report.Symbols[SymbolEpsilon])
}

func TestCheckUndefinedSymbol(t *testing.T) {
	doc := sampleDocument()
	doc.AddProduction("Stmt", []string{"Exrp", "Exrp", "Unknown"})

	report := Check(doc)

	assert.False(t, report.OK())
	assert.Equal(t, []string{"Exrp", "Unknown"}, report.Undefined)
	require.Len(t, report.Diagnostics, 2)

	first := report.Diagnostics[0]
	assert.Equal(t, errors.WarningUndefinedSymbol, first.Code)
	assert.Equal(t, "Stmt", first.Rule)
	assert.Equal(t, []string{"did you mean 'Expr'?"}, first.Suggestions)

	assert.Empty(t, report.Diagnostics[1].Suggestions)
	assert.NotEmpty(t, report.Diagnostics[1].HelpText)
}

func TestCheckUnparsableProduction(t *testing.T) {
	doc := sampleDocument()
	doc.AddProduction("Broken", []string{"a}*"})

	report := Check(doc)

	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, errors.ErrorUnparsableProduction, report.Diagnostics[0].Code)
	assert.Equal(t, "Broken", report.Diagnostics[0].Rule)
}

func TestClassify(t *testing.T) {
	st := NewSymbolTable(sampleDocument())

	tests := []struct {
		symbol string
		kind   SymbolKind
	}{
		{"Expr", SymbolRule},
		{"Expr?", SymbolRule},
		{"Expr+", SymbolRule},
		{"Ident", SymbolBottom},
		{"'SCON'", SymbolTerminal},
		{"THEN", SymbolKeyword},
		{"'.and.'", SymbolSpecial},
		{"+", SymbolSpecial},
		{"ε", SymbolEpsilon},
		{"nothing", SymbolUndefined},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.kind, st.Classify(tt.symbol), tt.symbol)
	}
}

func TestStripSuffix(t *testing.T) {
	assert.Equal(t, "a", StripSuffix("a?"))
	assert.Equal(t, "a", StripSuffix("a+"))
	assert.Equal(t, "+", StripSuffix("+"))
	assert.Equal(t, "?", StripSuffix("?"))
	assert.Equal(t, "a", StripSuffix("a"))
}
