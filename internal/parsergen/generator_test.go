package parsergen

import (
	"go/ast"
	"go/parser"
	gotoken "go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fortgrammar/internal/document"
	"fortgrammar/internal/errors"
)

func sampleDocument() *document.GrammarDocument {
	doc := document.New()
	doc.TerminalSymbols = []string{"ICON", "NAME"}
	doc.Keywords = []string{"if"}
	doc.AddProduction("Expr", []string{"Term", "{'+' Term}*"})
	doc.AddProduction("Term", []string{"ICON"})
	doc.AddProduction("Term", []string{"NAME", "Args?"})
	doc.AddProduction("Args", []string{"'('", "Expr+", "')'"})
	doc.AddProduction("Stmt", []string{"if", "Expr", "Dop"})
	doc.AddProduction("Stmt", []string{"ε"})
	return doc
}

// methods parses source and returns the names of the Parser methods.
func methods(t *testing.T, source []byte) []string {
	t.Helper()

	file, err := parser.ParseFile(gotoken.NewFileSet(), "parser.go", source, 0)
	require.NoError(t, err)

	var names []string
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv != nil {
			names = append(names, fn.Name.Name)
		}
	}
	return names
}

func TestGenerate(t *testing.T) {
	result, err := Generate(sampleDocument(), Options{Package: "lexer"})
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)
	assert.Equal(t, "Expr", result.Start)

	text := string(result.Source)
	assert.True(t, strings.HasPrefix(text, "// Code generated by fortgrammar parser. DO NOT EDIT."))
	assert.Contains(t, text, "package lexer")
	assert.Contains(t, text, "return p.parseExpr() && p.atEnd()")

	assert.Contains(t, text, "p.parseTerm() && p.many(func() bool { return p.match(\"PLUS\") && p.parseTerm() })")
	assert.Contains(t, text, "p.match(\"ICON\")")
	assert.Contains(t, text, "p.match(\"NAME\") && p.optional(func() bool { return p.parseArgs() })")
	assert.Contains(t, text, "p.many1(func() bool { return p.parseExpr() })")
	assert.Contains(t, text, "p.match(\"IF\") && p.parseExpr() && p.match(\"ICON\", \"HCON\", \"FCON\", \"SP\", \"PCON\", \"RDCON\", \"BCON\", \"OCON\", \"ZCON\")")
	assert.Contains(t, text, "p.try(func() bool { return true })")

	names := methods(t, result.Source)
	for _, name := range []string{"Parse", "Pos", "parseExpr", "parseTerm", "parseArgs", "parseStmt", "match", "try", "many", "many1", "optional", "enter", "leave"} {
		assert.Contains(t, names, name)
	}
}

func TestGenerateStartRule(t *testing.T) {
	result, err := Generate(sampleDocument(), Options{Package: "lexer", Start: "Stmt"})
	require.NoError(t, err)
	assert.Contains(t, string(result.Source), "return p.parseStmt() && p.atEnd()")

	_, err = Generate(sampleDocument(), Options{Package: "lexer", Start: "program"})
	assert.ErrorContains(t, err, `start rule "program" is not defined`)
}

func TestGenerateSkipsUnparsableProduction(t *testing.T) {
	doc := document.New()
	doc.AddProduction("list", []string{"{a", "b"})
	doc.AddProduction("list", []string{"a"})

	result, err := Generate(doc, Options{Package: "lexer"})
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, errors.ErrorUnparsableProduction, result.Diagnostics[0].Code)
	assert.Equal(t, "production 1 of rule 'list' cannot be parsed", result.Diagnostics[0].Message)

	assert.Contains(t, string(result.Source), "return p.try(func() bool { return p.match(\"A\") })")
}

func TestGenerateRuleWithoutProductions(t *testing.T) {
	doc := document.New()
	doc.AddProduction("broken", []string{"{a"})

	result, err := Generate(doc, Options{Package: "lexer"})
	require.NoError(t, err)
	assert.Len(t, result.Diagnostics, 1)
	assert.Contains(t, methods(t, result.Source), "parsebroken")
}

func TestGenerateEmptyDocument(t *testing.T) {
	_, err := Generate(document.New(), Options{Package: "lexer"})
	assert.ErrorContains(t, err, "grammar has no rules")
}

func TestGenerateRejectsInvalidPackage(t *testing.T) {
	_, err := Generate(sampleDocument(), Options{Package: "not a package"})
	assert.ErrorContains(t, err, "failed to format generated source")
}

func TestFuncNamesAreUnique(t *testing.T) {
	funcs := funcNames([]string{"a-b", "a_b", "x"})
	assert.Equal(t, "parsea_b", funcs["a-b"])
	assert.Equal(t, "parsea_b_2", funcs["a_b"])
	assert.Equal(t, "parsex", funcs["x"])
}

func TestRepetition(t *testing.T) {
	tests := []struct {
		atom   string
		name   string
		suffix byte
	}{
		{"Args?", "Args", '?'},
		{"Expr+", "Expr", '+'},
		{"Item*", "Item", '*'},
		{"Name", "Name", 0},
		{"*", "*", 0},
		{"**", "**", 0},
		{"'+'", "'+'", 0},
	}
	for _, tt := range tests {
		t.Run(tt.atom, func(t *testing.T) {
			name, suffix := Repetition(tt.atom)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.suffix, suffix)
		})
	}
}
