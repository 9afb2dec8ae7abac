package tokengen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fortgrammar/internal/document"
)

// declared parses source and returns its constant names and Keywords map entries.
func declared(t *testing.T, source []byte) (consts []string, keywords map[string]string) {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), "tokens.go", source, 0)
	require.NoError(t, err)

	keywords = make(map[string]string)
	ast.Inspect(file, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.ValueSpec:
			for _, name := range node.Names {
				if name.Name != "Keywords" {
					consts = append(consts, name.Name)
				}
			}
		case *ast.KeyValueExpr:
			key := node.Key.(*ast.BasicLit).Value
			keywords[strings.Trim(key, `"`)] = node.Value.(*ast.Ident).Name
		}
		return true
	})
	return consts, keywords
}

func TestGenerate(t *testing.T) {
	doc := document.New()
	doc.TerminalSymbols = []string{"ICON", `"SCON"`, "'('", "ICON"}
	doc.Keywords = []string{"allocatable", `"if"`, "IF"}

	source, err := Generate(doc, "lexer")
	require.NoError(t, err)

	text := string(source)
	assert.True(t, strings.HasPrefix(text, "// Code generated by fortgrammar tokens. DO NOT EDIT."))
	assert.Contains(t, text, "package lexer")

	consts, keywords := declared(t, source)
	assert.Equal(t, []string{"ILLEGAL", "EOF", "IDENT", "ICON", "SCON", "LPAREN"}, consts[:6])

	count := make(map[string]int)
	for _, c := range consts {
		count[c]++
	}
	for name, n := range count {
		assert.Equal(t, 1, n, name)
	}
	assert.Contains(t, consts, "STAR_STAR")
	assert.Contains(t, consts, "FMT_EQUAL")
	assert.Contains(t, consts, "ALLOCATABLE")

	assert.Equal(t, map[string]string{"allocatable": "ALLOCATABLE", "if": "IF"}, keywords)
}

func TestGenerateEmptyDocument(t *testing.T) {
	source, err := Generate(document.New(), "tokens")
	require.NoError(t, err)

	consts, keywords := declared(t, source)
	assert.Equal(t, []string{"ILLEGAL", "EOF", "IDENT"}, consts[:3])
	assert.Empty(t, keywords)
}

func TestGenerateRejectsInvalidPackage(t *testing.T) {
	_, err := Generate(document.New(), "not a package")
	assert.Error(t, err)
}
