// Package tokengen writes the Go token table of a grammar document: a
// TokenType constant per terminal symbol and special character, and the
// reserved keyword lookup.
package tokengen

import (
	"slices"
	"strings"

	"fortgrammar/internal/codegen"
	"fortgrammar/internal/document"
	"fortgrammar/token"
)

type Generator struct {
	w    *codegen.Writer
	seen map[token.TokenType]bool
}

func NewGenerator() *Generator {
	return &Generator{
		w:    codegen.NewWriter(),
		seen: make(map[token.TokenType]bool),
	}
}

// Generate returns the gofmt'ed source of package pkg for doc.
func Generate(doc *document.GrammarDocument, pkg string) ([]byte, error) {
	g := NewGenerator()
	g.generate(doc, pkg)
	return g.w.Source()
}

// constant writes one TokenType constant unless the name was already emitted.
func (g *Generator) constant(name token.TokenType) {
	if g.seen[name] {
		return
	}
	g.seen[name] = true
	g.w.Line("%s TokenType = %q", name, string(name))
}

func (g *Generator) generate(doc *document.GrammarDocument, pkg string) {
	w := g.w
	w.Line("// Code generated by fortgrammar tokens. DO NOT EDIT.")
	w.Line("")
	w.Line("package %s", pkg)
	w.Line("")
	w.Line("import \"strings\"")
	w.Line("")
	w.Line("type TokenType string")
	w.Line("")

	w.Line("const (")
	w.Indent()
	g.constant(token.ILLEGAL)
	g.constant(token.EOF)
	g.constant("IDENT")

	if len(doc.TerminalSymbols) > 0 {
		w.Line("")
		w.Line("// Terminal symbols")
		for _, symbol := range doc.TerminalSymbols {
			g.constant(token.Name(symbol))
		}
	}

	w.Line("")
	w.Line("// Special characters")
	for _, name := range specialNames() {
		g.constant(name)
	}

	keywords := keywordNames(doc.Keywords)
	if len(keywords) > 0 {
		w.Line("")
		w.Line("// Reserved keywords")
		for _, kw := range keywords {
			g.constant(kw.name)
		}
	}
	w.Dedent()
	w.Line(")")
	w.Line("")

	w.Line("// Keywords maps a lower-case reserved keyword to its token type.")
	w.Line("var Keywords = map[string]TokenType{")
	w.Indent()
	for _, kw := range keywords {
		w.Line("%q: %s,", kw.word, kw.name)
	}
	w.Dedent()
	w.Line("}")
	w.Line("")

	w.Line("// LookupIdent returns the keyword token type of ident, or IDENT.")
	w.Line("func LookupIdent(ident string) TokenType {")
	w.Indent()
	w.Line("if tok, ok := Keywords[strings.ToLower(ident)]; ok {")
	w.Indent()
	w.Line("return tok")
	w.Dedent()
	w.Line("}")
	w.Line("return IDENT")
	w.Dedent()
	w.Line("}")
}

func specialNames() []token.TokenType {
	var names []token.TokenType
	for _, name := range token.Specials() {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

type keyword struct {
	word string
	name token.TokenType
}

// keywordNames strips quotes, folds case and drops duplicates, keeping the
// document order.
func keywordNames(words []string) []keyword {
	var out []keyword
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		word := strings.ToLower(token.Normalize(w))
		if word == "" || seen[word] {
			continue
		}
		seen[word] = true
		out = append(out, keyword{word: word, name: token.Name(word)})
	}
	return out
}
