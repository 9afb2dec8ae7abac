// Package parsergen writes a Go recognizer for the rules of a grammar
// document: one backtracking function per rule over a token stream whose
// TokenType values come from the tokens generator.
package parsergen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tliron/commonlog"

	"fortgrammar/grammar"
	"fortgrammar/internal/check"
	"fortgrammar/internal/codegen"
	"fortgrammar/internal/document"
	"fortgrammar/internal/errors"
	"fortgrammar/token"
)

// Options selects the package name and the start rule. An empty Start
// selects the first rule of the document.
type Options struct {
	Package string
	Start   string
}

// Result is the generated source and the productions that were left out.
type Result struct {
	Source      []byte
	Start       string
	Diagnostics []errors.Diagnostic
}

// constantGroups stands for the literal constant tokens a lexer emits in
// place of the grammar's spacing and constant placeholders.
var constantGroups = []token.TokenType{"ICON", "HCON", "FCON", "SP", "PCON", "RDCON", "BCON", "OCON", "ZCON"}

var replacements = map[string][]token.TokenType{
	"Dop":   constantGroups,
	"Xcon":  constantGroups,
	"SPOFF": constantGroups,
	"SPON":  constantGroups,
}

type Generator struct {
	w           *codegen.Writer
	symbols     *check.SymbolTable
	funcs       map[string]string
	diagnostics []errors.Diagnostic
	log         commonlog.Logger
}

// Generate writes the recognizer for doc.
func Generate(doc *document.GrammarDocument, options Options) (*Result, error) {
	names := doc.RuleNames()
	if len(names) == 0 {
		return nil, fmt.Errorf("grammar has no rules")
	}

	start := options.Start
	if start == "" {
		start = names[0]
	} else if _, ok := doc.Rules.Get(start); !ok {
		return nil, fmt.Errorf("start rule %q is not defined", start)
	}

	g := &Generator{
		w:       codegen.NewWriter(),
		symbols: check.NewSymbolTable(doc),
		funcs:   funcNames(names),
		log:     commonlog.GetLogger("fortgrammar.parsergen"),
	}

	g.header(options.Package, start)
	for pair := doc.Rules.Oldest(); pair != nil; pair = pair.Next() {
		g.rule(pair.Key, pair.Value)
	}
	g.helpers()

	source, err := g.w.Source()
	if err != nil {
		return nil, err
	}

	g.log.Infof("generated %d rule functions, %d productions skipped", len(names), len(g.diagnostics))
	return &Result{Source: source, Start: start, Diagnostics: g.diagnostics}, nil
}

// funcNames maps each rule to a unique Go method name.
func funcNames(rules []string) map[string]string {
	funcs := make(map[string]string, len(rules))
	used := make(map[string]bool, len(rules))
	for _, rule := range rules {
		name := "parse" + identifier(rule)
		for i := 2; used[name]; i++ {
			name = fmt.Sprintf("parse%s_%d", identifier(rule), i)
		}
		used[name] = true
		funcs[rule] = name
	}
	return funcs
}

func identifier(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func (g *Generator) header(pkg, start string) {
	w := g.w
	w.Line("// Code generated by fortgrammar parser. DO NOT EDIT.")
	w.Line("")
	w.Line("package %s", pkg)
	w.Line("")
	w.Line("// Token is one lexeme handed to the parser.")
	w.Line("type Token struct {")
	w.Indent()
	w.Line("Type    TokenType")
	w.Line("Literal string")
	w.Dedent()
	w.Line("}")
	w.Line("")
	w.Line("type activeKey struct {")
	w.Indent()
	w.Line("rule string")
	w.Line("pos  int")
	w.Dedent()
	w.Line("}")
	w.Line("")
	w.Line("// Parser recognizes a token stream with one backtracking method per rule.")
	w.Line("type Parser struct {")
	w.Indent()
	w.Line("tokens []Token")
	w.Line("pos    int")
	w.Line("active map[activeKey]bool")
	w.Dedent()
	w.Line("}")
	w.Line("")
	w.Line("func NewParser(tokens []Token) *Parser {")
	w.Indent()
	w.Line("return &Parser{tokens: tokens, active: make(map[activeKey]bool)}")
	w.Dedent()
	w.Line("}")
	w.Line("")
	w.Line("// Parse reports whether the whole token stream is a %s.", start)
	w.Line("func (p *Parser) Parse() bool {")
	w.Indent()
	w.Line("p.pos = 0")
	w.Line("return p.%s() && p.atEnd()", g.funcs[start])
	w.Dedent()
	w.Line("}")
	w.Line("")
	w.Line("// Pos returns the index of the first token not consumed.")
	w.Line("func (p *Parser) Pos() int {")
	w.Indent()
	w.Line("return p.pos")
	w.Dedent()
	w.Line("}")
}

func (g *Generator) rule(name string, productions []document.Production) {
	var alternatives []string
	for i, production := range productions {
		parsed, err := grammar.ParseProduction(production.Production)
		if err != nil {
			g.diagnostics = append(g.diagnostics, errors.UnparsableProduction(name, i, err))
			continue
		}
		alternatives = append(alternatives, fmt.Sprintf("p.try(func() bool { return %s })", g.sequence(parsed.Terms)))
	}

	w := g.w
	w.Line("")
	w.Line("func (p *Parser) %s() bool {", g.funcs[name])
	w.Indent()
	w.Line("if !p.enter(%q) {", name)
	w.Indent()
	w.Line("return false")
	w.Dedent()
	w.Line("}")
	w.Line("defer p.leave(%q, p.pos)", name)

	if len(alternatives) == 0 {
		w.Line("return false")
	} else {
		w.Line("return %s", strings.Join(alternatives, " ||\n"))
	}
	w.Dedent()
	w.Line("}")
}

func (g *Generator) sequence(terms []*grammar.Term) string {
	if len(terms) == 0 {
		return "true"
	}
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		parts = append(parts, g.term(t))
	}
	return strings.Join(parts, " && ")
}

func (g *Generator) term(t *grammar.Term) string {
	if t.Group != nil {
		return fmt.Sprintf("p.many(func() bool { return %s })", g.sequence(t.Group.Terms))
	}
	if t.Atom == nil {
		return "true"
	}

	name, suffix := Repetition(*t.Atom)
	expr := g.symbol(name)
	switch suffix {
	case '?':
		return fmt.Sprintf("p.optional(func() bool { return %s })", expr)
	case '+':
		return fmt.Sprintf("p.many1(func() bool { return %s })", expr)
	case '*':
		return fmt.Sprintf("p.many(func() bool { return %s })", expr)
	default:
		return expr
	}
}

// symbol is the expression matching one symbol: a rule call, a token
// match, or true for the empty production.
func (g *Generator) symbol(name string) string {
	kind := g.symbols.Classify(name)

	if types, ok := replacements[name]; ok && kind != check.SymbolRule {
		quoted := make([]string, len(types))
		for i, t := range types {
			quoted[i] = fmt.Sprintf("%q", string(t))
		}
		return fmt.Sprintf("p.match(%s)", strings.Join(quoted, ", "))
	}

	switch kind {
	case check.SymbolRule:
		return fmt.Sprintf("p.%s()", g.funcs[name])
	case check.SymbolEpsilon:
		return "true"
	default:
		return fmt.Sprintf("p.match(%q)", string(token.Name(name)))
	}
}

// Repetition splits a trailing '?', '+' or '*' off a symbol. Operators made
// of those characters, such as "*" or "**", are symbols of their own.
func Repetition(atom string) (string, byte) {
	if len(atom) < 2 || token.IsSpecial(atom) {
		return atom, 0
	}
	switch last := atom[len(atom)-1]; last {
	case '?', '+', '*':
		return atom[:len(atom)-1], last
	}
	return atom, 0
}

func (g *Generator) helpers() {
	for _, block := range helperSource {
		g.w.Line("")
		for _, line := range strings.Split(block, "\n") {
			g.w.Line("%s", line)
		}
	}
}

// helperSource is emitted verbatim after the rule methods; gofmt indents it.
var helperSource = []string{
	`func (p *Parser) atEnd() bool {
return p.pos >= len(p.tokens) || p.tokens[p.pos].Type == "EOF"
}`,
	`// match consumes the next token if it has one of the given types.
func (p *Parser) match(types ...TokenType) bool {
if p.atEnd() {
return false
}
for _, t := range types {
if p.tokens[p.pos].Type == t {
p.pos++
return true
}
}
return false
}`,
	`// try runs f and rewinds when it fails.
func (p *Parser) try(f func() bool) bool {
start := p.pos
if f() {
return true
}
p.pos = start
return false
}`,
	`// many runs f until it fails or stops consuming tokens.
func (p *Parser) many(f func() bool) bool {
for {
start := p.pos
if !p.try(f) || p.pos == start {
return true
}
}
}`,
	`func (p *Parser) many1(f func() bool) bool {
return p.try(f) && p.many(f)
}`,
	`func (p *Parser) optional(f func() bool) bool {
p.try(f)
return true
}`,
	`// enter refuses a rule already being tried at the same position, which
// stops left recursion.
func (p *Parser) enter(rule string) bool {
key := activeKey{rule, p.pos}
if p.active[key] {
return false
}
p.active[key] = true
return true
}`,
	`func (p *Parser) leave(rule string, pos int) {
delete(p.active, activeKey{rule, pos})
}`,
}
