package check

import (
	"slices"
	"strings"

	"fortgrammar/internal/document"
	"fortgrammar/token"
)

type SymbolKind int

const (
	SymbolUndefined SymbolKind = iota
	SymbolRule
	SymbolBottom
	SymbolTerminal
	SymbolKeyword
	SymbolSpecial
	SymbolEpsilon
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolRule:
		return "rule"
	case SymbolBottom:
		return "bottom rule"
	case SymbolTerminal:
		return "terminal"
	case SymbolKeyword:
		return "keyword"
	case SymbolSpecial:
		return "special"
	case SymbolEpsilon:
		return "epsilon"
	default:
		return "undefined"
	}
}

// SymbolTable knows every name a production may reference.
type SymbolTable struct {
	rules     map[string]bool
	bottoms   map[string]bool
	terminals map[string]bool
	keywords  map[string]bool
}

func NewSymbolTable(doc *document.GrammarDocument) *SymbolTable {
	st := &SymbolTable{
		rules:     make(map[string]bool, doc.Rules.Len()),
		bottoms:   make(map[string]bool, len(doc.BottomRules)),
		terminals: make(map[string]bool, len(doc.TerminalSymbols)),
		keywords:  make(map[string]bool, len(doc.Keywords)),
	}
	for _, name := range doc.RuleNames() {
		st.rules[name] = true
	}
	for _, name := range doc.BottomRules {
		st.bottoms[name] = true
	}
	for _, name := range doc.TerminalSymbols {
		st.terminals[token.Normalize(name)] = true
	}
	for _, name := range doc.Keywords {
		st.keywords[strings.ToLower(token.Normalize(name))] = true
	}
	return st
}

// Classify resolves one symbol of a production. A trailing '?' or '+'
// marks an optional or repeated symbol and is ignored.
func (st *SymbolTable) Classify(symbol string) SymbolKind {
	name := StripSuffix(symbol)
	normalized := token.Normalize(name)

	switch {
	case normalized == token.Epsilon:
		return SymbolEpsilon
	case st.rules[name]:
		return SymbolRule
	case st.bottoms[name]:
		return SymbolBottom
	case st.terminals[normalized]:
		return SymbolTerminal
	case st.keywords[strings.ToLower(normalized)]:
		return SymbolKeyword
	case token.IsSpecial(normalized):
		return SymbolSpecial
	default:
		return SymbolUndefined
	}
}

// StripSuffix removes one trailing '?' or '+' from a symbol longer than
// one character.
func StripSuffix(symbol string) string {
	if len(symbol) > 1 && (strings.HasSuffix(symbol, "?") || strings.HasSuffix(symbol, "+")) {
		return symbol[:len(symbol)-1]
	}
	return symbol
}

// Names returns the sorted rule, bottom rule and terminal names used for
// suggestions.
func (st *SymbolTable) Names() []string {
	names := make([]string, 0, len(st.rules)+len(st.bottoms)+len(st.terminals))
	for _, set := range []map[string]bool{st.rules, st.bottoms, st.terminals} {
		for name := range set {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
