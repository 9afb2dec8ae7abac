// Package document holds the grammar document produced by the extractor and
// its on-disk encodings.
package document

import (
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// TerminalSymbolsRule is the reserved block name whose productions are not
// real productions.
const TerminalSymbolsRule = "terminal_symbols"

// Production is one alternative of a rule.
type Production struct {
	Production []string `json:"production" yaml:"production"`
}

// Rules maps a rule name to its productions in encounter order.
type Rules = orderedmap.OrderedMap[string, []Production]

// GrammarDocument is the extractor output. Field order is the serialized key order.
type GrammarDocument struct {
	TerminalSymbols []string `json:"terminal_symbols" yaml:"terminal_symbols"`
	Rules           *Rules   `json:"rules" yaml:"rules"`
	BottomRules     []string `json:"bottom_rules" yaml:"bottom_rules"`
	Keywords        []string `json:"keywords" yaml:"keywords"`
}

// New returns an empty document whose lists encode as [] rather than null.
func New() *GrammarDocument {
	return &GrammarDocument{
		TerminalSymbols: []string{},
		Rules:           orderedmap.New[string, []Production](),
		BottomRules:     []string{},
		Keywords:        []string{},
	}
}

// AddProduction appends tokens to the rule, creating it on first use.
func (d *GrammarDocument) AddProduction(rule string, tokens []string) {
	productions, _ := d.Rules.Get(rule)
	d.Rules.Set(rule, append(productions, Production{Production: tokens}))
}

// Productions returns the productions of a rule, or nil.
func (d *GrammarDocument) Productions(rule string) []Production {
	productions, _ := d.Rules.Get(rule)
	return productions
}

// RuleNames returns the rule names in encounter order.
func (d *GrammarDocument) RuleNames() []string {
	names := make([]string, 0, d.Rules.Len())
	for pair := d.Rules.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// ProductionCount returns the number of productions across all rules.
func (d *GrammarDocument) ProductionCount() int {
	count := 0
	for pair := d.Rules.Oldest(); pair != nil; pair = pair.Next() {
		count += len(pair.Value)
	}
	return count
}

// normalize replaces nil parts left by a decoder with empty ones.
func (d *GrammarDocument) normalize() {
	if d.TerminalSymbols == nil {
		d.TerminalSymbols = []string{}
	}
	if d.Rules == nil {
		d.Rules = orderedmap.New[string, []Production]()
	}
	if d.BottomRules == nil {
		d.BottomRules = []string{}
	}
	if d.Keywords == nil {
		d.Keywords = []string{}
	}
}

// Equal compares two documents value by value. Rule order is ignored.
func Equal(a, b *GrammarDocument) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !slices.Equal(a.TerminalSymbols, b.TerminalSymbols) ||
		!slices.Equal(a.BottomRules, b.BottomRules) ||
		!slices.Equal(a.Keywords, b.Keywords) {
		return false
	}
	if a.Rules.Len() != b.Rules.Len() {
		return false
	}
	for pair := a.Rules.Oldest(); pair != nil; pair = pair.Next() {
		other, ok := b.Rules.Get(pair.Key)
		if !ok || len(other) != len(pair.Value) {
			return false
		}
		for i := range pair.Value {
			if !slices.Equal(pair.Value[i].Production, other[i].Production) {
				return false
			}
		}
	}
	return true
}
