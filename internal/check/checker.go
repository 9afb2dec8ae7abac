// Package check verifies that a grammar document is self-consistent: every
// production parses and every symbol it references is defined somewhere.
package check

import (
	"slices"

	"github.com/tliron/commonlog"

	"fortgrammar/grammar"
	"fortgrammar/internal/document"
	"fortgrammar/internal/errors"
)

// Report summarizes one check run.
type Report struct {
	Rules       int
	Productions int
	Groups      int
	Symbols     map[SymbolKind]int
	Undefined   []string
	Diagnostics []errors.Diagnostic
}

// OK reports whether the document has no undefined symbols and no
// unparsable productions.
func (r *Report) OK() bool {
	return len(r.Diagnostics) == 0
}

type Checker struct {
	symbols *SymbolTable
	report  *Report
	seen    map[string]bool
	log     commonlog.Logger
}

// Check runs the checker over doc.
func Check(doc *document.GrammarDocument) *Report {
	c := &Checker{
		symbols: NewSymbolTable(doc),
		report: &Report{
			Rules:   doc.Rules.Len(),
			Symbols: make(map[SymbolKind]int),
		},
		seen: make(map[string]bool),
		log:  commonlog.GetLogger("fortgrammar.check"),
	}

	for pair := doc.Rules.Oldest(); pair != nil; pair = pair.Next() {
		for i, production := range pair.Value {
			c.checkProduction(pair.Key, i, production.Production)
		}
	}

	slices.Sort(c.report.Undefined)
	c.log.Infof("checked %d rules, %d productions: %d undefined symbols",
		c.report.Rules, c.report.Productions, len(c.report.Undefined))
	return c.report
}

func (c *Checker) checkProduction(rule string, index int, tokens []string) {
	c.report.Productions++

	parsed, err := grammar.ParseProduction(tokens)
	if err != nil {
		c.report.Diagnostics = append(c.report.Diagnostics, errors.UnparsableProduction(rule, index, err))
		return
	}
	c.report.Groups += parsed.Groups()

	for _, atom := range parsed.Atoms() {
		kind := c.symbols.Classify(atom)
		c.report.Symbols[kind]++
		if kind != SymbolUndefined {
			continue
		}

		name := StripSuffix(atom)
		key := rule + "\x00" + name
		if c.seen[key] {
			continue
		}
		c.seen[key] = true

		if !slices.Contains(c.report.Undefined, name) {
			c.report.Undefined = append(c.report.Undefined, name)
		}
		c.report.Diagnostics = append(c.report.Diagnostics,
			errors.UndefinedSymbol(rule, name, c.symbols.Names()))
	}
}
