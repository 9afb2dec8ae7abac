package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var ProductionLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Group delimiters (order matters: "}*" before the atom rule)
		{Name: "Close", Pattern: `\}\*`, Action: nil},
		{Name: "Open", Pattern: `\{`, Action: nil},

		// Any other run of non-space characters is a symbol
		{Name: "Atom", Pattern: `[^\s{}]+`, Action: nil},

		// Whitespace
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})
