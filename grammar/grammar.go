package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Production is one alternative of a rule: a sequence of symbols and
// repeat groups.
type Production struct {
	Pos   lexer.Position
	Terms []*Term `parser:"@@*"`
}

type Term struct {
	Pos   lexer.Position
	Group *Group  `parser:"  @@"`
	Atom  *string `parser:"| @Atom"`
}

// Group is a "{ ... }*" construct, repeated zero or more times.
type Group struct {
	Pos   lexer.Position
	Terms []*Term `parser:"\"{\" @@* \"}*\""`
}

// Atoms returns every symbol of the production in order, groups flattened.
func (p *Production) Atoms() []string {
	return atoms(p.Terms, nil)
}

// Groups returns the number of repeat groups, nested ones included.
func (p *Production) Groups() int {
	return groups(p.Terms)
}

func atoms(terms []*Term, out []string) []string {
	for _, t := range terms {
		if t.Atom != nil {
			out = append(out, *t.Atom)
		} else if t.Group != nil {
			out = atoms(t.Group.Terms, out)
		}
	}
	return out
}

func groups(terms []*Term) int {
	n := 0
	for _, t := range terms {
		if t.Group != nil {
			n += 1 + groups(t.Group.Terms)
		}
	}
	return n
}
