package grammar

import (
	"fmt"
	"strings"
)

func indent(level int) string {
	return strings.Repeat("    ", level)
}

// String renders the production back in the page notation.
func (p *Production) String() string {
	return termsString(p.Terms)
}

func (g *Group) String() string {
	return "{" + termsString(g.Terms) + "}*"
}

func (t *Term) String() string {
	if t.Group != nil {
		return t.Group.String()
	}
	if t.Atom != nil {
		return *t.Atom
	}
	return ""
}

func termsString(terms []*Term) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, " ")
}

// Tree renders the production one term per line, groups indented.
func (p *Production) Tree() string {
	var b strings.Builder
	b.WriteString("production\n")
	writeTerms(&b, p.Terms, 1)
	return b.String()
}

func writeTerms(b *strings.Builder, terms []*Term, level int) {
	for _, t := range terms {
		switch {
		case t.Group != nil:
			b.WriteString(fmt.Sprintf("%sgroup {}*\n", indent(level)))
			writeTerms(b, t.Group.Terms, level+1)
		case t.Atom != nil:
			b.WriteString(fmt.Sprintf("%s%s\n", indent(level), *t.Atom))
		}
	}
}
