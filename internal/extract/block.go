package extract

import (
	"fmt"
	"strings"
)

var (
	errNoDelimiter = fmt.Errorf("%w: no '::=' delimiter", ErrMalformedBlock)
	errNoRuleName  = fmt.Errorf("%w: no rule name", ErrMalformedBlock)
)

const (
	ruleDelimiter        = "::="
	alternativeSeparator = "\n\t"
)

// RawBlock is one preformatted grammar block split into its rule name and
// alternatives.
type RawBlock struct {
	Index        int // 1-based position on the page
	Name         string
	Alternatives []string
}

// ParseBlock splits a block's text on '::='. The left side is the rule name;
// the first piece after the delimiter holds the alternatives, one per line
// break followed by a tab.
func ParseBlock(index int, text string) (RawBlock, error) {
	parts := strings.Split(text, ruleDelimiter)
	if len(parts) < 2 {
		return RawBlock{}, errNoDelimiter
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return RawBlock{}, errNoRuleName
	}

	// The HTML parser folds \r\n into \n; raw text may still carry either form.
	body := strings.ReplaceAll(parts[1], "\r\n", "\n")
	body = strings.TrimSpace(body)

	return RawBlock{
		Index:        index,
		Name:         name,
		Alternatives: strings.Split(body, alternativeSeparator),
	}, nil
}
