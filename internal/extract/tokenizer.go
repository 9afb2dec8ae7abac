package extract

import "strings"

const (
	groupOpen  = "{"
	groupClose = "}*"
)

// groupState is the state of the production tokenizer.
type groupState int

const (
	outsideGroup groupState = iota
	insideGroup
)

// Tokenize splits one alternative on single spaces and collapses every
// '{' ... '}*' run into one token. Inside an open group only a token that
// ends with '}*' without starting with '{' closes it. A group still open
// when the alternative ends is not emitted; its text is returned as dropped.
func Tokenize(alternative string) (tokens []string, dropped string) {
	state := outsideGroup
	var group []string

	for _, item := range strings.Split(strings.TrimSpace(alternative), " ") {
		switch state {
		case outsideGroup:
			switch {
			case opensGroup(item) && closesGroup(item):
				tokens = append(tokens, item)
			case opensGroup(item):
				state = insideGroup
				group = append(group[:0], item)
			default:
				tokens = append(tokens, item)
			}
		case insideGroup:
			group = append(group, item)
			// A nested group, even a self-contained one, stays inside the open group.
			if !opensGroup(item) && closesGroup(item) {
				tokens = append(tokens, strings.Join(group, " "))
				group = group[:0]
				state = outsideGroup
			}
		}
	}

	if state == insideGroup {
		dropped = strings.Join(group, " ")
	}
	return tokens, dropped
}

func opensGroup(item string) bool {
	return strings.HasPrefix(item, groupOpen)
}

func closesGroup(item string) bool {
	return strings.HasSuffix(item, groupClose)
}
