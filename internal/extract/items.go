package extract

import "strings"

const (
	terminalMarker   = "terminal symbols:"
	bottomMarker     = "bottom"
	keywordsMarker   = "keywords ("
	keywordsEndMatch = "), "
)

// ItemLists is what the list items of the page contribute to the document.
type ItemLists struct {
	TerminalSymbols []string
	BottomRules     []string
	Keywords        []string
}

// ScanItems applies the three marker patterns to every item independently.
// Keyword collection starts at an item containing "keywords (" and carries
// over to the following items until a span containing "), " ends it; that
// span and the remaining spans of its item are not collected.
func ScanItems(items []ListItem) ItemLists {
	lists := ItemLists{
		TerminalSymbols: []string{},
		BottomRules:     []string{},
		Keywords:        []string{},
	}
	collecting := false

	for _, item := range items {
		if strings.Contains(item.Text, terminalMarker) {
			lists.TerminalSymbols = append(lists.TerminalSymbols, item.TerminalSpans...)
		}
		if strings.Contains(item.Text, bottomMarker) {
			lists.BottomRules = append(lists.BottomRules, item.BottomCodes...)
		}
		if strings.Contains(item.Text, keywordsMarker) {
			collecting = true
		}
		if !collecting {
			continue
		}
		for _, span := range item.Spans {
			if strings.Contains(span, keywordsEndMatch) {
				collecting = false
				break
			}
			lists.Keywords = append(lists.Keywords, span)
		}
	}

	return lists
}
