package extract

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ListItem is the part of an <li> element the keyword scanner looks at.
type ListItem struct {
	Text          string   // all descendant text
	TerminalSpans []string // <span class="t"> texts
	BottomCodes   []string // <code class="nt"> texts
	Spans         []string // every <span> text, document order
}

// PageAdapter isolates the markup of the source page from the extraction
// logic: it yields the raw grammar blocks and the list items of a parsed page.
type PageAdapter interface {
	Blocks(doc *html.Node) []string
	Items(doc *html.Node) []ListItem
}

// ZooPage reads the grammar zoo page format: one <pre> per rule and <li>
// items carrying the terminal, bottom and keyword lists.
type ZooPage struct{}

func (ZooPage) Blocks(doc *html.Node) []string {
	var blocks []string
	for _, pre := range findAll(doc, atom.Pre, "") {
		blocks = append(blocks, textOf(pre))
	}
	return blocks
}

func (ZooPage) Items(doc *html.Node) []ListItem {
	var items []ListItem
	for _, li := range findAll(doc, atom.Li, "") {
		item := ListItem{Text: textOf(li)}
		for _, span := range findAll(li.FirstChild, atom.Span, "t") {
			item.TerminalSpans = append(item.TerminalSpans, textOf(span))
		}
		for _, code := range findAll(li.FirstChild, atom.Code, "nt") {
			item.BottomCodes = append(item.BottomCodes, textOf(code))
		}
		for _, span := range findAll(li.FirstChild, atom.Span, "") {
			item.Spans = append(item.Spans, textOf(span))
		}
		items = append(items, item)
	}
	return items
}

// findAll collects, depth first, the elements of the given kind reachable from
// n and its following siblings. An empty class matches any element.
func findAll(n *html.Node, tag atom.Atom, class string) []*html.Node {
	var found []*html.Node
	walk(n, func(nn *html.Node) bool {
		if nn.Type == html.ElementNode && nn.DataAtom == tag && (class == "" || hasClass(nn, class)) {
			found = append(found, nn)
		}
		return true
	})
	return found
}

func walk(n *html.Node, f func(*html.Node) bool) {
	if n == nil {
		return
	}

	if f(n) {
		walk(n.FirstChild, f)
	}

	walk(n.NextSibling, f)
}

// hasClass matches class as one of the whitespace separated values of the
// class attribute.
func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" && slices.Contains(strings.Fields(a.Val), class) {
			return true
		}
	}
	return false
}

// textOf concatenates every text node below n.
func textOf(n *html.Node) string {
	var b strings.Builder
	walk(n.FirstChild, func(nn *html.Node) bool {
		if nn.Type == html.TextNode {
			b.WriteString(nn.Data)
		}
		return true
	})
	return b.String()
}
