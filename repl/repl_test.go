package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestStartPrintsTokensAndTree(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader("a b {c d}* e\n"), &out)

	text := out.String()
	assert.Contains(t, text, `tokens: ["a" "b" "{c d}*" "e"]`)
	assert.Contains(t, text, "    group {}*\n        c\n        d\n")
	assert.True(t, strings.HasSuffix(text, PROMPT+"\n"))
}

func TestStartWholeRule(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader("foo ::= x {y}*\n"), &out)

	assert.Contains(t, out.String(), "rule: foo\n")
	assert.Contains(t, out.String(), `tokens: ["x" "{y}*"]`)
}

func TestStartReportsProblems(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader("a {b c\n\nb}*\n ::= x\n"), &out)

	text := out.String()
	assert.Contains(t, text, `dropped unterminated group: "{b c"`)
	assert.Contains(t, text, "Syntax error")
	assert.Contains(t, text, "malformed grammar block")
	assert.Equal(t, 5, strings.Count(text, PROMPT))
}
