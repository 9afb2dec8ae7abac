package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fortgrammar/grammar"
)

func TestParseProduction(t *testing.T) {
	production, err := grammar.ParseProduction([]string{"a", "b", "{c d}*", "e"})
	require.NoError(t, err)

	require.Len(t, production.Terms, 4)
	assert.Equal(t, "a", *production.Terms[0].Atom)
	assert.Equal(t, "b", *production.Terms[1].Atom)
	require.NotNil(t, production.Terms[2].Group)
	assert.Len(t, production.Terms[2].Group.Terms, 2)
	assert.Equal(t, "e", *production.Terms[3].Atom)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, production.Atoms())
	assert.Equal(t, 1, production.Groups())
}

func TestParseNestedGroups(t *testing.T) {
	production, err := grammar.ParseString("{x {y , z}* }* w")
	require.NoError(t, err)

	assert.Equal(t, 2, production.Groups())
	assert.Equal(t, []string{"x", "y", ",", "z", "w"}, production.Atoms())
}

func TestParseOperatorsAndSuffixes(t *testing.T) {
	production, err := grammar.ParseProduction([]string{"'('", "Expr?", "'**'", "Name+", "ε"})
	require.NoError(t, err)
	assert.Equal(t, []string{"'('", "Expr?", "'**'", "Name+", "ε"}, production.Atoms())
}

func TestParseEmptyTokensAreIgnored(t *testing.T) {
	production, err := grammar.ParseProduction([]string{"a", "", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, production.Atoms())
}

func TestParseErrors(t *testing.T) {
	for _, source := range []string{"a {b c", "b}*", "{a {b c}* d"} {
		_, err := grammar.ParseString(source)
		assert.Error(t, err, source)
	}
}

func TestString(t *testing.T) {
	production, err := grammar.ParseString("a   {b  c}* d")
	require.NoError(t, err)
	assert.Equal(t, "a {b c}* d", production.String())
}

func TestTree(t *testing.T) {
	production, err := grammar.ParseString("a {b}*")
	require.NoError(t, err)

	expected := "production\n" +
		"    a\n" +
		"    group {}*\n" +
		"        b\n"
	assert.Equal(t, expected, production.Tree())
}

func TestFormatParseError(t *testing.T) {
	_, err := grammar.ParseString("a b}*")
	require.Error(t, err)

	message := grammar.FormatParseError("a b}*", err)
	assert.Contains(t, message, "Syntax error at column 4")
	assert.Contains(t, message, "   ^")
}
