// Package token SPDX-License-Identifier: Apache-2.0
package token

import (
	"strings"
	"unicode"
)

type TokenType string

type Token struct {
	Type    TokenType
	Literal string
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Placeholder for the empty production
	EPSILON = "EPSILON"
)

// Epsilon is the symbol the grammar uses for an empty production.
const Epsilon = "ε"

// specials maps Fortran operators, delimiters and I/O specifiers to token names.
// Keys are lower case; lookups fold case.
var specials = map[string]TokenType{
	"(":  "LPAREN",
	")":  "RPAREN",
	"(/": "LPAREN_SLASH",
	"/)": "SLASH_RPAREN",
	",":  "COMMA",
	".":  "DOT",
	":":  "COLON",
	"::": "COLON_COLON",
	"=":  "EQUAL",
	"<":  "LESS",
	">":  "GREATER",
	"+":  "PLUS",
	"**": "STAR_STAR",
	"$":  "DOLLAR",
	"-":  "MINUS",
	"_":  "UNDERSCORE",
	"*":  "STAR",
	"/":  "SLASH",
	"%":  "PERCENT",
	"==": "EQUAL_EQUAL",
	"!=": "BANG_EQUAL",
	"<=": "LESS_EQUAL",
	">=": "GREATER_EQUAL",
	"/=": "SLASH_EQUAL",
	"=>": "EQUAL_GREATER",

	// Dotted operators
	".eqv.":   "EQUAL_EQUAL",
	".neqv.":  "BANG_EQUAL",
	".lt.":    "LESS",
	".gt.":    "GREATER",
	".le.":    "LESS_EQUAL",
	".ge.":    "GREATER_EQUAL",
	".and.":   "AND",
	".or.":    "OR",
	".not.":   "NOT",
	".eq.":    "EQUAL_EQUAL",
	".ne.":    "BANG_EQUAL",
	".true.":  "TRUE",
	".false.": "FALSE",

	// I/O control specifiers
	"fmt=":         "FMT_EQUAL",
	"unit=":        "UNIT_EQUAL",
	"rec=":         "REC_EQUAL",
	"end=":         "END_EQUAL",
	"err=":         "ERR_EQUAL",
	"iostat=":      "IOSTAT_EQUAL",
	"file=":        "FILE_EQUAL",
	"status=":      "STATUS_EQUAL",
	"access=":      "ACCESS_EQUAL",
	"form=":        "FORM_EQUAL",
	"recl=":        "RECL_EQUAL",
	"blank=":       "BLANK_EQUAL",
	"exist=":       "EXIST_EQUAL",
	"opened=":      "OPENED_EQUAL",
	"number=":      "NUMBER_EQUAL",
	"named=":       "NAMED_EQUAL",
	"name=":        "NAME_EQUAL",
	"sequential=":  "SEQUENTIAL_EQUAL",
	"direct=":      "DIRECT_EQUAL",
	"formatted=":   "FORMATTED_EQUAL",
	"unformatted=": "UNFORMATTED_EQUAL",
	"nextrec=":     "NEXTREC_EQUAL",
	"position=":    "POSITION_EQUAL",
	"action=":      "ACTION_EQUAL",
	"delim=":       "DELIM_EQUAL",
	"pad=":         "PAD_EQUAL",
	"nml=":         "NML_EQUAL",
	"advance=":     "ADVANCE_EQUAL",
	"size=":        "SIZE_EQUAL",
	"eor=":         "EOR_EQUAL",
	"len=":         "LEN_EQUAL",
	"kind=":        "KIND_EQUAL",
	"sign=":        "SIGN_EQUAL",
	"iolength=":    "IOLENGTH_EQUAL",
	"read=":        "READ_EQUAL",
	"write=":       "WRITE_EQUAL",
	"readwrite=":   "READWRITE_EQUAL",
	"stat=":        "STAT_EQUAL",
}

// Normalize strips double and single quotes and surrounding whitespace.
func Normalize(symbol string) string {
	symbol = strings.ReplaceAll(symbol, `"`, "")
	symbol = strings.TrimSpace(symbol)
	if len(symbol) >= 2 && symbol[0] == '\'' && symbol[len(symbol)-1] == '\'' {
		symbol = symbol[1 : len(symbol)-1]
	}
	return symbol
}

// IsSpecial reports whether symbol is an operator, delimiter or specifier.
func IsSpecial(symbol string) bool {
	_, ok := specials[strings.ToLower(Normalize(symbol))]
	return ok
}

// Name returns the token name of a terminal: the special name when there is
// one, otherwise the upper-cased symbol with non-identifier runes replaced.
func Name(symbol string) TokenType {
	symbol = Normalize(symbol)
	if symbol == Epsilon {
		return EPSILON
	}
	if tok, ok := specials[strings.ToLower(symbol)]; ok {
		return tok
	}
	return TokenType(identifier(strings.ToUpper(symbol)))
}

// Specials returns a copy of the symbol to token name table.
func Specials() map[string]TokenType {
	out := make(map[string]TokenType, len(specials))
	for symbol, tok := range specials {
		out[symbol] = tok
	}
	return out
}

func identifier(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)):
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return ILLEGAL
	}
	return b.String()
}
