// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"fortgrammar/grammar"
	"fortgrammar/internal/extract"
)

const PROMPT = ">> "

// Start reads one production per line, either a bare body such as
// "a b {c d}* e" or a whole rule "name ::= body", and prints its tokens and
// group structure. It returns when in is exhausted.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		evaluate(line, out)
	}
}

func evaluate(line string, out io.Writer) {
	body := line
	if strings.Contains(line, "::=") {
		block, err := extract.ParseBlock(1, line)
		if err != nil {
			fmt.Fprintln(out, color.RedString("%s", err))
			return
		}
		fmt.Fprintf(out, "rule: %s\n", block.Name)
		body = strings.Join(block.Alternatives, " ")
	}

	tokens, dropped := extract.Tokenize(body)
	fmt.Fprintf(out, "tokens: %q\n", tokens)
	if dropped != "" {
		fmt.Fprintln(out, color.YellowString("dropped unterminated group: %q", dropped))
	}

	production, err := grammar.ParseProduction(tokens)
	if err != nil {
		fmt.Fprintln(out, color.RedString("%s", grammar.FormatParseError(strings.Join(tokens, " "), err)))
		return
	}
	fmt.Fprint(out, production.Tree())
}
