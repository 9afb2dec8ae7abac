// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"fortgrammar/internal/config"
)

const usage = `Usage: fortgrammar <command> [flags]

Commands:
  extract         scrape the grammar page and write grammar_rules.json
  check           verify that every symbol of a grammar document is defined
  tokens          generate the Go token table of a grammar document
  parser          generate a Go recognizer of a grammar document
  repl            tokenize productions interactively
  install-linter  install and verify the Fortran linter
  lint <file>     run the Fortran linter on a source file
`

type command func(ctx context.Context, args []string, env *environment) int

var commands = map[string]command{
	"extract":        runExtract,
	"check":          runCheck,
	"tokens":         runTokens,
	"parser":         runParser,
	"repl":           runRepl,
	"install-linter": runInstallLinter,
	"lint":           runLint,
}

// environment carries the process streams so commands can be tested.
type environment struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], &environment{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr})
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, env *environment) int {
	if len(args) < 1 {
		fmt.Fprint(env.stderr, usage)
		return 1
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(env.stderr, "unknown command %q\n\n%s", args[0], usage)
		return 1
	}
	return cmd(ctx, args[1:], env)
}

// loadConfig reads the configuration and sets up logging from it.
func loadConfig(path string, env *environment) (*config.Config, bool) {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(env.stderr, "failed to load configuration: %v\n", err)
		return nil, false
	}

	var logFile *string
	if cfg.Log.File != "" {
		logFile = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, logFile)
	return cfg, true
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
