package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"fortgrammar/internal/check"
	"fortgrammar/internal/document"
	"fortgrammar/internal/errors"
	"fortgrammar/internal/linter"
	"fortgrammar/internal/parsergen"
	"fortgrammar/internal/tokengen"
	"fortgrammar/repl"
)

func defaultDocumentPath() string {
	return document.FileName + ".json"
}

func runCheck(_ context.Context, args []string, env *environment) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	in := fs.String("in", defaultDocumentPath(), "grammar document to check")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if _, ok := loadConfig(*configPath, env); !ok {
		return 1
	}

	startTime := time.Now()
	doc, err := document.ReadFile(*in)
	if err != nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}

	report := check.Check(doc)
	errors.NewErrorReporter(*in, nil).Report(env.stderr, report.Diagnostics)

	summary := fmt.Sprintf("%d rules, %d productions, %d groups, %d undefined symbols",
		report.Rules, report.Productions, report.Groups, len(report.Undefined))
	duration := formatDuration(time.Since(startTime))

	if errors.HasErrors(report.Diagnostics) {
		fmt.Fprintln(env.stdout, color.RedString("Check failed after %s: %s", duration, summary))
		return 1
	}
	if !report.OK() {
		fmt.Fprintln(env.stdout, color.YellowString("Checked %s in %s: %s", *in, duration, summary))
		return 0
	}
	fmt.Fprintln(env.stdout, color.GreenString("Checked %s in %s: %s", *in, duration, summary))
	return 0
}

func runTokens(_ context.Context, args []string, env *environment) int {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	in := fs.String("in", defaultDocumentPath(), "grammar document")
	pkg := fs.String("pkg", "lexer", "package name of the generated file")
	out := fs.String("o", "", "output file, standard output when empty")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if _, ok := loadConfig(*configPath, env); !ok {
		return 1
	}

	doc, err := document.ReadFile(*in)
	if err != nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}

	source, err := tokengen.Generate(doc, *pkg)
	if err != nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}

	if *out == "" {
		_, err = env.stdout.Write(source)
	} else {
		err = os.WriteFile(*out, source, 0o644)
	}
	if err != nil {
		fmt.Fprintf(env.stderr, "failed to write tokens: %v\n", err)
		return 1
	}
	return 0
}

func runParser(_ context.Context, args []string, env *environment) int {
	fs := flag.NewFlagSet("parser", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	in := fs.String("in", defaultDocumentPath(), "grammar document")
	pkg := fs.String("pkg", "lexer", "package name of the generated file")
	start := fs.String("start", "", "start rule, the first rule when empty")
	out := fs.String("o", "", "output file, standard output when empty")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if _, ok := loadConfig(*configPath, env); !ok {
		return 1
	}

	doc, err := document.ReadFile(*in)
	if err != nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}

	result, err := parsergen.Generate(doc, parsergen.Options{Package: *pkg, Start: *start})
	if err != nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}
	errors.NewErrorReporter(*in, nil).Report(env.stderr, result.Diagnostics)

	if *out == "" {
		_, err = env.stdout.Write(result.Source)
	} else {
		err = os.WriteFile(*out, result.Source, 0o644)
	}
	if err != nil {
		fmt.Fprintf(env.stderr, "failed to write parser: %v\n", err)
		return 1
	}
	if len(result.Diagnostics) > 0 {
		fmt.Fprintln(env.stderr, color.YellowString("Skipped %d productions that cannot be parsed", len(result.Diagnostics)))
	}
	return 0
}

func runRepl(_ context.Context, args []string, env *environment) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if _, ok := loadConfig(*configPath, env); !ok {
		return 1
	}

	fmt.Fprintln(env.stdout, "Type a production, or a rule with '::=', one per line.")
	repl.Start(env.stdin, env.stdout)
	return 0
}

func newInstaller(configPath string, env *environment) (*linter.Installer, bool) {
	cfg, ok := loadConfig(configPath, env)
	if !ok {
		return nil, false
	}
	return linter.NewInstaller(linter.Settings{
		Python:  cfg.Linter.Python,
		Package: cfg.Linter.Package,
		Module:  cfg.Linter.Module,
		Binary:  cfg.Linter.Binary,
	}, nil, env.stdout), true
}

func runInstallLinter(ctx context.Context, args []string, env *environment) int {
	fs := flag.NewFlagSet("install-linter", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	installer, ok := newInstaller(*configPath, env)
	if !ok {
		return 1
	}
	if err := installer.Install(ctx); err != nil {
		fmt.Fprintln(env.stderr, err)
	}
	if !installer.Verify(ctx) {
		return 1
	}
	return 0
}

func runLint(ctx context.Context, args []string, env *environment) int {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(env.stderr, "Usage: fortgrammar lint <file.f90>")
		return 1
	}

	installer, ok := newInstaller(*configPath, env)
	if !ok {
		return 1
	}

	output, err := installer.Lint(ctx, fs.Arg(0))
	if output != "" {
		fmt.Fprintln(env.stdout, output)
	}
	if err != nil {
		fmt.Fprintln(env.stderr, color.RedString("%v", err))
		return 1
	}
	return 0
}
