package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"fortgrammar/internal/document"
	"fortgrammar/internal/errors"
	"fortgrammar/internal/extract"
	"fortgrammar/internal/fetch"
)

func runExtract(ctx context.Context, args []string, env *environment) int {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	url := fs.String("url", "", "grammar page URL")
	input := fs.String("input", "", "read the page from a local HTML file instead of fetching it")
	out := fs.String("out", "", "output directory")
	format := fs.String("format", "", "output format: json or yaml")
	strict := fs.Bool("strict", false, "fail on a block count mismatch or a malformed block")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, ok := loadConfig(*configPath, env)
	if !ok {
		return 1
	}
	if *url != "" {
		cfg.Source.URL = *url
	}
	if *out != "" {
		cfg.Output.Path = *out
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *strict {
		cfg.Extract.FailOnMismatch = true
	}

	outputFormat, err := document.ParseFormat(cfg.Output.Format)
	if err != nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}

	startTime := time.Now()
	source := cfg.Source.URL
	var content string
	fetchFailed := false

	if *input != "" {
		source = *input
		data, err := os.ReadFile(*input)
		if err != nil {
			fmt.Fprintf(env.stderr, "failed to read file: %v\n", err)
			return 1
		}
		content = string(data)
	} else {
		fetchCtx, cancel := context.WithTimeout(ctx, cfg.Source.Timeout)
		content, err = fetch.NewFetcher(cfg.Source.Timeout).Fetch(fetchCtx, cfg.Source.URL)
		cancel()
		if err != nil {
			fetchFailed = true
			reporter := errors.NewErrorReporter(source, nil)
			reporter.Report(env.stderr, []errors.Diagnostic{errors.FetchFailed(cfg.Source.URL, err)})
			if cfg.Extract.FailOnMismatch {
				fmt.Fprintln(env.stderr, color.RedString("Extraction failed after %s", formatDuration(time.Since(startTime))))
				return 1
			}
		}
	}

	extractor := extract.NewExtractor(extract.Options{
		ExpectedRuleCount: cfg.Extract.ExpectedRuleCount,
		FailOnMismatch:    cfg.Extract.FailOnMismatch,
	})
	result, err := extractor.Extract(strings.NewReader(content))
	if result == nil {
		fmt.Fprintf(env.stderr, "extraction failed: %v\n", err)
		return 1
	}

	errors.NewErrorReporter(source, result.Blocks).Report(env.stderr, result.Diagnostics)

	if err != nil {
		fmt.Fprintln(env.stderr, color.RedString("Extraction failed after %s: %v", formatDuration(time.Since(startTime)), err))
		return 1
	}

	// An empty document from a failed fetch never replaces an earlier one.
	if fetchFailed {
		existing := document.Path(cfg.Output.Path, outputFormat)
		if _, err := os.Stat(existing); err == nil {
			fmt.Fprintln(env.stderr, color.YellowString("Kept %s: the page could not be fetched", existing))
			return 0
		}
	}

	path, err := document.Write(result.Document, cfg.Output.Path, outputFormat)
	if err != nil {
		fmt.Fprintf(env.stderr, "failed to write grammar: %v\n", err)
		return 1
	}

	fmt.Fprintln(env.stdout, color.GreenString("Wrote %d rules (%d productions) from %d blocks to %s in %s",
		result.Document.Rules.Len(), result.Document.ProductionCount(), result.BlockCount,
		path, formatDuration(time.Since(startTime))))
	return 0
}
