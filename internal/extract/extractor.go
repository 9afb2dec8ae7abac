// Package extract turns the HTML grammar reference page into a grammar document.
package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/net/html"

	"fortgrammar/internal/document"
	"fortgrammar/internal/errors"
)

// DefaultExpectedRuleCount is the number of grammar blocks on the Fortran 90 page.
const DefaultExpectedRuleCount = 432

// Options controls the page-level sanity checks.
type Options struct {
	// ExpectedRuleCount is the number of <pre> blocks the page must have.
	// The zero value selects DefaultExpectedRuleCount.
	ExpectedRuleCount int
	// FailOnMismatch turns error-level diagnostics into a returned error.
	FailOnMismatch bool
}

// Result is everything one extraction run produced.
type Result struct {
	Document    *document.GrammarDocument
	BlockCount  int
	Blocks      []string
	Diagnostics []errors.Diagnostic
}

// Extractor runs one pass over a page.
type Extractor struct {
	options Options
	adapter PageAdapter
	log     commonlog.Logger
}

// NewExtractor creates an extractor for the zoo page format.
func NewExtractor(options Options) *Extractor {
	return NewExtractorWithAdapter(options, ZooPage{})
}

// NewExtractorWithAdapter creates an extractor reading the page through adapter.
func NewExtractorWithAdapter(options Options, adapter PageAdapter) *Extractor {
	if options.ExpectedRuleCount == 0 {
		options.ExpectedRuleCount = DefaultExpectedRuleCount
	}
	return &Extractor{
		options: options,
		adapter: adapter,
		log:     commonlog.GetLogger("fortgrammar.extract"),
	}
}

// ExtractRules parses an HTML string with the default page adapter.
func ExtractRules(content string, options Options) (*Result, error) {
	return NewExtractor(options).Extract(strings.NewReader(content))
}

// Extract builds the grammar document from the page read from r. The document
// is always returned; the error is non-nil only when the page cannot be read
// or, with FailOnMismatch, when an error-level diagnostic was raised.
func (e *Extractor) Extract(r io.Reader) (*Result, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	blocks := e.adapter.Blocks(root)
	result := &Result{
		Document:   document.New(),
		BlockCount: len(blocks),
		Blocks:     blocks,
	}

	for i, text := range blocks {
		e.addBlock(result, i+1, text)
	}

	if productions, ok := result.Document.Rules.Delete(document.TerminalSymbolsRule); ok {
		e.log.Debugf("dropped %d productions of %s", len(productions), document.TerminalSymbolsRule)
	}

	lists := ScanItems(e.adapter.Items(root))
	result.Document.TerminalSymbols = lists.TerminalSymbols
	result.Document.BottomRules = lists.BottomRules
	result.Document.Keywords = lists.Keywords

	if result.BlockCount == 0 {
		result.Diagnostics = append(result.Diagnostics, errors.NoBlocks())
	}
	if result.BlockCount != e.options.ExpectedRuleCount {
		result.Diagnostics = append(result.Diagnostics,
			errors.CountMismatch(e.options.ExpectedRuleCount, result.BlockCount))
	}

	e.log.Infof("extracted %d rules, %d productions from %d blocks",
		result.Document.Rules.Len(), result.Document.ProductionCount(), result.BlockCount)

	if e.options.FailOnMismatch {
		return result, result.err()
	}
	return result, nil
}

func (e *Extractor) addBlock(result *Result, index int, text string) {
	block, err := ParseBlock(index, text)
	if err != nil {
		e.log.Warningf("skipping block %d: %s", index, err)
		result.Diagnostics = append(result.Diagnostics, errors.MalformedBlock(index, err))
		return
	}

	for _, alternative := range block.Alternatives {
		if strings.TrimSpace(alternative) == "" {
			result.Diagnostics = append(result.Diagnostics, errors.EmptyAlternative(index, block.Name))
			continue
		}

		tokens, dropped := Tokenize(alternative)
		if dropped != "" {
			result.Diagnostics = append(result.Diagnostics, errors.UnterminatedGroup(index, block.Name, dropped))
		}
		if len(tokens) == 0 {
			result.Diagnostics = append(result.Diagnostics, errors.EmptyAlternative(index, block.Name))
			continue
		}

		result.Document.AddProduction(block.Name, tokens)
	}
}

// err maps the first error-level diagnostic to its sentinel error.
func (r *Result) err() error {
	for _, d := range r.Diagnostics {
		if d.Level != errors.Error {
			continue
		}
		switch d.Code {
		case errors.ErrorNoBlocks:
			return ErrNoBlocks
		case errors.ErrorCountMismatch:
			return fmt.Errorf("%w: %s", ErrCountMismatch, d.Message)
		case errors.ErrorMalformedBlock:
			return fmt.Errorf("%w in block %d", ErrMalformedBlock, d.Block)
		default:
			return d
		}
	}
	return nil
}
