package document

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"
)

// FileName is the base name of the written document, without extension.
const FileName = "grammar_rules"

// Format selects the document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

var log = commonlog.GetLogger("fortgrammar.document")

// ParseFormat accepts "json", "yaml" or "yml", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unsupported document format %q", s)
	}
}

// Encode writes doc to w: JSON and YAML are both indented by four spaces.
func Encode(w io.Writer, doc *GrammarDocument, format Format) error {
	switch format {
	case JSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "    ")
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case YAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(4)
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported document format %q", format)
	}
}

// Decode reads a document from r.
func Decode(r io.Reader, format Format) (*GrammarDocument, error) {
	doc := &GrammarDocument{}

	switch format {
	case JSON:
		if err := json.NewDecoder(r).Decode(doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}

	doc.normalize()
	return doc, nil
}

// Path returns where Write stores a document of the given format in dir.
func Path(dir string, format Format) string {
	return filepath.Join(dir, FileName+"."+string(format))
}

// Write stores doc as <dir>/grammar_rules.<format>, creating dir if needed,
// and returns the written path. An existing file is overwritten in place.
func Write(doc *GrammarDocument, dir string, format Format) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := Path(dir, format)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if err := Encode(file, doc, format); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	log.Infof("wrote %d rules to %s", doc.Rules.Len(), path)
	return path, file.Close()
}

// ReadFile loads a document, picking the format from the file extension.
func ReadFile(path string) (*GrammarDocument, error) {
	format, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	return Decode(file, format)
}
