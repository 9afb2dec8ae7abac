package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultSourceURL, cfg.Source.URL)
	assert.Equal(t, 30*time.Second, cfg.Source.Timeout)
	assert.Equal(t, ".", cfg.Output.Path)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 432, cfg.Extract.ExpectedRuleCount)
	assert.False(t, cfg.Extract.FailOnMismatch)
	assert.Equal(t, "python3", cfg.Linter.Python)
	assert.Equal(t, "fortran-linter", cfg.Linter.Package)
	assert.Equal(t, "fortran_linter", cfg.Linter.Module)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FORTGRAMMAR_EXPECTED_RULE_COUNT", "10")
	t.Setenv("FORTGRAMMAR_FAIL_ON_MISMATCH", "true")
	t.Setenv("FORTGRAMMAR_OUTPUT_PATH", "/tmp/out")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Extract.ExpectedRuleCount)
	assert.True(t, cfg.Extract.FailOnMismatch)
	assert.Equal(t, "/tmp/out", cfg.Output.Path)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fortgrammar.yaml")
	content := `source:
  url: https://example.org/grammar.html
  timeout: 5s
output:
  path: out
  format: yaml
extract:
  expected_rule_count: 12
  fail_on_mismatch: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.org/grammar.html", cfg.Source.URL)
	assert.Equal(t, 5*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "out", cfg.Output.Path)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, 12, cfg.Extract.ExpectedRuleCount)
	assert.True(t, cfg.Extract.FailOnMismatch)
	assert.Equal(t, "python3", cfg.Linter.Python)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Source:  SourceConfig{URL: DefaultSourceURL},
		Output:  OutputConfig{Format: "xml"},
		Extract: ExtractConfig{ExpectedRuleCount: 432},
	}
	assert.Error(t, cfg.Validate())

	cfg.Output.Format = "json"
	assert.NoError(t, cfg.Validate())

	cfg.Source.URL = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsZeroRuleCount(t *testing.T) {
	cfg := Config{
		Source:  SourceConfig{URL: DefaultSourceURL},
		Output:  OutputConfig{Format: "json"},
		Extract: ExtractConfig{ExpectedRuleCount: 0},
	}
	assert.Error(t, cfg.Validate())

	t.Setenv("FORTGRAMMAR_EXPECTED_RULE_COUNT", "0")
	_, err := Load("")
	assert.Error(t, err)
}
