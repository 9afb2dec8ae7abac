// Package config loads the tool settings from a YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultSourceURL is the Fortran 90 grammar page of the grammar zoo.
const DefaultSourceURL = "https://slebok.github.io/zoo/fortran/f90/waite-cordy/extracted/index.html"

// Config holds every setting of the tool.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Output  OutputConfig  `yaml:"output"`
	Extract ExtractConfig `yaml:"extract"`
	Linter  LinterConfig  `yaml:"linter"`
	Log     LogConfig     `yaml:"log"`
}

type SourceConfig struct {
	URL     string        `yaml:"url"     env:"FORTGRAMMAR_SOURCE_URL"     env-default:"https://slebok.github.io/zoo/fortran/f90/waite-cordy/extracted/index.html"`
	Timeout time.Duration `yaml:"timeout" env:"FORTGRAMMAR_SOURCE_TIMEOUT" env-default:"30s"`
}

type OutputConfig struct {
	Path   string `yaml:"path"   env:"FORTGRAMMAR_OUTPUT_PATH"   env-default:"."`
	Format string `yaml:"format" env:"FORTGRAMMAR_OUTPUT_FORMAT" env-default:"json"`
}

type ExtractConfig struct {
	ExpectedRuleCount int  `yaml:"expected_rule_count" env:"FORTGRAMMAR_EXPECTED_RULE_COUNT" env-default:"432"`
	FailOnMismatch    bool `yaml:"fail_on_mismatch"    env:"FORTGRAMMAR_FAIL_ON_MISMATCH"`
}

type LinterConfig struct {
	Python  string `yaml:"python"  env:"FORTGRAMMAR_PYTHON"        env-default:"python3"`
	Package string `yaml:"package" env:"FORTGRAMMAR_LINTER_PACKAGE" env-default:"fortran-linter"`
	Module  string `yaml:"module"  env:"FORTGRAMMAR_LINTER_MODULE"  env-default:"fortran_linter"`
	Binary  string `yaml:"binary"  env:"FORTGRAMMAR_LINTER_BINARY"  env-default:"fortran-linter"`
}

type LogConfig struct {
	Verbosity int    `yaml:"verbosity" env:"FORTGRAMMAR_LOG_VERBOSITY" env-default:"0"`
	File      string `yaml:"file"      env:"FORTGRAMMAR_LOG_FILE"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags). An empty path reads
// the environment only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the tool cannot work with.
func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return fmt.Errorf("config: source.url is empty")
	}
	if c.Extract.ExpectedRuleCount <= 0 {
		return fmt.Errorf("config: extract.expected_rule_count must be positive")
	}
	switch c.Output.Format {
	case "json", "yaml", "yml":
	default:
		return fmt.Errorf("config: unsupported output.format %q", c.Output.Format)
	}
	return nil
}
