package config

import (
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/kvit-s/kvit-hints/internal/document"
	"github.com/kvit-s/kvit-hints/internal/hints"
)

// LogPathEnv overrides log.path when set
const LogPathEnv = "KVIT_HINTS_LOG"

type Config struct {
	Hints    HintsConfig    `yaml:"hints"`
	Document DocumentConfig `yaml:"document"`
	Log      LogConfig      `yaml:"log"`
	Output   OutputConfig   `yaml:"output"`
}

// HintsConfig controls how responses are parsed and validated
type HintsConfig struct {
	Schema               string `yaml:"schema"`                 // "prefix_suffix" (default) or "line_range"
	ShapeErrors          string `yaml:"shape_errors"`           // "fail_batch" (default) or "isolate"
	CoerceNumericStrings bool   `yaml:"coerce_numeric_strings"` // accept "12" for a line number
	PreviewChars         int    `yaml:"preview_chars"`          // clip length for shape error previews (default: 200)
}

// DocumentConfig controls how positions are expressed
type DocumentConfig struct {
	PositionEncoding string `yaml:"position_encoding"` // "utf-16" (default) or "utf-8"
}

// LogConfig configures the structured log file
type LogConfig struct {
	Path        string `yaml:"path"` // empty = logging disabled
	Development bool   `yaml:"development"`
	Level       string `yaml:"level"` // zap level name (default: info)
}

// OutputConfig configures CLI rendering
type OutputConfig struct {
	Format string `yaml:"format"` // "text" (default) or "json"
	Diff   string `yaml:"diff"`   // "none" (default), "unified" or "inline"
	Color  string `yaml:"color"`  // "auto" (default), "always" or "never"
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Hints.Schema == "" {
		c.Hints.Schema = string(hints.SchemaPrefixSuffix)
	}
	if c.Hints.ShapeErrors == "" {
		c.Hints.ShapeErrors = string(hints.ShapeFailBatch)
	}
	if c.Hints.PreviewChars == 0 {
		c.Hints.PreviewChars = hints.DefaultPreviewChars
	}
	if c.Document.PositionEncoding == "" {
		c.Document.PositionEncoding = string(document.EncodingUTF16)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Output.Diff == "" {
		c.Output.Diff = "none"
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
}

// Apply environment overrides
func (c *Config) applyEnv() {
	if path := os.Getenv(LogPathEnv); path != "" {
		c.Log.Path = path
	}
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	if _, err := c.ConverterOptions(); err != nil {
		return err
	}
	if _, err := document.ParseEncoding(c.Document.PositionEncoding); err != nil {
		return fmt.Errorf("document.position_encoding: %w", err)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Hints.PreviewChars < 0 {
		return fmt.Errorf("hints.preview_chars must not be negative, got %d", c.Hints.PreviewChars)
	}
	if err := oneOf("output.format", c.Output.Format, "text", "json"); err != nil {
		return err
	}
	if err := oneOf("output.diff", c.Output.Diff, "none", "unified", "inline"); err != nil {
		return err
	}
	return oneOf("output.color", c.Output.Color, "auto", "always", "never")
}

// ConverterOptions translates the hints section into converter options.
func (c *Config) ConverterOptions() (hints.Options, error) {
	schema, err := hints.ParseSchema(c.Hints.Schema)
	if err != nil {
		return hints.Options{}, fmt.Errorf("hints.schema: %w", err)
	}
	policy, err := hints.ParseShapePolicy(c.Hints.ShapeErrors)
	if err != nil {
		return hints.Options{}, fmt.Errorf("hints.shape_errors: %w", err)
	}
	return hints.Options{
		Schema:               schema,
		ShapeErrors:          policy,
		CoerceNumericStrings: c.Hints.CoerceNumericStrings,
		PreviewChars:         c.Hints.PreviewChars,
	}, nil
}

// Encoding returns the configured position encoding, UTF-16 if invalid.
func (c *Config) Encoding() document.Encoding {
	enc, err := document.ParseEncoding(c.Document.PositionEncoding)
	if err != nil {
		return document.EncodingUTF16
	}
	return enc
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s: unknown value %q (want one of %v)", key, value, allowed)
}
