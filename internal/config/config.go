// Package config loads and validates the project configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hugobch/pdfbook/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
	ErrInvalidMargin  = errors.New("invalid margin")
	ErrMissingSource  = errors.New("config has no source file")
)

// Field length limits.
const (
	MaxTitleLength    = 200
	MaxAuthorLength   = 100
	MaxLanguageLength = 20
	MaxNameLength     = 100 // theme, syntax theme, output filename
	MaxPathLength     = 1024
	MaxTOCTitleLength = 100
)

// Margin bounds in inches.
const (
	MinMargin = 0.0
	MaxMargin = 3.0
)

// Config is the book.yaml schema.
type Config struct {
	Title       string        `yaml:"title"`
	Author      string        `yaml:"author"`
	Language    string        `yaml:"language"`
	Theme       string        `yaml:"theme"`
	SyntaxTheme string        `yaml:"syntax_theme"`
	Source      string        `yaml:"source"`
	CustomCSS   string        `yaml:"custom_css"`
	TOCTitle    string        `yaml:"toc_title"`
	Output      OutputConfig  `yaml:"output"`
	Margins     *MarginConfig `yaml:"margins"`
}

// OutputConfig defines the output filename stem.
type OutputConfig struct {
	Filename string `yaml:"filename"`
}

// MarginConfig holds optional PDF page margins in inches.
type MarginConfig struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
}

// Default returns a configuration with neutral defaults. The zero source
// is "main.md" so a scaffolded project builds without editing.
func Default() *Config {
	return &Config{
		Language:    "en",
		Theme:       "dark",
		SyntaxTheme: "github",
		Source:      "main.md",
		Output:      OutputConfig{Filename: "book"},
	}
}

// Load reads and validates a configuration file. Missing optional fields
// fall back to the Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults refills fields an explicit empty value blanked out.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Language == "" {
		cfg.Language = def.Language
	}
	if cfg.SyntaxTheme == "" {
		cfg.SyntaxTheme = def.SyntaxTheme
	}
	if cfg.Source == "" {
		cfg.Source = def.Source
	}
	if cfg.Output.Filename == "" {
		cfg.Output.Filename = def.Output.Filename
	}
}

// Validate checks field lengths and margin bounds.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"title", c.Title, MaxTitleLength},
		{"author", c.Author, MaxAuthorLength},
		{"language", c.Language, MaxLanguageLength},
		{"theme", c.Theme, MaxNameLength},
		{"syntax_theme", c.SyntaxTheme, MaxNameLength},
		{"source", c.Source, MaxPathLength},
		{"custom_css", c.CustomCSS, MaxPathLength},
		{"toc_title", c.TOCTitle, MaxTOCTitleLength},
		{"output.filename", c.Output.Filename, MaxNameLength},
	}
	for _, check := range checks {
		if len(check.value) > check.max {
			return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, check.field, len(check.value), check.max)
		}
	}

	if c.Source == "" {
		return ErrMissingSource
	}

	if c.Margins != nil {
		margins := map[string]float64{
			"top":    c.Margins.Top,
			"bottom": c.Margins.Bottom,
			"left":   c.Margins.Left,
			"right":  c.Margins.Right,
		}
		for side, v := range margins {
			if v < MinMargin || v > MaxMargin {
				return fmt.Errorf("%w: margins.%s %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, side, v, MinMargin, MaxMargin)
			}
		}
	}

	return nil
}
