// Package batch converts every supported document in a directory, with
// per-document failure isolation and a structured run report.
package batch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OCRSettings configures the OCR provider used for scanned pages.
type OCRSettings struct {
	// Languages lists traineddata languages passed to the engine.
	Languages []string `yaml:"languages"`

	// UseGPU is an advisory device hint for engines with GPU support.
	UseGPU bool `yaml:"use_gpu"`
}

// ModelSettings controls where capability-provider models come from.
type ModelSettings struct {
	// UseLocal forces providers to resolve models from CacheDir instead
	// of downloading.
	UseLocal bool `yaml:"use_local"`

	// CacheDir is the local model directory, e.g. a tessdata path.
	CacheDir string `yaml:"cache_dir"`
}

// Config holds batch run configuration, loadable from YAML.
type Config struct {
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`

	// SummarySentences is the number of sentences kept in each summary.
	SummarySentences int `yaml:"summary_sentences"`

	// KeywordsTopN is the number of ranked keywords kept per document.
	KeywordsTopN int `yaml:"keywords_top_n"`

	// Workers is the number of documents converted concurrently.
	// 1 processes sequentially.
	Workers int `yaml:"workers"`

	// ShortTextThreshold is the rune length below which DOCX paragraph
	// fragments merge into the following paragraph.
	ShortTextThreshold int `yaml:"short_text_threshold"`

	OCR    OCRSettings   `yaml:"ocr"`
	Models ModelSettings `yaml:"models"`

	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return Config{
		SummarySentences:   3,
		KeywordsTopN:       10,
		Workers:            1,
		ShortTextThreshold: 20,
		OCR: OCRSettings{
			Languages: []string{"eng"},
		},
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML config file, applying defaults for omitted
// fields.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the orchestrator cannot
// run with.
func (c Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.SummarySentences < 1 {
		return fmt.Errorf("summary_sentences must be at least 1, got %d", c.SummarySentences)
	}
	if c.KeywordsTopN < 1 {
		return fmt.Errorf("keywords_top_n must be at least 1, got %d", c.KeywordsTopN)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.ShortTextThreshold < 0 {
		return fmt.Errorf("short_text_threshold must not be negative, got %d", c.ShortTextThreshold)
	}
	return nil
}
