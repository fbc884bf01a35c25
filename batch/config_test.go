package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 3, cfg.SummarySentences)
	assert.Equal(t, 10, cfg.KeywordsTopN)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 20, cfg.ShortTextThreshold)
	assert.Equal(t, []string{"eng"}, cfg.OCR.Languages)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
input_dir: /data/in
output_dir: /data/out
summary_sentences: 5
workers: 4
ocr:
  languages: [eng, deu]
  use_gpu: true
models:
  use_local: true
  cache_dir: /models/tessdata
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/in", cfg.InputDir)
	assert.Equal(t, "/data/out", cfg.OutputDir)
	assert.Equal(t, 5, cfg.SummarySentences)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, []string{"eng", "deu"}, cfg.OCR.Languages)
	assert.True(t, cfg.OCR.UseGPU)
	assert.True(t, cfg.Models.UseLocal)
	assert.Equal(t, "/models/tessdata", cfg.Models.CacheDir)
	assert.Equal(t, "debug", cfg.LogLevel)

	// Omitted fields keep their defaults.
	assert.Equal(t, 10, cfg.KeywordsTopN)
	assert.Equal(t, 20, cfg.ShortTextThreshold)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input_dir: [unclosed"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.InputDir = "in"
	valid.OutputDir = "out"

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing input", func(c *Config) { c.InputDir = "" }, "input_dir"},
		{"missing output", func(c *Config) { c.OutputDir = "" }, "output_dir"},
		{"zero summary", func(c *Config) { c.SummarySentences = 0 }, "summary_sentences"},
		{"zero keywords", func(c *Config) { c.KeywordsTopN = 0 }, "keywords_top_n"},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers"},
		{"negative threshold", func(c *Config) { c.ShortTextThreshold = -1 }, "short_text_threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
