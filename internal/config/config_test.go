package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 0.07, cfg.TaxRate)
	assert.Equal(t, 3, cfg.LowStockThreshold)
	assert.Equal(t, "http://localhost:11434/api/generate", cfg.GenAI.URL)
	assert.Equal(t, "changeme", cfg.WhatsApp.VerifyToken)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatshop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
tax_rate: 0.1
genai:
  model: llama3
`), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 0.1, cfg.TaxRate)
	assert.Equal(t, "llama3", cfg.GenAI.Model)
	// Untouched fields keep defaults.
	assert.Equal(t, "http://localhost:11434/api/generate", cfg.GenAI.URL)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatshop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9000\"\n"), 0o644))
	t.Setenv("PORT", "7777")
	t.Setenv("TAX_RATE", "0.15")
	t.Setenv("LOW_STOCK_THRESHOLD", "5")
	t.Setenv("WHATSAPP_VERIFY_TOKEN", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7777", cfg.Port)
	assert.Equal(t, 0.15, cfg.TaxRate)
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.Equal(t, "secret", cfg.WhatsApp.VerifyToken)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TaxRate = 1.5
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.GenAI.URL = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.LowStockThreshold = -1
	assert.Error(t, cfg.Validate())
}
