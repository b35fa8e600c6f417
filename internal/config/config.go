// Package config provides configuration loading for chatshop: defaults,
// an optional YAML file, then environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration.
type Config struct {
	// Port the HTTP server listens on.
	Port string `yaml:"port"`
	// DataDir holds the three JSON documents.
	DataDir string `yaml:"data_dir"`
	// InvoiceDir holds generated PDF invoices.
	InvoiceDir string `yaml:"invoice_dir"`
	// TaxRate is the fraction applied to every order total.
	TaxRate float64 `yaml:"tax_rate"`
	// LowStockThreshold marks product cards with a low-stock badge.
	LowStockThreshold int `yaml:"low_stock_threshold"`

	Email    EmailConfig    `yaml:"email"`
	GenAI    GenAIConfig    `yaml:"genai"`
	WhatsApp WhatsAppConfig `yaml:"whatsapp"`
}

// EmailConfig configures the order notification account. Empty user or
// pass disables sending.
type EmailConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
}

// GenAIConfig configures the generative fallback endpoint.
type GenAIConfig struct {
	URL   string `yaml:"url"`
	Model string `yaml:"model"`
}

// WhatsAppConfig configures the Cloud API relay. Empty token or phone ID
// disables outbound sends; VerifyToken guards webhook verification.
type WhatsAppConfig struct {
	Token       string `yaml:"token"`
	PhoneID     string `yaml:"phone_id"`
	VerifyToken string `yaml:"verify_token"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:              "8080",
		DataDir:           "data",
		InvoiceDir:        "invoices",
		TaxRate:           0.07,
		LowStockThreshold: 3,
		Email: EmailConfig{
			Host: "smtp.gmail.com",
			Port: 465,
		},
		GenAI: GenAIConfig{
			URL:   "http://localhost:11434/api/generate",
			Model: "gemma3:270m",
		},
		WhatsApp: WhatsAppConfig{
			VerifyToken: "changeme",
		},
	}
}

// LoadFromFile parses a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides set fields from the environment. The variable names
// are the storefront's original deployment keys.
func (c *Config) ApplyEnv() {
	setString(&c.Port, "PORT")
	setString(&c.DataDir, "DATA_DIR")
	setString(&c.InvoiceDir, "INVOICES_DIR")
	setFloat(&c.TaxRate, "TAX_RATE")
	setInt(&c.LowStockThreshold, "LOW_STOCK_THRESHOLD")
	setString(&c.Email.User, "EMAIL_USER")
	setString(&c.Email.Pass, "EMAIL_PASS")
	setString(&c.GenAI.URL, "OLLAMA_URL")
	setString(&c.GenAI.Model, "OLLAMA_MODEL")
	setString(&c.WhatsApp.Token, "WHATSAPP_TOKEN")
	setString(&c.WhatsApp.PhoneID, "WHATSAPP_PHONE_ID")
	setString(&c.WhatsApp.VerifyToken, "WHATSAPP_VERIFY_TOKEN")
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.TaxRate < 0 || c.TaxRate >= 1 {
		return fmt.Errorf("tax_rate must be in [0, 1)")
	}
	if c.LowStockThreshold < 0 {
		return fmt.Errorf("low_stock_threshold must not be negative")
	}
	if c.GenAI.URL == "" {
		return fmt.Errorf("genai.url is required")
	}
	return nil
}

// Load builds the effective configuration: defaults, then the YAML file
// at path (skipped when path is empty or the file does not exist), then
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := LoadFromFile(path)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
