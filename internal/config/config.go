package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderREST = "rest"
	ProviderSDK  = "sdk"
)

type Config struct {
	Port      int       `yaml:"port"`
	OutputDir string    `yaml:"output_dir"`
	AI        AIConfig  `yaml:"ai"`
	PDF       PDFConfig `yaml:"pdf"`

	// SessionTTL evicts sessions idle for longer; zero keeps them forever.
	SessionTTL time.Duration `yaml:"session_ttl"`

	// DatabaseURL is optional; without it export records are not kept.
	DatabaseURL string `yaml:"database_url"`
}

type AIConfig struct {
	Provider string        `yaml:"provider"`
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

type PDFConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ChromePath string `yaml:"chrome_path"`
}

func Default() *Config {
	return &Config{
		Port:      3000,
		OutputDir: "cv-data",
		AI: AIConfig{
			Provider: ProviderREST,
			Model:    "gemini-1.5-flash",
			BaseURL:  "https://generativelanguage.googleapis.com",
			Timeout:  60 * time.Second,
		},
		PDF:        PDFConfig{Enabled: true},
		SessionTTL: 24 * time.Hour,
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// path and finally the environment (a .env file in the working directory is
// loaded first when present). A missing API key is not an error here: it
// only fails the enhancement calls.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	setString(&cfg.OutputDir, "OUTPUT_DIR")
	setString(&cfg.DatabaseURL, "DATABASE_URL")

	setString(&cfg.AI.Provider, "AI_PROVIDER")
	setString(&cfg.AI.APIKey, "GEMINI_API_KEY")
	setString(&cfg.AI.Model, "GEMINI_MODEL")
	setString(&cfg.AI.BaseURL, "GEMINI_BASE_URL")
	if v := os.Getenv("AI_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid AI_TIMEOUT %q: %w", v, err)
		}
		cfg.AI.Timeout = d
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL %q: %w", v, err)
		}
		cfg.SessionTTL = d
	}

	setString(&cfg.PDF.ChromePath, "CHROME_PATH")
	if v := os.Getenv("PDF_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid PDF_ENABLED %q: %w", v, err)
		}
		cfg.PDF.Enabled = b
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	switch c.AI.Provider {
	case ProviderREST, ProviderSDK:
	default:
		return fmt.Errorf("unknown ai provider %q", c.AI.Provider)
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("ai timeout must be positive")
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("session ttl must not be negative")
	}
	return nil
}

func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }
