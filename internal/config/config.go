package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

const (
	StorageMemory    = "memory"
	StorageFirestore = "firestore"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Mode Mode `yaml:"mode"`

	Port string `yaml:"port"`

	GeminiAPIKey string `yaml:"gemini_api_key"`
	GCPProjectID string `yaml:"gcp_project"`
	GCPLocation  string `yaml:"gcp_location"`
	ModelName    string `yaml:"model_name"`

	StorageBackend string `yaml:"storage_backend"` // "memory" or "firestore"
	UseMockLLM     bool   `yaml:"use_mock_llm"`    // true = scripted model, no credentials needed

	AuthEnabled    bool     `yaml:"auth_enabled"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	SessionTTL    time.Duration `yaml:"session_ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
	ModelTimeout  time.Duration `yaml:"model_timeout"`

	LogLevel string `yaml:"log_level"`
}

func defaults() *Config {
	return &Config{
		Mode:           ModeLocal,
		Port:           "8080",
		GCPLocation:    "us-central1",
		ModelName:      "gemini-2.5-flash",
		StorageBackend: StorageMemory,
		AllowedOrigins: []string{"http://localhost:3000"},
		SessionTTL:     30 * time.Minute,
		SweepInterval:  10 * time.Minute,
		ModelTimeout:   30 * time.Second,
		LogLevel:       "info",
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getDurationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, key, err)
	}
	return d, nil
}

func getListEnv(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Load builds the config from, in increasing precedence: defaults, the YAML
// file named by PLANFORGE_CONFIG, a .env file in the working directory, and
// the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("PLANFORGE_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Mode = Mode(getEnv("PLANFORGE_MODE", string(cfg.Mode)))

	cfg.Port = getEnv("PORT", getEnv("PLANFORGE_PORT", cfg.Port))

	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.GCPProjectID = getEnv("PLANFORGE_GCP_PROJECT", cfg.GCPProjectID)
	cfg.GCPLocation = getEnv("PLANFORGE_GCP_LOCATION", cfg.GCPLocation)
	cfg.ModelName = getEnv("PLANFORGE_MODEL_NAME", cfg.ModelName)

	cfg.StorageBackend = getEnv("PLANFORGE_STORAGE_BACKEND", cfg.StorageBackend)
	cfg.UseMockLLM = getBoolEnv("PLANFORGE_USE_MOCK_LLM", cfg.UseMockLLM)

	cfg.AuthEnabled = getBoolEnv("PLANFORGE_AUTH_ENABLED", cfg.AuthEnabled || cfg.Mode == ModeGCP)
	cfg.AllowedOrigins = getListEnv("PLANFORGE_ALLOWED_ORIGINS", cfg.AllowedOrigins)

	var err error
	if cfg.SessionTTL, err = getDurationEnv("PLANFORGE_SESSION_TTL", cfg.SessionTTL); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = getDurationEnv("PLANFORGE_SWEEP_INTERVAL", cfg.SweepInterval); err != nil {
		return nil, err
	}
	if cfg.ModelTimeout, err = getDurationEnv("PLANFORGE_MODEL_TIMEOUT", cfg.ModelTimeout); err != nil {
		return nil, err
	}

	cfg.LogLevel = getEnv("PLANFORGE_LOG_LEVEL", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: parse %s: %w", ErrInvalidConfig, path, err)
	}
	return nil
}

// Validate reports the first inconsistency in c.
func (c *Config) Validate() error {
	if c.Mode != ModeLocal && c.Mode != ModeGCP {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	if c.Port == "" {
		return fmt.Errorf("%w: port must be set", ErrInvalidConfig)
	}
	switch c.StorageBackend {
	case StorageMemory:
	case StorageFirestore:
		if c.GCPProjectID == "" {
			return fmt.Errorf("%w: PLANFORGE_GCP_PROJECT is required for firestore storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.StorageBackend)
	}
	if c.Mode == ModeGCP && c.GCPProjectID == "" {
		return fmt.Errorf("%w: PLANFORGE_GCP_PROJECT must be set in gcp mode", ErrInvalidConfig)
	}
	if c.AuthEnabled && c.GCPProjectID == "" {
		return fmt.Errorf("%w: PLANFORGE_GCP_PROJECT is required to verify ID tokens", ErrInvalidConfig)
	}
	if c.SessionTTL <= 0 || c.SweepInterval <= 0 || c.ModelTimeout <= 0 {
		return fmt.Errorf("%w: durations must be positive", ErrInvalidConfig)
	}
	return nil
}

// AIAvailable reports whether any model backend is configured. When false
// every generation is served from the fallback payloads.
func (c *Config) AIAvailable() bool {
	return c.UseMockLLM || c.GeminiAPIKey != "" || (c.Mode == ModeGCP && c.GCPProjectID != "")
}
