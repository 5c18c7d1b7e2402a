package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration.
type Config struct {
	Port            string   `koanf:"port"`
	Env             string   `koanf:"env"`
	CORSAllowOrigin []string `koanf:"cors_allow_origins"`
	DatabaseURL     string   `koanf:"database_url"`

	JWTSecret  string        `koanf:"jwt_secret"`
	SessionTTL time.Duration `koanf:"session_ttl"`

	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`

	LLMProvider       string        `koanf:"llm_provider"`
	LLMModel          string        `koanf:"llm_model"`
	LLMBaseURL        string        `koanf:"llm_base_url"`
	LLMAPIKey         string        `koanf:"llm_api_key"`
	LLMTimeoutSeconds int           `koanf:"llm_timeout_seconds"`
	LLMRetry          bool          `koanf:"llm_retry"`
	LLMRetryDelay     time.Duration `koanf:"llm_retry_delay"`

	PlanDailyHours         float64 `koanf:"plan_daily_hours"`
	PlanWeeklyHours        float64 `koanf:"plan_weekly_hours"`
	RateLimitPlanPerMinute float64 `koanf:"rate_limit_plan_per_minute"`

	ChartFontSize float64 `koanf:"chart_font_size"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:                   "8080",
		Env:                    "dev",
		CORSAllowOrigin:        []string{"http://localhost:5173"},
		SessionTTL:             24 * time.Hour,
		AdminUsername:          "admin",
		LLMProvider:            "groq",
		LLMModel:               "llama-3.3-70b-versatile",
		LLMBaseURL:             "https://api.groq.com/openai/v1",
		LLMTimeoutSeconds:      60,
		LLMRetry:               true,
		LLMRetryDelay:          300 * time.Millisecond,
		PlanDailyHours:         2,
		PlanWeeklyHours:        10,
		RateLimitPlanPerMinute: 10,
		ChartFontSize:          14,
	}
}

// Load layers defaults, an optional YAML file named by CAREER_CONFIG, and
// environment variables (PORT, DATABASE_URL, LLM_API_KEY, ...), lowest to highest.
func Load() (Config, error) {
	k := koanf.New(".")

	if path := strings.TrimSpace(os.Getenv("CAREER_CONFIG")); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, err
		}
	}

	// Env names map to lower-cased keys; GROQ_API_KEY is accepted as an alias.
	envProvider := env.Provider("", ".", func(s string) string {
		s = strings.ToLower(s)
		if s == "groq_api_key" {
			return "llm_api_key"
		}
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, err
	}

	cfg := Defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, err
	}
	return normalize(cfg)
}

// Fallback credentials for dev and local only.
const (
	devJWTSecret     = "dev-secret"
	devAdminPassword = "admin123"
)

func normalize(cfg Config) (Config, error) {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.CORSAllowOrigin = splitAndTrim(cfg.CORSAllowOrigin)
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))

	if cfg.Env != "dev" && cfg.Env != "local" {
		if secret := strings.TrimSpace(cfg.JWTSecret); secret == "" || secret == devJWTSecret {
			return Config{}, fmt.Errorf("JWT_SECRET is required in %s", cfg.Env)
		}
		if pw := strings.TrimSpace(cfg.AdminPassword); pw == "" || pw == devAdminPassword {
			return Config{}, fmt.Errorf("ADMIN_PASSWORD is required in %s", cfg.Env)
		}
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = devAdminPassword
	}
	if cfg.PlanDailyHours <= 0 {
		cfg.PlanDailyHours = 2
	}
	if cfg.PlanWeeklyHours <= 0 {
		cfg.PlanWeeklyHours = 10
	}
	return cfg, nil
}

// LLMTimeout returns the generation service HTTP timeout.
func (c Config) LLMTimeout() time.Duration {
	if c.LLMTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.LLMTimeoutSeconds) * time.Second
}

func splitAndTrim(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, p := range strings.Split(item, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
