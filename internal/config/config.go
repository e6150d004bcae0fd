package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mkrogh/studyplan/internal/llm"
	"github.com/spf13/viper"
)

// Config holds everything the studyplan binary needs to run.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Provider llm.Config     `mapstructure:"provider"`
	Database DatabaseConfig `mapstructure:"database"`
	Plan     PlanConfig     `mapstructure:"plan"`
}

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// PlanConfig carries the defaults applied when a request leaves them unset.
type PlanConfig struct {
	DefaultWeeks        int     `mapstructure:"default_weeks"`
	DefaultHoursPerWeek float64 `mapstructure:"default_hours_per_week"`
}

// Load reads configuration from an optional studyplan.yaml (working
// directory or ~/.studyplan) and STUDYPLAN_* environment variables, falling
// back to defaults for anything unset.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "3000")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("database.path", defaultDBPath())
	v.SetDefault("plan.default_weeks", 4)
	v.SetDefault("plan.default_hours_per_week", 10)

	defaults := llm.DefaultConfig()
	v.SetDefault("provider.base_url", defaults.BaseURL)
	v.SetDefault("provider.model", defaults.Model)
	v.SetDefault("provider.temperature", defaults.Temperature)
	v.SetDefault("provider.timeout_ms", defaults.TimeoutMs)
	v.SetDefault("provider.max_retries", defaults.MaxRetries)

	v.SetConfigName("studyplan")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".studyplan"))
	}

	v.SetEnvPrefix("STUDYPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The provider key follows the upstream convention as well.
	v.BindEnv("provider.api_key", "STUDYPLAN_PROVIDER_API_KEY", "GROQ_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "studyplan.db"
	}
	return filepath.Join(home, ".studyplan", "studyplan.db")
}
