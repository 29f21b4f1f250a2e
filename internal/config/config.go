package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token       string `yaml:"token"`
	Port        int    `yaml:"port"`
	WebhookPath string `yaml:"webhook_path"`
	Workers     int    `yaml:"workers"`    // dispatcher workers
	QueueSize   int    `yaml:"queue_size"` // dispatcher queue bound
}

type LeadsConfig struct {
	ChannelID int64 `yaml:"channel_id"`
}

type AIConfig struct {
	Provider      string  `yaml:"provider"` // openai | gemini
	OpenAIKey     string  `yaml:"openai_key"`
	OpenAIBaseURL string  `yaml:"openai_base_url"`
	GeminiKey     string  `yaml:"gemini_key"`
	Model         string  `yaml:"model"`
	Temperature   float64 `yaml:"temperature"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type StateConfig struct {
	Backend string `yaml:"backend"` // memory | redis
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Config struct {
	Bot   BotConfig   `yaml:"bot"`
	Leads LeadsConfig `yaml:"leads"`
	AI    AIConfig    `yaml:"ai"`
	Log   LogConfig   `yaml:"log"`
	State StateConfig `yaml:"state"`
	Redis RedisConfig `yaml:"redis"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML file at path and applies environment overrides.
// Secrets are expected to come from the environment in most deployments; a
// local .env file is honored when present.
func LoadConfig(path string, dev bool) (*Config, error) {
	// Best effort: absence of a .env file is not an error.
	_ = godotenv.Load()

	var cfg Config
	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	// Minimal validation
	if cfg.Bot.Token == "" {
		return nil, errors.New("bot.token is required (or TELEGRAM_BOT_TOKEN)")
	}
	if cfg.Leads.ChannelID == 0 {
		return nil, errors.New("leads.channel_id is required (or LEADS_CHANNEL_ID)")
	}
	switch cfg.AI.Provider {
	case "openai":
		if cfg.AI.OpenAIKey == "" && !dev {
			return nil, errors.New("ai.openai_key is required (or OPENAI_API_KEY)")
		}
	case "gemini":
		if cfg.AI.GeminiKey == "" && !dev {
			return nil, errors.New("ai.gemini_key is required (or GEMINI_API_KEY)")
		}
	default:
		return nil, fmt.Errorf("ai.provider %q not supported", cfg.AI.Provider)
	}
	if cfg.State.Backend == "redis" && cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required when state.backend is redis")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Bot.Token = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.AI.OpenAIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.AI.GeminiKey = v
	}
	if v := os.Getenv("LEADS_CHANNEL_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Leads.ChannelID = id
		}
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Bot.Port == 0 {
		cfg.Bot.Port = 8080
	}
	if cfg.Bot.WebhookPath == "" {
		cfg.Bot.WebhookPath = "/telegram/webhook"
	}
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Bot.QueueSize <= 0 {
		cfg.Bot.QueueSize = 256
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "openai"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gpt-4o-mini"
	}
	if cfg.AI.Temperature == 0 {
		cfg.AI.Temperature = 0.4
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.State.Backend == "" {
		cfg.State.Backend = "memory"
	}
}
