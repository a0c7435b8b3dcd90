package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"REVERSI_LOG_LEVEL" env-default:"info"`
	Redis    Redis   `yaml:"redis"`
	Ledger   Ledger  `yaml:"ledger"`
	Console  Console `yaml:"console"`
}

// Redis backs the result ledger. The game runs without it when disabled.
type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REVERSI_REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REVERSI_REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REVERSI_REDIS_PORT" env-default:"6379"`
}

type Ledger struct {
	RecentLimit int `yaml:"recent-limit" env:"REVERSI_LEDGER_RECENT_LIMIT" env-default:"100"`
	ShowRecent  int `yaml:"show-recent" env:"REVERSI_LEDGER_SHOW_RECENT" env-default:"5"`
}

// Console options default to false; cleanenv would overwrite a false read from the file with a true default.
type Console struct {
	HideHints bool `yaml:"hide-hints" env:"REVERSI_HIDE_HINTS"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the file, then applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
