package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bassista/go_restate/internal/logger"
)

// ServerConfig holds settings for the demo posts API server.
type ServerConfig struct {
	Port               int           `mapstructure:"port"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	IdleTimeout        time.Duration `mapstructure:"idle_timeout"`
	ShutDownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
	CORSAllowedOrigins string        `mapstructure:"cors_allowed_origins"`
	AuthToken          string        `mapstructure:"auth_token"`
	AuthParam          string        `mapstructure:"auth_param"`
}

// DataConfig holds settings for the posts data file.
type DataConfig struct {
	FilePath        string        `mapstructure:"file_path"`
	PersistInterval time.Duration `mapstructure:"persist_interval"`
}

// ClientConfig holds settings for the resource-handler client.
type ClientConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	Resource        string        `mapstructure:"resource"`
	AuthToken       string        `mapstructure:"auth_token"`
	AuthParam       string        `mapstructure:"auth_param"`
	Rethrow         bool          `mapstructure:"rethrow"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// MiscConfig holds settings that don't fit elsewhere.
type MiscConfig struct {
	GinMode  string `mapstructure:"gin_mode"`
	LogLevel string `mapstructure:"log_level"`
}

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Data   DataConfig   `mapstructure:"data"`
	Client ClientConfig `mapstructure:"client"`
	Misc   MiscConfig   `mapstructure:"misc"`
}

// LoadConfig reads configuration from .env, config.yaml and environment
// variables (prefix GO_RESTATE). Environment variables override file values.
func LoadConfig() (*Config, error) {
	// .env is optional; it only seeds process env before viper reads it.
	if err := godotenv.Load(); err == nil {
		logger.WithComponent("config").Debug("loaded .env file")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvPrefix("GO_RESTATE")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.WithComponent("config").Info("no config file found, using defaults and env vars")
		} else {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.request_timeout", 1*time.Second)
	v.SetDefault("server.cors_allowed_origins", "*")
	v.SetDefault("server.auth_param", "token")

	v.SetDefault("data.file_path", "./config/data/posts.json")
	v.SetDefault("data.persist_interval", 5*time.Second)

	v.SetDefault("client.base_url", "http://localhost:8080/posts")
	v.SetDefault("client.resource", "post")
	v.SetDefault("client.auth_param", "token")
	v.SetDefault("client.rethrow", true)
	v.SetDefault("client.request_timeout", 30*time.Second)
	v.SetDefault("client.refresh_interval", 0)

	v.SetDefault("misc.gin_mode", "release")
	v.SetDefault("misc.log_level", "info")
}

// validate checks the configuration for obviously broken values.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if c.Server.ShutDownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	if c.Data.FilePath == "" {
		return fmt.Errorf("data file path is required")
	}
	if c.Data.PersistInterval <= 0 {
		return fmt.Errorf("persist interval must be positive")
	}
	if c.Client.BaseURL == "" {
		return fmt.Errorf("client base URL is required")
	}
	if c.Client.Resource == "" {
		return fmt.Errorf("client resource type is required")
	}
	if c.Client.AuthParam == "" {
		return fmt.Errorf("client auth param name is required")
	}
	return nil
}
