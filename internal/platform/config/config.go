package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Webhooks  WebhooksConfig  `mapstructure:"webhooks"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Path           string `mapstructure:"path"`
	MaxConnections int    `mapstructure:"max_connections"`
}

type AuthConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type WebhooksConfig struct {
	SigningSecret string `mapstructure:"signing_secret"`
	MaxBodyBytes  int64  `mapstructure:"max_body_bytes"`
}

type DashboardConfig struct {
	RecentWindow     time.Duration `mapstructure:"recent_window"`
	StreamBuffer     int           `mapstructure:"stream_buffer"`
	SnapshotInterval time.Duration `mapstructure:"snapshot_interval"`
}

type RateLimitConfig struct {
	IngestPerMinute  int `mapstructure:"ingest_per_minute"`
	APIReadPerMinute int `mapstructure:"api_read_per_minute"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

func Load(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("webhooks.max_body_bytes", 1<<20)
	viper.SetDefault("dashboard.recent_window", time.Hour)
	viper.SetDefault("dashboard.stream_buffer", 64)
	viper.SetDefault("dashboard.snapshot_interval", time.Minute)
	viper.SetDefault("rate_limit.ingest_per_minute", 1000)
	viper.SetDefault("rate_limit.api_read_per_minute", 300)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
