package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ServerConfig holds all configuration for the server.
// Tags use mapstructure for Viper unmarshalling.
type ServerConfig struct {
	HTTPPort    string `mapstructure:"HTTP_PORT"`
	MongoURI    string `mapstructure:"MONGO_URI"`
	MongoDBName string `mapstructure:"MONGO_DB_NAME"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogPretty   bool   `mapstructure:"LOG_PRETTY"`

	OtelServiceName string `mapstructure:"OTEL_SERVICE_NAME"`

	// TokenCacheBackend selects the bearer-token cache: "memory", "redis"
	// or "none".
	TokenCacheBackend string `mapstructure:"TOKEN_CACHE_BACKEND"`
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisKeyPrefix    string `mapstructure:"REDIS_KEY_PREFIX"`

	BcryptCost int `mapstructure:"BCRYPT_COST"`

	// AssetBaseURL is where stored profile pictures are served from.
	AssetBaseURL string `mapstructure:"ASSET_BASE_URL"`
}

// LoadConfig reads configuration from file, environment variables, and
// defaults.
func LoadConfig() (*ServerConfig, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/fync-auth/")
	v.AddConfigPath("$HOME/.fync-auth")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/fync_auth_dev")
	v.SetDefault("MONGO_DB_NAME", "fync_auth_dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("OTEL_SERVICE_NAME", "fync-auth")
	v.SetDefault("TOKEN_CACHE_BACKEND", "memory")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_KEY_PREFIX", "fync-auth")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("ASSET_BASE_URL", "https://assets.fync.in")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &cfg, nil
}
