package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	APIVersion         string `mapstructure:"API_VERSION"`
	GraphBaseURL       string `mapstructure:"GRAPH_BASE_URL"`
	PageLimit          int    `mapstructure:"PAGE_LIMIT"`
	HTTPTimeoutSec     int    `mapstructure:"HTTP_TIMEOUT_SEC"`
	CSVPath            string `mapstructure:"CSV_PATH"`
	ExportFormat       string `mapstructure:"EXPORT_FORMAT"`
	DataDir            string `mapstructure:"DATA_DIR"`
	StoreBackend       string `mapstructure:"STORE_BACKEND"`
	SQLitePath         string `mapstructure:"SQLITE_PATH"`
	CacheBackend       string `mapstructure:"CACHE_BACKEND"`
	CacheDefaultTTLSec int    `mapstructure:"CACHE_DEFAULT_TTL_SEC"`
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	RedisDB            int    `mapstructure:"REDIS_DB"`
	RedisKeyPrefix     string `mapstructure:"REDIS_KEY_PREFIX"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	LogFormat          string `mapstructure:"LOG_FORMAT"`
	ListenAddr         string `mapstructure:"LISTEN_ADDR"`
	TLSCertFile        string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile         string `mapstructure:"TLS_KEY_FILE"`
	TLSSelfSigned      bool   `mapstructure:"TLS_SELF_SIGNED"`
	PreviewCount       int    `mapstructure:"PREVIEW_COUNT"`
}

// Load reads config.yaml from path (optional) plus COMMENT_COLLECTOR_* env
// overrides and returns the resulting configuration as a value. Callers pass
// it down explicitly; there is no package-level config state.
func Load(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("API_VERSION", "v19.0")
	v.SetDefault("GRAPH_BASE_URL", "https://graph.facebook.com")
	v.SetDefault("PAGE_LIMIT", 100)
	v.SetDefault("HTTP_TIMEOUT_SEC", 10)
	v.SetDefault("CSV_PATH", "comments.csv")
	v.SetDefault("EXPORT_FORMAT", "csv")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("STORE_BACKEND", "")
	v.SetDefault("SQLITE_PATH", "data/comments.db")
	v.SetDefault("CACHE_BACKEND", "memory")
	v.SetDefault("CACHE_DEFAULT_TTL_SEC", 600)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "comment_collector:")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LISTEN_ADDR", ":8060")
	v.SetDefault("TLS_CERT_FILE", "")
	v.SetDefault("TLS_KEY_FILE", "")
	v.SetDefault("TLS_SELF_SIGNED", false)
	v.SetDefault("PREVIEW_COUNT", 10)

	v.SetEnvPrefix("COMMENT_COLLECTOR")
	v.AutomaticEnv()

	// If no config file found, just use defaults/env
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	Normalize(&cfg)
	return cfg, nil
}

func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.ExportFormat = strings.ToLower(strings.TrimSpace(cfg.ExportFormat))
	if cfg.ExportFormat == "" {
		cfg.ExportFormat = "csv"
	}
	if cfg.ExportFormat == "json" {
		cfg.ExportFormat = "jsonl"
	}
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	cfg.CacheBackend = strings.ToLower(strings.TrimSpace(cfg.CacheBackend))
	cfg.GraphBaseURL = strings.TrimRight(strings.TrimSpace(cfg.GraphBaseURL), "/")
	cfg.APIVersion = strings.TrimSpace(cfg.APIVersion)
}
