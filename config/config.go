package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置（环境变量优先，支持可选 config.yaml）
type Config struct {
	AppName    string `mapstructure:"app_name"`
	Env        string `mapstructure:"env"`
	HTTPAddr   string `mapstructure:"http_addr"`
	LogLevel   string `mapstructure:"log_level"`
	DBDriver   string `mapstructure:"db_driver"` // postgres / sqlite
	DBDSN      string `mapstructure:"db_dsn"`
	JWTSecret  string `mapstructure:"jwt_secret"`
	JWTExpiry  int    `mapstructure:"jwt_expiry_minutes"`
	RefreshTTL int    `mapstructure:"refresh_ttl_hours"`
	RateLimit  int    `mapstructure:"rate_limit_rps"`
	SentryDSN  string `mapstructure:"sentry_dsn"`
	OTLPAddr   string `mapstructure:"otlp_addr"`
}

// Load 读取配置；找不到配置文件时退化为纯环境变量
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("microblog")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_name", "microblog")
	v.SetDefault("env", "development")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", "microblog.db")
	v.SetDefault("jwt_secret", "dev-secret-change-me")
	v.SetDefault("jwt_expiry_minutes", 15)
	v.SetDefault("refresh_ttl_hours", 24*7)
	v.SetDefault("rate_limit_rps", 50)

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
