package config

import (
	"fmt"
	"time"

	"github.com/ordering-next/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Session  SessionConfig  `mapstructure:"session"`
	Pricing  PricingConfig  `mapstructure:"pricing"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// UpstreamConfig 上游订餐后端配置
type UpstreamConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
}

// Timeout 请求超时时间
func (c UpstreamConfig) Timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// SessionConfig 会话令牌配置
type SessionConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// PricingConfig 计价配置
type PricingConfig struct {
	DeliveryFee string `mapstructure:"delivery_fee"`
	Currency    string `mapstructure:"currency"`
}

// CatalogConfig 商品目录缓存配置
type CatalogConfig struct {
	RefreshSeconds int `mapstructure:"refresh_seconds"`
}

// RefreshInterval 目录刷新间隔
func (c CatalogConfig) RefreshInterval() time.Duration {
	if c.RefreshSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.RefreshSeconds) * time.Second
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")     // 从当前目录查找
	viper.AddConfigPath("../")   // 如果从 cmd/server 运行
	viper.AddConfigPath("./etc") // etc 文件夹

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("log.filename", "storefront.log")
	viper.SetDefault("log.max_size_mb", 100)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)
	viper.SetDefault("upstream.base_url", "http://127.0.0.1:8001")
	viper.SetDefault("upstream.timeout_ms", 10000)
	viper.SetDefault("session.jwt_secret", "change-me-in-production")
	viper.SetDefault("pricing.delivery_fee", "2.00")
	viper.SetDefault("pricing.currency", "USD")
	viper.SetDefault("catalog.refresh_seconds", 300)
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allow_credentials", false)
	viper.SetDefault("cors.max_age", 3600)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("读取配置文件失败: %v，使用默认配置\n", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Printf("解析配置失败: %v，使用默认配置\n", err)
		return defaultConfig()
	}
	return &cfg
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "debug",
		},
		Upstream: UpstreamConfig{
			BaseURL:   "http://127.0.0.1:8001",
			TimeoutMS: 10000,
		},
		Session: SessionConfig{
			JWTSecret: "change-me-in-production",
		},
		Pricing: PricingConfig{
			DeliveryFee: "2.00",
			Currency:    "USD",
		},
		Catalog: CatalogConfig{
			RefreshSeconds: 300,
		},
	}
}
