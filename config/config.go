package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Stripe   StripeConfig   `mapstructure:"stripe"`
	Wallet   WalletConfig   `mapstructure:"wallet"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Trace    TraceConfig    `mapstructure:"trace"`
	Limit    LimitConfig    `mapstructure:"limit"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // debug, release
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // postgres, sqlite
	DSN    string `mapstructure:"dsn"`
}

// RedisConfig 缓存配置
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// JWTConfig 鉴权配置
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// StripeConfig 支付网关配置
type StripeConfig struct {
	SecretKey string `mapstructure:"secret_key"`
	Currency  string `mapstructure:"currency"`
}

// WalletConfig 外部钱包跳转配置
type WalletConfig struct {
	RedirectURL string `mapstructure:"redirect_url"`
}

// SentryConfig 错误上报配置
type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

// TraceConfig 链路追踪配置
type TraceConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	ServiceName  string `mapstructure:"service_name"`
}

// LimitConfig 限流配置（结账接口）
type LimitConfig struct {
	ChargePerSecond float64 `mapstructure:"charge_per_second"`
	ChargeBurst     int     `mapstructure:"charge_burst"`
}

// Load 读取配置：config.yaml 可选，环境变量（SHOP_ 前缀）覆盖
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=localhost user=postgres password=postgres dbname=shop port=5432 sslmode=disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", 10*time.Minute)
	v.SetDefault("jwt.secret", "dev-secret")
	v.SetDefault("stripe.currency", "usd")
	v.SetDefault("wallet.redirect_url", "https://wallet.example.com/pay")
	v.SetDefault("trace.service_name", "gin-shop")
	v.SetDefault("limit.charge_per_second", 1.0)
	v.SetDefault("limit.charge_burst", 3)

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
