package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	NotifyLog      = "log"
	NotifyKafka    = "kafka"
	NotifyRabbitMQ = "rabbitmq"
)

// Config holds runtime configuration sourced from an optional YAML file and env vars.
type Config struct {
	Port          string
	StorageDriver string
	DatabaseURL   string
	JWTSecret     string
	JWTIssuer     string
	JWTTTL        time.Duration
	CORSOrigins   []string

	LogLevel       string
	LogDevelopment bool

	WelcomeBalance      decimal.Decimal
	WelcomeCoins        int64
	ProfitRate          decimal.Decimal
	ProfitInterval      time.Duration
	RecurringInterval   time.Duration
	DailyLimit          decimal.Decimal
	PerTransactionLimit decimal.Decimal

	OTPRequired bool
	OTPTTL      time.Duration
	RedisURL    string

	NotifyBackend string
	KafkaBrokers  []string
	KafkaTopic    string
	RabbitMQURL   string
	RabbitMQQueue string
}

type configFile struct {
	Server struct {
		Port        string   `yaml:"port"`
		CORSOrigins []string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`
	Storage struct {
		Driver string `yaml:"driver"`
	} `yaml:"storage"`
	Log struct {
		Level       string `yaml:"level"`
		Development *bool  `yaml:"development"`
	} `yaml:"log"`
	Wallet struct {
		WelcomeBalance           string `yaml:"welcome_balance"`
		WelcomeCoins             int64  `yaml:"welcome_coins"`
		ProfitRate               string `yaml:"profit_rate"`
		ProfitIntervalSeconds    int    `yaml:"profit_interval_seconds"`
		RecurringIntervalSeconds int    `yaml:"recurring_interval_seconds"`
		DailyLimit               string `yaml:"daily_limit"`
		PerTransactionLimit      string `yaml:"per_transaction_limit"`
	} `yaml:"wallet"`
	OTP struct {
		Required   *bool `yaml:"required"`
		TTLSeconds int   `yaml:"ttl_seconds"`
	} `yaml:"otp"`
	Notify struct {
		Backend       string   `yaml:"backend"`
		KafkaBrokers  []string `yaml:"kafka_brokers"`
		KafkaTopic    string   `yaml:"kafka_topic"`
		RabbitMQQueue string   `yaml:"rabbitmq_queue"`
	} `yaml:"notify"`
}

// Load reads configuration from CONFIG_FILE (if present) and the environment, then validates it.
func Load() (Config, error) {
	cfg := defaults()

	path := fallback(os.Getenv("CONFIG_FILE"), "config.yaml")
	if raw, err := os.ReadFile(path); err == nil {
		if err := cfg.applyFile(raw); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Port:                "8080",
		StorageDriver:       StoragePostgres,
		JWTIssuer:           "vi-sinh-loi-backend",
		JWTTTL:              60 * time.Minute,
		CORSOrigins:         []string{"*"},
		LogLevel:            "info",
		WelcomeBalance:      decimal.NewFromInt(500_000),
		WelcomeCoins:        100,
		ProfitRate:          decimal.RequireFromString("0.0001"),
		ProfitInterval:      30 * time.Second,
		RecurringInterval:   60 * time.Second,
		DailyLimit:          decimal.NewFromInt(50_000_000),
		PerTransactionLimit: decimal.NewFromInt(20_000_000),
		OTPTTL:              60 * time.Second,
		NotifyBackend:       NotifyLog,
		KafkaTopic:          "wallet.notifications",
		RabbitMQQueue:       "wallet_notifications",
	}
}

func (c *Config) applyFile(raw []byte) error {
	var f configFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if f.Server.Port != "" {
		c.Port = f.Server.Port
	}
	if len(f.Server.CORSOrigins) > 0 {
		c.CORSOrigins = f.Server.CORSOrigins
	}
	if f.Storage.Driver != "" {
		c.StorageDriver = f.Storage.Driver
	}
	if f.Log.Level != "" {
		c.LogLevel = f.Log.Level
	}
	if f.Log.Development != nil {
		c.LogDevelopment = *f.Log.Development
	}
	var err error
	if c.WelcomeBalance, err = decimalOr(f.Wallet.WelcomeBalance, c.WelcomeBalance); err != nil {
		return fmt.Errorf("wallet.welcome_balance: %w", err)
	}
	if f.Wallet.WelcomeCoins > 0 {
		c.WelcomeCoins = f.Wallet.WelcomeCoins
	}
	if c.ProfitRate, err = decimalOr(f.Wallet.ProfitRate, c.ProfitRate); err != nil {
		return fmt.Errorf("wallet.profit_rate: %w", err)
	}
	if f.Wallet.ProfitIntervalSeconds > 0 {
		c.ProfitInterval = time.Duration(f.Wallet.ProfitIntervalSeconds) * time.Second
	}
	if f.Wallet.RecurringIntervalSeconds > 0 {
		c.RecurringInterval = time.Duration(f.Wallet.RecurringIntervalSeconds) * time.Second
	}
	if c.DailyLimit, err = decimalOr(f.Wallet.DailyLimit, c.DailyLimit); err != nil {
		return fmt.Errorf("wallet.daily_limit: %w", err)
	}
	if c.PerTransactionLimit, err = decimalOr(f.Wallet.PerTransactionLimit, c.PerTransactionLimit); err != nil {
		return fmt.Errorf("wallet.per_transaction_limit: %w", err)
	}
	if f.OTP.Required != nil {
		c.OTPRequired = *f.OTP.Required
	}
	if f.OTP.TTLSeconds > 0 {
		c.OTPTTL = time.Duration(f.OTP.TTLSeconds) * time.Second
	}
	if f.Notify.Backend != "" {
		c.NotifyBackend = f.Notify.Backend
	}
	if len(f.Notify.KafkaBrokers) > 0 {
		c.KafkaBrokers = f.Notify.KafkaBrokers
	}
	if f.Notify.KafkaTopic != "" {
		c.KafkaTopic = f.Notify.KafkaTopic
	}
	if f.Notify.RabbitMQQueue != "" {
		c.RabbitMQQueue = f.Notify.RabbitMQQueue
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = fallback(os.Getenv("PORT"), c.Port)
	c.StorageDriver = strings.ToLower(fallback(os.Getenv("STORAGE_DRIVER"), c.StorageDriver))
	c.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	c.JWTSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	c.JWTIssuer = fallback(os.Getenv("JWT_ISSUER"), c.JWTIssuer)
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		c.CORSOrigins = parseCSV(raw)
	}
	if minutes, err := strconv.Atoi(strings.TrimSpace(os.Getenv("JWT_TTL_MINUTES"))); err == nil && minutes > 0 {
		c.JWTTTL = time.Duration(minutes) * time.Minute
	}

	c.LogLevel = fallback(os.Getenv("LOG_LEVEL"), c.LogLevel)
	c.LogDevelopment = envBool("LOG_DEVELOPMENT", c.LogDevelopment)

	var err error
	if c.WelcomeBalance, err = decimalOr(os.Getenv("WELCOME_BALANCE"), c.WelcomeBalance); err != nil {
		return fmt.Errorf("WELCOME_BALANCE: %w", err)
	}
	c.WelcomeCoins = int64(envInt("WELCOME_COINS", int(c.WelcomeCoins)))
	if c.ProfitRate, err = decimalOr(os.Getenv("PROFIT_RATE"), c.ProfitRate); err != nil {
		return fmt.Errorf("PROFIT_RATE: %w", err)
	}
	c.ProfitInterval = envSeconds("PROFIT_INTERVAL_SECONDS", c.ProfitInterval)
	c.RecurringInterval = envSeconds("RECURRING_INTERVAL_SECONDS", c.RecurringInterval)
	if c.DailyLimit, err = decimalOr(os.Getenv("DAILY_LIMIT"), c.DailyLimit); err != nil {
		return fmt.Errorf("DAILY_LIMIT: %w", err)
	}
	if c.PerTransactionLimit, err = decimalOr(os.Getenv("PER_TRANSACTION_LIMIT"), c.PerTransactionLimit); err != nil {
		return fmt.Errorf("PER_TRANSACTION_LIMIT: %w", err)
	}

	c.OTPRequired = envBool("OTP_REQUIRED", c.OTPRequired)
	c.OTPTTL = envSeconds("OTP_TTL_SECONDS", c.OTPTTL)
	c.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))

	c.NotifyBackend = strings.ToLower(fallback(os.Getenv("NOTIFY_BACKEND"), c.NotifyBackend))
	if raw := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); raw != "" {
		c.KafkaBrokers = parseCSV(raw)
	}
	c.KafkaTopic = fallback(os.Getenv("KAFKA_TOPIC"), c.KafkaTopic)
	c.RabbitMQURL = strings.TrimSpace(os.Getenv("RABBITMQ_URL"))
	c.RabbitMQQueue = fallback(os.Getenv("RABBITMQ_QUEUE"), c.RabbitMQQueue)
	return nil
}

func (c Config) validate() error {
	switch c.StorageDriver {
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if !c.DailyLimit.IsPositive() || !c.PerTransactionLimit.IsPositive() {
		return errors.New("transaction limits must be positive")
	}
	if c.DailyLimit.LessThan(c.PerTransactionLimit) {
		return errors.New("DAILY_LIMIT must not be below PER_TRANSACTION_LIMIT")
	}
	if c.ProfitRate.IsNegative() {
		return errors.New("PROFIT_RATE must not be negative")
	}
	switch c.NotifyBackend {
	case NotifyLog:
	case NotifyKafka:
		if len(c.KafkaBrokers) == 0 {
			return errors.New("KAFKA_BROKERS is required for the kafka notify backend")
		}
	case NotifyRabbitMQ:
		if c.RabbitMQURL == "" {
			return errors.New("RABBITMQ_URL is required for the rabbitmq notify backend")
		}
	default:
		return fmt.Errorf("unsupported NOTIFY_BACKEND %q", c.NotifyBackend)
	}
	return nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func decimalOr(raw string, def decimal.Decimal) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	return decimal.NewFromString(raw)
}

func envInt(name string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(name)))
	if err != nil {
		return def
	}
	return v
}

func envSeconds(name string, def time.Duration) time.Duration {
	seconds := envInt(name, 0)
	if seconds <= 0 {
		return def
	}
	return time.Duration(seconds) * time.Second
}

func envBool(name string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return def
	}
}
