package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"

	DeliveryNone    = "none"
	DeliveryWebhook = "webhook"
	DeliveryKafka   = "kafka"
)

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	StoreDriver   string `env:"STORE_DRIVER"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`
	RedisURL      string `env:"REDIS_URL"`
	JWTSecret     string `env:"JWT_SECRET"`

	SeedBalance     decimal.Decimal `env:"SEED_BALANCE"     envDefault:"100"`
	DefaultCourier  string          `env:"DEFAULT_COURIER"  envDefault:"0x999COURIER"`
	AdminAccounts   []string        `env:"ADMIN_ACCOUNTS"   envSeparator:","`
	DeliveryTarget  string          `env:"DELIVERY_TARGET"  envDefault:"none"`
	WebhookURL      string          `env:"WEBHOOK_URL"`
	KafkaBrokers    []string        `env:"KAFKA_BROKERS"    envSeparator:","`
	KafkaTopic      string          `env:"KAFKA_TOPIC"      envDefault:"escrow.notifications"`
	DeliveryWorkers uint            `env:"DELIVERY_WORKERS" envDefault:"5"`
}

// LoadConfig собирает конфигурацию из .env, переменных окружения и флагов командной строки.
// Переменные окружения имеют приоритет над флагами.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %s", err.Error())
	}

	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	if flagsErr := loadFlags(&flagsConfig, args); flagsErr != nil {
		return nil, fmt.Errorf("parse flags: %s", flagsErr.Error())
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func loadFlags(flagConfig *Config, args []string) error {
	flags := flag.NewFlagSet("escrow", flag.ContinueOnError)

	flags.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	flags.StringVar(&flagConfig.StoreDriver, "s", StoreMemory, "Store driver: memory, postgres or redis")
	flags.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	flags.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	flags.StringVar(&flagConfig.RedisURL, "r", "", "Redis URL in format redis://host:port/db")
	flags.StringVar(&flagConfig.JWTSecret, "j", "", "JWT secret key")

	return flags.Parse(args) //nolint:wrapcheck
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	merged := *envConfig
	merged.RunAddress = defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress)
	merged.StoreDriver = defaultIfBlank(envConfig.StoreDriver, flagsConfig.StoreDriver)
	merged.DatabaseDSN = defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	merged.MigrationsDir = defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir)
	merged.RedisURL = defaultIfBlank(envConfig.RedisURL, flagsConfig.RedisURL)
	merged.JWTSecret = defaultIfBlank(envConfig.JWTSecret, flagsConfig.JWTSecret)
	merged.AdminAccounts = trimList(envConfig.AdminAccounts)
	merged.KafkaBrokers = trimList(envConfig.KafkaBrokers)
	return &merged
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseDSN == "" {
			return errors.New("database DSN is not set")
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return errors.New("redis URL is not set")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}

	switch c.DeliveryTarget {
	case DeliveryNone:
	case DeliveryWebhook:
		if c.WebhookURL == "" {
			return errors.New("webhook URL is not set")
		}
	case DeliveryKafka:
		if len(c.KafkaBrokers) == 0 || c.KafkaTopic == "" {
			return errors.New("kafka brokers and topic must be set")
		}
	default:
		return fmt.Errorf("unknown delivery target %q", c.DeliveryTarget)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT secret is not set")
	}
	if !c.SeedBalance.IsPositive() {
		return errors.New("seed balance must be positive")
	}
	return nil
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func trimList(values []string) []string {
	res := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	return res
}
