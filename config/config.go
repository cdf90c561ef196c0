package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string
	AutoMigrate bool
	DB          DBConfig
	Redis       RedisConfig
	HTTP        HTTPConfig
	Telegram    TelegramConfig
	Checkout    CheckoutConfig
	Log         LogConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type RedisConfig struct {
	URL        string // takes precedence over Addr when set
	Addr       string
	Password   string
	SessionTTL time.Duration
	CatalogTTL time.Duration
}

type HTTPConfig struct {
	Port          string
	AllowedOrigin string
}

type TelegramConfig struct {
	Token string // relay bot; empty disables Telegram forwarding
}

type CheckoutConfig struct {
	MessagingBase string // deep-link base, recipient and ?text= are appended
	DemoPhone     string
	Recipient     string // "demo" or "restaurant"
	Strict        bool   // validate form and required modifiers before commit/checkout
}

type LogConfig struct {
	Level string
}

const (
	RecipientDemo       = "demo"
	RecipientRestaurant = "restaurant"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))

	return &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		AutoMigrate: getBool("AUTO_MIGRATE", false),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "menux"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:        getEnv("REDIS_URL", ""),
			Addr:       getEnv("REDIS_ADDR", "localhost:6379"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			SessionTTL: getDuration("SESSION_TTL", 2*time.Hour),
			CatalogTTL: getDuration("CATALOG_CACHE_TTL", time.Minute),
		},
		HTTP: HTTPConfig{
			Port:          getEnv("APP_PORT", getEnv("PORT", "8080")),
			AllowedOrigin: getEnv("ORIGIN_URL", ""),
		},
		Telegram: TelegramConfig{
			Token: getEnv("TELEGRAM_TOKEN", ""),
		},
		Checkout: CheckoutConfig{
			MessagingBase: getEnv("CHECKOUT_MESSAGING_BASE", "https://wa.me"),
			DemoPhone:     getEnv("CHECKOUT_DEMO_PHONE", "966500000000"),
			Recipient:     getEnv("CHECKOUT_RECIPIENT", RecipientDemo),
			Strict:        getBool("CHECKOUT_STRICT", false),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v == "1" || strings.EqualFold(v, "true")
}

func getDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
