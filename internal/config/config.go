package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Catalog   CatalogConfig
	Session   SessionConfig
	Shipping  ShippingConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// CatalogConfig points at the external product/order service
type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	Secret       string
	AccessExpiry int // in minutes
}

// ShippingConfig holds the free-shipping threshold and flat rate. These are
// business knobs, not hardcoded law: orders strictly above the threshold
// ship free, everything else pays the flat rate.
type ShippingConfig struct {
	FreeThreshold decimal.Decimal
	FlatRate      decimal.Decimal
}

type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
}

func Load() *Config {
	// .env is optional; environment variables win either way
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CATALOG_API_URL", "http://localhost:8082/api")
	viper.SetDefault("CATALOG_API_TIMEOUT_SECONDS", 10)
	viper.SetDefault("SESSION_ACCESS_EXPIRY", 60)
	viper.SetDefault("SHIPPING_FREE_THRESHOLD", "100")
	viper.SetDefault("SHIPPING_FLAT_RATE", "9.99")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 120)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Env:            viper.GetString("SERVER_ENV"),
			AllowedOrigins: splitOrigins(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Catalog: CatalogConfig{
			BaseURL: viper.GetString("CATALOG_API_URL"),
			Timeout: time.Duration(viper.GetInt("CATALOG_API_TIMEOUT_SECONDS")) * time.Second,
		},
		Session: SessionConfig{
			Secret:       viper.GetString("SESSION_SECRET"),
			AccessExpiry: viper.GetInt("SESSION_ACCESS_EXPIRY"),
		},
		Shipping: ShippingConfig{
			FreeThreshold: mustDecimal(viper.GetString("SHIPPING_FREE_THRESHOLD"), "100"),
			FlatRate:      mustDecimal(viper.GetString("SHIPPING_FLAT_RATE"), "9.99"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerWindow: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Window:            time.Duration(viper.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
	}
}

// splitOrigins parses a comma-separated origin list
func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// mustDecimal parses a decimal setting, falling back to the default when the
// configured value does not parse
func mustDecimal(value, fallback string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		log.Printf("Warning: invalid decimal config value %q, using %s", value, fallback)
		d, _ = decimal.NewFromString(fallback)
	}
	return d
}
