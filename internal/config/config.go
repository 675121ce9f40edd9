package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
	StoreDriverMongo    = "mongo"
)

// Config is the whole application's settings.
type Config struct {
	Port     string
	GoEnv    string // development / production / test
	LogLevel string

	StoreDriver   string // postgres / sqlite / mongo
	DatabaseURL   string // postgres DSN or sqlite file
	MongoURI      string
	MongoDatabase string
	NATSURL       string // empty disables order events

	JWTSecret          string
	FEURL              string // CORS origin
	CookieSecure       bool
	SellerEmail        string
	SellerPasswordHash string // bcrypt

	RazorpayKeyID     string
	RazorpaySecretKey string

	StripeSecretKey     string
	StripeWebhookSecret string

	Currency        string
	TaxRate         decimal.Decimal
	RoomDeliveryFee int64
}

// Load reads .env.{GO_ENV} (falling back to .env) and then the process environment.
func Load() (Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		//plain environment variables are fine in production
		if err := godotenv.Load(); err != nil {
			slog.Debug("no .env file found, using system environment variables")
		}
	} else {
		slog.Debug("loaded configuration", "file", envFile)
	}

	taxRate, err := decimal.NewFromString(getenv("TAX_RATE", "0.02"))
	if err != nil {
		return Config{}, fmt.Errorf("TAX_RATE must be a decimal: %w", err)
	}

	fee, err := strconv.ParseInt(getenv("ROOM_DELIVERY_FEE", "10"), 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("ROOM_DELIVERY_FEE must be number: %w", err)
	}

	cfg := Config{
		Port:     getenv("PORT", "4000"),
		GoEnv:    env,
		LogLevel: getenv("LOG_LEVEL", "info"),

		StoreDriver:   strings.ToLower(getenv("STORE_DRIVER", StoreDriverPostgres)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: getenv("MONGODB_DATABASE", "Hostel-Canteen"),
		NATSURL:       os.Getenv("NATS_URL"),

		JWTSecret:          os.Getenv("JWT_SECRET"),
		FEURL:              getenv("FE_URL", "http://localhost:5173"),
		CookieSecure:       envBool("COOKIE_SECURE", env == "production"),
		SellerEmail:        os.Getenv("SELLER_EMAIL"),
		SellerPasswordHash: os.Getenv("SELLER_PASSWORD_HASH"),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpaySecretKey: os.Getenv("RAZORPAY_SECRET_KEY"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),

		Currency:        strings.ToUpper(getenv("CURRENCY", "INR")),
		TaxRate:         taxRate,
		RoomDeliveryFee: fee,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required keys for the selected store and the enabled gateways.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverSQLite:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for STORE_DRIVER=%s", c.StoreDriver)
		}
	case StoreDriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required for STORE_DRIVER=mongo")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if (c.RazorpayKeyID == "") != (c.RazorpaySecretKey == "") {
		return fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_SECRET_KEY must be set together")
	}
	if c.StripeSecretKey != "" && c.StripeWebhookSecret == "" {
		return fmt.Errorf("STRIPE_WEBHOOK_SECRET is required when STRIPE_SECRET_KEY is set")
	}
	if c.TaxRate.IsNegative() {
		return fmt.Errorf("TAX_RATE must not be negative")
	}
	if c.RoomDeliveryFee < 0 {
		return fmt.Errorf("ROOM_DELIVERY_FEE must not be negative")
	}
	return nil
}

func (c Config) RazorpayEnabled() bool { return c.RazorpayKeyID != "" }
func (c Config) StripeEnabled() bool   { return c.StripeSecretKey != "" }

func (c Config) IsProduction() bool {
	return c.GoEnv == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}
