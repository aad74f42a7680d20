package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config is process-wide, read-only configuration resolved once at startup.
// Components receive it (or slices of it) at construction; nothing reads the
// environment at call time.
type Config struct {
	Environment      string
	ListenAddr       string
	APIBaseURL       string
	JWTSecret        string
	TaxRate          decimal.Decimal
	DefaultLanguage  string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioBaseURL    string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists

	env := getenv("ENVIRONMENT", "development")
	// Outside development the API lives on the compose network; the
	// API_BASE_URL knob only applies to local runs.
	baseURL := "http://api:5000"
	if env == "development" {
		baseURL = getenv("API_BASE_URL", "http://localhost:5000")
	}

	taxRate, err := decimal.NewFromString(getenv("TAX_RATE", "0.09"))
	if err != nil {
		log.Printf("[config] invalid TAX_RATE, using 0.09: %v", err)
		taxRate = decimal.NewFromFloat(0.09)
	}

	cfg := Config{
		Environment:      env,
		ListenAddr:       getenv("LISTEN_ADDR", ":7000"),
		APIBaseURL:       baseURL,
		JWTSecret:        os.Getenv("JWT_SECRET_KEY"),
		TaxRate:          taxRate,
		DefaultLanguage:  getenv("DEFAULT_LANGUAGE", "en"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioBaseURL:    getenv("TWILIO_BASE_URL", "https://api.twilio.com"),
	}
	log.Printf("[config] ENVIRONMENT=%s", cfg.Environment)
	log.Printf("[config] LISTEN_ADDR=%s", cfg.ListenAddr)
	log.Printf("[config] API_BASE_URL=%s", cfg.APIBaseURL)
	return cfg
}
