package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
// The database is optional; an empty Host disables the subscription store.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// Enabled reports whether a database host has been configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// RedisConfig holds connection settings for the Redis session backend.
type RedisConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	DB       int
}

// SessionConfig selects where notes sessions are kept.
type SessionConfig struct {
	Backend      string // memory or redis
	TTLMinutes   int
	CookieName   string
	CookieSecure bool
	Redis        RedisConfig
}

// GeminiConfig holds the summarization/question-generation backend settings.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// StripeConfig holds the checkout settings for the subscription flow.
type StripeConfig struct {
	SecretKey  string
	PriceID    string
	SuccessURL string
	CancelURL  string
}

// NotesConfig groups settings only the notes app reads.
type NotesConfig struct {
	FreeQuota  int
	ChunkWords int
	Session    SessionConfig
	Gemini     GeminiConfig
	Stripe     StripeConfig
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port           string
	WorkDir        string
	MaxUploadBytes int
	LogLevel       string
	Database       DatabaseConfig
	Notes          NotesConfig
}

// Load reads configuration from environment variables.
// defaultPort is used when PORT is unset, so both apps can run side by side.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load(defaultPort string) *AppConfig {
	return &AppConfig{
		Port:           getEnv("PORT", defaultPort),
		WorkDir:        getEnv("WORK_DIR", filepath.Join(os.TempDir(), "pdfdesk")),
		MaxUploadBytes: getEnvInt("MAX_UPLOAD_BYTES", 32<<20),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Notes: NotesConfig{
			FreeQuota:  getEnvInt("NOTES_FREE_QUOTA", 1),
			ChunkWords: getEnvInt("NOTES_CHUNK_WORDS", 300),
			Session: SessionConfig{
				Backend:      getEnv("SESSION_BACKEND", "memory"),
				TTLMinutes:   getEnvInt("SESSION_TTL_MIN", 24*60),
				CookieName:   getEnv("SESSION_COOKIE", "pdfdesk_session"),
				CookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),
				Redis: RedisConfig{
					Host:     getEnv("REDIS_HOST", "127.0.0.1"),
					Port:     getEnvInt("REDIS_PORT", 6379),
					Username: getEnv("REDIS_USERNAME", ""),
					Password: getEnv("REDIS_PASSWORD", ""),
					DB:       getEnvInt("REDIS_DB", 0),
				},
			},
			Gemini: GeminiConfig{
				APIKey: getEnv("GEMINI_API_KEY", ""),
				Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			},
			Stripe: StripeConfig{
				SecretKey:  getEnv("STRIPE_SECRET_KEY", ""),
				PriceID:    getEnv("STRIPE_PRICE_ID", ""),
				SuccessURL: getEnv("STRIPE_SUCCESS_URL", "http://localhost:8081/subscribe/success?checkout_id={CHECKOUT_SESSION_ID}"),
				CancelURL:  getEnv("STRIPE_CANCEL_URL", "http://localhost:8081/subscribe/cancel"),
			},
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
