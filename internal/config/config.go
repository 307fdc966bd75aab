package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSQLiteConnection waits up to 5s on a locked database and takes the
// write lock when a transaction begins, so concurrent writers queue instead
// of failing with SQLITE_BUSY.
const DefaultSQLiteConnection = "./data/rincon.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate&_time_format=sqlite"

type Config struct {
	// Application
	AppName      string
	AppEnv       string
	AppURL       string
	Port         string
	SupportEmail string
	ContentPath  string
	LogLevel     string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret                string
	JWTExpiry                time.Duration
	TokenPasswordResetExpiry time.Duration
	BcryptCost               int
	AuthRateLimit            int
	AuthRateWindow           time.Duration
	TrustProxyHeaders        bool // read client IPs from X-Forwarded-For / X-Real-IP
	SecureCookies            bool

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Storefront defaults
	DefaultWhatsAppNumber string
	MaxUploadBytes        int64

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, DigitalOcean Spaces, etc.)
	S3Region               string
	S3Bucket               string
	S3AccessKey            string
	S3SecretKey            string
	S3Endpoint             string        // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)
	S3PresignExpiryPublic  time.Duration // Expiry for product images - default: 7 days
	S3PresignExpiryPrivate time.Duration // Expiry for private files - default: 1 hour
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:      envString("APP_NAME", "El Rincón de la Sole"),
		AppEnv:       envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:       envRequired("APP_URL"), // Required: base URL for reset links
		Port:         envString("PORT", "8000"),
		SupportEmail: envString("SUPPORT_EMAIL", "hola@example.com"),
		ContentPath:  envString("CONTENT_PATH", "content"),
		LogLevel:     envString("LOG_LEVEL", ""),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", DefaultSQLiteConnection),

		// Security
		JWTSecret:                envRequired("JWT_SECRET"),
		JWTExpiry:                envDuration("JWT_EXPIRY", 60*time.Minute),               // 60 minutes
		TokenPasswordResetExpiry: envDuration("TOKEN_PASSWORD_RESET_EXPIRY", 1*time.Hour), // 1 hour
		BcryptCost:               envInt("BCRYPT_COST", 10),
		AuthRateLimit:            envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow:           envDuration("AUTH_RATE_WINDOW", 15*time.Minute),
		TrustProxyHeaders:        envBool("TRUST_PROXY_HEADERS", false),
		SecureCookies:            envBool("SECURE_COOKIES", envString("APP_ENV", "development") == "production"),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Storefront
		DefaultWhatsAppNumber: envString("DEFAULT_WHATSAPP_NUMBER", "1121820759"),
		MaxUploadBytes:        int64(envInt("MAX_UPLOAD_BYTES", 6<<20)),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage (S3-compatible - required for product images)
		S3Region:               envRequired("S3_REGION"),
		S3Bucket:               envRequired("S3_BUCKET"),
		S3AccessKey:            envRequired("S3_ACCESS_KEY"),
		S3SecretKey:            envRequired("S3_SECRET_KEY"),
		S3Endpoint:             envString("S3_ENDPOINT", ""),
		S3PresignExpiryPublic:  envDuration("S3_PRESIGN_EXPIRY_PUBLIC", 168*time.Hour),
		S3PresignExpiryPrivate: envDuration("S3_PRESIGN_EXPIRY_PRIVATE", 1*time.Hour),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production deployments.
// Development falls back to logging emails instead of sending them.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
	if len(cfg.JWTSecret) < 32 {
		slog.Error("production deployment requires a JWT_SECRET of at least 32 characters")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// All secrets, credentials, and sensitive data are excluded.
// Safe to expose in ctx, templates and client-facing contexts.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:      c.AppName,
		AppEnv:       c.AppEnv,
		AppURL:       c.AppURL,
		Port:         c.Port,
		SupportEmail: c.SupportEmail,

		EmailFrom: c.EmailFrom,

		DefaultWhatsAppNumber: c.DefaultWhatsAppNumber,

		S3Endpoint: c.S3Endpoint, // Needed for CSP policies
	}
}
