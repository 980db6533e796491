package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DatabaseConfig holds PostgreSQL settings for the user store of the built-in auth provider.
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

// MinIOConfig holds object storage settings for MinIO.
// PublicURL is the externally reachable base for public objects, e.g. https://cdn.example.com/potensi.
// When empty it is derived from Endpoint, UseSSL and Bucket.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// MongoConfig holds the document database settings.
type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig holds the session store settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthConfig controls session tokens and the page guard.
type AuthConfig struct {
	JWTSecret        string
	SessionTTLMin    int
	CookieName       string
	CookieSecure     bool
	ResolveTimeoutMs int
}

// UploadConfig controls the upload endpoint.
type UploadConfig struct {
	MaxBytes       int64
	BodyLimitBytes int
	RateLimitRPS   int
	RateLimitBurst int
}

// HTTPConfig describes the reverse proxy in front of the app.
// With ProxyHeader set, client IPs (rate limiting, logs) come from that header;
// TrustedProxies, when non-empty, restricts which peers may set it.
type HTTPConfig struct {
	ProxyHeader    string
	TrustedProxies []string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Env      string
	TimeZone string
	HTTP     HTTPConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Upload   UploadConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("APP_ENV", "production"),
		TimeZone: getEnv("APP_TIMEZONE", "Asia/Jakarta"),
		HTTP: HTTPConfig{
			ProxyHeader:    getEnv("HTTP_PROXY_HEADER", ""),
			TrustedProxies: getEnvList("HTTP_TRUSTED_PROXIES"),
		},
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
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: getEnv("MINIO_PUBLIC_URL", ""),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "potensidesa"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnv("AUTH_JWT_SECRET", ""),
			SessionTTLMin:    getEnvInt("SESSION_TTL_MIN", 720),
			CookieName:       getEnv("SESSION_COOKIE_NAME", "potensidesa_session"),
			CookieSecure:     getEnvBool("SESSION_COOKIE_SECURE", true),
			ResolveTimeoutMs: getEnvInt("AUTH_RESOLVE_TIMEOUT_MS", 1500),
		},
		Upload: UploadConfig{
			MaxBytes:       int64(getEnvInt("UPLOAD_MAX_BYTES", 5*1024*1024)),
			BodyLimitBytes: getEnvInt("HTTP_BODY_LIMIT_BYTES", 16*1024*1024),
			RateLimitRPS:   getEnvInt("UPLOAD_RATE_LIMIT_RPS", 2),
			RateLimitBurst: getEnvInt("UPLOAD_RATE_LIMIT_BURST", 10),
		},
	}
}

// Development reports whether the app runs with APP_ENV=development.
func (c *AppConfig) Development() bool {
	return c.Env == "development"
}

// Location resolves the configured time zone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SessionTTL is the lifetime of a login session.
func (a AuthConfig) SessionTTL() time.Duration {
	return time.Duration(a.SessionTTLMin) * time.Minute
}

// ResolveTimeout bounds how long the guard waits for session resolution before showing the loading page.
func (a AuthConfig) ResolveTimeout() time.Duration {
	return time.Duration(a.ResolveTimeoutMs) * time.Millisecond
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

// getEnvList splits a comma separated value, dropping empty items.
func getEnvList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
