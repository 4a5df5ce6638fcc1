package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Media    MediaConfig
	Contact  ContactConfig
	Console  ConsoleConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
	// PublicURL is the externally visible base URL, used for absolute media links.
	PublicURL string
}

func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver      string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SQLitePath  string
	AutoMigrate bool
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + strconv.Itoa(c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// RedisConfig holds Redis configuration. An empty URL disables token
// revocation and contact idempotency.
type RedisConfig struct {
	URL      string
	Password string
}

func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

const (
	MediaBackendLocal = "local"
	MediaBackendS3    = "s3"
)

// MediaConfig selects where uploaded images are written.
type MediaConfig struct {
	Backend     string
	Root        string
	BaseURL     string
	MaxBytes    int64
	S3Bucket    string
	S3Region    string
	S3Prefix    string
	S3PublicURL string
	S3Endpoint  string
	S3PathStyle bool
}

// ContactConfig controls public contact submissions and retention.
type ContactConfig struct {
	RateLimit      float64
	RateBurst      int
	Retention      time.Duration
	PurgeSchedule  string
	IdempotencyTTL time.Duration
}

// ConsoleConfig configures the admin console client.
type ConsoleConfig struct {
	APIURL       string
	TokenFile    string
	StrictShapes bool
	Timeout      time.Duration
	PageSize     int
}

// Load loads configuration from environment variables
func Load() *Config {
	env := getEnv("SERVER_ENV", "development")
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            env,
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			PublicURL:      strings.TrimRight(getEnv("PUBLIC_URL", ""), "/"),
		},
		Database: DatabaseConfig{
			Driver:      getEnv("DB_DRIVER", DriverPostgres),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvAsInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "sarb"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			SQLitePath:  getEnv("DB_SQLITE_PATH", "sarb.db"),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 60*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 24*time.Hour),
		},
		Media: MediaConfig{
			Backend:     getEnv("MEDIA_BACKEND", MediaBackendLocal),
			Root:        getEnv("MEDIA_ROOT", "media"),
			BaseURL:     strings.TrimRight(getEnv("MEDIA_URL", "/media"), "/"),
			MaxBytes:    int64(getEnvAsInt("MEDIA_MAX_BYTES", 5<<20)),
			S3Bucket:    getEnv("MEDIA_S3_BUCKET", ""),
			S3Region:    getEnv("MEDIA_S3_REGION", "us-east-1"),
			S3Prefix:    strings.Trim(getEnv("MEDIA_S3_PREFIX", "media"), "/"),
			S3PublicURL: strings.TrimRight(getEnv("MEDIA_S3_PUBLIC_URL", ""), "/"),
			S3Endpoint:  getEnv("MEDIA_S3_ENDPOINT", ""),
			S3PathStyle: getEnvAsBool("MEDIA_S3_PATH_STYLE", false),
		},
		Contact: ContactConfig{
			RateLimit:      getEnvAsFloat("CONTACT_RATE_LIMIT", 0.1),
			RateBurst:      getEnvAsInt("CONTACT_RATE_BURST", 3),
			Retention:      getEnvAsDuration("CONTACT_RETENTION", 180*24*time.Hour),
			PurgeSchedule:  getEnv("CONTACT_PURGE_SCHEDULE", "0 3 * * *"),
			IdempotencyTTL: getEnvAsDuration("CONTACT_IDEMPOTENCY_TTL", 24*time.Hour),
		},
		Console: ConsoleConfig{
			APIURL:       getEnv("SARB_API_URL", "http://localhost:8080/api"),
			TokenFile:    getEnv("SARB_TOKEN_FILE", defaultTokenFile()),
			StrictShapes: getEnvAsBool("SARB_STRICT_SHAPES", env == "development"),
			Timeout:      getEnvAsDuration("SARB_TIMEOUT", 30*time.Second),
			PageSize:     getEnvAsInt("SARB_PAGE_SIZE", 10),
		},
	}
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".sarb-token.json"
	}
	return home + string(os.PathSeparator) + ".sarb" + string(os.PathSeparator) + "token.json"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
