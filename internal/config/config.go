package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Session backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
)

// Config holds client runtime configuration sourced from env vars.
type Config struct {
	APIBase string

	SessionBackend   string
	SessionFile      string
	SessionNamespace string
	// SessionSecret, when set, seals stored values with XChaCha20-Poly1305.
	SessionSecret []byte

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DatabaseURL   string
	MySQLDSN      string

	// RateLimit paces outgoing calls in requests per second. Zero disables pacing.
	RateLimit float64
	RateBurst int

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		APIBase:          strings.TrimSuffix(fallback(os.Getenv("UBU_API_BASE"), "http://localhost:8000/api"), "/"),
		SessionBackend:   strings.ToLower(fallback(os.Getenv("UBU_SESSION_BACKEND"), BackendFile)),
		SessionFile:      fallback(os.Getenv("UBU_SESSION_FILE"), defaultSessionFile()),
		SessionNamespace: strings.TrimSpace(os.Getenv("UBU_SESSION_NAMESPACE")),
		RedisAddr:        strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		MySQLDSN:         strings.TrimSpace(os.Getenv("MYSQL_DSN")),
		LogLevel:         fallback(os.Getenv("LOG_LEVEL"), "info"),
		LogFormat:        fallback(os.Getenv("LOG_FORMAT"), "text"),
	}

	if db, err := strconv.Atoi(fallback(os.Getenv("REDIS_DB"), "0")); err == nil && db >= 0 {
		cfg.RedisDB = db
	} else {
		return Config{}, fmt.Errorf("invalid REDIS_DB value: %q", os.Getenv("REDIS_DB"))
	}

	if raw := strings.TrimSpace(os.Getenv("UBU_RATE_LIMIT")); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil || rps < 0 {
			return Config{}, fmt.Errorf("invalid UBU_RATE_LIMIT value: %q", raw)
		}
		cfg.RateLimit = rps
	}
	if burst, err := strconv.Atoi(fallback(os.Getenv("UBU_RATE_BURST"), "1")); err == nil && burst > 0 {
		cfg.RateBurst = burst
	} else {
		cfg.RateBurst = 1
	}

	if raw := strings.TrimSpace(os.Getenv("UBU_SESSION_SECRET")); raw != "" {
		key, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return Config{}, fmt.Errorf("UBU_SESSION_SECRET must be base64: %w", err)
		}
		if len(key) != 32 {
			return Config{}, fmt.Errorf("UBU_SESSION_SECRET must decode to 32 bytes, got %d", len(key))
		}
		cfg.SessionSecret = key
	}

	switch cfg.SessionBackend {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return Config{}, errors.New("REDIS_ADDR is required for the redis session backend")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required for the postgres session backend")
		}
	case BackendMySQL:
		if cfg.MySQLDSN == "" {
			return Config{}, errors.New("MYSQL_DSN is required for the mysql session backend")
		}
	default:
		return Config{}, fmt.Errorf("unknown UBU_SESSION_BACKEND %q", cfg.SessionBackend)
	}

	return cfg, nil
}

// MockConfig configures the in-memory mock backend.
type MockConfig struct {
	Port        string
	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration
	CORSOrigins []string
	LogLevel    string
	LogFormat   string
	// PublishableKey is served by GET /payments/publishable-key/.
	PublishableKey string
}

// LoadMock reads the mock backend configuration from the environment.
func LoadMock() (MockConfig, error) {
	cfg := MockConfig{
		Port:        fallback(os.Getenv("PORT"), "8000"),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:   fallback(os.Getenv("JWT_ISSUER"), "ubu-lite-mock"),
		CORSOrigins: parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		LogLevel:    fallback(os.Getenv("LOG_LEVEL"), "info"),
		LogFormat:   fallback(os.Getenv("LOG_FORMAT"), "text"),

		PublishableKey: fallback(os.Getenv("STRIPE_PUBLISHABLE_KEY"), "pk_test_ubu_lite"),
	}

	minutes := fallback(os.Getenv("JWT_TTL_MINUTES"), "60")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.JWTTTL = 60 * time.Minute
	}

	if cfg.JWTSecret == "" {
		return MockConfig{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c MockConfig) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "ubu", "session.json")
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
