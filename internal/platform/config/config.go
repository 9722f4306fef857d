package config

import (
	"os"
	"strconv"
	"time"
)

// Storage backends for durable key-value storage.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Server captures process-level configuration.
type Server struct {
	Addr        string
	Environment string
	LogLevel    string

	Auth        AuthConfig
	Storage     StorageConfig
	Redis       RedisConfig
	Postgres    PostgresConfig
	Geolocation GeolocationConfig
}

// AuthConfig controls bearer token issuance.
type AuthConfig struct {
	JWTSigningKey string
	Issuer        string
	SessionTTL    time.Duration
}

// StorageConfig selects where the session and preferences are persisted.
type StorageConfig struct {
	Backend  string
	FilePath string
}

// RedisConfig configures the go-redis client used by the redis backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the database/sql pool used by the postgres backend.
type PostgresConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// GeolocationConfig points at the IP-geolocation lookup used for language hints.
type GeolocationConfig struct {
	URL     string
	Timeout time.Duration
}

// IsDevelopment reports whether the process runs with development defaults.
func (s Server) IsDevelopment() bool {
	return s.Environment == "development"
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:        getEnv("HARBOR_ADDR", ":8080"),
		Environment: getEnv("HARBOR_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Auth: AuthConfig{
			// Use a default for development - override in any shared environment
			JWTSigningKey: getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			Issuer:        getEnv("JWT_ISSUER", "harborbank"),
			SessionTTL:    getDuration("SESSION_TTL", 24*time.Hour),
		},
		Storage: StorageConfig{
			Backend:  getEnv("STORAGE_BACKEND", StorageFile),
			FilePath: getEnv("STORAGE_FILE_PATH", "./data/storage.json"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getInt("DATABASE_MAX_OPEN_CONNS", 5),
			MaxIdleConns:    getInt("DATABASE_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Geolocation: GeolocationConfig{
			URL:     getEnv("GEOLOCATION_URL", "https://ipapi.co/{ip}/json/"),
			Timeout: getDuration("GEOLOCATION_TIMEOUT", 3*time.Second),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}
