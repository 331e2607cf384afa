package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const devSigningKey = "dev-secret-key-change-in-production"

// Server captures process level configuration.
type Server struct {
	Addr          string
	DatabaseURL   string
	JWTSigningKey string
	JWTIssuer     string
	LogFormat     string
	LogLevel      string
	PhoneRegion   string
	StoreTimeout  time.Duration
	ShutdownGrace time.Duration

	Range Range
	DB    DBPool
}

// Range tunes the report range query engine.
type Range struct {
	MaxDays     int
	Concurrency int
	DayTimeout  time.Duration
}

// DBPool tunes the database/sql pool. Zero values keep driver defaults.
type DBPool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// InMemory reports whether no database is configured.
func (s Server) InMemory() bool {
	return s.DatabaseURL == ""
}

// Load seeds the environment from the given .env files, ignoring missing
// ones, then builds the config with FromEnv.
func Load(files ...string) (Server, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Server{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:          stringEnv("COLDCHECK_ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSigningKey: stringEnv("JWT_SIGNING_KEY", devSigningKey),
		JWTIssuer:     stringEnv("JWT_ISSUER", "coldcheck"),
		LogFormat:     stringEnv("LOG_FORMAT", "json"),
		LogLevel:      stringEnv("LOG_LEVEL", "info"),
		PhoneRegion:   stringEnv("PHONE_REGION", "MY"),
	}

	var err error
	if cfg.StoreTimeout, err = durationEnv("STORE_TIMEOUT", 5*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.ShutdownGrace, err = durationEnv("SHUTDOWN_GRACE", 10*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Range.MaxDays, err = intEnv("RANGE_MAX_DAYS", 366); err != nil {
		return Server{}, err
	}
	if cfg.Range.Concurrency, err = intEnv("RANGE_CONCURRENCY", 4); err != nil {
		return Server{}, err
	}
	if cfg.Range.DayTimeout, err = durationEnv("RANGE_DAY_TIMEOUT", 0); err != nil {
		return Server{}, err
	}
	if cfg.DB.MaxOpenConns, err = intEnv("DB_MAX_OPEN_CONNS", 25); err != nil {
		return Server{}, err
	}
	if cfg.DB.MaxIdleConns, err = intEnv("DB_MAX_IDLE_CONNS", 10); err != nil {
		return Server{}, err
	}
	if cfg.DB.ConnMaxLifetime, err = durationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute); err != nil {
		return Server{}, err
	}
	if cfg.DB.ConnMaxIdleTime, err = durationEnv("DB_CONN_MAX_IDLE_TIME", time.Minute); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func stringEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s must be a non-negative duration, got %q", key, v)
	}
	return d, nil
}
