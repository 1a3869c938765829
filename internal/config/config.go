// Package config loads application configuration from environment
// variables. Core settings are required; the durable store, Redis and
// the message broker are optional subsystems that the server runs
// without when their variables are unset.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable.
type Config struct {
	Env   string // application environment (e.g. "dev", "prod")
	Port  string // HTTP port to listen on
	Debug bool   // verbose logging

	// MySQL mirror of players and the move log. Enabled when DB_HOST
	// is set; otherwise the in-memory stores are used.
	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string
}

// Load reads configuration from environment variables. Required
// variables are enforced by must() and missing values cause the
// process to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:    must("APP_ENV"),
		Port:   must("APP_PORT"),
		Debug:  envBool("APP_DEBUG", false),
		DBHost: os.Getenv("DB_HOST"),
	}
	if cfg.DBHost != "" {
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	}
	return cfg
}

// UseDB reports whether the MySQL mirror is configured.
func (c Config) UseDB() bool {
	return c.DBHost != ""
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the process logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
