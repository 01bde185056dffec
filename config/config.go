// Package config loads runtime settings from a .env file and the process environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL      string
	ConnectRetries   int
	APIAddr          string
	WebAddr          string
	APIBaseURL       string
	AllowedOrigins   []string
	LogLevel         string
	TokenSecret      string
	VerifyAuthTokens bool
}

// Load reads envFile (when present) and then the environment.
// Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	fileErr := godotenv.Load(envFile)

	retries, err := intEnv("DB_CONNECT_RETRIES", 5)
	if err != nil {
		return nil, err
	}
	verify, err := boolEnv("AUTH_VERIFY_TOKENS", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:      databaseURL(),
		ConnectRetries:   retries,
		APIAddr:          stringEnv("API_ADDR", ":8080"),
		WebAddr:          stringEnv("WEB_ADDR", ":8081"),
		APIBaseURL:       strings.TrimRight(stringEnv("API_BASE_URL", "http://localhost:8080"), "/"),
		AllowedOrigins:   splitList(stringEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8081")),
		LogLevel:         stringEnv("LOG_LEVEL", "info"),
		TokenSecret:      os.Getenv("AUTH_TOKEN_SECRET"),
		VerifyAuthTokens: verify,
	}
	if fileErr != nil {
		// Reported to the caller, which decides whether to log it; a missing file is normal in containers.
		return cfg, &MissingEnvFileError{Path: envFile, Err: fileErr}
	}
	return cfg, nil
}

type MissingEnvFileError struct {
	Path string
	Err  error
}

func (e *MissingEnvFileError) Error() string {
	return fmt.Sprintf("env file %s not loaded: %v", e.Path, e.Err)
}

func (e *MissingEnvFileError) Unwrap() error { return e.Err }

// databaseURL prefers DATABASE_URL and falls back to the discrete
// user/password/host/port/dbname variables.
func databaseURL() string {
	if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
		return dsn
	}
	dbUser := strings.TrimSpace(os.Getenv("user"))
	dbPass := strings.TrimSpace(os.Getenv("password"))
	dbHost := strings.TrimSpace(stringEnv("host", "localhost"))
	dbPort := strings.TrimSpace(stringEnv("port", "5432"))
	dbName := strings.TrimSpace(stringEnv("dbname", "personalportal"))
	sslMode := stringEnv("DB_SSLMODE", "disable")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", dbUser, dbPass, dbHost, dbPort, dbName, sslMode)
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
