// Package config resolves process settings from the environment, an optional
// .env file and an optional config.yml in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultPort            = "8080"
	DefaultLanguage        = "he"
	DefaultGeminiModel     = "gemini-2.5-flash"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	MinSecretKeyLength     = 32
	defaultTimezone        = "UTC"
	defaultDatabaseDirName = "data"
	defaultDatabaseFile    = "fitlog.db"
)

var (
	ErrSecretKeyMissing     = errors.New("SECRET_KEY is required")
	ErrSecretKeyPlaceholder = errors.New("SECRET_KEY uses an insecure placeholder value")
	ErrSecretKeyTooShort    = fmt.Errorf("SECRET_KEY must be at least %d characters", MinSecretKeyLength)
	ErrInvalidPort          = errors.New("PORT must be a number between 1 and 65535")
	ErrGeminiKeyMissing     = errors.New("GEMINI_API_KEY is required")
	ErrInvalidLogFormat     = errors.New("LOG_FORMAT must be text or json")
)

var insecureSecretPlaceholders = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
	"secret":                                     {},
	"changeme":                                   {},
}

type Config struct {
	SecretKey          string
	DBPath             string
	Port               string
	Location           *time.Location
	DefaultLanguage    string
	CookieSecure       bool
	GeminiAPIKey       string
	GeminiModel        string
	LogLevel           string
	LogFormat          string
	CORSAllowedOrigins []string
}

// Load reads settings for the operator commands that only need the database.
// Serve-only keys are resolved but not validated; see LoadServer.
func Load() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	port, err := resolvePort(v.GetString("PORT"))
	if err != nil {
		return nil, err
	}

	logFormat := strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT")))
	if logFormat != "text" && logFormat != "json" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLogFormat, logFormat)
	}

	return &Config{
		SecretKey:          strings.TrimSpace(v.GetString("SECRET_KEY")),
		DBPath:             strings.TrimSpace(v.GetString("DB_PATH")),
		Port:               port,
		Location:           resolveLocation(v.GetString("TZ")),
		DefaultLanguage:    strings.ToLower(strings.TrimSpace(v.GetString("DEFAULT_LANGUAGE"))),
		CookieSecure:       v.GetBool("COOKIE_SECURE"),
		GeminiAPIKey:       strings.TrimSpace(v.GetString("GEMINI_API_KEY")),
		GeminiModel:        strings.TrimSpace(v.GetString("GEMINI_MODEL")),
		LogLevel:           strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogFormat:          logFormat,
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}, nil
}

// LoadServer is Load plus the checks the HTTP server depends on.
func LoadServer() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := ValidateSecretKey(cfg.SecretKey); err != nil {
		return nil, err
	}
	if cfg.GeminiAPIKey == "" {
		return nil, ErrGeminiKeyMissing
	}
	return cfg, nil
}

func ValidateSecretKey(secret string) error {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return ErrSecretKeyMissing
	}
	if _, insecure := insecureSecretPlaceholders[strings.ToLower(trimmed)]; insecure {
		return ErrSecretKeyPlaceholder
	}
	if len(trimmed) < MinSecretKeyLength {
		return ErrSecretKeyTooShort
	}
	return nil
}

func newViper() (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config.yml: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("DB_PATH", filepath.Join(defaultDatabaseDirName, defaultDatabaseFile))
	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("TZ", defaultTimezone)
	v.SetDefault("DEFAULT_LANGUAGE", DefaultLanguage)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("GEMINI_MODEL", DefaultGeminiModel)
	v.SetDefault("LOG_LEVEL", DefaultLogLevel)
	v.SetDefault("LOG_FORMAT", DefaultLogFormat)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	return v, nil
}

func resolvePort(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultPort, nil
	}
	port, err := strconv.Atoi(trimmed)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPort, trimmed)
	}
	return strconv.Itoa(port), nil
}

func resolveLocation(name string) *time.Location {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return time.UTC
	}
	location, err := time.LoadLocation(trimmed)
	if err != nil {
		return time.UTC
	}
	return location
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
