package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"pocketcart/pkg/logger"
)

type Config struct {
	HTTPPort    string
	Env         string
	CORSOrigins []string
	DB          DBConfig
	Auth        AuthConfig
	Redis       RedisConfig
	History     HistoryConfig
	RateLimit   RateLimitConfig
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type AuthConfig struct {
	SessionTTL    time.Duration
	CookieName    string
	CookieSecure  bool
	SkipAuth      bool
	MockUserID    string
	MockUserEmail string
	MockUserName  string
}

type RedisConfig struct {
	URL string
}

type HistoryConfig struct {
	TimeZone string
	Location *time.Location
	CacheTTL time.Duration
}

type RateLimitConfig struct {
	Enabled bool
	Auth    string
}

// ClientConfig drives the terminal client.
type ClientConfig struct {
	APIURL    string
	StatePath string
	Timeout   time.Duration
}

type source struct {
	k *koanf.Koanf
}

func newSource(log logger.Logger) (source, error) {
	if err := loadDotEnv(log); err != nil {
		return source{}, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return source{}, fmt.Errorf("load env: %w", err)
	}
	return source{k: k}, nil
}

func Load(log logger.Logger) (Config, error) {
	src, err := newSource(log)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		HTTPPort:    src.String("HTTP_PORT", "8080"),
		Env:         src.String("ENV", "development"),
		CORSOrigins: src.List("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		DB: DBConfig{
			DSN:             src.String("DB_DSN", ""),
			Host:            src.String("DB_HOST", "localhost"),
			Port:            src.String("DB_PORT", "5432"),
			User:            src.String("DB_USER", "postgres"),
			Password:        src.String("DB_PASSWORD", "postgres"),
			Name:            src.String("DB_NAME", "pocketcart"),
			SSLMode:         src.String("DB_SSLMODE", "disable"),
			TimeZone:        src.String("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    src.Int("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    src.Int("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: src.Duration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			AutoMigrate:     src.Bool("DB_AUTO_MIGRATE", true),
		},
		Auth: AuthConfig{
			SessionTTL:    src.Duration("AUTH_SESSION_TTL", 7*24*time.Hour),
			CookieName:    src.String("AUTH_COOKIE_NAME", "pocketcart_session"),
			CookieSecure:  src.Bool("AUTH_COOKIE_SECURE", false),
			SkipAuth:      src.Bool("AUTH_SKIP", false),
			MockUserID:    src.String("AUTH_MOCK_USER_ID", "00000000-0000-0000-0000-000000000001"),
			MockUserEmail: src.String("AUTH_MOCK_USER_EMAIL", ""),
			MockUserName:  src.String("AUTH_MOCK_USER_NAME", ""),
		},
		Redis: RedisConfig{
			URL: src.String("REDIS_URL", ""),
		},
		History: HistoryConfig{
			TimeZone: src.String("HISTORY_TIMEZONE", "UTC"),
			CacheTTL: src.Duration("HISTORY_CACHE_TTL", 5*time.Minute),
		},
		RateLimit: RateLimitConfig{
			Enabled: src.Bool("RATE_LIMIT_ENABLED", true),
			Auth:    src.String("RATE_LIMIT_AUTH", "20-M"),
		},
	}

	location, err := time.LoadLocation(cfg.History.TimeZone)
	if err != nil {
		return Config{}, fmt.Errorf("history timezone %q: %w", cfg.History.TimeZone, err)
	}
	cfg.History.Location = location

	return cfg, nil
}

func LoadClient(log logger.Logger) (ClientConfig, error) {
	src, err := newSource(log)
	if err != nil {
		return ClientConfig{}, err
	}

	return ClientConfig{
		APIURL:    strings.TrimRight(src.String("POCKETCART_API_URL", "http://localhost:8080"), "/"),
		StatePath: src.String("POCKETCART_STATE_PATH", "pocketcart.db"),
		Timeout:   src.Duration("POCKETCART_TIMEOUT", 10*time.Second),
	}, nil
}

func (s source) String(key, fallback string) string {
	if value := strings.TrimSpace(s.k.String(key)); value != "" {
		return value
	}
	return fallback
}

func (s source) Int(key string, fallback int) int {
	value := strings.TrimSpace(s.k.String(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (s source) Duration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(s.k.String(key))
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (s source) Bool(key string, fallback bool) bool {
	value := strings.TrimSpace(s.k.String(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (s source) List(key string, fallback []string) []string {
	value := strings.TrimSpace(s.k.String(key))
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
