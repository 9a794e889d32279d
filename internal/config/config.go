package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port                 string
	AllowedOrigins       []string
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	RedisURL             string
	RedisPassword        string
	JWTSecret            string
	GameTokenTTL         time.Duration
	SearchDepth          int
	ParallelSearch       bool
	BotCacheTTL          time.Duration
	SessionIdleTimeout   time.Duration
	LogLevel             string
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// CORS: localhost for development plus CSV values
	allowedOrigins := []string{"http://localhost:5173"}
	if allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", ""); allowedOriginsStr != "" {
		for _, origin := range strings.Split(allowedOriginsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Database Config
	dbURL := GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", ""))
	if dbURL != "" {
		if u, err := url.Parse(dbURL); err == nil && u.Scheme != "" {
			q := u.Query()
			if q.Get("sslmode") == "" {
				q.Set("sslmode", GetEnv("DB_SSLMODE", "disable"))
				u.RawQuery = q.Encode()
				dbURL = u.String()
			}
		}
	}

	AppConfig = &Config{
		Port:                 port,
		AllowedOrigins:       allowedOrigins,
		DatabaseURL:          dbURL,
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		RedisURL:             GetEnv("REDIS_URL", ""),
		RedisPassword:        GetEnv("REDIS_PASSWORD", ""),
		JWTSecret:            GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		GameTokenTTL:         time.Duration(GetEnvAsInt("GAME_TOKEN_TTL_MINUTES", 24*60)) * time.Minute,
		SearchDepth:          GetEnvAsInt("SEARCH_DEPTH", 4),
		ParallelSearch:       GetEnvAsBool("PARALLEL_SEARCH", false),
		BotCacheTTL:          time.Duration(GetEnvAsInt("BOT_CACHE_TTL_MINUTES", 60)) * time.Minute,
		SessionIdleTimeout:   time.Duration(GetEnvAsInt("SESSION_IDLE_MINUTES", 30)) * time.Minute,
		LogLevel:             GetEnv("LOG_LEVEL", "info"),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid integer value, using default")
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Bool("default", defaultValue).Msg("invalid boolean value, using default")
		return defaultValue
	}
	return value
}
