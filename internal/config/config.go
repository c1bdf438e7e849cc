package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration shared by the marketplace services.
type Config struct {
	App    AppConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Kafka  KafkaConfig
	Logger LoggerConfig
	Auth   AuthConfig
	Media  MediaConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// MongoConfig holds document store connection values.
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL int
}

// KafkaConfig holds event bus connection values.
type KafkaConfig struct {
	Brokers            []string
	ProductEventsTopic string
	GroupID            string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters. JWTSecret is the
// base64-encoded HMAC signing key shared by all services.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// MediaConfig bounds media uploads.
type MediaConfig struct {
	MaxUploadBytes int64
}

// 32-byte dev key, base64 encoded. Production deployments must override
// AUTH_JWT_SECRET.
const devJWTSecret = "ZGV2LXNlY3JldC1rZXktZGV2LXNlY3JldC1rZXkhIQ=="

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "marketplace"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
			Database:       getEnv("MONGO_DATABASE", "marketplace"),
			ConnectTimeout: getEnvAsInt("MONGO_CONNECT_TIMEOUT_SECONDS", 10),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
			CacheTTL: getEnvAsInt("REDIS_CACHE_TTL_SECONDS", 300),
		},
		Kafka: KafkaConfig{
			Brokers:            splitAndTrim(getEnv("KAFKA_BROKERS", "127.0.0.1:9092")),
			ProductEventsTopic: getEnv("KAFKA_PRODUCT_EVENTS_TOPIC", "product-events"),
			GroupID:            getEnv("KAFKA_CONSUMER_GROUP_ID", "media-service-group"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", devJWTSecret),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Media: MediaConfig{
			MaxUploadBytes: int64(getEnvAsInt("MEDIA_MAX_UPLOAD_BYTES", 2*1024*1024)),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// CacheTTLDuration returns the product cache TTL.
func (r RedisConfig) CacheTTLDuration() time.Duration {
	if r.CacheTTL <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(r.CacheTTL) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitAndTrim(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
