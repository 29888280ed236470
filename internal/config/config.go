package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Embedding EmbeddingConfig
	Matching  MatchingConfig
	Log       LogConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string

	AllowedOrigins []string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ApplicationName string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type EmbeddingConfig struct {
	APIKey        string
	Model         string
	FallbackModel string
	RPS           float64
	Burst         int
}

type MatchingConfig struct {
	Concurrency  int
	Timeout      time.Duration
	CatalogLimit int
	EmbeddingTTL time.Duration
	EnhancedTTL  time.Duration
	DefaultLimit int
	MaxLimit     int
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads .env (if present), then the optional CONFIG_FILE, then the
// process environment. Environment variables win over file values.
func Load() (Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	v.AutomaticEnv()
	setDefaults(v)

	if file := strings.TrimSpace(v.GetString("CONFIG_FILE")); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),

		AllowedOrigins: splitList(opt("WS_ALLOWED_ORIGINS")),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE"),
		ApplicationName:       opt("APP_NAME"),
		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		TTL:      time.Duration(v.GetInt("REDIS_TTL")) * time.Second,
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  v.GetDuration("JWT_ACCESS_EXPIRES_IN"),
		RefreshExpiresIn: v.GetDuration("JWT_REFRESH_EXPIRES_IN"),
	}

	apiKey := opt("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = opt("GOOGLE_AI_API_KEY")
	}
	cfg.Embedding = EmbeddingConfig{
		APIKey:        apiKey,
		Model:         opt("EMBEDDING_MODEL"),
		FallbackModel: opt("EMBEDDING_FALLBACK_MODEL"),
		RPS:           v.GetFloat64("EMBEDDING_RPS"),
		Burst:         v.GetInt("EMBEDDING_BURST"),
	}

	cfg.Matching = MatchingConfig{
		Concurrency:  v.GetInt("MATCHING_CONCURRENCY"),
		Timeout:      v.GetDuration("MATCHING_TIMEOUT"),
		CatalogLimit: v.GetInt("MATCHING_CATALOG_LIMIT"),
		EmbeddingTTL: v.GetDuration("MATCHING_EMBEDDING_TTL"),
		EnhancedTTL:  v.GetDuration("MATCHING_ENHANCED_TTL"),
		DefaultLimit: v.GetInt("MATCHING_DEFAULT_LIMIT"),
		MaxLimit:     v.GetInt("MATCHING_MAX_LIMIT"),
	}

	cfg.Log = LogConfig{
		JSON:  v.GetBool("LOG_JSON"),
		Debug: v.GetBool("LOG_DEBUG"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_TTL", 600)

	v.SetDefault("JWT_ACCESS_EXPIRES_IN", 15*time.Minute)
	v.SetDefault("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour)

	v.SetDefault("EMBEDDING_MODEL", "text-embedding-004")
	v.SetDefault("EMBEDDING_FALLBACK_MODEL", "embedding-001")
	v.SetDefault("EMBEDDING_RPS", 10)
	v.SetDefault("EMBEDDING_BURST", 5)

	v.SetDefault("MATCHING_CONCURRENCY", 8)
	v.SetDefault("MATCHING_TIMEOUT", 60*time.Second)
	v.SetDefault("MATCHING_CATALOG_LIMIT", 100)
	v.SetDefault("MATCHING_EMBEDDING_TTL", 24*time.Hour)
	v.SetDefault("MATCHING_ENHANCED_TTL", 5*time.Minute)
	v.SetDefault("MATCHING_DEFAULT_LIMIT", 10)
	v.SetDefault("MATCHING_MAX_LIMIT", 20)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
