package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/yungbote/thorbis-backend/internal/data/db"
	"github.com/yungbote/thorbis-backend/internal/observability"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
	"github.com/yungbote/thorbis-backend/internal/platform/envutil"
	"github.com/yungbote/thorbis-backend/internal/realtime/bus"
)

type Config struct {
	Port            string `validate:"required,numeric"`
	LogMode         string `validate:"oneof=development production test"`
	ShutdownTimeout time.Duration

	DB db.Config

	Redis bus.RedisConfig

	JWTSecretKey   string
	AccessTokenTTL time.Duration
	CORSOrigins    []string

	MetricsEnabled bool
	Otel           observability.OtelConfig

	GamificationRulesPath string
	ReconcileConcurrency  int `validate:"gte=1,lte=64"`
}

// LoadEnvFile loads a .env file into the process environment when present.
// Variables already set in the environment win.
func LoadEnvFile(log *logger.Logger, paths ...string) {
	if err := godotenv.Load(paths...); err != nil && log != nil {
		log.Debug("No .env file loaded, using process environment", "error", err)
	}
}

func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		Port:            envutil.String("PORT", "8080"),
		LogMode:         strings.ToLower(envutil.String("LOG_MODE", "development")),
		ShutdownTimeout: time.Duration(envutil.Int("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		DB: db.Config{
			Driver:     strings.ToLower(envutil.String("DB_DRIVER", "postgres")),
			Host:       envutil.String("POSTGRES_HOST", "localhost"),
			Port:       envutil.String("POSTGRES_PORT", "5432"),
			User:       envutil.String("POSTGRES_USER", "postgres"),
			Password:   envutil.String("POSTGRES_PASSWORD", ""),
			Name:       envutil.String("POSTGRES_NAME", "thorbis"),
			SQLitePath: envutil.String("SQLITE_PATH", "thorbis.db"),

			MaxOpenConns:    envutil.Int("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envutil.Int("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(envutil.Int("DB_CONN_MAX_LIFETIME_SECONDS", 1800)) * time.Second,
		},
		Redis: bus.RedisConfig{
			Addr:    envutil.String("REDIS_ADDR", ""),
			Channel: envutil.String("REDIS_CHANNEL", "progress"),
		},
		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", ""),
		AccessTokenTTL: time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 3600)) * time.Second,
		CORSOrigins:    splitList(envutil.String("CORS_ALLOWED_ORIGINS", "")),
		MetricsEnabled: envutil.Bool("METRICS_ENABLED", true),
		Otel: observability.OtelConfig{
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "thorbis-progress"),
			Environment: envutil.String("APP_ENV", "development"),
			Version:     envutil.String("APP_VERSION", ""),
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", true),
			SampleRatio: float64(envutil.Int("OTEL_SAMPLE_PERCENT", 10)) / 100,
		},
		GamificationRulesPath: envutil.String("GAMIFICATION_RULES_PATH", ""),
		ReconcileConcurrency:  envutil.Int("XP_RECONCILE_CONCURRENCY", 4),
	}
	if cfg.LogMode == "prod" {
		cfg.LogMode = "production"
	}

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.DB.Driver != "postgres" && cfg.DB.Driver != "sqlite" {
		return cfg, fmt.Errorf("invalid config: DB_DRIVER must be postgres or sqlite, got %q", cfg.DB.Driver)
	}
	return cfg, nil
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
