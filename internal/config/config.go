package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/battle-tracker/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"

	StoreFile     = "file"
	StorePostgres = "postgres"
)

// Config stores runtime configuration for one collector run.
type Config struct {
	AppEnv                  string `validate:"oneof=dev stage prod"`
	ServiceName             string `validate:"required"`
	ServiceVersion          string
	LogLevel                logging.Level
	RunTimeout              time.Duration  `validate:"gt=0"`
	BattleLocation          *time.Location `validate:"required"`
	BattleFeedBaseURL       string         `validate:"required,url"`
	BattleFeedTimeout       time.Duration  `validate:"gt=0"`
	BattleFeedMaxRetries    int            `validate:"gte=0,lte=10"`
	ContributionLimit       int            `validate:"gte=1"`
	HistoryStore            string         `validate:"oneof=file postgres"`
	HistoryFilePath         string         `validate:"required_if=HistoryStore file"`
	DBURL                   string         `validate:"required_if=HistoryStore postgres"`
	DBDisablePreparedBinary bool
	DBAutoMigrate           bool
	UptraceEnabled          bool
	UptraceDSN              string `validate:"required_if=UptraceEnabled true"`
}

func (c Config) ConsoleLogs() bool {
	return c.AppEnv == EnvDev
}

func Load() (Config, error) {
	appEnv := strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", EnvDev)))

	runTimeout, err := time.ParseDuration(getEnv("RUN_TIMEOUT", "2m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RUN_TIMEOUT: %w", err)
	}

	location, err := time.LoadLocation(strings.TrimSpace(getEnv("BATTLE_TIMEZONE", "Local")))
	if err != nil {
		return Config{}, fmt.Errorf("parse BATTLE_TIMEZONE: %w", err)
	}

	feedTimeout, err := time.ParseDuration(getEnv("BATTLE_FEED_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BATTLE_FEED_TIMEOUT: %w", err)
	}
	feedMaxRetries, err := getEnvAsInt("BATTLE_FEED_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse BATTLE_FEED_MAX_RETRIES: %w", err)
	}
	contributionLimit, err := getEnvAsInt("CONTRIBUTION_LIMIT", 1000)
	if err != nil {
		return Config{}, fmt.Errorf("parse CONTRIBUTION_LIMIT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	dbAutoMigrate, err := strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_AUTO_MIGRATE: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             strings.TrimSpace(getEnv("APP_SERVICE_NAME", "battle-tracker")),
		ServiceVersion:          getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:                parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		RunTimeout:              runTimeout,
		BattleLocation:          location,
		BattleFeedBaseURL:       strings.TrimRight(strings.TrimSpace(getEnv("BATTLE_FEED_BASE_URL", "https://cmangax8.com")), "/"),
		BattleFeedTimeout:       feedTimeout,
		BattleFeedMaxRetries:    feedMaxRetries,
		ContributionLimit:       contributionLimit,
		HistoryStore:            strings.ToLower(strings.TrimSpace(getEnv("HISTORY_STORE", StoreFile))),
		HistoryFilePath:         strings.TrimSpace(getEnv("HISTORY_FILE_PATH", "history.json")),
		DBURL:                   strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		DBAutoMigrate:           dbAutoMigrate,
		UptraceEnabled:          uptraceEnabled,
		UptraceDSN:              uptraceDSN,
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}
