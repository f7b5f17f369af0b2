package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/battle-tracker/external/battlefeed"
	"github.com/riskibarqy/battle-tracker/internal/config"
	"github.com/riskibarqy/battle-tracker/internal/domain/battle"
	"github.com/riskibarqy/battle-tracker/internal/infrastructure/repository/file"
	"github.com/riskibarqy/battle-tracker/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/battle-tracker/internal/platform/logging"
	"github.com/riskibarqy/battle-tracker/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// NewCollector wires the battle feed client and the configured history store
// into a TrackerService. The cleanup func releases the store and is never nil.
func NewCollector(ctx context.Context, cfg config.Config, logger *logging.Logger) (*usecase.TrackerService, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	repo, cleanup, err := newHistoryRepository(ctx, cfg, logger)
	if err != nil {
		return nil, func() {}, err
	}

	source := battlefeed.NewClient(battlefeed.ClientConfig{
		BaseURL:           cfg.BattleFeedBaseURL,
		Timeout:           cfg.BattleFeedTimeout,
		MaxRetries:        cfg.BattleFeedMaxRetries,
		ContributionLimit: cfg.ContributionLimit,
		Location:          cfg.BattleLocation,
		Logger:            logger,
	})

	svc := usecase.NewTrackerService(source, repo, usecase.TrackerConfig{
		Location: cfg.BattleLocation,
	}, logger)

	return svc, cleanup, nil
}

func newHistoryRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (battle.Repository, func(), error) {
	switch cfg.HistoryStore {
	case config.StorePostgres:
		db, err := openDB(ctx, cfg, logger)
		if err != nil {
			return nil, func() {}, err
		}
		cleanup := func() {
			if err := db.Close(); err != nil {
				logger.Warn("close database failed", "error", err)
			}
		}
		return postgres.NewBattleRepository(db), cleanup, nil
	case config.StoreFile, "":
		logger.Debug("using file history store", "path", cfg.HistoryFilePath)
		return file.NewHistoryRepository(cfg.HistoryFilePath), func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unsupported history store %q", cfg.HistoryStore)
	}
}

func openDB(ctx context.Context, cfg config.Config, logger *logging.Logger) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	if cfg.DBAutoMigrate {
		if err := postgres.Migrate(dbURL); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("using postgres history store", "db_name", dbNameFromURL(dbURL), "auto_migrate", cfg.DBAutoMigrate)
	return db, nil
}
