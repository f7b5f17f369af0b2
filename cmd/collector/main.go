package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/battle-tracker/internal/app"
	"github.com/riskibarqy/battle-tracker/internal/config"
	"github.com/riskibarqy/battle-tracker/internal/observability"
	"github.com/riskibarqy/battle-tracker/internal/platform/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	logger := logging.New(cfg.ConsoleLogs(), cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("shutdown uptrace failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
	defer cancel()

	ctx, span := otel.Tracer("battle-tracker/cmd/collector").Start(ctx, "collector.run")
	defer span.End()

	svc, cleanup, err := app.NewCollector(ctx, cfg, logger)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(ctx, "build collector", "error", err)
		return 1
	}
	defer cleanup()

	logger.InfoContext(ctx, "collector run starting",
		"history_store", cfg.HistoryStore,
		"timezone", cfg.BattleLocation.String(),
	)

	result, err := svc.Run(ctx)
	span.SetAttributes(
		attribute.Int("battle.records_saved", result.Saved),
		attribute.Int("battle.records_updated", len(result.Updated)),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(ctx, "collector run failed", "error", err)
		return 1
	}

	fields := []any{
		"loaded", result.Loaded,
		"updated", len(result.Updated),
		"saved", result.Saved,
		"reconcile_skipped", result.ReconcileSkipped,
		"forecast_skipped", result.ForecastSkipped,
	}
	if result.Appended != nil {
		fields = append(fields,
			"appended_battle_id", result.Appended.BattleID,
			"appended_sequence_number", result.Appended.SequenceNumber,
		)
	}
	logger.InfoContext(ctx, "collector run finished", fields...)
	return 0
}
