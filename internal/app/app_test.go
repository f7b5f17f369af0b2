package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/battle-tracker/internal/config"
	"github.com/riskibarqy/battle-tracker/internal/infrastructure/repository/file"
	"github.com/riskibarqy/battle-tracker/internal/platform/logging"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	return config.Config{
		AppEnv:            config.EnvDev,
		ServiceName:       "battle-tracker",
		RunTimeout:        time.Minute,
		BattleLocation:    time.UTC,
		BattleFeedBaseURL: "http://127.0.0.1:1",
		BattleFeedTimeout: time.Second,
		ContributionLimit: 10,
		HistoryStore:      config.StoreFile,
		HistoryFilePath:   filepath.Join(t.TempDir(), "history.json"),
	}
}

func TestNewCollector_FileStore(t *testing.T) {
	cfg := testConfig(t)

	svc, cleanup, err := NewCollector(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new collector: %v", err)
	}
	defer cleanup()

	if svc == nil {
		t.Fatalf("expected tracker service")
	}
}

func TestNewHistoryRepository_File(t *testing.T) {
	cfg := testConfig(t)

	repo, cleanup, err := newHistoryRepository(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new history repository: %v", err)
	}
	defer cleanup()

	fileRepo, ok := repo.(*file.HistoryRepository)
	if !ok {
		t.Fatalf("expected file repository, got %T", repo)
	}
	if fileRepo.Path() != cfg.HistoryFilePath {
		t.Fatalf("unexpected path: %s", fileRepo.Path())
	}
}

func TestNewHistoryRepository_Unsupported(t *testing.T) {
	cfg := testConfig(t)
	cfg.HistoryStore = "redis"

	_, cleanup, err := newHistoryRepository(context.Background(), cfg, logging.NewNop())
	if err == nil {
		t.Fatalf("expected error for unsupported store")
	}
	if cleanup == nil {
		t.Fatalf("expected non-nil cleanup")
	}
}
