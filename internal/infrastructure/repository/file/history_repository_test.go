package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riskibarqy/battle-tracker/internal/domain/battle"
)

func TestHistoryRepository_LoadMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	repo := NewHistoryRepository(filepath.Join(t.TempDir(), "history.json"))
	records, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("expected empty non-nil set, got %v", records)
	}
}

func TestHistoryRepository_LoadCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte(`[{"sequenceNumber":`), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	_, err := NewHistoryRepository(path).Load(context.Background())
	if !errors.Is(err, battle.ErrCorruptHistory) {
		t.Fatalf("expected corrupt history error, got %v", err)
	}
}

func TestHistoryRepository_SaveThenLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.json")
	repo := NewHistoryRepository(path)
	input := []battle.Record{
		{SequenceNumber: 1, BattleID: "20240601_13", Date: "01/06", Hour: "13:00", AngelScore: 10, WinningFaction: "angel", WinningTotal: 99},
		{SequenceNumber: 3, BattleID: "20240601_15", Date: "01/06", Hour: "15:00"},
		{SequenceNumber: 2, BattleID: "20240601_14", Date: "01/06", Hour: "14:00", DevilRemaining: 4},
	}

	if err := repo.Save(context.Background(), input); err != nil {
		t.Fatalf("save: %v", err)
	}
	if input[0].SequenceNumber != 1 {
		t.Fatalf("save must not reorder the caller's slice")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	text := string(raw)
	if !strings.HasPrefix(text, "[\n  {\n    \"sequenceNumber\": 3,") {
		t.Fatalf("expected pretty-printed newest-first content, got:\n%s", text)
	}

	loaded, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("expected 3 records, got=%d", len(loaded))
	}
	for i, want := range []int64{3, 2, 1} {
		if loaded[i].SequenceNumber != want {
			t.Fatalf("unexpected order at %d: got=%d want=%d", i, loaded[i].SequenceNumber, want)
		}
	}
	if loaded[2] != input[0] {
		t.Fatalf("record did not round-trip: got=%+v want=%+v", loaded[2], input[0])
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

func TestHistoryRepository_SaveIntoMissingDirectoryFails(t *testing.T) {
	t.Parallel()

	repo := NewHistoryRepository(filepath.Join(t.TempDir(), "missing", "history.json"))
	if err := repo.Save(context.Background(), []battle.Record{{SequenceNumber: 1}}); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
