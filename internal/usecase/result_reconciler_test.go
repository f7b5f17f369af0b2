package usecase

import (
	"reflect"
	"testing"
	"time"

	"github.com/riskibarqy/battle-tracker/internal/domain/battle"
)

func TestReconcileResults_FillsUnresolvedRecord(t *testing.T) {
	t.Parallel()

	records := []battle.Record{
		{SequenceNumber: 1, BattleID: "20240601_14"},
	}
	history := []HistoryResult{
		{Bucket: "14", Time: time.Date(2024, time.June, 1, 14, 0, 5, 0, time.UTC), Team: "angel", Total: 5000},
	}

	updated := ReconcileResults(records, history, time.UTC)
	if len(updated) != 1 || updated[0] != "20240601_14" {
		t.Fatalf("unexpected updated ids: %v", updated)
	}
	if records[0].WinningFaction != "angel" || records[0].WinningTotal != 5000 {
		t.Fatalf("record not resolved: %+v", records[0])
	}
}

func TestReconcileResults_LeavesResolvedAndUnmatchedUntouched(t *testing.T) {
	t.Parallel()

	records := []battle.Record{
		{SequenceNumber: 1, BattleID: "20240601_13", AngelScore: 10, WinningFaction: "devil", WinningTotal: 700},
		{SequenceNumber: 2, BattleID: "20240601_14", AngelScore: 20},
		{SequenceNumber: 3, BattleID: "20240601_15"},
	}
	before := append([]battle.Record(nil), records...)
	history := []HistoryResult{
		{Time: time.Date(2024, time.June, 1, 13, 0, 0, 0, time.UTC), Team: "angel", Total: 1},
		{Time: time.Date(2024, time.June, 1, 14, 0, 0, 0, time.UTC), Team: "devil", Total: 900},
		{Time: time.Date(2024, time.June, 1, 15, 0, 0, 0, time.UTC), Team: "", Total: 3},
	}

	updated := ReconcileResults(records, history, time.UTC)
	if len(updated) != 1 || updated[0] != "20240601_14" {
		t.Fatalf("unexpected updated ids: %v", updated)
	}
	if !reflect.DeepEqual(records[0], before[0]) {
		t.Fatalf("resolved record changed: got=%+v want=%+v", records[0], before[0])
	}
	if !reflect.DeepEqual(records[2], before[2]) {
		t.Fatalf("record without a usable outcome changed: %+v", records[2])
	}
	if records[1].WinningFaction != "devil" || records[1].WinningTotal != 900 || records[1].AngelScore != 20 {
		t.Fatalf("unexpected reconciled record: %+v", records[1])
	}
}

func TestReconcileResults_UsesBattleLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("ICT", 7*60*60)
	records := []battle.Record{{SequenceNumber: 1, BattleID: "20240602_03"}}
	history := []HistoryResult{
		{Time: time.Date(2024, time.June, 1, 20, 0, 0, 0, time.UTC), Team: "devil", Total: 42},
	}

	updated := ReconcileResults(records, history, loc)
	if len(updated) != 1 {
		t.Fatalf("expected the UTC timestamp to map onto the local slot, got %v", updated)
	}
}

func TestReconcileResults_EmptyHistoryIsNoop(t *testing.T) {
	t.Parallel()

	records := []battle.Record{{SequenceNumber: 1, BattleID: "20240601_14"}}
	if updated := ReconcileResults(records, nil, time.UTC); len(updated) != 0 {
		t.Fatalf("expected no updates, got %v", updated)
	}
}
