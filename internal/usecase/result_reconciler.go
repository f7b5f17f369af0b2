package usecase

import (
	"time"

	"github.com/riskibarqy/battle-tracker/internal/domain/battle"
)

type battleOutcome struct {
	team  string
	total int64
}

// ReconcileResults fills the winner of every unresolved record that the history
// feed reports, mutating records in place. Resolved records are never touched.
// It returns the battle ids that changed.
func ReconcileResults(records []battle.Record, history []HistoryResult, loc *time.Location) []string {
	if loc == nil {
		loc = time.Local
	}

	outcomes := make(map[string]battleOutcome, len(history))
	for _, item := range history {
		if item.Team == "" || item.Time.IsZero() {
			continue
		}
		battleID := battle.BattleIDFromTime(item.Time.In(loc))
		if _, seen := outcomes[battleID]; seen {
			continue
		}
		outcomes[battleID] = battleOutcome{
			team:  item.Team,
			total: item.Total,
		}
	}

	updated := make([]string, 0)
	for idx := range records {
		record := &records[idx]
		if record.BattleID == "" || record.Resolved() {
			continue
		}
		outcome, ok := outcomes[record.BattleID]
		if !ok {
			continue
		}
		record.WinningFaction = outcome.team
		record.WinningTotal = outcome.total
		updated = append(updated, record.BattleID)
	}

	return updated
}
