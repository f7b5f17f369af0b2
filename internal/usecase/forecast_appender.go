package usecase

import (
	"time"

	"github.com/riskibarqy/battle-tracker/internal/domain/battle"
)

// ForecastInput holds the three upstream inputs of a forecast. All of them must be present.
type ForecastInput struct {
	AngelContributions []battle.Contribution
	DevilContributions []battle.Contribution
	Remaining          RemainingResources
}

// AppendForecast appends a forecast record for the slot starting at the top of
// the next hour after now. It is a no-op when that slot already has a record.
func AppendForecast(records *[]battle.Record, input ForecastInput, now time.Time) (battle.Record, bool) {
	slot := battle.NextSlot(now)
	battleID := battle.BattleIDFromTime(slot)
	if idx, exists := battle.FindByBattleID(*records, battleID); exists {
		return (*records)[idx], false
	}

	angelRemaining, devilRemaining := crossMapRemaining(input.Remaining)
	record := battle.Record{
		SequenceNumber: battle.NextSequenceNumber(*records),
		BattleID:       battleID,
		Date:           battle.DisplayDate(slot),
		Hour:           battle.DisplayHour(slot),
		AngelScore:     SumScores(input.AngelContributions),
		DevilScore:     SumScores(input.DevilContributions),
		AngelRemaining: angelRemaining,
		DevilRemaining: devilRemaining,
	}
	*records = append(*records, record)
	return record, true
}

// crossMapRemaining maps the upstream snapshot onto record fields. Upstream
// reports under "devil" the resource deducted from the angel side and vice
// versa, so the values are swapped. Keep the swap unless the upstream contract changes.
func crossMapRemaining(snapshot RemainingResources) (angelRemaining, devilRemaining int64) {
	return snapshot.Devil, snapshot.Angel
}
