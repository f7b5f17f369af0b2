package postgres

import "github.com/riskibarqy/battle-tracker/internal/domain/battle"

type battleRecordTableModel struct {
	SequenceNumber int64  `db:"sequence_number"`
	BattleID       string `db:"battle_id"`
	DisplayDate    string `db:"display_date"`
	DisplayHour    string `db:"display_hour"`
	AngelScore     int64  `db:"angel_score"`
	DevilScore     int64  `db:"devil_score"`
	AngelRemaining int64  `db:"angel_remaining"`
	DevilRemaining int64  `db:"devil_remaining"`
	WinningFaction string `db:"winning_faction"`
	WinningTotal   int64  `db:"winning_total"`
}

func battleRecordFromDomain(item battle.Record) battleRecordTableModel {
	return battleRecordTableModel{
		SequenceNumber: item.SequenceNumber,
		BattleID:       item.BattleID,
		DisplayDate:    item.Date,
		DisplayHour:    item.Hour,
		AngelScore:     item.AngelScore,
		DevilScore:     item.DevilScore,
		AngelRemaining: item.AngelRemaining,
		DevilRemaining: item.DevilRemaining,
		WinningFaction: item.WinningFaction,
		WinningTotal:   item.WinningTotal,
	}
}

func (m battleRecordTableModel) toDomain() battle.Record {
	return battle.Record{
		SequenceNumber: m.SequenceNumber,
		BattleID:       m.BattleID,
		Date:           m.DisplayDate,
		Hour:           m.DisplayHour,
		AngelScore:     m.AngelScore,
		DevilScore:     m.DevilScore,
		AngelRemaining: m.AngelRemaining,
		DevilRemaining: m.DevilRemaining,
		WinningFaction: m.WinningFaction,
		WinningTotal:   m.WinningTotal,
	}
}
