package postgres

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/battle-tracker/internal/domain/battle"
)

var battleRecordColumns = []string{
	"sequence_number",
	"battle_id",
	"display_date",
	"display_hour",
	"angel_score",
	"devil_score",
	"angel_remaining",
	"devil_remaining",
	"winning_faction",
	"winning_total",
}

var (
	selectBattleRecordsQuery = "SELECT " + strings.Join(battleRecordColumns, ", ") +
		" FROM battle_records ORDER BY sequence_number DESC"

	// A resolved winner is never overwritten, matching the once-only transition of the domain.
	upsertBattleRecordQuery = `
INSERT INTO battle_records (` + strings.Join(battleRecordColumns, ", ") + `)
VALUES (:` + strings.Join(battleRecordColumns, ", :") + `)
ON CONFLICT (battle_id)
DO UPDATE SET
	winning_faction = EXCLUDED.winning_faction,
	winning_total   = EXCLUDED.winning_total,
	updated_at      = NOW()
WHERE battle_records.winning_faction = ''`
)

type BattleRepository struct {
	db *sqlx.DB
}

func NewBattleRepository(db *sqlx.DB) *BattleRepository {
	return &BattleRepository{db: db}
}

func (r *BattleRepository) Load(ctx context.Context) ([]battle.Record, error) {
	var rows []battleRecordTableModel
	if err := r.db.SelectContext(ctx, &rows, selectBattleRecordsQuery); err != nil {
		return nil, fmt.Errorf("select battle records: %w", err)
	}

	out := make([]battle.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Save upserts every record in one transaction. Rows are never deleted.
func (r *BattleRepository) Save(ctx context.Context, records []battle.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx save battle records: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareNamedContext(ctx, upsertBattleRecordQuery)
	if err != nil {
		return fmt.Errorf("prepare upsert battle record: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, item := range records {
		if _, err := stmt.ExecContext(ctx, battleRecordFromDomain(item)); err != nil {
			return upsertError(item, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save battle records: %w", err)
	}
	return nil
}

func upsertError(item battle.Record, err error) error {
	if isUniqueViolation(err) {
		return crerr.Mark(
			fmt.Errorf("sequence number %d already taken, battle_id=%s: %w", item.SequenceNumber, item.BattleID, err),
			battle.ErrSequenceConflict,
		)
	}
	return fmt.Errorf("upsert battle record battle_id=%s: %w", item.BattleID, err)
}
