package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/battle-tracker/internal/domain/battle"
)

type BattleRepository struct {
	mu      sync.RWMutex
	records []battle.Record
	saves   int
}

func NewBattleRepository(seed []battle.Record) *BattleRepository {
	records := make([]battle.Record, 0, len(seed))
	records = append(records, seed...)
	return &BattleRepository{records: records}
}

func (r *BattleRepository) Load(_ context.Context) ([]battle.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]battle.Record, 0, len(r.records))
	out = append(out, r.records...)
	return out, nil
}

func (r *BattleRepository) Save(_ context.Context, records []battle.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(make([]battle.Record, 0, len(records)), records...)
	battle.SortNewestFirst(r.records)
	r.saves++
	return nil
}

func (r *BattleRepository) SaveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.saves
}
