package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/battle-tracker/internal/domain/battle"
)

// HistoryResult is one concluded battle reported by the upstream history feed.
type HistoryResult struct {
	Bucket string
	Time   time.Time
	Team   string
	Total  int64
}

// RemainingResources is the upstream remaining-resource snapshot, keyed as the upstream names it.
type RemainingResources struct {
	Angel int64
	Devil int64
}

// BattleSource fetches the four upstream feeds. Every error it returns is marked
// with ErrSourceUnavailable.
type BattleSource interface {
	FetchBattleHistory(ctx context.Context) ([]HistoryResult, error)
	// FetchContributions returns the decoded JSON body untouched; shape checks belong to NormalizeContributions.
	FetchContributions(ctx context.Context, faction battle.Faction) (any, error)
	FetchRemainingResources(ctx context.Context) (RemainingResources, error)
}
