package battle

import (
	"context"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrCorruptHistory = crerr.New("battle history is corrupt")
	// ErrSequenceConflict means a saved record reuses a sequence number already
	// held by another battle, usually after a run started from an empty set.
	ErrSequenceConflict = crerr.New("battle sequence number conflict")
)

// Repository loads the full record set at the start of a run and replaces it at the end.
type Repository interface {
	Load(ctx context.Context) ([]Record, error)
	Save(ctx context.Context, records []Record) error
}
