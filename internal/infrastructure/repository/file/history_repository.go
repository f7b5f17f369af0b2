package file

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/battle-tracker/internal/domain/battle"
	"github.com/valyala/bytebufferpool"
)

// HistoryRepository keeps the record set in a single pretty-printed JSON file.
type HistoryRepository struct {
	path string
}

func NewHistoryRepository(path string) *HistoryRepository {
	return &HistoryRepository{path: path}
}

func (r *HistoryRepository) Path() string {
	return r.path
}

// Load returns an empty set when the file does not exist yet. Unreadable or
// undecodable content is reported as battle.ErrCorruptHistory.
func (r *HistoryRepository) Load(_ context.Context) ([]battle.Record, error) {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []battle.Record{}, nil
	}
	if err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "read %s", r.path), battle.ErrCorruptHistory)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []battle.Record{}, nil
	}

	var records []battle.Record
	if err := sonic.Unmarshal(raw, &records); err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "decode %s", r.path), battle.ErrCorruptHistory)
	}
	if records == nil {
		records = []battle.Record{}
	}
	return records, nil
}

// Save replaces the file with the whole record set, newest first. The content
// goes to a temp file in the same directory first so a failed write never
// leaves a truncated history behind.
func (r *HistoryRepository) Save(_ context.Context, records []battle.Record) error {
	sorted := append(make([]battle.Record, 0, len(records)), records...)
	battle.SortNewestFirst(sorted)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	enc := sonic.ConfigStd.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sorted); err != nil {
		return crerr.Wrap(err, "encode battle history")
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return crerr.Wrapf(err, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(buf.B); err != nil {
		_ = tmp.Close()
		return crerr.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return crerr.Wrapf(err, "sync %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrapf(err, "close %s", tmpName)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return crerr.Wrapf(err, "chmod %s", tmpName)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return crerr.Wrapf(err, "replace %s", r.path)
	}
	return nil
}
