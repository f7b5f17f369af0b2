package battle

import (
	"fmt"
	"sort"
	"time"
)

// BattleIDFromTime returns the YYYYMMDD_HH key of the hourly slot containing t,
// evaluated in t's location. Both the reconcile and forecast paths must use it.
func BattleIDFromTime(t time.Time) string {
	return fmt.Sprintf("%04d%02d%02d_%02d", t.Year(), int(t.Month()), t.Day(), t.Hour())
}

// NextSlot returns the top of the hour following now, in now's location.
// The result is always after now, including across a DST fall-back where the
// wall clock repeats an hour. Zones with a sub-hour offset fall back to wall
// clock arithmetic.
func NextSlot(now time.Time) time.Time {
	next := now.Add(time.Hour)
	if _, offset := next.Zone(); offset%3600 == 0 {
		return next.Truncate(time.Hour)
	}
	return time.Date(next.Year(), next.Month(), next.Day(), next.Hour(), 0, 0, 0, next.Location())
}

func DisplayDate(slot time.Time) string {
	return slot.Format(displayDateLayout)
}

func DisplayHour(slot time.Time) string {
	return fmt.Sprintf("%02d:00", slot.Hour())
}

func NextSequenceNumber(records []Record) int64 {
	var maxSeq int64
	for _, item := range records {
		if item.SequenceNumber > maxSeq {
			maxSeq = item.SequenceNumber
		}
	}
	return maxSeq + 1
}

func FindByBattleID(records []Record, battleID string) (int, bool) {
	for idx := range records {
		if records[idx].BattleID == battleID {
			return idx, true
		}
	}
	return -1, false
}

// SortNewestFirst orders records by sequence number, highest first.
func SortNewestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SequenceNumber > records[j].SequenceNumber
	})
}
