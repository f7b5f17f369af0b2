package battle

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func TestBattleIDFromTime_ZeroPadsAndTruncatesHour(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, time.March, 5, 7, 59, 59, 999, time.UTC)
	if got := BattleIDFromTime(ts); got != "20240305_07" {
		t.Fatalf("unexpected battle id: got=%s want=20240305_07", got)
	}
}

func TestBattleIDFromTime_UsesLocationOfTime(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("ICT", 7*60*60)
	ts := time.Date(2024, time.June, 1, 20, 30, 0, 0, time.UTC).In(loc)
	if got := BattleIDFromTime(ts); got != "20240602_03" {
		t.Fatalf("unexpected battle id: got=%s want=20240602_03", got)
	}
}

func TestNextSlot(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "mid hour",
			now:  time.Date(2024, time.June, 1, 13, 47, 12, 500, time.UTC),
			want: time.Date(2024, time.June, 1, 14, 0, 0, 0, time.UTC),
		},
		{
			name: "exact hour still moves forward",
			now:  time.Date(2024, time.June, 1, 14, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.June, 1, 15, 0, 0, 0, time.UTC),
		},
		{
			name: "crosses year boundary",
			now:  time.Date(2024, time.December, 31, 23, 10, 0, 0, time.UTC),
			want: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := NextSlot(tc.now); !got.Equal(tc.want) {
				t.Fatalf("unexpected slot: got=%s want=%s", got, tc.want)
			}
		})
	}
}

func TestNextSlot_HalfHourOffsetZone(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("IST", 5*60*60+30*60)
	now := time.Date(2024, time.June, 1, 13, 47, 0, 0, loc)
	slot := NextSlot(now)
	if slot.Minute() != 0 || slot.Hour() != 14 {
		t.Fatalf("expected 14:00 local, got %s", slot)
	}
	if got := BattleIDFromTime(slot); got != "20240601_14" {
		t.Fatalf("unexpected battle id: %s", got)
	}
}

func TestDisplayFields(t *testing.T) {
	t.Parallel()

	slot := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	if got := DisplayDate(slot); got != "01/06" {
		t.Fatalf("unexpected date: %s", got)
	}
	if got := DisplayHour(slot); got != "09:00" {
		t.Fatalf("unexpected hour: %s", got)
	}
}

func TestNextSequenceNumber(t *testing.T) {
	t.Parallel()

	if got := NextSequenceNumber(nil); got != 1 {
		t.Fatalf("expected 1 for empty set, got=%d", got)
	}

	records := []Record{{SequenceNumber: 3}, {SequenceNumber: 9}, {SequenceNumber: 4}}
	if got := NextSequenceNumber(records); got != 10 {
		t.Fatalf("expected 10, got=%d", got)
	}
}

func TestSortNewestFirst(t *testing.T) {
	t.Parallel()

	records := []Record{{SequenceNumber: 1}, {SequenceNumber: 3}, {SequenceNumber: 2}}
	SortNewestFirst(records)
	for i, want := range []int64{3, 2, 1} {
		if records[i].SequenceNumber != want {
			t.Fatalf("unexpected order at %d: got=%d want=%d", i, records[i].SequenceNumber, want)
		}
	}
}

func TestNextSlot_DSTFallBackStaysAhead(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 01:30 EDT, one hour before the clock repeats 01:00-02:00 as EST.
	now := time.Date(2024, time.November, 3, 5, 30, 0, 0, time.UTC).In(loc)
	slot := NextSlot(now)

	if !slot.After(now) {
		t.Fatalf("expected slot after %s, got %s", now, slot)
	}
	want := time.Date(2024, time.November, 3, 6, 0, 0, 0, time.UTC)
	if !slot.Equal(want) {
		t.Fatalf("expected %s, got %s", want.In(loc), slot)
	}
	if name, _ := slot.Zone(); name != "EST" {
		t.Fatalf("expected standard time slot, got %s", name)
	}
}
