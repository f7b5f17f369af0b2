package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/battle-tracker/internal/domain/battle"
	"github.com/riskibarqy/battle-tracker/internal/platform/logging"
)

func TestNormalizeContributions_ParsesAndSubstitutesMalformedInfo(t *testing.T) {
	t.Parallel()

	raw := []any{
		map[string]any{"info": `{"name":"A","guild":{"name":"G1"}}`, "score": "100"},
		map[string]any{"info": "malformed", "score": "5"},
	}

	got := NormalizeContributions(context.Background(), logging.NewNop(), raw)
	want := []battle.Contribution{
		{Name: "A", Score: 100, Guild: "G1"},
		{Name: "parse error", Score: 0, Guild: "N/A"},
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected length: got=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected entry %d: got=%+v want=%+v", i, got[i], want[i])
		}
	}
}

func TestNormalizeContributions_NonListYieldsEmpty(t *testing.T) {
	t.Parallel()

	for _, raw := range []any{nil, map[string]any{"error": "x"}, "oops", float64(3)} {
		got := NormalizeContributions(context.Background(), logging.NewNop(), raw)
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil list for %T, got=%v", raw, got)
		}
	}
}

func TestNormalizeContributions_SortedByScoreDescending(t *testing.T) {
	t.Parallel()

	raw := []any{
		map[string]any{"info": `{"name":"low"}`, "score": float64(3)},
		map[string]any{"info": `{"name":"high"}`, "score": "900"},
		"not an object",
		map[string]any{"info": `{"name":"mid","guild":null}`, "score": float64(42.9)},
		map[string]any{"info": `{"name":"bad score"}`, "score": "n/a"},
		map[string]any{"info": `null`, "score": "7"},
	}

	got := NormalizeContributions(context.Background(), logging.NewNop(), raw)
	if len(got) != len(raw) {
		t.Fatalf("every item must produce an entry: got=%d want=%d", len(got), len(raw))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Score < got[i].Score {
			t.Fatalf("not sorted at %d: %+v", i, got)
		}
	}
	if got[0].Name != "high" || got[0].Score != 900 || got[0].Guild != battle.UnknownGuild {
		t.Fatalf("unexpected top entry: %+v", got[0])
	}
	if got[1].Name != "mid" || got[1].Score != 42 {
		t.Fatalf("expected truncated fractional score, got %+v", got[1])
	}
	if SumScores(got) != 945 {
		t.Fatalf("unexpected sum: %d", SumScores(got))
	}
}

func TestParseScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  any
		want int64
		ok   bool
	}{
		{raw: "100", want: 100, ok: true},
		{raw: " 12 ", want: 12, ok: true},
		{raw: "12.7", want: 12, ok: true},
		{raw: float64(-4), want: -4, ok: true},
		{raw: "", want: 0, ok: false},
		{raw: "abc", want: 0, ok: false},
		{raw: nil, want: 0, ok: false},
		{raw: true, want: 0, ok: false},
	}

	for _, tc := range cases {
		got, ok := parseScore(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("parseScore(%#v): got=(%d,%t) want=(%d,%t)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}
