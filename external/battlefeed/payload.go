package battlefeed

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

type historyEnvelope struct {
	AngelDevil *historyGroup `json:"angel_devil"`
}

type historyGroup struct {
	History historyBuckets `json:"history"`
}

type historyEntry struct {
	Time  any     `json:"time" validate:"required"`
	Team  string  `json:"team" validate:"required"`
	Total flexInt `json:"total"`
}

// historyBuckets is keyed by the upstream time bucket. Upstream sometimes
// serializes a bucket map with sequential keys as a plain array; the array
// index is used as the key then. Entries stay raw so one bad bucket can be
// skipped without losing the rest.
type historyBuckets map[string]sonic.NoCopyRawMessage

func (h *historyBuckets) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*h = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []sonic.NoCopyRawMessage
		if err := sonic.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		out := make(historyBuckets, len(items))
		for idx, item := range items {
			out[strconv.Itoa(idx)] = item
		}
		*h = out
		return nil
	}

	var out map[string]sonic.NoCopyRawMessage
	if err := sonic.Unmarshal(trimmed, &out); err != nil {
		return err
	}
	*h = out
	return nil
}

func decodeHistoryEntry(raw sonic.NoCopyRawMessage) (historyEntry, error) {
	var item historyEntry
	if err := sonic.Unmarshal(raw, &item); err != nil {
		return historyEntry{}, err
	}
	return item, nil
}

type remainingPayload struct {
	Angel flexInt `json:"angel"`
	Devil flexInt `json:"devil"`
}

// flexInt accepts a JSON number, a numeric string or null (zero).
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `""` {
		*f = 0
		return nil
	}
	trimmed = strings.Trim(trimmed, `"`)

	if value, err := strconv.ParseInt(strings.TrimSpace(trimmed), 10, 64); err == nil {
		*f = flexInt(value)
		return nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return crerr.Newf("not an integer: %s", abbreviateBody(data))
	}
	*f = flexInt(value)
	return nil
}

const epochMillisThreshold = 1e12

var localTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// parseBattleTime reads the upstream match time. Numbers are epoch
// milliseconds, or epoch seconds when too small to be milliseconds. Strings
// without an offset are read in loc.
func parseBattleTime(raw any, loc *time.Location) (time.Time, error) {
	switch value := raw.(type) {
	case float64:
		return epochToTime(value, loc)
	case string:
		text := strings.TrimSpace(value)
		if text == "" {
			return time.Time{}, crerr.New("empty time")
		}
		if number, err := strconv.ParseFloat(text, 64); err == nil {
			return epochToTime(number, loc)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, text); err == nil {
			return parsed.In(loc), nil
		}
		for _, layout := range localTimeLayouts {
			if parsed, err := time.ParseInLocation(layout, text, loc); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, crerr.Newf("unsupported time format %q", text)
	default:
		return time.Time{}, crerr.Newf("unsupported time type %T", raw)
	}
}

func epochToTime(value float64, loc *time.Location) (time.Time, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return time.Time{}, crerr.Newf("invalid epoch %v", value)
	}
	if value >= epochMillisThreshold {
		return time.UnixMilli(int64(value)).In(loc), nil
	}
	return time.Unix(int64(value), 0).In(loc), nil
}
