package usecase

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/battle-tracker/internal/domain/battle"
	"github.com/riskibarqy/battle-tracker/internal/platform/logging"
)

type contributionInfo struct {
	Name  string `json:"name"`
	Guild *struct {
		Name string `json:"name"`
	} `json:"guild"`
}

// NormalizeContributions flattens a raw score list into contributions sorted by
// score, highest first. A non-array payload yields an empty list. An item whose
// info cannot be parsed becomes a zero-score placeholder, and an unparsable
// score counts as zero.
func NormalizeContributions(ctx context.Context, logger *logging.Logger, raw any) []battle.Contribution {
	if logger == nil {
		logger = logging.Default()
	}

	items, ok := raw.([]any)
	if !ok {
		logger.WarnContext(ctx, "contribution payload is not a list", "type", typeName(raw))
		return []battle.Contribution{}
	}

	out := make([]battle.Contribution, 0, len(items))
	for idx, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			logger.WarnContext(ctx, "contribution item is not an object", "index", idx, "type", typeName(item))
			out = append(out, battle.ParseErrorContribution())
			continue
		}

		info, err := parseContributionInfo(entry["info"])
		if err != nil {
			logger.WarnContext(ctx, "parse contribution info failed", "index", idx, "info", abbreviate(entry["info"]), "error", err)
			out = append(out, battle.ParseErrorContribution())
			continue
		}

		score, ok := parseScore(entry["score"])
		if !ok {
			logger.WarnContext(ctx, "contribution score is not numeric, counting as zero", "index", idx, "name", info.Name, "score", entry["score"])
		}

		guild := battle.UnknownGuild
		if info.Guild != nil {
			guild = info.Guild.Name
		}
		out = append(out, battle.Contribution{
			Name:  info.Name,
			Score: score,
			Guild: guild,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func SumScores(items []battle.Contribution) int64 {
	var total int64
	for _, item := range items {
		total += item.Score
	}
	return total
}

func parseContributionInfo(raw any) (contributionInfo, error) {
	text, ok := raw.(string)
	if !ok || strings.TrimSpace(text) == "null" {
		return contributionInfo{}, ErrMalformedPayload
	}

	var info contributionInfo
	if err := sonic.UnmarshalString(text, &info); err != nil {
		return contributionInfo{}, err
	}
	return info, nil
}

// parseScore accepts JSON numbers and numeric strings. Fractions are truncated.
func parseScore(raw any) (int64, bool) {
	switch value := raw.(type) {
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, false
		}
		return int64(value), true
	case int64:
		return value, true
	case int:
		return int64(value), true
	case string:
		text := strings.TrimSpace(value)
		if parsed, err := strconv.ParseInt(text, 10, 64); err == nil {
			return parsed, true
		}
		if parsed, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(parsed) && !math.IsInf(parsed, 0) {
			return int64(parsed), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	default:
		return "unknown"
	}
}

func abbreviate(v any) string {
	text, ok := v.(string)
	if !ok {
		return typeName(v)
	}
	text = strings.TrimSpace(text)
	if len(text) <= 120 {
		return text
	}
	return text[:120] + "..."
}
