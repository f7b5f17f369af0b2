package battlefeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/battle-tracker/internal/domain/battle"
	"github.com/riskibarqy/battle-tracker/internal/platform/logging"
	"github.com/riskibarqy/battle-tracker/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL           = "https://cmangax8.com"
	defaultContributionLimit = 1000
	defaultTimeout           = 20 * time.Second
	historyPath              = "/api/data"
	scoreListPath            = "/api/score_list"
	remainingPath            = "/api/ad_request_remain"
	maxResponseBytes         = 6 << 20
)

var errFeedTransient = crerr.New("battle feed transient failure")

var contributionTypeByFaction = map[battle.Faction]string{
	battle.FactionAngel: "ad_angel",
	battle.FactionDevil: "ad_devil",
}

type ClientConfig struct {
	HTTPClient        *http.Client
	BaseURL           string
	Timeout           time.Duration
	MaxRetries        int
	ContributionLimit int
	Location          *time.Location
	Logger            *logging.Logger
}

// Client reads the four battle feeds. It implements usecase.BattleSource.
type Client struct {
	httpClient        *http.Client
	baseURL           string
	maxRetries        int
	contributionLimit int
	location          *time.Location
	logger            *logging.Logger
	validate          *validator.Validate
	backoff           func(attempt int) time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		// Never mutate the caller's client.
		withTimeout := *httpClient
		withTimeout.Timeout = defaultTimeout
		httpClient = &withTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	limit := cfg.ContributionLimit
	if limit <= 0 {
		limit = defaultContributionLimit
	}
	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	return &Client{
		httpClient:        httpClient,
		baseURL:           baseURL,
		maxRetries:        maxInt(cfg.MaxRetries, 0),
		contributionLimit: limit,
		location:          location,
		logger:            logger,
		validate:          validator.New(),
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * time.Second
		},
	}
}

func (c *Client) FetchBattleHistory(ctx context.Context) ([]usecase.HistoryResult, error) {
	var envelope historyEnvelope
	if err := c.doJSON(ctx, historyPath, map[string]string{"data": "game_data"}, &envelope); err != nil {
		return nil, err
	}
	if envelope.AngelDevil == nil || envelope.AngelDevil.History == nil {
		return nil, unavailable(crerr.Wrap(usecase.ErrMalformedPayload, "history payload has no angel_devil.history"))
	}

	buckets := make([]string, 0, len(envelope.AngelDevil.History))
	for bucket := range envelope.AngelDevil.History {
		buckets = append(buckets, bucket)
	}
	sort.Strings(buckets)

	out := make([]usecase.HistoryResult, 0, len(buckets))
	for _, bucket := range buckets {
		item, err := decodeHistoryEntry(envelope.AngelDevil.History[bucket])
		if err != nil {
			c.logger.WarnContext(ctx, "skip undecodable history entry", "bucket", bucket, "error", err)
			continue
		}
		if err := c.validate.StructCtx(ctx, item); err != nil {
			c.logger.WarnContext(ctx, "skip invalid history entry", "bucket", bucket, "error", err)
			continue
		}
		matchTime, err := parseBattleTime(item.Time, c.location)
		if err != nil {
			c.logger.WarnContext(ctx, "skip history entry with unreadable time", "bucket", bucket, "error", err)
			continue
		}
		out = append(out, usecase.HistoryResult{
			Bucket: bucket,
			Time:   matchTime,
			Team:   strings.TrimSpace(item.Team),
			Total:  int64(item.Total),
		})
	}

	return out, nil
}

func (c *Client) FetchContributions(ctx context.Context, faction battle.Faction) (any, error) {
	listType, ok := contributionTypeByFaction[faction]
	if !ok {
		return nil, unavailable(crerr.Newf("unknown faction %q", faction))
	}

	var out any
	query := map[string]string{
		"type":  listType,
		"limit": strconv.Itoa(c.contributionLimit),
	}
	if err := c.doJSON(ctx, scoreListPath, query, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, unavailable(crerr.Wrapf(usecase.ErrMalformedPayload, "empty %s score list", faction))
	}
	return out, nil
}

func (c *Client) FetchRemainingResources(ctx context.Context) (usecase.RemainingResources, error) {
	var payload *remainingPayload
	if err := c.doJSON(ctx, remainingPath, nil, &payload); err != nil {
		return usecase.RemainingResources{}, err
	}
	if payload == nil {
		return usecase.RemainingResources{}, unavailable(crerr.Wrap(usecase.ErrMalformedPayload, "empty remaining resource payload"))
	}

	return usecase.RemainingResources{
		Angel: int64(payload.Angel),
		Devil: int64(payload.Devil),
	}, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err := c.executeRequest(ctx, fullURL)
	if err != nil {
		return unavailable(err)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		c.logger.WarnContext(ctx, "decode battle feed payload failed", "url", fullURL, "body", abbreviateBody(raw), "error", err)
		return unavailable(crerr.Wrapf(crerr.Mark(err, usecase.ErrMalformedPayload), "decode %s", path))
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFeedTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errFeedTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: status=%d body=%s", errFeedTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				lastErr = fmt.Errorf("status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
				c.logger.WarnContext(ctx, "battle feed request rejected", "url", fullURL, "error", lastErr)
				return nil, lastErr
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("battle feed request failed")
	}
	c.logger.WarnContext(ctx, "battle feed request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func unavailable(err error) error {
	return crerr.Mark(err, usecase.ErrSourceUnavailable)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
