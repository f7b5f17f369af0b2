package usecase

import (
	"context"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/battle-tracker/internal/domain/battle"
	"github.com/riskibarqy/battle-tracker/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"
)

type TrackerConfig struct {
	Location *time.Location
	Now      func() time.Time
}

// RunResult summarizes one collector run.
type RunResult struct {
	Loaded           int
	Updated          []string
	Appended         *battle.Record
	ReconcileSkipped bool
	ForecastSkipped  bool
	Saved            int
}

type TrackerService struct {
	source   BattleSource
	repo     battle.Repository
	logger   *logging.Logger
	location *time.Location
	now      func() time.Time
}

func NewTrackerService(source BattleSource, repo battle.Repository, cfg TrackerConfig, logger *logging.Logger) *TrackerService {
	if logger == nil {
		logger = logging.Default()
	}
	location := cfg.Location
	if location == nil {
		location = time.Local
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &TrackerService{
		source:   source,
		repo:     repo,
		logger:   logger,
		location: location,
		now:      now,
	}
}

// Run executes one load, reconcile, forecast and save cycle. Upstream failures
// only skip the step that needs them. The returned error is set only when the
// record set could not be saved.
func (s *TrackerService) Run(ctx context.Context) (RunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrackerService.Run")
	defer span.End()

	var result RunResult
	records := s.loadRecords(ctx)
	result.Loaded = len(records)

	updated, reconciled := s.reconcile(ctx, records)
	result.Updated = updated
	result.ReconcileSkipped = !reconciled

	appended, forecasted := s.forecast(ctx, &records)
	result.Appended = appended
	result.ForecastSkipped = !forecasted

	span.SetAttributes(
		attribute.Int("battle.records_loaded", result.Loaded),
		attribute.Int("battle.records_updated", len(result.Updated)),
		attribute.Bool("battle.forecast_appended", result.Appended != nil),
	)

	battle.SortNewestFirst(records)
	if err := s.repo.Save(ctx, records); err != nil {
		s.logger.ErrorContext(ctx, "save battle history failed", "records", len(records), "error", err)
		span.RecordError(err)
		return result, crerr.Wrap(err, "save battle history")
	}
	result.Saved = len(records)
	s.logger.InfoContext(ctx, "battle history saved", "records", len(records))

	return result, nil
}

func (s *TrackerService) loadRecords(ctx context.Context) []battle.Record {
	records, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "load battle history failed, starting from empty set", "error", err, "corrupt", crerr.Is(err, battle.ErrCorruptHistory))
		return []battle.Record{}
	}
	if records == nil {
		records = []battle.Record{}
	}
	s.logger.InfoContext(ctx, "battle history loaded", "records", len(records))
	return records
}

func (s *TrackerService) reconcile(ctx context.Context, records []battle.Record) ([]string, bool) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrackerService.reconcile")
	defer span.End()

	history, err := s.source.FetchBattleHistory(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "battle history unavailable, skip reconcile", "error", err)
		return nil, false
	}

	updated := ReconcileResults(records, history, s.location)
	if len(updated) == 0 {
		s.logger.InfoContext(ctx, "no battle results to reconcile", "history_entries", len(history))
		return updated, true
	}
	for _, battleID := range updated {
		s.logger.InfoContext(ctx, "battle result reconciled", "battle_id", battleID)
	}
	return updated, true
}

func (s *TrackerService) forecast(ctx context.Context, records *[]battle.Record) (*battle.Record, bool) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrackerService.forecast")
	defer span.End()

	var (
		angelRaw, devilRaw any
		remaining          RemainingResources
		angelErr, devilErr error
		remainingErr       error
	)
	fetches := []forecastFetch{
		{name: "angel_contributions", err: &angelErr, run: func() (err error) {
			angelRaw, err = s.source.FetchContributions(ctx, battle.FactionAngel)
			return err
		}},
		{name: "devil_contributions", err: &devilErr, run: func() (err error) {
			devilRaw, err = s.source.FetchContributions(ctx, battle.FactionDevil)
			return err
		}},
		{name: "remaining_resources", err: &remainingErr, run: func() (err error) {
			remaining, err = s.source.FetchRemainingResources(ctx)
			return err
		}},
	}
	if err := runForecastFetches(fetches); err != nil {
		s.logger.ErrorContext(ctx, "forecast fetch pool failed, skip forecast", "error", err)
		return nil, false
	}

	if angelErr != nil || devilErr != nil || remainingErr != nil {
		s.logger.WarnContext(ctx, "forecast inputs unavailable, skip forecast",
			"angel_error", angelErr,
			"devil_error", devilErr,
			"remaining_error", remainingErr,
		)
		return nil, false
	}

	input := ForecastInput{
		AngelContributions: NormalizeContributions(ctx, s.logger, angelRaw),
		DevilContributions: NormalizeContributions(ctx, s.logger, devilRaw),
		Remaining:          remaining,
	}

	now := s.now().In(s.location)
	record, appended := AppendForecast(records, input, now)
	if !appended {
		s.logger.InfoContext(ctx, "forecast already recorded, skip", "battle_id", record.BattleID)
		return nil, true
	}

	s.logger.InfoContext(ctx, "forecast appended",
		"battle_id", record.BattleID,
		"sequence_number", record.SequenceNumber,
		"angel_score", record.AngelScore,
		"devil_score", record.DevilScore,
	)
	return &record, true
}

type forecastFetch struct {
	name string
	err  *error
	run  func() error
}

// runForecastFetches runs every fetch on its own pool worker and waits for all
// of them. A panicking fetch is reported as an unavailable source.
func runForecastFetches(fetches []forecastFetch) error {
	pool, err := ants.NewPool(len(fetches))
	if err != nil {
		return crerr.Wrap(err, "create forecast fetch pool")
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, fetch := range fetches {
		fetch := fetch
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			*fetch.err = guardFetch(fetch.name, fetch.run)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return crerr.Wrapf(err, "submit %s fetch", fetch.name)
		}
	}

	workers.Wait()
	return nil
}

func guardFetch(name string, run func() error) error {
	var (
		catcher panics.Catcher
		err     error
	)
	catcher.Try(func() { err = run() })
	if recovered := catcher.Recovered(); recovered != nil {
		return crerr.Mark(crerr.Wrapf(recovered.AsError(), "%s fetch panicked", name), ErrSourceUnavailable)
	}
	return err
}
