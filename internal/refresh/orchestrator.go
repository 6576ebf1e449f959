package refresh

import (
	"context"
	"errors"
	"time"

	"countrypulse/internal/adapters"
	"countrypulse/internal/domain"
	"countrypulse/internal/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Orchestrator sequences one refresh run: concurrent fetch of both sources,
// per-record reconciliation, one transactional persist, then snapshot
// publication. A fetch or validation failure short-circuits before any
// transaction opens; a publish failure is reported but does not flip a
// committed run to failure.
//
// Concurrent runs are not mutually excluded: each persists under its own
// transaction and the last commit wins on overlapping rows.
type Orchestrator struct {
	countries   adapters.CountriesClient
	rates       adapters.RatesClient
	repo        adapters.CountryRepository
	cache       adapters.CountryCache
	publisher   SnapshotPublisher
	multipliers MultiplierSource
	now         func() time.Time
}

func NewOrchestrator(
	countries adapters.CountriesClient,
	rates adapters.RatesClient,
	repo adapters.CountryRepository,
	cache adapters.CountryCache,
	publisher SnapshotPublisher,
	multipliers MultiplierSource,
) *Orchestrator {
	return &Orchestrator{
		countries:   countries,
		rates:       rates,
		repo:        repo,
		cache:       cache,
		publisher:   publisher,
		multipliers: multipliers,
		now:         time.Now,
	}
}

func (o *Orchestrator) Run(ctx context.Context) (domain.RefreshResult, error) {
	execID := uuid.NewString()
	start := time.Now()
	defer func() { metrics.RefreshDuration.Observe(time.Since(start).Seconds()) }()

	logrus.Infof("Refresh run %s started", execID)

	raws, rates, err := o.fetchBoth(ctx)
	if err != nil {
		metrics.RefreshRuns.WithLabelValues(outcomeFor(err)).Inc()
		return domain.RefreshResult{}, err
	}
	if rates == nil {
		err = &domain.SourceUnavailableError{Source: domain.SourceExchange, Err: errors.New("missing rates mapping")}
		metrics.RefreshRuns.WithLabelValues(metrics.OutcomeSourceUnavailable).Inc()
		return domain.RefreshResult{}, err
	}

	// One instant for the whole batch; every row shares it bit-for-bit.
	refreshedAt := o.now().UTC()

	records := make([]domain.Country, 0, len(raws))
	for _, raw := range raws {
		records = append(records, Reconcile(raw, rates, refreshedAt, o.multipliers))
	}

	total, err := o.repo.ApplyRefresh(ctx, records, refreshedAt)
	if err != nil {
		metrics.RefreshRuns.WithLabelValues(metrics.OutcomePersistenceError).Inc()
		return domain.RefreshResult{}, &domain.PersistenceError{Err: err}
	}
	o.cache.Clear()

	stamp := refreshedAt.Format(time.RFC3339)
	if _, pubErr := o.publisher.Publish(ctx, total, stamp); pubErr != nil {
		metrics.SnapshotPublishFailures.Inc()
		logrus.WithError(pubErr).Errorf("Refresh run %s committed but snapshot publish failed", execID)
	}

	metrics.RefreshRuns.WithLabelValues(metrics.OutcomeSuccess).Inc()
	logrus.Infof("Refresh run %s committed, %d countries total", execID, total)
	return domain.RefreshResult{Total: total, LastRefreshedAt: stamp}, nil
}

// fetchBoth runs the two outbound fetches concurrently. The first observed
// failure aborts the run and cancels the other in-flight call; its result is
// discarded.
func (o *Orchestrator) fetchBoth(ctx context.Context) ([]domain.RawCountry, map[string]float64, error) {
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type countriesResult struct {
		raws []domain.RawCountry
		err  error
	}
	type ratesResult struct {
		rates map[string]float64
		err   error
	}

	countriesCh := make(chan countriesResult, 1)
	ratesCh := make(chan ratesResult, 1)

	go func() {
		raws, err := o.countries.FetchCountries(fetchCtx)
		countriesCh <- countriesResult{raws: raws, err: err}
	}()
	go func() {
		rates, err := o.rates.FetchExchangeRates(fetchCtx)
		ratesCh <- ratesResult{rates: rates, err: err}
	}()

	var raws []domain.RawCountry
	var rates map[string]float64
	for range 2 {
		select {
		case res := <-countriesCh:
			if res.err != nil {
				return nil, nil, res.err
			}
			raws = res.raws
		case res := <-ratesCh:
			if res.err != nil {
				return nil, nil, res.err
			}
			rates = res.rates
		}
	}
	return raws, rates, nil
}

func outcomeFor(err error) string {
	var srcErr *domain.SourceUnavailableError
	if errors.As(err, &srcErr) {
		return metrics.OutcomeSourceUnavailable
	}
	var persistErr *domain.PersistenceError
	if errors.As(err, &persistErr) {
		return metrics.OutcomePersistenceError
	}
	return metrics.OutcomeInternalError
}
