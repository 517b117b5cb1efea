// Package service keeps a summarized view of the event feed up to date.
package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/doublespend-viewer/internal/clock"
	"github.com/goodnatureofminers/doublespend-viewer/internal/feed"
	"github.com/goodnatureofminers/doublespend-viewer/internal/model"
	"github.com/goodnatureofminers/doublespend-viewer/internal/summary"
	"go.uber.org/zap"
)

const (
	defaultRefreshInterval = 30 * time.Second
	backoffDuration        = 5 * time.Second
)

var (
	// ErrNotReady is returned before the first successful refresh.
	ErrNotReady = errors.New("feed not loaded yet")
	// ErrEventNotFound is returned for identities absent from the current snapshot.
	ErrEventNotFound = errors.New("event not found")
)

// Refresher periodically fetches, decodes and summarizes the feed and publishes the result.
type Refresher struct {
	logger          *zap.Logger
	coin            model.Coin
	network         model.Network
	source          Source
	summarizer      Summarizer
	repo            Repository
	metrics         Metrics
	decode          func([]byte) ([]model.Event, []model.Failure, error)
	sleep           func(context.Context, time.Duration) error
	now             func() time.Time
	refreshInterval time.Duration
	backoffDuration time.Duration
	snapshot        atomic.Pointer[Snapshot]
}

// NewRefresher builds a Refresher. repo may be nil, in which case summaries are not persisted.
func NewRefresher(
	source Source,
	summarizer Summarizer,
	repo Repository,
	metrics Metrics,
	coin model.Coin,
	network model.Network,
	refreshInterval time.Duration,
	logger *zap.Logger,
	decodeOpts ...feed.Option,
) (*Refresher, error) {
	if source == nil {
		return nil, errors.New("refresher source is required")
	}
	if summarizer == nil {
		return nil, errors.New("refresher summarizer is required")
	}
	if metrics == nil {
		return nil, errors.New("refresher metrics is required")
	}
	if refreshInterval <= 0 {
		refreshInterval = defaultRefreshInterval
	}

	return &Refresher{
		logger: logger.Named("refresher").With(
			zap.String("coin", string(coin)),
			zap.String("network", string(network)),
		),
		coin:       coin,
		network:    network,
		source:     source,
		summarizer: summarizer,
		repo:       repo,
		metrics:    metrics,
		decode: func(data []byte) ([]model.Event, []model.Failure, error) {
			return feed.Decode(data, decodeOpts...)
		},
		sleep:           clock.SleepWithContext,
		now:             time.Now,
		refreshInterval: refreshInterval,
		backoffDuration: backoffDuration,
	}, nil
}

// Run refreshes the feed until the context is canceled.
func (r *Refresher) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := r.run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.logger.Warn("refresh failed, backing off", zap.Error(err), zap.Duration("sleep", r.backoffDuration))
			if sleepErr := r.sleep(ctx, r.backoffDuration); sleepErr != nil {
				return sleepErr
			}
			continue
		}
		if err := r.sleep(ctx, r.refreshInterval); err != nil {
			return err
		}
	}
}

// Refresh performs a single refresh.
func (r *Refresher) Refresh(ctx context.Context) error {
	return r.run(ctx)
}

func (r *Refresher) run(ctx context.Context) (err error) {
	started := r.now()
	defer func() {
		r.metrics.ObserveRefresh(err, started)
	}()

	data, err := r.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}

	events, decodeFailures, err := r.decode(data)
	if err != nil {
		return fmt.Errorf("decode feed: %w", err)
	}
	for _, f := range decodeFailures {
		r.logger.Warn("skip record", zap.Int("position", f.Position), zap.Error(f.Err))
	}

	batch, err := r.summarizer.SummarizeBatch(ctx, events)
	if err != nil {
		return fmt.Errorf("summarize feed: %w", err)
	}

	failures := make([]model.Failure, 0, len(decodeFailures)+len(batch.Failures))
	failures = append(failures, decodeFailures...)
	failures = append(failures, batch.Failures...)
	slices.SortFunc(failures, func(a, b model.Failure) int {
		return cmp.Compare(a.Position, b.Position)
	})

	r.snapshot.Store(newSnapshot(events, batch, failures, r.now()))
	r.publishCounts(batch.Summaries)

	r.logger.Info("feed refreshed",
		zap.Int("records", len(events)+len(decodeFailures)),
		zap.Int("summaries", len(batch.Summaries)),
		zap.Int("failures", len(failures)),
	)

	if r.repo == nil {
		return nil
	}
	return r.persist(ctx, batch.Summaries)
}

func (r *Refresher) publishCounts(summaries []model.Summary) {
	counts := map[model.EventKind]int{
		model.EventDoubleSpend:             0,
		model.EventSpendingReorgedCoinbase: 0,
	}
	for _, s := range summaries {
		counts[s.Kind]++
	}
	for kind, count := range counts {
		r.metrics.SetEvents(kind, count)
	}
}

// persist stores the summaries whose ids are not stored yet, whatever their height.
func (r *Refresher) persist(ctx context.Context, summaries []model.Summary) error {
	ids := make([]string, 0, len(summaries))
	for _, s := range summaries {
		ids = append(ids, s.ID)
	}
	storedIDs, err := r.repo.StoredEventIDs(ctx, r.coin, r.network, ids)
	if err != nil {
		return fmt.Errorf("stored event ids: %w", err)
	}
	stored := make(map[string]struct{}, len(storedIDs))
	for _, id := range storedIDs {
		stored[id] = struct{}{}
	}

	pending := make([]model.Summary, 0, len(summaries))
	for _, s := range summaries {
		if _, ok := stored[s.ID]; ok {
			continue
		}
		stored[s.ID] = struct{}{}
		pending = append(pending, s)
	}
	if len(pending) == 0 {
		return nil
	}

	if err := r.repo.InsertEventSummaries(ctx, r.coin, r.network, pending); err != nil {
		return fmt.Errorf("insert event summaries: %w", err)
	}
	r.metrics.AddPersisted(len(pending))
	r.logger.Debug("summaries persisted", zap.Int("count", len(pending)), zap.Int("already_stored", len(storedIDs)))
	return nil
}

// Snapshot returns the last published snapshot, or nil before the first refresh.
func (r *Refresher) Snapshot() *Snapshot {
	return r.snapshot.Load()
}

// Detail resolves the event identified by id in the current snapshot.
func (r *Refresher) Detail(id string) (model.Detail, error) {
	snap := r.snapshot.Load()
	if snap == nil {
		return model.Detail{}, ErrNotReady
	}
	ev, ok := snap.Event(id)
	if !ok {
		return model.Detail{}, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	return summary.Detail(ev)
}
