package summary

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/goodnatureofminers/doublespend-viewer/internal/model"
	"github.com/goodnatureofminers/doublespend-viewer/pkg/workerpool"
	"go.uber.org/zap"
)

const defaultWorkerCount = 8

// Summarizer summarizes whole feeds.
type Summarizer struct {
	workerCount int
	metrics     Metrics
	logger      *zap.Logger
}

// NewSummarizer builds a Summarizer.
func NewSummarizer(metrics Metrics, logger *zap.Logger) (*Summarizer, error) {
	if metrics == nil {
		return nil, errors.New("summarizer metrics is required")
	}
	return &Summarizer{
		workerCount: defaultWorkerCount,
		metrics:     metrics,
		logger:      logger.Named("summarizer"),
	}, nil
}

type result struct {
	summary model.Summary
	err     error
}

// SummarizeBatch summarizes events concurrently. Events that fail are reported as
// failures and do not affect the others. Summaries are ordered by SortKey; events
// with equal keys keep their input order.
func (s *Summarizer) SummarizeBatch(ctx context.Context, events []model.Event) (batch model.Batch, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveBatch(err, len(events), len(batch.Failures), started)
	}()

	results, err := workerpool.Map(ctx, s.workerCount, events, func(_ context.Context, ev model.Event) result {
		sum, err := Summarize(ev)
		s.metrics.ObserveEvent(ev.Kind, err)
		return result{summary: sum, err: err}
	})
	if err != nil {
		return model.Batch{}, err
	}

	batch.Summaries = make([]model.Summary, 0, len(results))
	for i, r := range results {
		if r.err != nil {
			s.logger.Warn("skip event", zap.Int("position", events[i].Position), zap.Error(r.err))
			batch.Failures = append(batch.Failures, model.Failure{Position: events[i].Position, Err: r.err})
			continue
		}
		batch.Summaries = append(batch.Summaries, r.summary)
	}

	slices.SortStableFunc(batch.Summaries, func(a, b model.Summary) int {
		return cmp.Compare(a.SortHeight, b.SortHeight)
	})

	s.logger.Debug("batch summarized",
		zap.Int("events", len(events)),
		zap.Int("summaries", len(batch.Summaries)),
		zap.Int("failures", len(batch.Failures)),
	)
	return batch, nil
}
