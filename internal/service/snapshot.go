package service

import (
	"time"

	"github.com/goodnatureofminers/doublespend-viewer/internal/model"
)

// Snapshot is the immutable result of one feed refresh.
type Snapshot struct {
	Summaries   []model.Summary
	Failures    []model.Failure
	RefreshedAt time.Time

	events map[string]model.Event
}

func newSnapshot(events []model.Event, batch model.Batch, failures []model.Failure, refreshedAt time.Time) *Snapshot {
	index := make(map[string]model.Event, len(events))
	for _, ev := range events {
		id := ev.ID()
		if id == "" {
			continue
		}
		if _, ok := index[id]; !ok {
			index[id] = ev
		}
	}
	return &Snapshot{
		Summaries:   batch.Summaries,
		Failures:    failures,
		RefreshedAt: refreshedAt,
		events:      index,
	}
}

// Event returns the event identified by id.
func (s *Snapshot) Event(id string) (model.Event, bool) {
	ev, ok := s.events[id]
	return ev, ok
}
