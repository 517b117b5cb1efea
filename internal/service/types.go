package service

import (
	"context"
	"time"

	"github.com/goodnatureofminers/doublespend-viewer/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Source interface {
		Fetch(ctx context.Context) ([]byte, error)
	}
	Summarizer interface {
		SummarizeBatch(ctx context.Context, events []model.Event) (model.Batch, error)
	}
	Repository interface {
		InsertEventSummaries(ctx context.Context, coin model.Coin, network model.Network, summaries []model.Summary) error
		StoredEventIDs(ctx context.Context, coin model.Coin, network model.Network, ids []string) ([]string, error)
	}
	Metrics interface {
		ObserveRefresh(err error, started time.Time)
		SetEvents(kind model.EventKind, count int)
		AddPersisted(count int)
	}
)
