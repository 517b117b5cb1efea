package summary

import (
	"time"

	"github.com/goodnatureofminers/doublespend-viewer/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		ObserveEvent(kind model.EventKind, err error)
		ObserveBatch(err error, events, failures int, started time.Time)
	}
)
