package transport

import (
	"github.com/goodnatureofminers/doublespend-viewer/internal/model"
	"github.com/goodnatureofminers/doublespend-viewer/internal/service"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	EventsProvider interface {
		Snapshot() *service.Snapshot
		Detail(id string) (model.Detail, error)
	}
)
