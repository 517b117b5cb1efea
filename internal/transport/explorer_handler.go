// Package transport exposes gRPC/HTTP handlers.
package transport

import (
	"context"
	"fmt"
	"time"

	blockinsight7000v1 "github.com/goodnatureofminers/blockinsight7000-proto/pkg/blockinsight7000/v1"
)

// ExplorerHandler implements ExplorerServiceServer.
type ExplorerHandler struct {
	blockinsight7000v1.UnimplementedExplorerServiceServer
	events EventsProvider
}

// NewExplorerHandler returns an ExplorerHandler instance reporting on the events feed.
func NewExplorerHandler(events EventsProvider) blockinsight7000v1.ExplorerServiceServer {
	return &ExplorerHandler{events: events}
}

// Health reports server health and the state of the last feed refresh.
func (h *ExplorerHandler) Health(_ context.Context, _ *blockinsight7000v1.HealthRequest) (*blockinsight7000v1.HealthResponse, error) {
	return &blockinsight7000v1.HealthResponse{
		Status:      blockinsight7000v1.HealthStatus_HEALTH_STATUS_HEALTHY,
		Description: h.describe(),
	}, nil
}

func (h *ExplorerHandler) describe() string {
	snap := h.events.Snapshot()
	if snap == nil {
		return "feed not loaded yet"
	}
	return fmt.Sprintf("%d events, %d failures, refreshed at %s",
		len(snap.Summaries), len(snap.Failures), snap.RefreshedAt.UTC().Format(time.RFC3339))
}
