package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/goodnatureofminers/doublespend-viewer/internal/model"
	"github.com/goodnatureofminers/doublespend-viewer/internal/outpoint"
	"github.com/goodnatureofminers/doublespend-viewer/internal/service"
	"go.uber.org/zap"
)

type eventsResponse struct {
	RefreshedAt time.Time         `json:"refreshedAt"`
	Events      []model.Summary   `json:"events"`
	Failures    []failureResponse `json:"failures"`
}

type failureResponse struct {
	Position int    `json:"position"`
	Error    string `json:"error"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// EventsHandler serves event summaries and details over HTTP.
type EventsHandler struct {
	events EventsProvider
	logger *zap.Logger
}

// NewEventsHandler returns an EventsHandler instance.
func NewEventsHandler(events EventsProvider, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{events: events, logger: logger.Named("eventsHandler")}
}

// Register mounts the handler routes on mux.
func (h *EventsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/events", h.List)
	mux.HandleFunc("GET /api/v1/events/{id}", h.Get)
}

// List writes the summaries of the current snapshot. order=desc lists the highest blocks first.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	var desc bool
	switch order := r.URL.Query().Get("order"); order {
	case "", "asc":
	case "desc":
		desc = true
	default:
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "order must be asc or desc"})
		return
	}

	snap := h.events.Snapshot()
	if snap == nil {
		h.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: service.ErrNotReady.Error()})
		return
	}

	events := slices.Clone(snap.Summaries)
	if events == nil {
		events = []model.Summary{}
	}
	if desc {
		slices.Reverse(events)
	}
	failures := make([]failureResponse, 0, len(snap.Failures))
	for _, f := range snap.Failures {
		failures = append(failures, failureResponse{Position: f.Position, Error: f.Err.Error()})
	}

	h.writeJSON(w, http.StatusOK, eventsResponse{
		RefreshedAt: snap.RefreshedAt,
		Events:      events,
		Failures:    failures,
	})
}

// Get writes the detail of one event.
func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	detail, err := h.events.Detail(id)
	switch {
	case err == nil:
		h.writeJSON(w, http.StatusOK, detail)
	case errors.Is(err, service.ErrEventNotFound):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotReady):
		h.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrMalformedEvent), errors.Is(err, outpoint.ErrIndexOverflow):
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("event detail failed", zap.String("id", id), zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (h *EventsHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("write response failed", zap.Error(err))
	}
}
