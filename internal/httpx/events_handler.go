package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/arkanhadi/go-campus-services/internal/events"
	"github.com/arkanhadi/go-campus-services/internal/notify"
)

// EventsRepo is implemented by events.Repo.
type EventsRepo interface {
	Create(ctx context.Context, title, description, department string, eventTime *time.Time) (events.Event, error)
	List(ctx context.Context, department string) ([]events.Event, error)
}

type EventsHandler struct {
	Repo EventsRepo
	Pub  notify.Publisher
	Auth func(http.Handler) http.Handler
}

func (h *EventsHandler) Register(r *chi.Mux) {
	r.Get("/events", h.list)
	r.With(h.Auth).Post("/events", h.create)
}

type createEventReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Department  string `json:"department"`
	EventTime   string `json:"event_time"`
}

func (h *EventsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createEventReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	// best effort: an unparseable time is stored as unset
	var eventTime *time.Time
	if req.EventTime != "" {
		if t, err := time.Parse(time.RFC3339, req.EventTime); err == nil {
			eventTime = &t
		}
	}

	ev, err := h.Repo.Create(r.Context(), req.Title, req.Description, req.Department, eventTime)
	if errors.Is(err, events.ErrTitleRequired) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Pub.Publish(notify.EventEventCreated, events.EventCreated{
		ID:         ev.ID,
		Title:      ev.Title,
		Department: ev.Department,
	})
	writeJSON(w, http.StatusCreated, ev)
}

func (h *EventsHandler) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.Repo.List(r.Context(), r.URL.Query().Get("department"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if out == nil {
		out = []events.Event{}
	}
	writeJSON(w, http.StatusOK, out)
}
