package widget

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/silverfoxgrooming/booking-widget/internal/observability/metrics"
	"github.com/silverfoxgrooming/booking-widget/pkg/logging"
)

// Handler exposes the widget page and its session endpoints. Every user
// action posts to the session and applies the returned effects.
type Handler struct {
	store   *Store
	factory func() *Controller
	logger  *logging.Logger
	metrics *metrics.BookingMetrics
}

// NewHandler creates the widget handler. factory builds a fresh controller
// per session.
func NewHandler(store *Store, factory func() *Controller, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, factory: factory, logger: logger}
}

// WithMetrics adds step transition metrics. A nil recorder is a no-op.
func (h *Handler) WithMetrics(m *metrics.BookingMetrics) *Handler {
	h.metrics = m
	return h
}

// Page handles GET / requests.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(Page))
}

// CreateSessionResponse is the response for opening a widget session.
type CreateSessionResponse struct {
	SessionID string   `json:"sessionId"`
	Step      Step     `json:"step"`
	Effects   []Effect `json:"effects"`
}

// CreateSession handles POST /widget/sessions requests: it builds a
// controller, runs the initial services load, and returns the session id
// with the first render.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	c := h.factory()
	res := c.Init(r.Context())
	id := h.store.Put(c)
	h.metrics.ObserveStep(strconv.Itoa(int(res.Step)))
	writeJSON(w, http.StatusCreated, CreateSessionResponse{
		SessionID: id,
		Step:      res.Step,
		Effects:   res.Effects,
	})
}

// ActionRequest carries the parameters of a widget action. Fields are used
// per action; unknown fields are ignored.
type ActionRequest struct {
	ServiceID string `json:"serviceId"`
	BarberID  string `json:"barberId"`
	Datetime  string `json:"datetime"`
	Display   string `json:"display"`
}

// Action handles POST /widget/sessions/{sessionID}/{action} requests.
func (h *Handler) Action(w http.ResponseWriter, r *http.Request) {
	c, ok := h.store.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var req ActionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error("failed to decode widget action", "error", err)
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	action := chi.URLParam(r, "action")
	var (
		res Result
		err error
	)
	switch action {
	case "select-service":
		res, err = c.SelectService(r.Context(), req.ServiceID)
	case "select-slot":
		res, err = c.SelectSlot(req.BarberID, req.Datetime, req.Display)
	case "confirm":
		res, err = c.Confirm(r.Context())
	case "back":
		res = c.Back()
	case "call":
		res = c.CallToSchedule()
	default:
		writeError(w, http.StatusNotFound, "unknown action")
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownService), errors.Is(err, ErrUnknownBarber),
			errors.Is(err, ErrNoService), errors.Is(err, ErrNoSelection):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("widget action failed", "action", action, "error", err)
			writeError(w, http.StatusInternalServerError, "action failed")
		}
		return
	}

	h.metrics.ObserveStep(strconv.Itoa(int(res.Step)))
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
