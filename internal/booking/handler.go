// Package booking exposes the four JSON endpoints the widget (and any
// embedding site) books through. Each is a thin proxy over the Square
// client; provider failures never leak detail to the caller.
package booking

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/silverfoxgrooming/booking-widget/internal/observability/metrics"
	"github.com/silverfoxgrooming/booking-widget/internal/square"
	"github.com/silverfoxgrooming/booking-widget/pkg/logging"
)

// Handler handles HTTP requests for the booking endpoints.
type Handler struct {
	client  *square.Client
	logger  *logging.Logger
	metrics *metrics.BookingMetrics
}

func NewHandler(client *square.Client, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{client: client, logger: logger}
}

// WithMetrics adds request metrics. A nil recorder is a no-op.
func (h *Handler) WithMetrics(m *metrics.BookingMetrics) *Handler {
	h.metrics = m
	return h
}

// ServicesResponse is the response for listing catalog services.
type ServicesResponse struct {
	Services []square.CatalogService `json:"services"`
}

// Services handles GET /api/services requests.
func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	items, err := h.client.ListCatalogServices(r.Context())
	h.metrics.ObserveProviderRequest("catalog_list", outcome(err), time.Since(start).Seconds())
	if err != nil {
		h.logger.Error("failed to list catalog services", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch services")
		return
	}
	if items == nil {
		items = []square.CatalogService{}
	}
	writeJSON(w, http.StatusOK, ServicesResponse{Services: items})
}

// TeamMembersResponse is the response for listing bookable staff. The list
// is already filtered to active members.
type TeamMembersResponse struct {
	TeamMembers []square.TeamMember `json:"teamMembers"`
}

// TeamMembers handles GET /api/team-members requests.
func (h *Handler) TeamMembers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	members, err := h.client.SearchTeamMembers(r.Context())
	h.metrics.ObserveProviderRequest("team_search", outcome(err), time.Since(start).Seconds())
	if err != nil {
		h.logger.Error("failed to search team members", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch team members")
		return
	}
	if members == nil {
		members = []square.TeamMember{}
	}
	writeJSON(w, http.StatusOK, TeamMembersResponse{TeamMembers: members})
}

// AvailabilityRequest identifies the service being booked. StartAt/EndAt
// override the default week-ahead search window.
type AvailabilityRequest struct {
	ServiceVariationID string `json:"serviceVariationId"`
	Duration           int    `json:"duration"`
	StartAt            string `json:"startAt"`
	EndAt              string `json:"endAt"`
}

// AvailabilityResponse is the response for an availability search.
type AvailabilityResponse struct {
	Availability []square.Availability `json:"availability"`
}

// Availability handles POST /api/availability requests.
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	var req AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode availability request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ServiceVariationID == "" {
		writeError(w, http.StatusBadRequest, "serviceVariationId is required")
		return
	}
	if !h.client.HasLocation() {
		h.logger.Error("availability search rejected: SQUARE_LOCATION_ID is not configured")
		writeError(w, http.StatusInternalServerError, "service temporarily unavailable")
		return
	}

	query := square.AvailabilityQuery{
		ServiceVariationID: req.ServiceVariationID,
		DurationMinutes:    req.Duration,
	}
	if req.StartAt != "" {
		t, err := time.Parse(time.RFC3339, req.StartAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "startAt must be an RFC 3339 timestamp")
			return
		}
		query.StartAt = t
	}
	if req.EndAt != "" {
		t, err := time.Parse(time.RFC3339, req.EndAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "endAt must be an RFC 3339 timestamp")
			return
		}
		query.EndAt = t
	}

	start := time.Now()
	avail, err := h.client.SearchAvailability(r.Context(), query)
	h.metrics.ObserveProviderRequest("availability_search", outcome(err), time.Since(start).Seconds())
	if err != nil {
		h.logger.Error("availability search failed", "error", err, "variation_id", req.ServiceVariationID)
		writeError(w, http.StatusInternalServerError, "failed to search availability")
		return
	}
	if avail == nil {
		avail = []square.Availability{}
	}
	writeJSON(w, http.StatusOK, AvailabilityResponse{Availability: avail})
}

// CheckoutRequest names the booking being paid for. Price is in major
// currency units and may arrive as a JSON number or a numeric string.
type CheckoutRequest struct {
	ServiceName string `json:"serviceName"`
	BarberName  string `json:"barberName"`
	Price       any    `json:"price"`
	Currency    string `json:"currency"`
}

// CheckoutResponse carries the hosted payment page URL.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// Checkout handles POST /api/checkout requests.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode checkout request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ServiceName == "" || req.BarberName == "" || req.Price == nil {
		writeError(w, http.StatusBadRequest, "serviceName, barberName and price are required")
		return
	}
	price, err := parsePrice(req.Price)
	if err != nil {
		writeError(w, http.StatusBadRequest, "price must be numeric")
		return
	}

	start := time.Now()
	link, err := h.client.CreatePaymentLink(r.Context(), square.PaymentLinkParams{
		Name:        fmt.Sprintf("%s with %s", req.ServiceName, req.BarberName),
		AmountCents: int64(math.Round(price * 100)),
		Currency:    req.Currency,
	})
	h.metrics.ObserveProviderRequest("payment_link_create", outcome(err), time.Since(start).Seconds())
	if err != nil {
		h.logger.Error("failed to create payment link", "error", err, "service", req.ServiceName)
		writeError(w, http.StatusInternalServerError, "failed to create checkout link")
		return
	}
	h.metrics.ObserveCheckoutLink()

	h.logger.Info("checkout link created", "service", req.ServiceName, "barber", req.BarberName)
	writeJSON(w, http.StatusOK, CheckoutResponse{URL: link.URL})
}

// parsePrice accepts the price as a JSON number or a numeric string. NaN and
// infinities are rejected.
func parsePrice(v any) (float64, error) {
	var price float64
	switch p := v.(type) {
	case float64:
		price = p
	case string:
		parsed, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, fmt.Errorf("booking: price %q is not numeric", p)
		}
		price = parsed
	default:
		return 0, fmt.Errorf("booking: price has unsupported type %T", v)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("booking: price is not a finite number")
	}
	return price, nil
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
