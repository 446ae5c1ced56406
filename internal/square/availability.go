package square

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// defaultSearchWindow is how far ahead availability is searched when the
// caller does not override the range.
const defaultSearchWindow = 7 * 24 * time.Hour

// Availability is the raw provider slot record. The widget derives formatted
// per-barber slots from it but never mutates it.
type Availability struct {
	StartAt             string               `json:"startAt"`
	AppointmentSegments []AppointmentSegment `json:"appointmentSegments"`
}

type AppointmentSegment struct {
	TeamMemberID string `json:"teamMemberId"`
}

// AvailabilityQuery identifies the service being booked. StartAt/EndAt
// override the default week-ahead window when non-zero.
type AvailabilityQuery struct {
	ServiceVariationID string
	DurationMinutes    int
	StartAt            time.Time
	EndAt              time.Time
}

type availabilitySearchResponse struct {
	Availabilities []struct {
		StartAt             string `json:"start_at"`
		AppointmentSegments []struct {
			TeamMemberID string `json:"team_member_id"`
		} `json:"appointment_segments"`
	} `json:"availabilities"`
}

// SearchAvailability runs the bookings availability search for the configured
// location.
func (c *Client) SearchAvailability(ctx context.Context, q AvailabilityQuery) ([]Availability, error) {
	if q.ServiceVariationID == "" {
		return nil, fmt.Errorf("square: service variation id is required")
	}
	if !c.HasLocation() {
		return nil, fmt.Errorf("square: no location id configured")
	}

	startAt := q.StartAt
	if startAt.IsZero() {
		startAt = time.Now()
	}
	endAt := q.EndAt
	if endAt.IsZero() {
		endAt = startAt.Add(defaultSearchWindow)
	}

	segment := map[string]any{
		"service_variation_id": q.ServiceVariationID,
	}
	if q.DurationMinutes > 0 {
		segment["duration_minutes"] = q.DurationMinutes
	}
	body := map[string]any{
		"query": map[string]any{
			"filter": map[string]any{
				"segment_filters": []map[string]any{segment},
				"location_id":     c.locationID,
				"start_at_range": map[string]any{
					"start_at": startAt.UTC().Format(time.RFC3339),
					"end_at":   endAt.UTC().Format(time.RFC3339),
				},
			},
		},
	}

	var parsed availabilitySearchResponse
	if err := c.do(ctx, http.MethodPost, "/v2/bookings/availability/search", "square.search_availability", body, &parsed); err != nil {
		return nil, err
	}

	slots := make([]Availability, 0, len(parsed.Availabilities))
	for _, a := range parsed.Availabilities {
		slot := Availability{StartAt: a.StartAt}
		for _, seg := range a.AppointmentSegments {
			slot.AppointmentSegments = append(slot.AppointmentSegments, AppointmentSegment{TeamMemberID: seg.TeamMemberID})
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
