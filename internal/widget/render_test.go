package widget

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silverfoxgrooming/booking-widget/internal/catalog"
	"github.com/silverfoxgrooming/booking-widget/internal/square"
	"github.com/silverfoxgrooming/booking-widget/internal/team"
)

func TestRenderServicesMarksOneSelection(t *testing.T) {
	services := catalog.Demo()

	html := renderServices(services, "3")

	assert.Equal(t, 4, strings.Count(html, "service-card"))
	assert.Equal(t, 1, strings.Count(html, `class="service-card selected"`))
	assert.Contains(t, html, `class="service-card selected" data-service-id="3"`)

	// Re-render with a different selection fully replaces the old one.
	html = renderServices(services, "1")
	assert.Equal(t, 1, strings.Count(html, `class="service-card selected"`))
	assert.Contains(t, html, `class="service-card selected" data-service-id="1"`)
}

func TestRenderServicesEscapesContent(t *testing.T) {
	services := []catalog.Service{{ID: "x", Name: `<script>alert("hi")</script>`, BasePrice: 10, Duration: 30}}

	html := renderServices(services, "")

	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestBuildBarberCardsDemoFallback(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	cards := buildBarberCards(nil, nil, 45, now)

	require.Len(t, cards, 3)
	assert.Equal(t, "James", cards[0].Name)
	assert.Equal(t, "Dave", cards[1].Name)
	assert.Equal(t, "Ray", cards[2].Name)
	for _, c := range cards {
		assert.Equal(t, float64(45), c.Price)
		assert.Equal(t, "★★★★★", c.Rating)
		assert.False(t, c.CallOnly)
		assert.Len(t, c.Slots, 3)
		assert.Empty(t, c.BookDatetime, "demo slots are display-only")
	}
	assert.Equal(t, "Today 2:00 PM", cards[0].BookDisplay)
}

func TestBuildBarberCardsCallToSchedule(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	barbers := []team.Barber{{ID: "tm-1", DisplayName: "James Carter"}}

	cards := buildBarberCards(barbers, nil, 40, now)

	require.Len(t, cards, 1)
	assert.True(t, cards[0].CallOnly)
	require.Len(t, cards[0].Slots, 1)
	assert.Equal(t, "Call to schedule", cards[0].Slots[0].Display)
	assert.True(t, cards[0].Slots[0].Unavailable)

	html := renderBarbers(barbers, nil, 40, now)
	assert.Contains(t, html, `data-action="call"`)
	assert.NotContains(t, html, `data-action="book"`)
}

func TestBuildBarberCardsLiveSlots(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	barbers := []team.Barber{{ID: "tm-1", FirstName: "James", LastName: "Carter"}}
	avail := []square.Availability{
		{StartAt: "2026-03-10T14:00:00Z", AppointmentSegments: []square.AppointmentSegment{{TeamMemberID: "tm-1"}}},
		{StartAt: "2026-03-11T10:00:00Z", AppointmentSegments: []square.AppointmentSegment{{TeamMemberID: "tm-1"}}},
	}

	cards := buildBarberCards(barbers, avail, 40, now)

	require.Len(t, cards, 1)
	card := cards[0]
	assert.Equal(t, "James Carter", card.Name)
	assert.Equal(t, "J", card.Initial)
	assert.False(t, card.CallOnly)
	require.Len(t, card.Slots, 2)
	assert.Equal(t, "2026-03-10T14:00:00Z", card.BookDatetime)
	assert.Equal(t, "Today 2:00 PM", card.BookDisplay)

	html := renderBarbers(barbers, avail, 40, now)
	assert.Contains(t, html, "Book Today 2:00 PM")
	assert.Contains(t, html, "Tomorrow 10:00 AM")
}

func TestRenderSummary(t *testing.T) {
	svc := catalog.Service{Name: "Gentleman's Cut", BasePrice: 45, Duration: 45}
	barber := SelectedBarber{ID: "james", Name: "James", Price: 45}
	date := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	html := renderSummary(svc, barber, date, "Today 2:00 PM")

	assert.Contains(t, html, "Gentleman&#39;s Cut")
	assert.Contains(t, html, "James")
	assert.Contains(t, html, "Tuesday, March 10, 2026")
	assert.Contains(t, html, "Today 2:00 PM")
	assert.Contains(t, html, "45 minutes")
	assert.Contains(t, html, "$45")
}
