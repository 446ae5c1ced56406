package widget

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silverfoxgrooming/booking-widget/internal/catalog"
	"github.com/silverfoxgrooming/booking-widget/internal/square"
	"github.com/silverfoxgrooming/booking-widget/internal/team"
	"github.com/silverfoxgrooming/booking-widget/pkg/logging"
)

type stubProvider struct {
	listServices   func(context.Context) ([]catalog.Service, error)
	listBarbers    func(context.Context) ([]team.Barber, error)
	searchAvail    func(context.Context, string, int) ([]square.Availability, error)
	createCheckout func(context.Context, string, string, float64) (string, error)
}

func (s *stubProvider) ListServices(ctx context.Context) ([]catalog.Service, error) {
	if s.listServices == nil {
		return nil, nil
	}
	return s.listServices(ctx)
}

func (s *stubProvider) ListBarbers(ctx context.Context) ([]team.Barber, error) {
	if s.listBarbers == nil {
		return nil, nil
	}
	return s.listBarbers(ctx)
}

func (s *stubProvider) SearchAvailability(ctx context.Context, variationID string, durationMinutes int) ([]square.Availability, error) {
	if s.searchAvail == nil {
		return nil, nil
	}
	return s.searchAvail(ctx, variationID, durationMinutes)
}

func (s *stubProvider) CreateCheckout(ctx context.Context, serviceName, barberName string, price float64) (string, error) {
	if s.createCheckout == nil {
		return "", errors.New("stub: checkout not configured")
	}
	return s.createCheckout(ctx, serviceName, barberName, price)
}

func testLogger() *logging.Logger {
	return logging.NewWithWriter("error", io.Discard)
}

func newTestController(p Provider) *Controller {
	return NewController(p, testLogger()).WithSelectDelay(0)
}

func effectsOfType(res Result, et EffectType) []Effect {
	var out []Effect
	for _, e := range res.Effects {
		if e.Type == et {
			out = append(out, e)
		}
	}
	return out
}

func renderedHTML(t *testing.T, res Result, target string) string {
	t.Helper()
	for _, e := range res.Effects {
		if e.Type == EffectRender && e.Target == target {
			return e.HTML
		}
	}
	t.Fatalf("no render effect for target %q", target)
	return ""
}

func TestInitFallsBackToDemoServices(t *testing.T) {
	c := newTestController(&stubProvider{})

	res := c.Init(context.Background())

	assert.Equal(t, StepServices, res.Step)
	html := renderedHTML(t, res, targetServices)
	for _, name := range []string{"Gentleman&#39;s Cut", "Young Gentleman", "Beard Sculpting", "The Full Service"} {
		assert.Contains(t, html, name)
	}
	assert.Equal(t, 4, strings.Count(html, "service-card"))
}

func TestInitErrorShowsErrorPanel(t *testing.T) {
	c := newTestController(&stubProvider{
		listServices: func(context.Context) ([]catalog.Service, error) {
			return nil, errors.New("catalog down")
		},
	})

	res := c.Init(context.Background())

	assert.Equal(t, StepServices, res.Step)
	require.Len(t, res.Effects, 1)
	assert.Equal(t, EffectShowError, res.Effects[0].Type)
}

func TestSelectServiceUnknownID(t *testing.T) {
	c := newTestController(&stubProvider{})
	c.Init(context.Background())

	_, err := c.SelectService(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestSelectServiceAdvancesToBarbers(t *testing.T) {
	var gotVariation string
	var gotDuration int
	p := &stubProvider{
		listServices: func(context.Context) ([]catalog.Service, error) {
			return []catalog.Service{{ID: "svc-1", VariationID: "var-1", Name: "Skin Fade", BasePrice: 40, Duration: 45}}, nil
		},
		listBarbers: func(context.Context) ([]team.Barber, error) {
			return []team.Barber{{ID: "tm-1", DisplayName: "James Carter"}}, nil
		},
		searchAvail: func(_ context.Context, variationID string, durationMinutes int) ([]square.Availability, error) {
			gotVariation = variationID
			gotDuration = durationMinutes
			return []square.Availability{{
				StartAt:             time.Now().UTC().Format(time.RFC3339),
				AppointmentSegments: []square.AppointmentSegment{{TeamMemberID: "tm-1"}},
			}}, nil
		},
	}
	c := newTestController(p)
	c.Init(context.Background())

	res, err := c.SelectService(context.Background(), "svc-1")
	require.NoError(t, err)

	assert.Equal(t, StepBarbers, res.Step)
	assert.Equal(t, StepBarbers, c.Step())
	assert.Equal(t, "var-1", gotVariation)
	assert.Equal(t, 45, gotDuration)

	grid := renderedHTML(t, res, targetServices)
	assert.Equal(t, 1, strings.Count(grid, `class="service-card selected"`))

	info := renderedHTML(t, res, targetServiceInfo)
	assert.Contains(t, info, "Skin Fade")
	assert.Contains(t, info, "$40")

	barbers := renderedHTML(t, res, targetBarbers)
	assert.Contains(t, barbers, "James Carter")
	assert.Contains(t, barbers, "Today")
}

func TestSelectServiceAvailabilityFailureBlocksTransition(t *testing.T) {
	p := &stubProvider{
		listServices: func(context.Context) ([]catalog.Service, error) {
			return []catalog.Service{{ID: "svc-1", VariationID: "var-1", Name: "Skin Fade", BasePrice: 40, Duration: 45}}, nil
		},
		searchAvail: func(context.Context, string, int) ([]square.Availability, error) {
			return nil, errors.New("availability down")
		},
	}
	c := newTestController(p)
	c.Init(context.Background())

	res, err := c.SelectService(context.Background(), "svc-1")
	require.NoError(t, err)

	assert.Equal(t, StepServices, res.Step)
	assert.Equal(t, StepServices, c.Step())
	require.Len(t, effectsOfType(res, EffectShowError), 1)
}

func TestSelectServiceLatestIntentWins(t *testing.T) {
	p := &stubProvider{
		listServices: func(context.Context) ([]catalog.Service, error) {
			return []catalog.Service{
				{ID: "svc-1", VariationID: "var-1", Name: "First", BasePrice: 30, Duration: 30},
				{ID: "svc-2", VariationID: "var-2", Name: "Second", BasePrice: 50, Duration: 60},
			}, nil
		},
	}
	c := NewController(p, testLogger()).WithSelectDelay(60 * time.Millisecond)
	c.Init(context.Background())

	first := make(chan Result, 1)
	go func() {
		res, err := c.SelectService(context.Background(), "svc-1")
		if err != nil {
			t.Error(err)
		}
		first <- res
	}()

	time.Sleep(20 * time.Millisecond)
	second, err := c.SelectService(context.Background(), "svc-2")
	require.NoError(t, err)

	res := <-first
	assert.Empty(t, res.Effects, "superseded selection must not render")

	assert.Equal(t, StepBarbers, second.Step)
	grid := renderedHTML(t, second, targetServices)
	assert.Contains(t, grid, `class="service-card selected" data-service-id="svc-2"`)
	info := renderedHTML(t, second, targetServiceInfo)
	assert.Contains(t, info, "Second")
}

func TestDemoFlowToConfirmation(t *testing.T) {
	c := newTestController(&stubProvider{})
	c.Init(context.Background())

	res, err := c.SelectService(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, StepBarbers, res.Step)

	barbers := renderedHTML(t, res, targetBarbers)
	for _, name := range []string{"James", "Dave", "Ray"} {
		assert.Contains(t, barbers, name)
	}
	assert.Equal(t, 3, strings.Count(barbers, "$45"))
	assert.Contains(t, barbers, "Today 2:00 PM")

	res, err = c.SelectSlot("james", "", "Today 2:00 PM")
	require.NoError(t, err)
	assert.Equal(t, StepConfirm, res.Step)
	require.Len(t, effectsOfType(res, EffectShowModal), 1)

	summary := renderedHTML(t, res, targetSummary)
	assert.Contains(t, summary, "Gentleman&#39;s Cut")
	assert.Contains(t, summary, "James")
	assert.Contains(t, summary, "Today 2:00 PM")
	assert.Contains(t, summary, "$45")
	assert.Contains(t, summary, "45 minutes")
}

func TestSelectSlotWithoutService(t *testing.T) {
	c := newTestController(&stubProvider{})
	c.Init(context.Background())

	_, err := c.SelectSlot("james", "", "Today 2:00 PM")
	assert.ErrorIs(t, err, ErrNoService)
}

func TestSelectSlotUnknownBarber(t *testing.T) {
	c := newTestController(&stubProvider{})
	c.Init(context.Background())
	_, err := c.SelectService(context.Background(), "1")
	require.NoError(t, err)

	_, err = c.SelectSlot("nobody", "", "Today 2:00 PM")
	assert.ErrorIs(t, err, ErrUnknownBarber)
}

func TestSelectSlotParsesTimestamp(t *testing.T) {
	fixed := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	c := newTestController(&stubProvider{}).WithClock(func() time.Time { return fixed })
	c.Init(context.Background())
	_, err := c.SelectService(context.Background(), "1")
	require.NoError(t, err)

	res, err := c.SelectSlot("james", "2026-03-13T14:00:00Z", "Fri Mar 13 2:00 PM")
	require.NoError(t, err)

	summary := renderedHTML(t, res, targetSummary)
	assert.Contains(t, summary, "Friday, March 13, 2026")
}

func TestConfirmRedirects(t *testing.T) {
	var gotService, gotBarber string
	var gotPrice float64
	p := &stubProvider{
		createCheckout: func(_ context.Context, serviceName, barberName string, price float64) (string, error) {
			gotService, gotBarber, gotPrice = serviceName, barberName, price
			return "https://square.link/abc", nil
		},
	}
	c := newTestController(p)
	c.Init(context.Background())
	_, err := c.SelectService(context.Background(), "1")
	require.NoError(t, err)
	_, err = c.SelectSlot("james", "", "Today 2:00 PM")
	require.NoError(t, err)

	res, err := c.Confirm(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Effects, 2)
	assert.Equal(t, EffectHideModal, res.Effects[0].Type)
	assert.Equal(t, EffectRedirect, res.Effects[1].Type)
	assert.Equal(t, "https://square.link/abc", res.Effects[1].URL)

	assert.Equal(t, "Gentleman's Cut", gotService)
	assert.Equal(t, "James", gotBarber)
	assert.Equal(t, float64(45), gotPrice)
}

func TestConfirmFailureKeepsSelectionsForRetry(t *testing.T) {
	attempts := 0
	p := &stubProvider{
		createCheckout: func(context.Context, string, string, float64) (string, error) {
			attempts++
			if attempts == 1 {
				return "", errors.New("payment link failed")
			}
			return "https://square.link/retry", nil
		},
	}
	c := newTestController(p)
	c.Init(context.Background())
	_, err := c.SelectService(context.Background(), "1")
	require.NoError(t, err)
	_, err = c.SelectSlot("james", "", "Today 2:00 PM")
	require.NoError(t, err)

	res, err := c.Confirm(context.Background())
	require.NoError(t, err)
	require.Len(t, effectsOfType(res, EffectShowError), 1)
	assert.Equal(t, StepConfirm, res.Step)

	res, err = c.Confirm(context.Background())
	require.NoError(t, err)
	require.Len(t, effectsOfType(res, EffectRedirect), 1)
}

func TestConfirmWithoutSelection(t *testing.T) {
	c := newTestController(&stubProvider{})
	c.Init(context.Background())

	_, err := c.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestBackKeepsSelectionAndReselectReplaces(t *testing.T) {
	avail := map[string][]square.Availability{
		"var-1": {{StartAt: "2026-03-10T14:00:00Z", AppointmentSegments: []square.AppointmentSegment{{TeamMemberID: "tm-1"}}}},
		"var-2": {{StartAt: "2026-03-10T16:00:00Z", AppointmentSegments: []square.AppointmentSegment{{TeamMemberID: "tm-2"}}}},
	}
	barberCalls := 0
	p := &stubProvider{
		listServices: func(context.Context) ([]catalog.Service, error) {
			return []catalog.Service{
				{ID: "svc-1", VariationID: "var-1", Name: "First", BasePrice: 30, Duration: 30},
				{ID: "svc-2", VariationID: "var-2", Name: "Second", BasePrice: 50, Duration: 60},
			}, nil
		},
		listBarbers: func(context.Context) ([]team.Barber, error) {
			barberCalls++
			if barberCalls == 1 {
				return []team.Barber{{ID: "tm-1", DisplayName: "James Carter"}}, nil
			}
			return []team.Barber{{ID: "tm-2", DisplayName: "Dave Miller"}}, nil
		},
		searchAvail: func(_ context.Context, variationID string, _ int) ([]square.Availability, error) {
			return avail[variationID], nil
		},
	}
	c := newTestController(p).WithClock(func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	})
	c.Init(context.Background())

	_, err := c.SelectService(context.Background(), "svc-1")
	require.NoError(t, err)

	back := c.Back()
	assert.Equal(t, StepServices, back.Step)
	grid := renderedHTML(t, back, targetServices)
	assert.Equal(t, 1, strings.Count(grid, `class="service-card selected"`), "prior selection stays marked")

	res, err := c.SelectService(context.Background(), "svc-2")
	require.NoError(t, err)

	barbersHTML := renderedHTML(t, res, targetBarbers)
	assert.Contains(t, barbersHTML, "Dave Miller")
	assert.NotContains(t, barbersHTML, "James Carter", "stale barbers must not leak into the new render")
	assert.Contains(t, barbersHTML, "4:00 PM")
	assert.NotContains(t, barbersHTML, "2:00 PM")
}

func TestCallToSchedule(t *testing.T) {
	c := newTestController(&stubProvider{})
	c.Init(context.Background())

	res := c.CallToSchedule()
	assert.Equal(t, StepServices, res.Step)
	require.Len(t, res.Effects, 1)
	assert.Equal(t, EffectDial, res.Effects[0].Type)
	assert.Equal(t, "tel:+19255550123", res.Effects[0].URL)
}
