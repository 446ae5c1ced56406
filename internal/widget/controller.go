package widget

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/silverfoxgrooming/booking-widget/internal/catalog"
	"github.com/silverfoxgrooming/booking-widget/internal/square"
	"github.com/silverfoxgrooming/booking-widget/internal/team"
	"github.com/silverfoxgrooming/booking-widget/pkg/logging"
)

var (
	// ErrUnknownService means the selected service id is not in the rendered
	// set.
	ErrUnknownService = errors.New("widget: unknown service")
	// ErrUnknownBarber means the selected barber id is not in the rendered
	// set.
	ErrUnknownBarber = errors.New("widget: unknown barber")
	// ErrNoService means a slot was selected before any service.
	ErrNoService = errors.New("widget: no service selected")
	// ErrNoSelection means confirm was requested without a complete
	// service/barber/time selection.
	ErrNoSelection = errors.New("widget: booking selection incomplete")
)

const (
	defaultSelectDelay = 800 * time.Millisecond
	defaultPhone       = "+19255550123"
)

// Provider is the boundary the controller loads through. Implementations
// return raw results; fallback policy lives in the controller.
type Provider interface {
	ListServices(ctx context.Context) ([]catalog.Service, error)
	ListBarbers(ctx context.Context) ([]team.Barber, error)
	SearchAvailability(ctx context.Context, serviceVariationID string, durationMinutes int) ([]square.Availability, error)
	CreateCheckout(ctx context.Context, serviceName, barberName string, price float64) (string, error)
}

// Controller runs one visitor's booking flow. Transitions lock around state
// reads and writes but never hold the lock across a provider call, so a
// second selection can land while a fetch for the first is in flight. Each
// fetch-dispatching action takes a sequence token; results apply only while
// the token is still current, so the latest selection always wins.
type Controller struct {
	provider Provider
	logger   *logging.Logger
	delay    time.Duration
	phone    string
	now      func() time.Time

	mu    sync.Mutex
	state State
	seq   uint64
}

func NewController(provider Provider, logger *logging.Logger) *Controller {
	if logger == nil {
		logger = logging.Default()
	}
	return &Controller{
		provider: provider,
		logger:   logger,
		delay:    defaultSelectDelay,
		phone:    defaultPhone,
		now:      time.Now,
		state:    State{Step: StepServices},
	}
}

// WithSelectDelay overrides the pause between a service selection and the
// barber/availability fetch. Zero disables it.
func (c *Controller) WithSelectDelay(d time.Duration) *Controller {
	if d >= 0 {
		c.delay = d
	}
	return c
}

// WithPhone overrides the shop phone number used by call-to-schedule.
func (c *Controller) WithPhone(phone string) *Controller {
	if phone != "" {
		c.phone = phone
	}
	return c
}

// WithClock overrides the time source. Slot day labels and demo booking
// dates derive from it.
func (c *Controller) WithClock(now func() time.Time) *Controller {
	if now != nil {
		c.now = now
	}
	return c
}

// Step returns the current stepper position.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Step
}

// Init loads the service catalog and renders the services step. An empty
// catalog degrades to the demo set; a failed load renders the error panel
// and leaves the session retryable via another Init.
func (c *Controller) Init(ctx context.Context) Result {
	live, err := c.provider.ListServices(ctx)
	if err != nil {
		c.logger.Error("failed to load services", "error", err)
		c.mu.Lock()
		defer c.mu.Unlock()
		return Result{Step: c.state.Step, Effects: []Effect{showError()}}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Services = catalog.Choose(live, catalog.Demo())
	c.state.Step = StepServices
	return Result{Step: StepServices, Effects: []Effect{
		render(targetServices, renderServices(c.state.Services, c.selectedServiceID())),
		showStep(StepServices),
	}}
}

// SelectService stores the selection, waits the visual delay, then loads
// barbers and availability for the service's variation. Selection inputs are
// re-read after the delay, so a newer selection made during the wait takes
// over and this call returns a no-effect result. A failed load shows the
// error overlay and does not advance the step.
func (c *Controller) SelectService(ctx context.Context, serviceID string) (Result, error) {
	c.mu.Lock()
	var svc *catalog.Service
	for i := range c.state.Services {
		if c.state.Services[i].ID == serviceID {
			svc = &c.state.Services[i]
			break
		}
	}
	if svc == nil {
		c.mu.Unlock()
		return Result{}, ErrUnknownService
	}
	c.state.SelectedService = svc
	c.seq++
	token := c.seq
	delay := c.delay
	c.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}

	c.mu.Lock()
	if token != c.seq {
		res := Result{Step: c.state.Step}
		c.mu.Unlock()
		return res, nil
	}
	sel := *c.state.SelectedService
	c.mu.Unlock()

	barbers, err := c.provider.ListBarbers(ctx)
	if err != nil {
		c.logger.Error("failed to load barbers", "error", err)
		return c.loadFailed(token), nil
	}
	avail, err := c.provider.SearchAvailability(ctx, sel.VariationID, sel.Duration)
	if err != nil {
		c.logger.Error("failed to load availability", "error", err, "variation_id", sel.VariationID)
		return c.loadFailed(token), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.seq {
		return Result{Step: c.state.Step}, nil
	}
	c.state.Barbers = barbers
	c.state.Availability = avail
	c.state.Step = StepBarbers
	return Result{Step: StepBarbers, Effects: []Effect{
		render(targetServices, renderServices(c.state.Services, sel.ID)),
		showStep(StepBarbers),
		render(targetServiceInfo, renderServiceInfo(sel)),
		render(targetBarbers, renderBarbers(barbers, avail, sel.BasePrice, c.now())),
	}}, nil
}

// loadFailed reports a failed barber/availability load. A stale token means
// a newer selection owns the view, so the error is swallowed.
func (c *Controller) loadFailed(token uint64) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.seq {
		return Result{Step: c.state.Step}
	}
	return Result{Step: c.state.Step, Effects: []Effect{showError()}}
}

// SelectSlot stores the barber and time choice and opens the confirmation
// modal. An empty datetime marks a demo slot; the booking date falls back to
// the current moment.
func (c *Controller) SelectSlot(barberID, datetime, display string) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.SelectedService == nil {
		return Result{}, ErrNoService
	}
	name, ok := c.barberName(barberID)
	if !ok {
		return Result{}, ErrUnknownBarber
	}
	sel := *c.state.SelectedService
	barber := SelectedBarber{ID: barberID, Name: name, Price: sel.BasePrice}
	date := c.now()
	if datetime != "" {
		if t, err := time.Parse(time.RFC3339, datetime); err == nil {
			date = t.In(c.now().Location())
		}
	}
	c.state.SelectedBarber = &barber
	c.state.SelectedTime = display
	c.state.SelectedDate = date
	c.state.Step = StepConfirm
	return Result{Step: StepConfirm, Effects: []Effect{
		render(targetSummary, renderSummary(sel, barber, date, display)),
		showModal(),
	}}, nil
}

// Confirm creates the hosted checkout link and redirects on success. On
// failure the selections stay put so the visitor can retry.
func (c *Controller) Confirm(ctx context.Context) (Result, error) {
	c.mu.Lock()
	if c.state.SelectedService == nil || c.state.SelectedBarber == nil || c.state.SelectedTime == "" {
		c.mu.Unlock()
		return Result{}, ErrNoSelection
	}
	sel := *c.state.SelectedService
	barber := *c.state.SelectedBarber
	c.mu.Unlock()

	url, err := c.provider.CreateCheckout(ctx, sel.Name, barber.Name, barber.Price)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil || url == "" {
		c.logger.Error("checkout link creation failed", "error", err)
		return Result{Step: c.state.Step, Effects: []Effect{hideModal(), showError()}}, nil
	}
	return Result{Step: c.state.Step, Effects: []Effect{hideModal(), redirect(url)}}, nil
}

// Back returns to the services step. Selections are kept on purpose so
// proceeding again without a new pick reuses them.
func (c *Controller) Back() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Step = StepServices
	return Result{Step: StepServices, Effects: []Effect{
		hideModal(),
		showStep(StepServices),
		render(targetServices, renderServices(c.state.Services, c.selectedServiceID())),
	}}
}

// CallToSchedule opens the shop's phone line. No state changes.
func (c *Controller) CallToSchedule() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Result{Step: c.state.Step, Effects: []Effect{dial("tel:" + c.phone)}}
}

// barberName resolves a card's barber id against the rendered set: live
// barbers when the last load returned any, else the demo set. Callers hold
// c.mu.
func (c *Controller) barberName(barberID string) (string, bool) {
	if len(c.state.Barbers) > 0 {
		for _, b := range c.state.Barbers {
			if b.ID == barberID {
				return b.Name(), true
			}
		}
		return "", false
	}
	for _, d := range team.Demo() {
		if d.ID == barberID {
			return d.Name, true
		}
	}
	return "", false
}

// selectedServiceID is the currently selected card id, empty when nothing is
// selected. Callers hold c.mu.
func (c *Controller) selectedServiceID() string {
	if c.state.SelectedService == nil {
		return ""
	}
	return c.state.SelectedService.ID
}
