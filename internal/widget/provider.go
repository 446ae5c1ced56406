package widget

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/silverfoxgrooming/booking-widget/internal/catalog"
	"github.com/silverfoxgrooming/booking-widget/internal/observability/metrics"
	"github.com/silverfoxgrooming/booking-widget/internal/square"
	"github.com/silverfoxgrooming/booking-widget/internal/team"
	"github.com/silverfoxgrooming/booking-widget/pkg/logging"
)

// SquareProvider loads widget data through the Square client, with an
// optional redis-backed catalog cache in front of the catalog call.
type SquareProvider struct {
	client   *square.Client
	cache    *catalog.Cache
	currency string
	logger   *logging.Logger
	metrics  *metrics.BookingMetrics
}

func NewSquareProvider(client *square.Client, logger *logging.Logger) *SquareProvider {
	if logger == nil {
		logger = logging.Default()
	}
	return &SquareProvider{client: client, currency: "USD", logger: logger}
}

// WithCache adds a catalog cache. Cache errors are logged and treated as
// misses.
func (p *SquareProvider) WithCache(cache *catalog.Cache) *SquareProvider {
	p.cache = cache
	return p
}

// WithCurrency overrides the checkout currency (default USD).
func (p *SquareProvider) WithCurrency(currency string) *SquareProvider {
	if currency != "" {
		p.currency = currency
	}
	return p
}

// WithMetrics adds request metrics. A nil recorder is a no-op.
func (p *SquareProvider) WithMetrics(m *metrics.BookingMetrics) *SquareProvider {
	p.metrics = m
	return p
}

func (p *SquareProvider) ListServices(ctx context.Context) ([]catalog.Service, error) {
	cached, err := p.cache.Get(ctx)
	if err != nil {
		p.logger.Warn("catalog cache read failed", "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	start := time.Now()
	items, err := p.client.ListCatalogServices(ctx)
	p.metrics.ObserveProviderRequest("catalog_list", outcome(err), time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	services := catalog.FromCatalog(items)
	if err := p.cache.Set(ctx, services); err != nil {
		p.logger.Warn("catalog cache write failed", "error", err)
	}
	return services, nil
}

func (p *SquareProvider) ListBarbers(ctx context.Context) ([]team.Barber, error) {
	start := time.Now()
	members, err := p.client.SearchTeamMembers(ctx)
	p.metrics.ObserveProviderRequest("team_search", outcome(err), time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	return team.FromTeamMembers(members), nil
}

func (p *SquareProvider) SearchAvailability(ctx context.Context, serviceVariationID string, durationMinutes int) ([]square.Availability, error) {
	start := time.Now()
	avail, err := p.client.SearchAvailability(ctx, square.AvailabilityQuery{
		ServiceVariationID: serviceVariationID,
		DurationMinutes:    durationMinutes,
	})
	p.metrics.ObserveProviderRequest("availability_search", outcome(err), time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	return avail, nil
}

func (p *SquareProvider) CreateCheckout(ctx context.Context, serviceName, barberName string, price float64) (string, error) {
	start := time.Now()
	link, err := p.client.CreatePaymentLink(ctx, square.PaymentLinkParams{
		Name:        fmt.Sprintf("%s with %s", serviceName, barberName),
		AmountCents: int64(math.Round(price * 100)),
		Currency:    p.currency,
	})
	p.metrics.ObserveProviderRequest("payment_link_create", outcome(err), time.Since(start).Seconds())
	if err != nil {
		return "", err
	}
	p.metrics.ObserveCheckoutLink()
	return link.URL, nil
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
