package widget

import (
	"html/template"
	"strings"
	"time"

	"github.com/silverfoxgrooming/booking-widget/internal/catalog"
	"github.com/silverfoxgrooming/booking-widget/internal/schedule"
	"github.com/silverfoxgrooming/booking-widget/internal/square"
	"github.com/silverfoxgrooming/booking-widget/internal/team"
)

// Container ids the render effects target on the served page.
const (
	targetServices    = "services-grid"
	targetServiceInfo = "selected-service-info"
	targetBarbers     = "barbers-grid"
	targetSummary     = "booking-summary"
)

// Render functions are pure: state in, full fragment out. Each invocation
// rebuilds its container from scratch, never patches.

var servicesTmpl = template.Must(template.New("services").Parse(`{{range .Services}}<div class="service-card{{if eq .ID $.SelectedID}} selected{{end}}" data-service-id="{{.ID}}">
  <div class="service-icon">{{.Icon}}</div>
  <h3>{{.Name}}</h3>
  <div class="service-price">${{.BasePrice}}</div>
  <div class="service-duration">{{.Duration}} minutes</div>
  <div class="service-description">{{.Description}}</div>
</div>
{{end}}`))

var serviceInfoTmpl = template.Must(template.New("serviceInfo").Parse(`<h4>Selected Service</h4>
<p><strong>{{.Name}}</strong> - ${{.BasePrice}} <span class="muted">({{.Duration}} min)</span></p>
<p class="service-description">{{.Description}}</p>`))

var barbersTmpl = template.Must(template.New("barbers").Parse(`{{range .Cards}}<div class="barber-card" data-barber-id="{{.ID}}">
  <div class="barber-avatar">{{.Initial}}</div>
  <h3>{{.Name}}</h3>
  <div class="barber-price">${{.Price}}</div>
  {{if .Rating}}<div class="barber-rating">{{.Rating}}</div>
  {{end}}{{if .Specialty}}<div class="barber-specialty">{{.Specialty}}</div>
  {{end}}<div class="available-times">
    <strong>Next Available:</strong>
    {{range .Slots}}<div class="time-slot{{if .Unavailable}} unavailable{{end}}">{{.Display}}</div>
    {{end}}</div>
  {{if .CallOnly}}<button class="book-btn" data-action="call">Call to Schedule</button>
  {{else}}<button class="book-btn" data-action="book" data-barber-id="{{.ID}}" data-datetime="{{.BookDatetime}}" data-display="{{.BookDisplay}}">Book {{.BookDisplay}}</button>
  {{end}}</div>
{{end}}`))

var summaryTmpl = template.Must(template.New("summary").Parse(`<p><strong>Service:</strong> <span>{{.ServiceName}}</span></p>
<p><strong>Barber:</strong> <span>{{.BarberName}}</span></p>
<p><strong>Date:</strong> <span>{{.Date}}</span></p>
<p><strong>Time:</strong> <span>{{.Time}}</span></p>
<p><strong>Duration:</strong> <span>{{.Duration}} minutes</span></p>
<p class="total"><strong>Total:</strong> <span>${{.Total}}</span></p>`))

func execTemplate(t *template.Template, data any) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return ""
	}
	return b.String()
}

func renderServices(services []catalog.Service, selectedID string) string {
	return execTemplate(servicesTmpl, struct {
		Services   []catalog.Service
		SelectedID string
	}{services, selectedID})
}

func renderServiceInfo(svc catalog.Service) string {
	return execTemplate(serviceInfoTmpl, svc)
}

type cardSlot struct {
	Datetime    string
	Display     string
	Unavailable bool
}

type barberCard struct {
	ID           string
	Name         string
	Initial      string
	Price        float64
	Rating       string
	Specialty    string
	Slots        []cardSlot
	CallOnly     bool
	BookDatetime string
	BookDisplay  string
}

// buildBarberCards derives the renderable card set. An empty live list means
// the fixed demo barbers; a live barber with no matching availability gets a
// single non-interactive "Call to schedule" entry instead of a book button.
func buildBarberCards(barbers []team.Barber, avail []square.Availability, price float64, now time.Time) []barberCard {
	if len(barbers) == 0 {
		demo := team.Demo()
		cards := make([]barberCard, 0, len(demo))
		for _, d := range demo {
			card := barberCard{
				ID:          d.ID,
				Name:        d.Name,
				Initial:     initial(d.Name),
				Price:       price,
				Rating:      d.Rating,
				Specialty:   d.Specialty,
				BookDisplay: d.Slots[0],
			}
			for _, s := range d.Slots {
				card.Slots = append(card.Slots, cardSlot{Display: s})
			}
			cards = append(cards, card)
		}
		return cards
	}

	cards := make([]barberCard, 0, len(barbers))
	for _, b := range barbers {
		card := barberCard{
			ID:      b.ID,
			Name:    b.Name(),
			Initial: initial(b.Name()),
			Price:   price,
		}
		slots := schedule.ForBarber(avail, b.ID, now)
		if len(slots) == 0 {
			card.Slots = []cardSlot{{Display: "Call to schedule", Unavailable: true}}
			card.CallOnly = true
		} else {
			for _, s := range slots {
				card.Slots = append(card.Slots, cardSlot{Datetime: s.Datetime, Display: s.Display})
			}
			card.BookDatetime = slots[0].Datetime
			card.BookDisplay = slots[0].Display
		}
		cards = append(cards, card)
	}
	return cards
}

func renderBarbers(barbers []team.Barber, avail []square.Availability, price float64, now time.Time) string {
	return execTemplate(barbersTmpl, struct{ Cards []barberCard }{buildBarberCards(barbers, avail, price, now)})
}

func renderSummary(svc catalog.Service, barber SelectedBarber, date time.Time, timeDisplay string) string {
	return execTemplate(summaryTmpl, struct {
		ServiceName string
		BarberName  string
		Date        string
		Time        string
		Duration    int
		Total       float64
	}{
		ServiceName: svc.Name,
		BarberName:  barber.Name,
		Date:        date.Format("Monday, January 2, 2006"),
		Time:        timeDisplay,
		Duration:    svc.Duration,
		Total:       barber.Price,
	})
}

func initial(name string) string {
	for _, r := range name {
		return string(r)
	}
	return ""
}
