// Package widget is the booking flow state machine. A Controller holds one
// visitor's selection state and answers each user action with the resulting
// step plus an ordered list of render effects; the served page applies the
// effects verbatim and contains no branching of its own.
package widget

import (
	"time"

	"github.com/silverfoxgrooming/booking-widget/internal/catalog"
	"github.com/silverfoxgrooming/booking-widget/internal/square"
	"github.com/silverfoxgrooming/booking-widget/internal/team"
)

// Step is the stepper position. Loading and error overlays are effects, not
// steps; they never replace the underlying step.
type Step int

const (
	StepServices Step = 1
	StepBarbers  Step = 2
	StepConfirm  Step = 3
)

func (s Step) String() string {
	switch s {
	case StepServices:
		return "services"
	case StepBarbers:
		return "barbers"
	case StepConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// SelectedBarber is the barber half of a confirmed slot choice. Price is the
// selected service's price; barbers do not price independently.
type SelectedBarber struct {
	ID    string
	Name  string
	Price float64
}

// State is one visitor's booking progress. Step only advances, except for
// the explicit back transition to StepServices. Going back keeps prior
// selections so re-booking the same barber stays fast.
type State struct {
	Step            Step
	Services        []catalog.Service
	Barbers         []team.Barber
	Availability    []square.Availability
	SelectedService *catalog.Service
	SelectedBarber  *SelectedBarber
	SelectedTime    string
	SelectedDate    time.Time
}
