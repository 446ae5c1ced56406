// Package team models the shop's barbers as the widget shows them.
package team

import "github.com/silverfoxgrooming/booking-widget/internal/square"

// Barber is an active staff member. The provider client already drops
// inactive members, so anything in here is bookable.
type Barber struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// Name returns the card display name, falling back to the house title when
// the provider record has no usable name.
func (b Barber) Name() string {
	if b.DisplayName != "" {
		return b.DisplayName
	}
	return "Master Barber"
}

func FromTeamMembers(members []square.TeamMember) []Barber {
	barbers := make([]Barber, 0, len(members))
	for _, m := range members {
		barbers = append(barbers, Barber{
			ID:          m.ID,
			FirstName:   m.FirstName,
			LastName:    m.LastName,
			DisplayName: m.DisplayName,
			Email:       m.Email,
			Phone:       m.Phone,
		})
	}
	return barbers
}

// DemoBarber is a fixed fallback barber with synthetic specialty, rating,
// and slot strings. Demo slots carry no timestamps.
type DemoBarber struct {
	ID        string
	Name      string
	Specialty string
	Rating    string
	Slots     []string
}

// Demo returns the fixed three-barber fallback set.
func Demo() []DemoBarber {
	return []DemoBarber{
		{
			ID:        "james",
			Name:      "James",
			Specialty: "Classic & Modern Cuts",
			Rating:    "★★★★★",
			Slots:     []string{"Today 2:00 PM", "Today 4:30 PM", "Tomorrow 10:00 AM"},
		},
		{
			ID:        "dave",
			Name:      "Dave",
			Specialty: "Precision Fades",
			Rating:    "★★★★★",
			Slots:     []string{"Today 3:30 PM", "Tomorrow 9:00 AM", "Tomorrow 2:00 PM"},
		},
		{
			ID:        "ray",
			Name:      "Ray",
			Specialty: "Traditional Barbering",
			Rating:    "★★★★★",
			Slots:     []string{"Tomorrow 11:00 AM", "Tomorrow 1:30 PM", "Wednesday 10:00 AM"},
		},
	}
}
