// Package schedule derives the per-barber "next available" slots the widget
// renders from raw provider availability records.
package schedule

import (
	"time"

	"github.com/silverfoxgrooming/booking-widget/internal/square"
)

// maxSlotsPerBarber caps how many upcoming slots a barber card shows.
const maxSlotsPerBarber = 3

// FormattedSlot is one bookable time as displayed on a barber card. Datetime
// is the provider timestamp (RFC3339); it is empty for demo slots, which are
// display-only.
type FormattedSlot struct {
	Datetime string `json:"datetime"`
	Display  string `json:"display"`
}

// ForBarber filters the availability list to slots whose segments include the
// given team member, keeping the provider's order (assumed chronological) and
// capping at three. Slots with unparseable timestamps are dropped.
func ForBarber(slots []square.Availability, teamMemberID string, now time.Time) []FormattedSlot {
	var formatted []FormattedSlot
	for _, slot := range slots {
		if !slotIncludes(slot, teamMemberID) {
			continue
		}
		t, err := time.Parse(time.RFC3339, slot.StartAt)
		if err != nil {
			continue
		}
		formatted = append(formatted, FormattedSlot{
			Datetime: slot.StartAt,
			Display:  Display(t, now),
		})
		if len(formatted) == maxSlotsPerBarber {
			break
		}
	}
	return formatted
}

func slotIncludes(slot square.Availability, teamMemberID string) bool {
	for _, seg := range slot.AppointmentSegments {
		if seg.TeamMemberID == teamMemberID {
			return true
		}
	}
	return false
}

// Display renders a slot label like "Today 2:00 PM" or "Wed Sep 9 10:30 AM",
// localized to now's location.
func Display(t, now time.Time) string {
	local := t.In(now.Location())
	return DayLabel(local, now) + " " + local.Format("3:04 PM")
}

// DayLabel renders "Today", "Tomorrow", or a short weekday/month/day string,
// comparing calendar dates in now's location.
func DayLabel(t, now time.Time) string {
	local := t.In(now.Location())
	switch {
	case sameDate(local, now):
		return "Today"
	case sameDate(local, now.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return local.Format("Mon Jan 2")
	}
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
