// Package catalog turns the raw Square catalog into the services the widget
// renders, with a fixed demo set for when the live catalog is empty or down.
package catalog

import (
	"math"

	"github.com/silverfoxgrooming/booking-widget/internal/square"
)

// Service is one bookable offering as shown on a service card. BasePrice is
// in major currency units (dollars), Duration in minutes.
type Service struct {
	ID          string  `json:"id"`
	VariationID string  `json:"variationId"`
	Name        string  `json:"name"`
	BasePrice   float64 `json:"basePrice"`
	Duration    int     `json:"duration"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
}

var icons = []string{"✂️", "👦", "🧔", "💫", "🪒", "⭐"}

var descriptions = []string{
	"Precision cutting with traditional techniques",
	"Gentle styling for young gentlemen",
	"Expert beard shaping and maintenance",
	"Complete grooming experience",
	"Classic hot towel shave",
	"Premium styling consultation",
}

const (
	fallbackPrice    = 25
	fallbackDuration = 30
)

// FromCatalog converts provider catalog items into renderable services. The
// first variation carries the price (minor units) and duration (ms); entries
// without variation data get the fallback price/duration the original widget
// used.
func FromCatalog(items []square.CatalogService) []Service {
	services := make([]Service, 0, len(items))
	for i, item := range items {
		svc := Service{
			ID:          item.ID,
			Name:        item.Name,
			BasePrice:   fallbackPrice,
			Duration:    fallbackDuration,
			Icon:        icons[i%len(icons)],
			Description: descriptions[i%len(descriptions)],
		}
		if svc.Name == "" {
			svc.Name = "Premium Service"
		}
		if len(item.Variations) > 0 {
			v := item.Variations[0]
			svc.VariationID = v.ID
			if v.Price > 0 {
				svc.BasePrice = float64(v.Price) / 100
			}
			if v.Duration > 0 {
				svc.Duration = int(math.Round(float64(v.Duration) / 60000))
			}
		}
		services = append(services, svc)
	}
	return services
}

// Demo returns the fixed four-service fallback set. The widget must never
// render an empty services grid.
func Demo() []Service {
	return []Service{
		{
			ID:          "1",
			VariationID: "1",
			Name:        "Gentleman's Cut",
			BasePrice:   45,
			Duration:    45,
			Icon:        "✂️",
			Description: "Precision cutting with traditional techniques",
		},
		{
			ID:          "2",
			VariationID: "2",
			Name:        "Young Gentleman",
			BasePrice:   30,
			Duration:    30,
			Icon:        "👦",
			Description: "Professional styling for ages 12 and under",
		},
		{
			ID:          "3",
			VariationID: "3",
			Name:        "Beard Sculpting",
			BasePrice:   25,
			Duration:    30,
			Icon:        "🧔",
			Description: "Expert beard shaping and maintenance",
		},
		{
			ID:          "4",
			VariationID: "4",
			Name:        "The Full Service",
			BasePrice:   65,
			Duration:    60,
			Icon:        "💫",
			Description: "Complete grooming experience",
		},
	}
}

// Choose picks the live set when it has entries, else the demo set. Keeping
// this a pure function keeps the fallback policy testable apart from fetch
// plumbing.
func Choose(live, demo []Service) []Service {
	if len(live) > 0 {
		return live
	}
	return demo
}
