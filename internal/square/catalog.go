package square

import (
	"context"
	"net/http"
)

// CatalogService is one bookable catalog item with its priced variations.
// Price is in minor currency units, Duration in milliseconds, both as Square
// reports them.
type CatalogService struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Variations []Variation `json:"variations"`
}

type Variation struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
	Duration int64  `json:"duration"`
}

type catalogListResponse struct {
	Objects []struct {
		ID       string `json:"id"`
		ItemData struct {
			Name       string `json:"name"`
			Variations []struct {
				ID                string `json:"id"`
				ItemVariationData struct {
					Name       string `json:"name"`
					PriceMoney struct {
						Amount   int64  `json:"amount"`
						Currency string `json:"currency"`
					} `json:"price_money"`
					ServiceDuration int64 `json:"service_duration"`
				} `json:"item_variation_data"`
			} `json:"variations"`
		} `json:"item_data"`
	} `json:"objects"`
}

// ListCatalogServices fetches the ITEM catalog and flattens it into the shape
// the services endpoint exposes.
func (c *Client) ListCatalogServices(ctx context.Context) ([]CatalogService, error) {
	var parsed catalogListResponse
	if err := c.do(ctx, http.MethodGet, "/v2/catalog/list?types=ITEM", "square.list_catalog", nil, &parsed); err != nil {
		return nil, err
	}

	services := make([]CatalogService, 0, len(parsed.Objects))
	for _, obj := range parsed.Objects {
		svc := CatalogService{ID: obj.ID, Name: obj.ItemData.Name}
		for _, v := range obj.ItemData.Variations {
			svc.Variations = append(svc.Variations, Variation{
				ID:       v.ID,
				Name:     v.ItemVariationData.Name,
				Price:    v.ItemVariationData.PriceMoney.Amount,
				Currency: v.ItemVariationData.PriceMoney.Currency,
				Duration: v.ItemVariationData.ServiceDuration,
			})
		}
		services = append(services, svc)
	}
	return services, nil
}
