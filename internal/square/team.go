package square

import (
	"context"
	"net/http"
	"strings"
)

// TeamMember is an active staff member as exposed to the widget.
type TeamMember struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

type teamSearchResponse struct {
	TeamMembers []struct {
		ID           string `json:"id"`
		Status       string `json:"status"`
		GivenName    string `json:"given_name"`
		FamilyName   string `json:"family_name"`
		EmailAddress string `json:"email_address"`
		PhoneNumber  string `json:"phone_number"`
	} `json:"team_members"`
}

// SearchTeamMembers returns active staff only. Inactive or deleted members
// must never reach the widget.
func (c *Client) SearchTeamMembers(ctx context.Context) ([]TeamMember, error) {
	var parsed teamSearchResponse
	if err := c.do(ctx, http.MethodPost, "/v2/team-members/search", "square.search_team", map[string]any{}, &parsed); err != nil {
		return nil, err
	}

	members := make([]TeamMember, 0, len(parsed.TeamMembers))
	for _, m := range parsed.TeamMembers {
		if m.Status != "ACTIVE" {
			continue
		}
		members = append(members, TeamMember{
			ID:          m.ID,
			FirstName:   m.GivenName,
			LastName:    m.FamilyName,
			DisplayName: strings.TrimSpace(m.GivenName + " " + m.FamilyName),
			Email:       m.EmailAddress,
			Phone:       m.PhoneNumber,
		})
	}
	return members, nil
}
