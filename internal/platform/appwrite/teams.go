package appwrite

import (
	"context"
	"net/http"

	"github.com/thenoetrevino/faena/internal/models"
)

type teams struct {
	c *Client
}

type membershipList struct {
	Total       int                 `json:"total"`
	Memberships []membershipPayload `json:"memberships"`
}

func (t *teams) Create(ctx context.Context, name string) (*models.Team, error) {
	body := map[string]string{"teamId": uniqueID, "name": name}
	var out teamPayload
	if _, err := t.c.do(ctx, request{method: http.MethodPost, path: "/teams", body: body}, &out); err != nil {
		return nil, err
	}
	return out.toModel(), nil
}

func (t *teams) List(ctx context.Context) ([]*models.Team, error) {
	var out struct {
		Total int           `json:"total"`
		Teams []teamPayload `json:"teams"`
	}
	if _, err := t.c.do(ctx, request{method: http.MethodGet, path: "/teams"}, &out); err != nil {
		return nil, err
	}
	result := make([]*models.Team, 0, len(out.Teams))
	for _, team := range out.Teams {
		result = append(result, team.toModel())
	}
	return result, nil
}

func (t *teams) ListMemberships(ctx context.Context, teamID string) ([]*models.Membership, error) {
	var out membershipList
	if _, err := t.c.do(ctx, request{method: http.MethodGet, path: pathEscape("teams", teamID, "memberships")}, &out); err != nil {
		return nil, err
	}
	result := make([]*models.Membership, 0, len(out.Memberships))
	for _, m := range out.Memberships {
		result = append(result, m.toModel())
	}
	return result, nil
}

func (t *teams) DeleteMembership(ctx context.Context, teamID, membershipID string) error {
	_, err := t.c.do(ctx, request{method: http.MethodDelete, path: pathEscape("teams", teamID, "memberships", membershipID)}, nil)
	return err
}

func (t *teams) UpdateMembershipStatus(ctx context.Context, teamID, membershipID, userID, secret string) (*models.Membership, error) {
	body := map[string]string{"userId": userID, "secret": secret}
	var out membershipPayload
	r := request{method: http.MethodPatch, path: pathEscape("teams", teamID, "memberships", membershipID, "status"), body: body}
	if _, err := t.c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return out.toModel(), nil
}
