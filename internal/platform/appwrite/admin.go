package appwrite

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/platform"
)

type admin struct {
	c *Client
}

func (a *admin) GetUser(ctx context.Context, id string) (*models.User, error) {
	var out userPayload
	if _, err := a.c.do(ctx, request{method: http.MethodGet, path: pathEscape("users", id), auth: authAdmin}, &out); err != nil {
		return nil, err
	}
	return out.toModel(), nil
}

func (a *admin) ListUsers(ctx context.Context, search string, queries ...platform.Query) (*platform.UserList, error) {
	values := queryValues(queries)
	if s := strings.TrimSpace(search); s != "" {
		if values == nil {
			values = make(map[string][]string)
		}
		values.Set("search", s)
	}

	var out struct {
		Total int           `json:"total"`
		Users []userPayload `json:"users"`
	}
	if _, err := a.c.do(ctx, request{method: http.MethodGet, path: "/users", query: values, auth: authAdmin}, &out); err != nil {
		return nil, err
	}

	list := &platform.UserList{Total: out.Total, Users: make([]*models.User, 0, len(out.Users))}
	for _, u := range out.Users {
		list.Users = append(list.Users, u.toModel())
	}
	return list, nil
}

func (a *admin) CreateMembership(ctx context.Context, teamID, userID string, roles []string) (*models.Membership, error) {
	body := map[string]any{"userId": userID, "roles": roles}
	var out membershipPayload
	r := request{method: http.MethodPost, path: pathEscape("teams", teamID, "memberships"), body: body, auth: authAdmin}
	if _, err := a.c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return out.toModel(), nil
}

func (a *admin) UpdateMembershipRoles(ctx context.Context, teamID, membershipID string, roles []string) (*models.Membership, error) {
	body := map[string]any{"roles": roles}
	var out membershipPayload
	r := request{method: http.MethodPatch, path: pathEscape("teams", teamID, "memberships", membershipID), body: body, auth: authAdmin}
	if _, err := a.c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return out.toModel(), nil
}

// DeleteTeam removes a team. A team that is already gone counts as deleted.
func (a *admin) DeleteTeam(ctx context.Context, teamID string) error {
	_, err := a.c.do(ctx, request{method: http.MethodDelete, path: pathEscape("teams", teamID), auth: authAdmin}, nil)
	if errors.Is(err, platform.ErrNotFound) {
		return nil
	}
	return err
}
