package appwrite

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/platform"
)

type accounts struct {
	c *Client
}

func (a *accounts) UseSession(secret string) {
	a.c.setSession(strings.TrimSpace(secret))
}

func (a *accounts) Get(ctx context.Context) (*models.User, error) {
	if a.c.sessionSecret() == "" {
		return nil, fmt.Errorf("no active session: %w", platform.ErrUnauthorized)
	}
	var out userPayload
	if _, err := a.c.do(ctx, request{method: http.MethodGet, path: "/account"}, &out); err != nil {
		return nil, err
	}
	return out.toModel(), nil
}

func (a *accounts) Create(ctx context.Context, email, password, name string) (*models.User, error) {
	body := map[string]string{
		"userId":   uniqueID,
		"email":    email,
		"password": password,
		"name":     name,
	}
	var out userPayload
	if _, err := a.c.do(ctx, request{method: http.MethodPost, path: "/account", body: body, auth: authNone}, &out); err != nil {
		return nil, err
	}
	return out.toModel(), nil
}

func (a *accounts) CreateEmailSession(ctx context.Context, email, password string) (*platform.Session, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var out sessionPayload
	header, err := a.c.do(ctx, request{method: http.MethodPost, path: "/account/sessions/email", body: body, auth: authNone}, &out)
	if err != nil {
		return nil, err
	}

	secret := out.Secret
	if secret == "" {
		secret = sessionCookie(header, a.c.projectID)
	}
	if secret == "" {
		return nil, fmt.Errorf("session created without a secret")
	}
	a.c.setSession(secret)

	return &platform.Session{
		ID:     out.ID,
		UserID: out.UserID,
		Secret: secret,
		Expire: parseTime(out.Expire),
	}, nil
}

func (a *accounts) DeleteSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		sessionID = platform.CurrentSession
	}
	_, err := a.c.do(ctx, request{method: http.MethodDelete, path: pathEscape("account", "sessions", sessionID)}, nil)
	if err == nil {
		a.c.setSession("")
	}
	return err
}

// sessionCookie finds the session secret in the a_session_<project> cookie
func sessionCookie(header http.Header, projectID string) string {
	if header == nil {
		return ""
	}
	resp := http.Response{Header: header}
	name := "a_session_" + projectID
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}
