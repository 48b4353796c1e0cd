package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/platform"
)

// MinPasswordLength matches the hosted platform's password policy
const MinPasswordLength = 8

// SessionTTL is how long a session stays valid
const SessionTTL = 365 * 24 * time.Hour

var errInvalidCredentials = fmt.Errorf("invalid credentials: %w", platform.ErrUnauthorized)

type accounts struct {
	c *client
}

func (a *accounts) UseSession(secret string) {
	a.c.setSecret(strings.TrimSpace(secret))
}

func (a *accounts) Get(ctx context.Context) (*models.User, error) {
	userID, err := a.c.currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return a.c.store.getUser(ctx, userID)
}

func (a *accounts) Create(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email %q", email)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{ID: newID(), Name: strings.TrimSpace(name), Email: email}
	_, err = a.c.store.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, string(hash), a.c.store.timestamp(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("account %s: %w", email, platform.ErrConflict)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	return user, nil
}

func (a *accounts) CreateEmailSession(ctx context.Context, email, password string) (*platform.Session, error) {
	var userID, hash string
	err := a.c.store.db.QueryRowContext(ctx,
		"SELECT id, password_hash FROM users WHERE email = ?", strings.TrimSpace(email),
	).Scan(&userID, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}

	session := &platform.Session{
		ID:     newID(),
		UserID: userID,
		Secret: newID() + newID(),
		Expire: a.c.store.now().Add(SessionTTL).UTC(),
	}
	_, err = a.c.store.db.ExecContext(ctx,
		"INSERT INTO sessions (id, user_id, secret, expire, created_at) VALUES (?, ?, ?, ?, ?)",
		session.ID, session.UserID, session.Secret, session.Expire.Format(timeLayout), a.c.store.timestamp(),
	)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	a.c.setSecret(session.Secret)
	return session, nil
}

func (a *accounts) DeleteSession(ctx context.Context, sessionID string) error {
	userID, err := a.c.currentUserID(ctx)
	if err != nil {
		return err
	}

	var res sql.Result
	if sessionID == "" || sessionID == platform.CurrentSession {
		res, err = a.c.store.db.ExecContext(ctx, "DELETE FROM sessions WHERE secret = ?", a.c.sessionSecret())
	} else {
		res, err = a.c.store.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ? AND user_id = ?", sessionID, userID)
	}
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %s: %w", sessionID, platform.ErrNotFound)
	}

	if sessionID == "" || sessionID == platform.CurrentSession {
		a.c.setSecret("")
	}
	return nil
}

func (s *Store) getUser(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email FROM users WHERE id = ?", id,
	).Scan(&user.ID, &user.Name, &user.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, platform.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
