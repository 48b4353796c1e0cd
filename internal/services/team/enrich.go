package team

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/thenoetrevino/faena/internal/directory"
	"github.com/thenoetrevino/faena/internal/models"
)

// enrichConcurrency bounds parallel directory lookups
const enrichConcurrency = 4

// Enrich resolves display names for memberships. Names come from, in order:
// the current user, the prefetched index, a directory lookup (once per user
// ID), the membership's own name or email, and finally a placeholder.
// Lookup failures never fail enrichment. Owners are ordered first.
func Enrich(ctx context.Context, memberships []*models.Membership, current *models.User, index map[string]*models.User, dir directory.Directory) []*models.EnrichedMembership {
	r := &resolver{dir: dir, cache: make(map[string]*models.User)}
	out := make([]*models.EnrichedMembership, len(memberships))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i, m := range memberships {
		g.Go(func() error {
			out[i] = enrichOne(gctx, m, current, index, r)
			return nil
		})
	}
	_ = g.Wait()

	slices.SortStableFunc(out, func(a, b *models.EnrichedMembership) int {
		switch {
		case a.IsOwner() == b.IsOwner():
			return 0
		case a.IsOwner():
			return -1
		default:
			return 1
		}
	})
	return out
}

func enrichOne(ctx context.Context, m *models.Membership, current *models.User, index map[string]*models.User, r *resolver) *models.EnrichedMembership {
	e := &models.EnrichedMembership{
		Membership:    *m,
		RoleLabel:     models.RoleMember,
		IsCurrentUser: current != nil && m.UserID != "" && m.UserID == current.ID,
	}
	if m.IsOwner() {
		e.RoleLabel = models.RoleOwner
	}
	e.DisplayName = resolveName(ctx, m, current, index, r)
	return e
}

func resolveName(ctx context.Context, m *models.Membership, current *models.User, index map[string]*models.User, r *resolver) string {
	if current != nil && m.UserID != "" && m.UserID == current.ID {
		if name := current.DisplayName(); name != "" {
			return name
		}
	}
	if u, ok := index[m.UserID]; ok {
		if name := u.DisplayName(); name != "" {
			return name
		}
	}
	if name := r.lookup(ctx, m.UserID).DisplayName(); name != "" {
		return name
	}
	if m.UserName != "" {
		return m.UserName
	}
	if m.UserEmail != "" {
		return m.UserEmail
	}
	return Placeholder(m.UserID)
}

// Placeholder names a member whose user could not be resolved
func Placeholder(userID string) string {
	if userID == "" {
		return "Unknown member"
	}
	if len(userID) > 6 {
		userID = userID[len(userID)-6:]
	}
	return "User " + userID
}

// resolver memoizes directory lookups for one enrichment pass
type resolver struct {
	dir   directory.Directory
	group singleflight.Group

	mu    sync.Mutex
	cache map[string]*models.User
}

// lookup returns nil when the user cannot be resolved
func (r *resolver) lookup(ctx context.Context, id string) *models.User {
	if r.dir == nil || id == "" {
		return nil
	}

	r.mu.Lock()
	u, ok := r.cache[id]
	r.mu.Unlock()
	if ok {
		return u
	}

	v, _, _ := r.group.Do(id, func() (any, error) {
		u, err := r.dir.Lookup(ctx, id)
		if err != nil {
			u = nil
		}
		r.mu.Lock()
		r.cache[id] = u
		r.mu.Unlock()
		return u, nil
	})
	u, _ = v.(*models.User)
	return u
}
