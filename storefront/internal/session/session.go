// Package session tracks whether a browser holds a credential and whether
// that credential carries the administrator role.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wtfrudb/movie-catalog/pkg/logger"
	"github.com/wtfrudb/movie-catalog/storefront/internal/domain"
	"github.com/wtfrudb/movie-catalog/storefront/internal/store"
)

const adminRole = "admin"

// roleClaims are the claim names the rental API may put roles under.
var roleClaims = []string{
	"role",
	"roles",
	"http://schemas.microsoft.com/ws/2008/06/identity/claims/role",
}

// Holder is one browser's session: its credential and the flags derived from it.
type Holder struct {
	mu      sync.RWMutex
	store   store.Store
	token   string
	session domain.Session
}

// New returns a logged-out holder backed by s. Call Restore to load a stored credential.
func New(s store.Store) *Holder {
	return &Holder{store: s}
}

// Restore reads the stored credential. It is called once, when the
// browser's state is first built.
func (h *Holder) Restore(ctx context.Context) {
	token, err := h.store.Get(ctx, store.TokenKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warnf(ctx, "token restore failed, treating browser as logged out: %v", err)
		}
		return
	}
	if token == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
	h.session = domain.Session{Authenticated: true, IsAdmin: IsAdminToken(token)}
}

// Login records a credential the rental API has already accepted.
func (h *Holder) Login(ctx context.Context, token string, isAdmin bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.token = token
	h.session = domain.Session{Authenticated: true, IsAdmin: isAdmin}
	if err := h.store.Set(ctx, store.TokenKey, token); err != nil {
		logger.Errorf(ctx, "persist token failed: %v", err)
	}
}

// Logout forgets the credential, in memory and in the store.
func (h *Holder) Logout(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.token = ""
	h.session = domain.Session{}
	if err := h.store.Delete(ctx, store.TokenKey); err != nil {
		logger.Errorf(ctx, "delete token failed: %v", err)
	}
}

// State returns a copy of the session flags.
func (h *Holder) State() domain.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.session
}

// Token is the bearer credential for rental API calls, empty when logged out.
func (h *Holder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// IsAdminToken inspects the role claim of a JWT. Tokens that are not JWTs
// fall back to a substring check.
func IsAdminToken(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return strings.Contains(strings.ToLower(token), adminRole)
	}

	for _, name := range roleClaims {
		if hasAdmin(claims[name]) {
			return true
		}
	}
	return false
}

func hasAdmin(claim interface{}) bool {
	switch v := claim.(type) {
	case string:
		return strings.EqualFold(v, adminRole)
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.EqualFold(s, adminRole) {
				return true
			}
		}
	}
	return false
}
