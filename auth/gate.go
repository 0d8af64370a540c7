// Package auth resolves provider identities into storefront sessions and
// announces sign-in state changes.
package auth

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/raushankrgupta/glory-storefront/models"
	"github.com/raushankrgupta/glory-storefront/store"
)

// Session is the caller's identity and admin flag. A zero Session is signed out.
type Session struct {
	User    *models.Identity
	IsAdmin bool
	// Expired marks a request whose session cookie no longer validated. The
	// sign-out has already been announced for it.
	Expired bool
}

func (s Session) SignedIn() bool {
	return s.User != nil
}

// UserID returns "" when signed out.
func (s Session) UserID() string {
	if s.User == nil {
		return ""
	}
	return s.User.UserID
}

// AuthChanged is delivered once per sign-in state transition.
type AuthChanged struct {
	User    *models.Identity
	IsAdmin bool
}

type Listener func(AuthChanged)

// Gate is the only producer of AuthChanged notifications.
type Gate struct {
	roles store.RoleStore

	transitionMu sync.Mutex

	mu        sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

func NewGate(roles store.RoleStore) *Gate {
	return &Gate{
		roles:     roles,
		listeners: make(map[int]Listener),
	}
}

// Resolve looks up the role of identity. Any lookup failure resolves to a
// non-admin session.
func (g *Gate) Resolve(ctx context.Context, identity *models.Identity) Session {
	if identity == nil {
		return Session{}
	}
	return Session{User: identity, IsAdmin: g.isAdmin(ctx, identity.UserID)}
}

func (g *Gate) isAdmin(ctx context.Context, userID string) bool {
	role, err := g.roles.GetRole(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("checkIsAdmin %s: %v", userID, err)
		}
		return false
	}
	return role.Admin
}

// Transition records a sign-in state change (nil identity for sign-out) and
// notifies every listener exactly once, after the session is resolved.
// Role lookups run concurrently; only delivery is serialized, so listeners
// never see two transitions interleaved.
func (g *Gate) Transition(ctx context.Context, identity *models.Identity) Session {
	sess := g.Resolve(ctx, identity)

	g.transitionMu.Lock()
	defer g.transitionMu.Unlock()

	ev := AuthChanged{User: sess.User, IsAdmin: sess.IsAdmin}

	g.mu.RLock()
	listeners := make([]Listener, 0, len(g.listeners))
	for _, l := range g.listeners {
		listeners = append(listeners, l)
	}
	g.mu.RUnlock()

	for _, l := range listeners {
		l(ev)
	}
	return sess
}

// Subscribe registers l and returns a func that removes it.
func (g *Gate) Subscribe(l Listener) (unsubscribe func()) {
	g.mu.Lock()
	id := g.nextID
	g.nextID++
	g.listeners[id] = l
	g.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.listeners, id)
			g.mu.Unlock()
		})
	}
}
