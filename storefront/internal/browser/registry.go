// Package browser keeps the state of every browser the storefront is
// serving: its session and its cart, both backed by the browser's slice of
// the persistent store.
package browser

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wtfrudb/movie-catalog/storefront/internal/cart"
	"github.com/wtfrudb/movie-catalog/storefront/internal/session"
	"github.com/wtfrudb/movie-catalog/storefront/internal/store"
)

const (
	DefaultIdleTTL         = 30 * time.Minute
	DefaultCleanupInterval = time.Minute
)

// Browser is the state the storefront keeps for one browser cookie.
type Browser struct {
	ID      string
	Session *session.Holder
	Cart    *cart.Manager
}

// NewID returns a fresh browser identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like one NewID produced.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

type entry struct {
	browser  *Browser
	lastSeen time.Time
}

// Registry hands out one Browser per id. Idle browsers are dropped from
// memory; their persisted state is rehydrated on the next visit.
type Registry struct {
	mu       sync.Mutex
	base     store.Store
	idleTTL  time.Duration
	browsers map[string]*entry
	now      func() time.Time

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

// NewRegistry starts a registry over base. Non-positive durations fall back to the defaults.
func NewRegistry(base store.Store, idleTTL, cleanupInterval time.Duration) *Registry {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}

	r := &Registry{
		base:        base,
		idleTTL:     idleTTL,
		browsers:    make(map[string]*entry),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	r.wg.Add(1)
	go r.cleanupLoop(cleanupInterval)

	return r
}

// Get returns the browser for id, building it from the store when it is
// not in memory.
func (r *Registry) Get(ctx context.Context, id string) *Browser {
	r.mu.Lock()
	if e, ok := r.browsers[id]; ok {
		e.lastSeen = r.now()
		r.mu.Unlock()
		return e.browser
	}
	r.mu.Unlock()

	b := load(ctx, r.base, id)

	r.mu.Lock()
	defer r.mu.Unlock()
	// another request for the same browser may have won the race
	if e, ok := r.browsers[id]; ok {
		e.lastSeen = r.now()
		return e.browser
	}
	r.browsers[id] = &entry{browser: b, lastSeen: r.now()}
	return b
}

func load(ctx context.Context, base store.Store, id string) *Browser {
	scoped := store.Scoped(base, id)

	holder := session.New(scoped)
	holder.Restore(ctx)

	return &Browser{
		ID:      id,
		Session: holder,
		Cart:    cart.Load(ctx, scoped),
	}
}

// Len is the number of browsers held in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.browsers)
}

func (r *Registry) cleanupLoop(interval time.Duration) {
	defer r.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictIdle()
		case <-r.stopCleanup:
			return
		}
	}
}

func (r *Registry) evictIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTTL)
	for id, e := range r.browsers {
		if e.lastSeen.Before(cutoff) {
			delete(r.browsers, id)
		}
	}
}

// Close stops the cleanup goroutine.
func (r *Registry) Close() error {
	close(r.stopCleanup)
	r.wg.Wait()
	return nil
}
