// Package cart owns a browser's pending rental selection. Every mutation is
// written through to the browser's store.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/wtfrudb/movie-catalog/pkg/logger"
	"github.com/wtfrudb/movie-catalog/storefront/internal/domain"
	"github.com/wtfrudb/movie-catalog/storefront/internal/store"
)

// Manager holds one browser's cart lines and writes them through to its store.
type Manager struct {
	mu    sync.Mutex
	store store.Store
	lines []domain.CartLine
}

// Load rehydrates the cart persisted in s. A missing or unreadable blob
// yields an empty cart.
func Load(ctx context.Context, s store.Store) *Manager {
	m := &Manager{store: s}

	raw, err := s.Get(ctx, store.CartKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warnf(ctx, "cart load failed, starting empty: %v", err)
		}
		return m
	}

	var lines []domain.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		logger.Warnf(ctx, "discarding unreadable cart: %v", err)
		return m
	}

	m.lines = normalize(lines)
	return m
}

// normalize drops invalid lines and merges duplicates, keeping the
// position of the first occurrence.
func normalize(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(lines))
	index := make(map[int64]int, len(lines))
	for _, line := range lines {
		if line.Movie.ID <= 0 || line.Quantity < 1 {
			continue
		}
		if i, ok := index[line.Movie.ID]; ok {
			out[i].Quantity += line.Quantity
			continue
		}
		index[line.Movie.ID] = len(out)
		out = append(out, line)
	}
	return out
}

// AddItem increments the movie's line, creating it with quantity 1 if absent.
// Movies without a positive id are ignored.
func (m *Manager) AddItem(ctx context.Context, movie domain.Movie) {
	if movie.ID <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.find(movie.ID); i >= 0 {
		m.lines[i].Quantity++
	} else {
		m.lines = append(m.lines, domain.CartLine{Movie: movie, Quantity: 1})
	}
	m.persist(ctx)
}

// RemoveItem deletes the line for movieID. Absent ids are ignored.
func (m *Manager) RemoveItem(ctx context.Context, movieID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.remove(movieID)
	m.persist(ctx)
}

// SetQuantity sets the line's quantity; qty <= 0 removes the line.
func (m *Manager) SetQuantity(ctx context.Context, movieID int64, qty int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if qty <= 0 {
		m.remove(movieID)
	} else if i := m.find(movieID); i >= 0 {
		m.lines[i].Quantity = qty
	}
	m.persist(ctx)
}

// Clear empties the cart and persists the empty list.
func (m *Manager) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lines = nil
	m.persist(ctx)
}

// Snapshot returns a copy of the lines in insertion order.
func (m *Manager) Snapshot() []domain.CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.CartLine, len(m.lines))
	copy(out, m.lines)
	return out
}

// Len is the number of distinct movies in the cart.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lines)
}

// TotalQuantity is the number of copies across all lines.
func (m *Manager) TotalQuantity() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, line := range m.lines {
		total += line.Quantity
	}
	return total
}

func (m *Manager) find(movieID int64) int {
	for i, line := range m.lines {
		if line.Movie.ID == movieID {
			return i
		}
	}
	return -1
}

func (m *Manager) remove(movieID int64) {
	if i := m.find(movieID); i >= 0 {
		m.lines = append(m.lines[:i], m.lines[i+1:]...)
	}
}

// persist must be called with mu held. A failed write keeps the in-memory
// state; the next mutation writes the whole cart again.
func (m *Manager) persist(ctx context.Context) {
	lines := m.lines
	if lines == nil {
		lines = []domain.CartLine{}
	}

	data, err := json.Marshal(lines)
	if err != nil {
		logger.Errorf(ctx, "marshal cart failed: %v", err)
		return
	}
	if err := m.store.Set(ctx, store.CartKey, string(data)); err != nil {
		logger.Errorf(ctx, "persist cart failed: %v", err)
	}
}
