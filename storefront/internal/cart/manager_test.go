package cart

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtfrudb/movie-catalog/storefront/internal/domain"
	"github.com/wtfrudb/movie-catalog/storefront/internal/store"
)

type failingStore struct {
	getErr error
	setErr error
	sets   int
}

func (f *failingStore) Get(context.Context, string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return "", store.ErrNotFound
}

func (f *failingStore) Set(context.Context, string, string) error {
	f.sets++
	return f.setErr
}

func (f *failingStore) Delete(context.Context, string) error { return nil }

func movie(id int64) domain.Movie {
	return domain.Movie{ID: id, Title: "Movie", ReleaseYear: 1999, ImageURL: "http://img"}
}

func persisted(t *testing.T, s store.Store) []domain.CartLine {
	t.Helper()
	raw, err := s.Get(context.Background(), store.CartKey)
	require.NoError(t, err)

	var lines []domain.CartLine
	require.NoError(t, json.Unmarshal([]byte(raw), &lines))
	return lines
}

func TestAddItem_OneLinePerMovie(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	m := Load(ctx, s)

	counts := map[int64]int{}
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		id := int64(r.Intn(5) + 1)
		counts[id]++
		m.AddItem(ctx, movie(id))
	}

	lines := m.Snapshot()
	assert.Len(t, lines, len(counts))
	for _, line := range lines {
		assert.Equal(t, counts[line.Movie.ID], line.Quantity, "movie %d", line.Movie.ID)
	}
	assert.Equal(t, lines, persisted(t, s))
	assert.Equal(t, 200, m.TotalQuantity())
}

func TestAddItem_KeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m := Load(ctx, store.NewMemoryStore())

	m.AddItem(ctx, movie(3))
	m.AddItem(ctx, movie(1))
	m.AddItem(ctx, movie(3))
	m.AddItem(ctx, movie(2))

	lines := m.Snapshot()
	require.Len(t, lines, 3)
	assert.Equal(t, int64(3), lines[0].Movie.ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(1), lines[1].Movie.ID)
	assert.Equal(t, int64(2), lines[2].Movie.ID)
}

func TestSetQuantity_NonPositiveRemoves(t *testing.T) {
	ctx := context.Background()

	build := func() *Manager {
		m := Load(ctx, store.NewMemoryStore())
		m.AddItem(ctx, movie(1))
		m.AddItem(ctx, movie(2))
		m.AddItem(ctx, movie(2))
		return m
	}

	removed := build()
	removed.RemoveItem(ctx, 2)

	for _, qty := range []int{0, -1} {
		m := build()
		m.SetQuantity(ctx, 2, qty)
		assert.Equal(t, removed.Snapshot(), m.Snapshot(), "qty %d", qty)
	}
}

func TestSetQuantity_UpdatesExistingLine(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	m := Load(ctx, s)
	m.AddItem(ctx, movie(1))

	m.SetQuantity(ctx, 1, 7)

	lines := m.Snapshot()
	require.Len(t, lines, 1)
	assert.Equal(t, 7, lines[0].Quantity)
	assert.Equal(t, 7, persisted(t, s)[0].Quantity)
}

func TestSetQuantity_AbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	m := Load(ctx, store.NewMemoryStore())
	m.AddItem(ctx, movie(1))
	before := m.Snapshot()

	m.SetQuantity(ctx, 99, 4)

	assert.Equal(t, before, m.Snapshot())
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	m := Load(ctx, store.NewMemoryStore())
	m.AddItem(ctx, movie(1))
	m.AddItem(ctx, movie(2))
	before := m.Snapshot()

	m.RemoveItem(ctx, 42)

	assert.Equal(t, before, m.Snapshot())
}

func TestClear_PersistsEmptyCart(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	m := Load(ctx, s)
	m.AddItem(ctx, movie(1))
	m.AddItem(ctx, movie(2))

	m.Clear(ctx)

	assert.Empty(t, m.Snapshot())
	assert.Equal(t, 0, m.Len())

	raw, err := s.Get(ctx, store.CartKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	m := Load(ctx, s)
	m.AddItem(ctx, movie(5))
	m.AddItem(ctx, movie(5))
	m.AddItem(ctx, movie(8))

	restored := Load(ctx, s)

	assert.Equal(t, m.Snapshot(), restored.Snapshot())
}

func TestLoad_AbsentOrCorrupt(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		blob *string
	}{
		{name: "absent"},
		{name: "garbage", blob: ptr("{not json")},
		{name: "wrong shape", blob: ptr(`{"movie":1}`)},
		{name: "truncated", blob: ptr(`[{"movie":{"id":1},"quan`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemoryStore()
			if tt.blob != nil {
				require.NoError(t, s.Set(ctx, store.CartKey, *tt.blob))
			}

			m := Load(ctx, s)
			assert.Empty(t, m.Snapshot())
		})
	}
}

func TestLoad_StoreErrorYieldsEmptyCart(t *testing.T) {
	m := Load(context.Background(), &failingStore{getErr: errors.New("connection refused")})
	assert.Empty(t, m.Snapshot())
}

func TestLoad_NormalizesLines(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	blob := `[
		{"movie":{"id":1,"title":"A"},"quantity":2},
		{"movie":{"id":2,"title":"B"},"quantity":0},
		{"movie":{"id":0,"title":"C"},"quantity":3},
		{"movie":{"id":1,"title":"A"},"quantity":1},
		{"movie":{"id":3,"title":"D"},"quantity":-4}
	]`
	require.NoError(t, s.Set(ctx, store.CartKey, blob))

	lines := Load(ctx, s).Snapshot()

	require.Len(t, lines, 1)
	assert.Equal(t, int64(1), lines[0].Movie.ID)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestMutations_SurvivePersistFailure(t *testing.T) {
	ctx := context.Background()
	fs := &failingStore{setErr: errors.New("disk full")}
	m := Load(ctx, fs)

	m.AddItem(ctx, movie(1))
	m.AddItem(ctx, movie(1))
	m.SetQuantity(ctx, 1, 5)

	lines := m.Snapshot()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 3, fs.sets, "every mutation must attempt a write")
}

func TestSnapshot_IsACopy(t *testing.T) {
	ctx := context.Background()
	m := Load(ctx, store.NewMemoryStore())
	m.AddItem(ctx, movie(1))

	snap := m.Snapshot()
	snap[0].Quantity = 100

	assert.Equal(t, 1, m.Snapshot()[0].Quantity)
}

func ptr(s string) *string { return &s }

func TestAddItem_IgnoresNonPositiveID(t *testing.T) {
	ctx := context.Background()
	fs := &failingStore{}
	m := Load(ctx, fs)

	m.AddItem(ctx, movie(0))
	m.AddItem(ctx, movie(-3))

	assert.Zero(t, m.Len())
	assert.Zero(t, fs.sets, "nothing to persist")

	s := store.NewMemoryStore()
	m = Load(ctx, s)
	m.AddItem(ctx, movie(0))
	m.AddItem(ctx, movie(4))

	assert.Equal(t, m.Snapshot(), Load(ctx, s).Snapshot(), "reload sees the same cart")
}
