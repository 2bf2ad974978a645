package store

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("key not found")

// Keys used inside a browser's namespace.
const (
	CartKey  = "cart"
	TokenKey = "token"
)

// Store is a string-keyed blob store. Implementations must return
// ErrNotFound from Get for absent keys and treat Delete of an absent key as
// success.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Scoped confines every key to a single browser's namespace.
func Scoped(base Store, namespace string) Store {
	return scoped{base: base, prefix: fmt.Sprintf("browser:%s:", namespace)}
}

type scoped struct {
	base   Store
	prefix string
}

func (s scoped) Get(ctx context.Context, key string) (string, error) {
	return s.base.Get(ctx, s.prefix+key)
}

func (s scoped) Set(ctx context.Context, key, value string) error {
	return s.base.Set(ctx, s.prefix+key, value)
}

func (s scoped) Delete(ctx context.Context, key string) error {
	return s.base.Delete(ctx, s.prefix+key)
}
