// Package identitymap dedupes entity loads within one request.
//
// A Map lives in the request context only; there is no process-wide cache.
package identitymap

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type Kind string

const (
	KindCart    Kind = "cart"
	KindProduct Kind = "product"
	KindUser    Kind = "user"
	KindAddress Kind = "address"
	KindOrder   Kind = "order"
)

type entryKey struct {
	kind Kind
	id   uuid.UUID
}

type Map struct {
	mu      sync.Mutex
	entries map[entryKey]any
}

func New() *Map {
	return &Map{entries: make(map[entryKey]any)}
}

type ctxKey struct{}

func WithMap(ctx context.Context, m *Map) context.Context {
	return context.WithValue(ctx, ctxKey{}, m)
}

func FromContext(ctx context.Context) (*Map, bool) {
	m, ok := ctx.Value(ctxKey{}).(*Map)
	return m, ok && m != nil
}

// Load returns the value loaded earlier in this request for (kind, id),
// or calls loader and remembers a successful result. Without a Map in ctx
// loader is always called.
func Load[T any](ctx context.Context, kind Kind, id uuid.UUID, loader func(ctx context.Context) (T, error)) (T, error) {
	m, ok := FromContext(ctx)
	if !ok {
		return loader(ctx)
	}

	k := entryKey{kind: kind, id: id}

	m.mu.Lock()
	cached, found := m.entries[k]
	m.mu.Unlock()

	if found {
		v, ok := cached.(T)
		if !ok {
			var zero T
			return zero, fmt.Errorf("identitymap: %s %s holds %T", kind, id, cached)
		}
		return v, nil
	}

	v, err := loader(ctx)
	if err != nil {
		return v, err
	}

	m.mu.Lock()
	m.entries[k] = v
	m.mu.Unlock()

	return v, nil
}

// Forget drops an entry after a write so later loads in the request see fresh state.
func Forget(ctx context.Context, kind Kind, id uuid.UUID) {
	m, ok := FromContext(ctx)
	if !ok {
		return
	}

	m.mu.Lock()
	delete(m.entries, entryKey{kind: kind, id: id})
	m.mu.Unlock()
}
