// Package cache stores rendered views keyed by request path and lets
// mutations mark those paths stale.
//
// A view is identified by its path plus a scope. Public pages use an empty
// scope, account pages use the guest id, so one guest never sees another
// guest's cached reservation list. Revalidating a path drops it for every
// scope.
package cache

import (
	"context"
	"sync"
)

// Store is a path-keyed view cache.
type Store interface {
	Get(ctx context.Context, path, scope string) ([]byte, bool, error)
	Set(ctx context.Context, path, scope string, body []byte) error
	Revalidate(ctx context.Context, path string) error
}

// Memory is an in-process Store used when no Redis address is configured.
type Memory struct {
	mu    sync.RWMutex
	views map[string]map[string][]byte
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{views: make(map[string]map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, path, scope string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	body, ok := m.views[path][scope]
	return body, ok, nil
}

func (m *Memory) Set(_ context.Context, path, scope string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	scopes, ok := m.views[path]
	if !ok {
		scopes = make(map[string][]byte)
		m.views[path] = scopes
	}
	scopes[scope] = append([]byte(nil), body...)
	return nil
}

func (m *Memory) Revalidate(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.views, path)
	return nil
}
