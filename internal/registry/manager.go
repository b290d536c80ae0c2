// Package registry tracks the kernel sessions owned by this process.
package registry

import (
	"context"
	"sync"
)

// Kernel is a live kernel session handle. *jupyter.RemoteKernel satisfies
// this.
type Kernel interface {
	ID() string
	Kill(ctx context.Context) error
}

// Manager is a concurrent map of kernel id to live session. Each session
// handle is exclusively owned by its caller; the registry only stores and
// hands them back.
type Manager struct {
	kernels sync.Map
}

// NewManager creates an empty registry.
func NewManager() *Manager {
	return &Manager{}
}

// Insert registers a kernel under its id.
func (m *Manager) Insert(k Kernel) {
	m.kernels.Store(k.ID(), k)
}

// Get looks up a kernel by id.
func (m *Manager) Get(id string) (Kernel, bool) {
	v, ok := m.kernels.Load(id)
	if !ok {
		return nil, false
	}
	return v.(Kernel), true
}

// Remove unregisters and returns a kernel, typically so the caller can
// kill it.
func (m *Manager) Remove(id string) (Kernel, bool) {
	v, ok := m.kernels.LoadAndDelete(id)
	if !ok {
		return nil, false
	}
	return v.(Kernel), true
}

// List returns the ids of all registered kernels.
func (m *Manager) List() []string {
	var ids []string
	m.kernels.Range(func(key, _ interface{}) bool {
		ids = append(ids, key.(string))
		return true
	})
	return ids
}

// Count returns the number of registered kernels.
func (m *Manager) Count() int {
	total := 0
	m.kernels.Range(func(_, _ interface{}) bool {
		total++
		return true
	})
	return total
}
