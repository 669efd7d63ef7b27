// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pip/registry.go
// Summary: Process-wide table that keeps detached coordinators reachable.
// Usage: A coordinator retains itself on first minimize and releases on close.
// Notes: Once popped from the host, the registry is the only owner of a
// floating coordinator.

package pip

import "sync"

// RetentionHandle is the keep-alive token a coordinator holds while detached.
// The zero handle holds nothing.
type RetentionHandle struct {
	id uint64
}

// Valid reports whether h refers to a registry entry that was issued.
func (h RetentionHandle) Valid() bool {
	return h.id != 0
}

// ID returns the coordinator id the handle was issued for.
func (h RetentionHandle) ID() uint64 {
	return h.id
}

// Registry maps coordinator ids to the coordinators they keep alive.
type Registry struct {
	mu      sync.Mutex
	entries map[uint64]*Coordinator
}

// DefaultRegistry is shared by coordinators that are not given their own.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[uint64]*Coordinator)}
}

// Retain inserts c and returns its handle. Retaining an already retained
// coordinator returns the existing handle.
func (r *Registry) Retain(c *Coordinator) RetentionHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[c.id] = c
	return RetentionHandle{id: c.id}
}

// Release removes the entry for h. It reports whether anything was removed;
// releasing twice is a no-op.
func (r *Registry) Release(h RetentionHandle) bool {
	if !h.Valid() {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[h.id]; !ok {
		return false
	}
	delete(r.entries, h.id)
	return true
}

// Lookup returns the retained coordinator with the given id.
func (r *Registry) Lookup(id uint64) (*Coordinator, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.entries[id]
	return c, ok
}

// Len returns the number of retained coordinators.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Each calls fn for every retained coordinator, outside the registry lock.
func (r *Registry) Each(fn func(c *Coordinator)) {
	r.mu.Lock()
	snapshot := make([]*Coordinator, 0, len(r.entries))
	for _, c := range r.entries {
		snapshot = append(snapshot, c)
	}
	r.mu.Unlock()
	for _, c := range snapshot {
		fn(c)
	}
}
