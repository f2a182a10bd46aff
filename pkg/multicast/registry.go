package multicast

import (
	"context"
	"sync"

	"github.com/randalmurphal/multicast/pkg/multicast/observability"
)

// Registry is an ordered, identity-keyed multicast delegate set with
// strong member references. Members stay registered until they are
// removed explicitly; use WeakRegistry when members should drop out on
// their own once nothing else owns them.
//
// T is typically an observer interface. Since Go 1.20 ordinary interface
// types satisfy comparable, so membership is keyed by interface identity:
// the member's dynamic type and pointer. Members whose dynamic type is
// not comparable (for example, a struct value containing a slice) panic
// on Add, matching Go map semantics; register pointers instead.
//
// All methods are safe for concurrent use.
type Registry[T comparable] struct {
	cfg settings

	mu    sync.RWMutex
	order []T
	index map[T]int // member -> position in order
}

// New creates a new empty registry.
func New[T comparable](opts ...Option) *Registry[T] {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Registry[T]{
		cfg:   cfg,
		index: make(map[T]int),
	}
}

// ID returns the registry identifier used in logs, metrics, and spans.
func (r *Registry[T]) ID() string {
	return r.cfg.id
}

// Add registers a member. Adding a member that is already present is a
// no-op, as is adding the zero value of T. Insertion order is preserved
// and determines fan-out order.
func (r *Registry[T]) Add(member T) {
	var zero T
	if member == zero {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[member]; exists {
		return
	}
	if r.cfg.maxMembers > 0 && len(r.order) >= r.cfg.maxMembers {
		observability.LogCapacityReached(r.cfg.logger, r.cfg.id, r.cfg.maxMembers)
		return
	}

	r.index[member] = len(r.order)
	r.order = append(r.order, member)
	r.cfg.metrics.RecordMemberAdded(context.Background(), r.cfg.id)
}

// Remove deregisters a member. Removing an absent member is a no-op.
func (r *Registry[T]) Remove(member T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, exists := r.index[member]
	if !exists {
		return
	}

	delete(r.index, member)
	r.order = append(r.order[:pos], r.order[pos+1:]...)
	for i := pos; i < len(r.order); i++ {
		r.index[r.order[i]] = i
	}
	r.cfg.metrics.RecordMembersRemoved(context.Background(), r.cfg.id, 1, observability.RemovalExplicit)
}

// Contains returns true if the member is currently registered.
func (r *Registry[T]) Contains(member T) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.index[member]
	return exists
}

// Members returns a snapshot of all registered members in insertion
// order. Each call recomputes the snapshot; mutating the registry does
// not affect previously returned slices.
func (r *Registry[T]) Members() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot := make([]T, len(r.order))
	copy(snapshot, r.order)
	return snapshot
}

// Len returns the number of registered members.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// IsEmpty returns true if the registry has no members.
func (r *Registry[T]) IsEmpty() bool {
	return r.Len() == 0
}

// RemoveAll unconditionally empties the registry. The backing storage is
// discarded and replaced, so any reference the registry held is released
// immediately.
func (r *Registry[T]) RemoveAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cleared := len(r.order)
	r.order = nil
	r.index = make(map[T]int)
	r.cfg.metrics.RecordMembersRemoved(context.Background(), r.cfg.id, cleared, observability.RemovalCleared)
}

// Invoke synchronously applies fn to every member of a snapshot taken at
// call start, in insertion order, on the calling goroutine. Members
// added or removed by fn do not affect the current pass.
func (r *Registry[T]) Invoke(fn func(T)) {
	if fn == nil {
		return
	}
	for _, member := range r.Members() {
		fn(member)
	}
}

// Notify is the error-aware variant of Invoke. It applies fn to every
// member of a snapshot taken at call start, in insertion order, under
// the configured failure policy:
//
//   - FailFast (default): the first callback error aborts the remaining
//     fan-out and is returned wrapped in *InvokeError.
//   - ContinueOnError: every member is invoked; all callback errors are
//     joined into the returned *InvokeError.
//
// Notify returns nil when the registry is empty or every callback
// succeeds.
func (r *Registry[T]) Notify(ctx context.Context, fn func(context.Context, T) error) error {
	if fn == nil {
		return nil
	}
	return notifyAll(ctx, r.cfg, r.Members(), fn)
}
