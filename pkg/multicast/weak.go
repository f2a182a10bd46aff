package multicast

import (
	"context"
	"runtime"
	"sync"
	"weak"

	"github.com/randalmurphal/multicast/pkg/multicast/observability"
)

// WeakRegistry is the weak-reference flavor of Registry: it holds
// pointer members without extending their lifetime. A member reclaimed
// by the garbage collector is dropped from the set transparently, so
// enumeration never yields a dangling reference and IsEmpty reflects
// only still-live members.
//
// Because weak references need a concrete pointee, members are *T for a
// single concrete type T rather than an interface. Identity and
// de-duplication follow pointer identity.
//
// All methods are safe for concurrent use. Eviction of reclaimed
// members happens both eagerly, via a runtime cleanup when the garbage
// collector frees a member, and lazily, when enumeration encounters a
// dead entry.
type WeakRegistry[T any] struct {
	cfg settings

	mu    sync.Mutex
	order []weak.Pointer[T]
	index map[weak.Pointer[T]]struct{}
}

// NewWeak creates a new empty weak registry.
func NewWeak[T any](opts ...Option) *WeakRegistry[T] {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &WeakRegistry[T]{
		cfg:   cfg,
		index: make(map[weak.Pointer[T]]struct{}),
	}
}

// ID returns the registry identifier used in logs, metrics, and spans.
func (r *WeakRegistry[T]) ID() string {
	return r.cfg.id
}

// Add registers a member without taking ownership of it. Adding a member
// that is already present is a no-op, as is adding nil. Insertion order
// is preserved and determines fan-out order.
func (r *WeakRegistry[T]) Add(member *T) {
	if member == nil {
		return
	}
	ref := weak.Make(member)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[ref]; exists {
		return
	}
	if r.cfg.maxMembers > 0 && len(r.order) >= r.cfg.maxMembers {
		observability.LogCapacityReached(r.cfg.logger, r.cfg.id, r.cfg.maxMembers)
		return
	}

	r.index[ref] = struct{}{}
	r.order = append(r.order, ref)
	// Evict the entry as soon as the member is reclaimed rather than
	// waiting for the next enumeration to prune it.
	runtime.AddCleanup(member, r.evict, ref)
	r.cfg.metrics.RecordMemberAdded(context.Background(), r.cfg.id)
}

// Remove deregisters a member. Removing an absent member is a no-op.
func (r *WeakRegistry[T]) Remove(member *T) {
	if member == nil {
		return
	}
	ref := weak.Make(member)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[ref]; !exists {
		return
	}
	r.deleteLocked(ref)
	r.cfg.metrics.RecordMembersRemoved(context.Background(), r.cfg.id, 1, observability.RemovalExplicit)
}

// Contains returns true if the member is currently registered.
func (r *WeakRegistry[T]) Contains(member *T) bool {
	if member == nil {
		return false
	}
	ref := weak.Make(member)

	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.index[ref]
	return exists
}

// Members returns a snapshot of all still-live members in insertion
// order. Entries whose members have been reclaimed are pruned. Each call
// recomputes the snapshot; the returned pointers are strong, so they
// keep the members alive for as long as the caller holds the slice.
func (r *WeakRegistry[T]) Members() []*T {
	r.mu.Lock()
	defer r.mu.Unlock()

	live := make([]*T, 0, len(r.order))
	kept := r.order[:0]
	pruned := 0
	for _, ref := range r.order {
		if member := ref.Value(); member != nil {
			live = append(live, member)
			kept = append(kept, ref)
			continue
		}
		delete(r.index, ref)
		pruned++
	}
	r.order = kept

	if pruned > 0 {
		observability.LogMemberReclaimed(r.cfg.logger, r.cfg.id)
		r.cfg.metrics.RecordMembersRemoved(context.Background(), r.cfg.id, pruned, observability.RemovalReclaimed)
	}
	return live
}

// Len returns the number of still-live members.
func (r *WeakRegistry[T]) Len() int {
	return len(r.Members())
}

// IsEmpty returns true if no still-live members remain. Stale entries
// for reclaimed members do not count.
func (r *WeakRegistry[T]) IsEmpty() bool {
	return r.Len() == 0
}

// RemoveAll unconditionally empties the registry. The backing storage is
// discarded and replaced with fresh empty storage.
func (r *WeakRegistry[T]) RemoveAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cleared := len(r.order)
	r.order = nil
	r.index = make(map[weak.Pointer[T]]struct{})
	r.cfg.metrics.RecordMembersRemoved(context.Background(), r.cfg.id, cleared, observability.RemovalCleared)
}

// Invoke synchronously applies fn to every still-live member of a
// snapshot taken at call start, in insertion order, on the calling
// goroutine. Members added or removed by fn, or reclaimed mid-pass, do
// not affect the current pass: the snapshot holds strong pointers.
func (r *WeakRegistry[T]) Invoke(fn func(*T)) {
	if fn == nil {
		return
	}
	for _, member := range r.Members() {
		fn(member)
	}
}

// Notify is the error-aware variant of Invoke, with the same
// failure-policy semantics as Registry.Notify.
func (r *WeakRegistry[T]) Notify(ctx context.Context, fn func(context.Context, *T) error) error {
	if fn == nil {
		return nil
	}
	return notifyAll(ctx, r.cfg, r.Members(), fn)
}

// evict runs as a runtime cleanup after a member is reclaimed. The entry
// may already be gone if the member was removed explicitly, the registry
// was cleared, or enumeration pruned it first.
func (r *WeakRegistry[T]) evict(ref weak.Pointer[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[ref]; !exists {
		return
	}
	r.deleteLocked(ref)
	observability.LogMemberReclaimed(r.cfg.logger, r.cfg.id)
	r.cfg.metrics.RecordMembersRemoved(context.Background(), r.cfg.id, 1, observability.RemovalReclaimed)
}

// deleteLocked removes one entry from both the index and the order
// slice. Caller must hold r.mu.
func (r *WeakRegistry[T]) deleteLocked(ref weak.Pointer[T]) {
	delete(r.index, ref)
	for i, entry := range r.order {
		if entry == ref {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}
