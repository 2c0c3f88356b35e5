package autolog

import (
	"context"
)

// Registry is the single-slot store of "the currently active Timer" for one
// execution context. It is what lets Start discover a new timer's parent
// without any timer plumbing at the call sites in between.
//
// A Registry is confined to one goroutine at a time: it holds no lock, and
// reading or writing the same slot from two goroutines concurrently is not
// supported. Each call chain gets its own slot by deriving its context with
// ContextWithRegistry; cross-goroutine parent/child links are never
// discovered automatically and must be set by hand with Timer.SetParent.
type Registry struct {
	current *Timer
}

// NewRegistry returns an empty registry slot.
func NewRegistry() *Registry {
	return &Registry{}
}

// Current returns the timer occupying the slot, or nil.
func (r *Registry) Current() *Timer {
	return r.current
}

// SetCurrent replaces the slot's value unconditionally. A nil timer clears
// the slot.
func (r *Registry) SetCurrent(t *Timer) {
	r.current = t
}

// RemoveCurrent clears the slot. Callers reusing an execution context for
// unrelated call chains (e.g. a pooled worker picking up a new request)
// should call this first so a stale timer left behind by an uncaught panic
// cannot be picked up as a parent.
func (r *Registry) RemoveCurrent() {
	r.current = nil
}

type registryKeyType int

const registryKey registryKeyType = 0

// ContextWithRegistry derives a context carrying a fresh, empty registry
// slot. Timers started with the returned context are stitched into one call
// tree; contexts without a registry still produce timers, just unlinked ones.
func ContextWithRegistry(ctx context.Context) context.Context {
	return context.WithValue(ctx, registryKey, NewRegistry())
}

// RegistryFromContext returns the registry carried by ctx, or nil when the
// context has none.
func RegistryFromContext(ctx context.Context) *Registry {
	if ctx == nil {
		return nil
	}
	value := ctx.Value(registryKey)
	if value == nil {
		return nil
	}
	if r, ok := value.(*Registry); ok {
		return r
	}
	panic("invalid registry context type")
}
