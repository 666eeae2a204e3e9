// Package blackboard provides the mutable object store scoped to one
// process execution. The store is append-only: objects are never removed
// while the owning process lives, which is what makes re-planning safe —
// presence-derived conditions can only flip false to true, never regress.
package blackboard

import "reflect"

// Blackboard is an ordered collection of arbitrary typed objects plus a
// name-to-object binding table. It is owned by exactly one process and
// mutated only by that process's loop, so it carries no locking.
type Blackboard struct {
	objects  []any
	bindings map[string]any
}

// New creates an empty blackboard.
func New() *Blackboard {
	return &Blackboard{
		bindings: make(map[string]any),
	}
}

// Add appends the object if it is not already present (by equality for
// comparable values, identity otherwise). Returns true if the object was
// newly added.
func (b *Blackboard) Add(obj any) bool {
	if b.contains(obj) {
		return false
	}
	b.objects = append(b.objects, obj)
	return true
}

// Bind records a name for the object, adding it first if absent. A name may
// be rebound to a newer object; the previously bound object stays in the
// store.
func (b *Blackboard) Bind(name string, obj any) {
	b.Add(obj)
	b.bindings[name] = obj
}

// Get returns the object bound to the name.
func (b *Blackboard) Get(name string) (any, bool) {
	obj, ok := b.bindings[name]
	return obj, ok
}

// Objects returns a read-only view of all objects in insertion order.
func (b *Blackboard) Objects() []any {
	out := make([]any, len(b.objects))
	copy(out, b.objects)
	return out
}

// Names returns all binding names. Order is unspecified.
func (b *Blackboard) Names() []string {
	names := make([]string, 0, len(b.bindings))
	for name := range b.bindings {
		names = append(names, name)
	}
	return names
}

// Len returns the number of stored objects.
func (b *Blackboard) Len() int {
	return len(b.objects)
}

// Copy returns a snapshot with the same objects and bindings. Used when
// forking a child process: the copy shares no live structure with the
// original, so the two processes cannot race on it. The objects themselves
// are shared references; treat them as immutable once added.
func (b *Blackboard) Copy() *Blackboard {
	c := &Blackboard{
		objects:  make([]any, len(b.objects)),
		bindings: make(map[string]any, len(b.bindings)),
	}
	copy(c.objects, b.objects)
	for name, obj := range b.bindings {
		c.bindings[name] = obj
	}
	return c
}

// contains reports whether an equal (or identical) object is already stored.
func (b *Blackboard) contains(obj any) bool {
	comparable := obj == nil || reflect.TypeOf(obj).Comparable()
	for _, existing := range b.objects {
		if comparable && (existing == nil || reflect.TypeOf(existing).Comparable()) {
			if existing == obj {
				return true
			}
			continue
		}
		if sameIdentity(existing, obj) {
			return true
		}
	}
	return false
}

// sameIdentity reports pointer identity for non-comparable values.
func sameIdentity(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		if vb.Kind() == va.Kind() {
			return va.Pointer() == vb.Pointer()
		}
	}
	return false
}
