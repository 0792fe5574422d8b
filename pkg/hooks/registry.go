package hooks

import "fmt"

// Mutability classifies a field's write policy.
type Mutability int

const (
	// Mutable fields accept writes for the entity's whole lifetime.
	Mutable Mutability = iota
	// ImmutableAfterInit fields are assigned exactly once, at
	// construction; any later external write is rejected.
	ImmutableAfterInit
)

// FieldMeta is the registered metadata of a single field.
type FieldMeta[T any] struct {
	Name       string
	Mutability Mutability
	hooks      []*Hook[T]
}

// Hooks returns the field's hook list in registration order.
func (m *FieldMeta[T]) Hooks() []*Hook[T] {
	return m.hooks
}

// Registry associates each field of a governed type with a mutability
// class and an ordered list of hooks. It is assembled once during setup
// and read-only afterwards, so lookups need no locking.
type Registry[T any] struct {
	fields map[string]*FieldMeta[T]
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{fields: make(map[string]*FieldMeta[T])}
}

// Register declares a field with its mutability class and hooks. Hooks
// execute in the order given here. Registering the same field twice, or
// the same hook for an already-covered field+trigger pair, panics:
// those are setup-time programming errors, not runtime conditions.
func (r *Registry[T]) Register(field string, m Mutability, hs ...*Hook[T]) {
	if _, dup := r.fields[field]; dup {
		panic(fmt.Sprintf("hooks: field %q registered twice", field))
	}
	for i, h := range hs {
		for _, prev := range hs[:i] {
			if prev.Name() != h.Name() {
				continue
			}
			for tr := range h.triggers {
				if prev.Handles(tr) {
					panic(fmt.Sprintf("hooks: hook %q registered twice for field %q trigger %q", h.Name(), field, tr))
				}
			}
		}
	}
	r.fields[field] = &FieldMeta[T]{Name: field, Mutability: m, hooks: hs}
	r.order = append(r.order, field)
}

// Field looks up the metadata for a field name.
func (r *Registry[T]) Field(name string) (*FieldMeta[T], bool) {
	meta, ok := r.fields[name]
	return meta, ok
}

// HooksFor returns, in registration order, the field's hooks bound to
// the given trigger. Unknown fields yield an empty list.
func (r *Registry[T]) HooksFor(field string, tr Trigger) []*Hook[T] {
	meta, ok := r.fields[field]
	if !ok {
		return nil
	}
	var out []*Hook[T]
	for _, h := range meta.hooks {
		if h.Handles(tr) {
			out = append(out, h)
		}
	}
	return out
}

// Fields returns all registered field names in declaration order. The
// post-init dispatcher iterates this to fire construction hooks.
func (r *Registry[T]) Fields() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
