package hooks

// Trigger is a lifecycle event that causes bound hooks to run.
type Trigger string

const (
	// PostInit fires once, after every field of a newly constructed
	// entity has been assigned.
	PostInit Trigger = "post_init"
	// PostUpdate fires after each successful external field write.
	PostUpdate Trigger = "post_update"
)

// Kind separates hooks that only validate (and reject by returning an
// error) from hooks that perform a recorded state update.
type Kind int

const (
	// KindValidation hooks never mutate the entity; their action either
	// completes silently or returns a domain error.
	KindValidation Kind = iota
	// KindUpdate hooks perform a side-effecting update (timestamp
	// refresh, history append) and cannot fail.
	KindUpdate
)

// Hook is a reusable, stateless unit of reactive logic bound to one or
// more triggers. The condition predicate must be free of side effects;
// a nil condition means "always".
type Hook[T any] struct {
	name      string
	kind      Kind
	triggers  map[Trigger]struct{}
	condition func(T) bool
	action    func(T) error
}

// NewValidation creates a validating hook. The action runs only when the
// condition holds against the entity's current (post-write) state.
func NewValidation[T any](name string, condition func(T) bool, action func(T) error, triggers ...Trigger) *Hook[T] {
	if action == nil {
		panic("hooks: validation hook " + name + " has no action")
	}
	return &Hook[T]{
		name:      name,
		kind:      KindValidation,
		triggers:  triggerSet(triggers),
		condition: condition,
		action:    action,
	}
}

// NewUpdate creates a derived-state hook whose action updates the entity
// and cannot fail.
func NewUpdate[T any](name string, condition func(T) bool, update func(T), triggers ...Trigger) *Hook[T] {
	if update == nil {
		panic("hooks: update hook " + name + " has no action")
	}
	return &Hook[T]{
		name:      name,
		kind:      KindUpdate,
		triggers:  triggerSet(triggers),
		condition: condition,
		action: func(target T) error {
			update(target)
			return nil
		},
	}
}

func triggerSet(triggers []Trigger) map[Trigger]struct{} {
	if len(triggers) == 0 {
		panic("hooks: hook registered without triggers")
	}
	set := make(map[Trigger]struct{}, len(triggers))
	for _, tr := range triggers {
		set[tr] = struct{}{}
	}
	return set
}

// Name returns the hook's identifier, used in registry duplicate checks.
func (h *Hook[T]) Name() string { return h.name }

// Kind reports whether the hook validates or updates.
func (h *Hook[T]) Kind() Kind { return h.kind }

// Handles reports whether the hook is bound to the given trigger.
func (h *Hook[T]) Handles(tr Trigger) bool {
	_, ok := h.triggers[tr]
	return ok
}

// Fire evaluates the condition against the target and, if it holds,
// runs the action. The returned error is the action's rejection.
func (h *Hook[T]) Fire(target T) error {
	if h.condition != nil && !h.condition(target) {
		return nil
	}
	return h.action(target)
}
