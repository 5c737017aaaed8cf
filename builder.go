package modular

import (
	"reflect"

	"github.com/rs/xid"
)

// Builder accumulates slot registrations while the component tree is
// assembled. Registration is declarative: it records what lives in which
// slot, materialization happens in slot order inside Build. A builder is
// single-goroutine and is consumed by Build, registering afterwards panics.
type Builder[E any] struct {
	stateTypes []reflect.Type
	stateSlots map[reflect.Type]int

	paramDecls []Parameters[E]
	paramSlots map[reflect.Type]int

	sources []Modulator[E]

	built bool
}

func newBuilder[E any]() *Builder[E] {
	return &Builder[E]{
		stateSlots: make(map[reflect.Type]int),
		paramSlots: make(map[reflect.Type]int),
	}
}

func (b *Builder[E]) mustRegister() {
	if b.built {
		panic("modular: registration after build")
	}
}

// UseState registers a persistent state object of type T. The slot is
// initialized with the zero value of T. Registration is idempotent per
// builder: repeated calls with the same T return an equal handle addressing
// the same slot.
func UseState[T any, E any](b *Builder[E]) StateHandle[T] {
	b.mustRegister()
	t := reflect.TypeOf((*T)(nil)).Elem()
	slot, ok := b.stateSlots[t]
	if !ok {
		slot = len(b.stateTypes)
		b.stateTypes = append(b.stateTypes, t)
		b.stateSlots[t] = slot
	}
	return StateHandle[T]{slot: slot}
}

// UseParameters registers a parameter set of type P, deduplicated by type.
// The set's runtime is materialized by Build.
func UseParameters[P Parameters[E], E any](b *Builder[E]) ParamHandle[P] {
	b.mustRegister()
	t := reflect.TypeOf((*P)(nil)).Elem()
	slot, ok := b.paramSlots[t]
	if !ok {
		var p P
		slot = len(b.paramDecls)
		b.paramDecls = append(b.paramDecls, p)
		b.paramSlots[t] = slot
	}
	return ParamHandle[P]{slot: slot}
}

// UseModulator registers a new modulator instance. Unlike state and
// parameter registration it is never deduplicated: every call allocates a
// fresh slot and a fresh instance, two modulators of the same type are two
// independent sources.
func UseModulator[M Modulator[E], E any](b *Builder[E], alloc func() M) ModulatorHandle[M] {
	b.mustRegister()
	slot := len(b.sources)
	b.sources = append(b.sources, alloc())
	return ModulatorHandle[M]{slot: slot}
}

// Build runs the root factory exactly once, materializes every registered
// slot in slot order and returns the finalized runtime. The factory may
// register further slots while it assembles the component tree. The builder
// is consumed by this call.
func (b *Builder[E]) Build(root Factory[E]) *Runtime[E] {
	b.mustRegister()
	component := root(b)
	b.built = true

	rt := &Runtime[E]{
		id:      xid.New().String(),
		states:  make([]any, len(b.stateTypes)),
		params:  make([]ParameterRuntime[E], len(b.paramDecls)),
		sources: b.sources,
		root:    component,
	}
	for i, t := range b.stateTypes {
		rt.states[i] = reflect.New(t).Interface()
	}
	for i, p := range b.paramDecls {
		rt.params[i] = p.NewRuntime()
	}
	return rt
}
