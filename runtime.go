package modular

// Runtime is the execution context of a built graph. It exclusively owns the
// slot arrays and the root component. All methods must be called from the
// single goroutine that drives the graph, there is no locking inside.
type Runtime[E any] struct {
	id      string
	states  []any
	params  []ParameterRuntime[E]
	sources []Modulator[E]
	root    ComponentFunc[E]
}

// ID returns the unique id of this runtime instance. It is meant for log
// fields, two runtimes built from the same code get distinct ids.
func (rt *Runtime[E]) ID() string {
	return rt.id
}

// Tick processes one block. It feeds the events drained since the previous
// tick to every registered modulator, then invokes the root component with
// the input and output buffers. The caller owns the buffers and chooses
// their length, resolved parameter access inside the graph is defined over
// BlockSize offsets.
func (rt *Runtime[E]) Tick(sampleRate float64, events []E, in, out []float64) {
	for _, source := range rt.sources {
		source.Update(sampleRate, events)
	}
	rt.root(rt, in, out, sampleRate)
}

// State resolves a state handle to a pointer into the slot storage. The
// pointer must not be retained across ticks.
func State[T any, E any](rt *Runtime[E], h StateHandle[T]) *T {
	return rt.states[h.slot].(*T)
}

// Source resolves a modulator handle to the registered instance.
func Source[M Modulator[E], E any](rt *Runtime[E], h ModulatorHandle[M]) M {
	return rt.sources[h.slot].(M)
}

// Params recomputes the resolved block for the parameter set from the
// current modulator state and returns a read accessor over it. Every call
// recomputes, callers that need a stable snapshot within one tick must keep
// the accessor instead of fetching it again.
func Params[P Parameters[E], E any](rt *Runtime[E], h ParamHandle[P]) Values[P] {
	target := rt.params[h.slot]
	target.Update(rt.sources)
	return target.(Values[P])
}

// Route installs a routing from a modulator to the named field of the target
// parameter set, replacing any previous routing of that field. Unknown field
// names and targets without a registered parameter set are ignored.
func Route[M Modulator[E], P Parameters[E], E any](rt *Runtime[E], source ModulatorHandle[M], target ParamHandle[P], field string, amount float64) {
	if target.slot < 0 || target.slot >= len(rt.params) {
		return
	}
	rt.params[target.slot].RouteParameter(field, source.slot, amount)
}
