package modular

import "github.com/pipelined/modular/event"

// BlockSize is the number of samples processed per tick. Resolved parameter
// values are defined over exactly this many sample offsets and wrap modulo it.
const BlockSize = 256

type (
	// ComponentFunc is a stateful processing unit. It reads a block of input
	// samples and writes a block of output samples in place. Components are
	// created once during graph construction and live for the lifetime of
	// the runtime.
	ComponentFunc[E any] func(rt *Runtime[E], in, out []float64, sampleRate float64)

	// Factory allocates a component. It may register state, parameters and
	// modulators on the builder while assembling nested components.
	Factory[E any] func(b *Builder[E]) ComponentFunc[E]

	// Modulator is a source of time-varying values. Update recomputes a
	// block's worth of values from scratch for the given sample rate and
	// the events accumulated since the previous tick. Value reads the value
	// at a sample offset within the current block.
	Modulator[E any] interface {
		Update(sampleRate float64, events []E)
		Value(i int) float64
	}

	// ParameterRuntime resolves a registered parameter set against the
	// modulator slots. Update recomputes the full resolved block from the
	// current modulator state. RouteParameter installs a routing for the
	// named field, unknown names are ignored.
	ParameterRuntime[E any] interface {
		Update(sources []Modulator[E])
		RouteParameter(name string, source int, amount float64)
	}

	// Parameters is implemented by parameter set types. NewRuntime must be
	// usable on the zero value, it returns the runtime that resolves the
	// set's fields each block.
	Parameters[E any] interface {
		NewRuntime() ParameterRuntime[E]
	}

	// Values is a read-only view over a resolved parameter block. At returns
	// the snapshot for a sample offset and wraps modulo BlockSize.
	Values[P any] interface {
		At(i int) P
	}
)

// New returns an event queue and a builder bound to the same event type.
// The queue is handed out to producer goroutines, the builder is consumed
// by Build.
func New[E any]() (*event.Queue[E], *Builder[E]) {
	return event.NewQueue[E](), newBuilder[E]()
}
