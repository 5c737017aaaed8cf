/*
Package modular allows to build and execute modulated DSP graphs.

Concept

A graph is built once and then executed block by block. Construction
registers everything the graph will ever need: persistent state objects,
parameter sets and modulation sources. Execution is a single synchronous
tick per block of 256 samples and allocates nothing.

The building blocks are component functions. A component reads a block of
input samples and writes a block of output samples, it may keep state in
closures or in registered state slots, and it may read resolved parameter
values. Components are produced by factories:

    Factory[E] func(b *Builder[E]) ComponentFunc[E]

A factory registers slots on the builder while it assembles the component,
so handing the same factory to two builders yields two independent graphs.

Composition

Two combinators compose factories into trees. Serial chains components so
that the output of one stage is the input of the next:

    modular.Serial(osc.Component(), gain.Component(), synth.Clip())

Parallel mixes weighted branches into one output:

    modular.Parallel(
        modular.Branch[E]{Weight: 0.5, Factory: dry},
        modular.Branch[E]{Weight: 0.7, Factory: wet},
    )

Combinators are factories themselves and nest arbitrarily, complex graphs
are built purely through composition.

Modulation

Modulators are sources of per-sample values driven by events, an LFO or an
envelope for example. Routing binds a modulator into a named field of a
parameter set with a scalar amount:

    modular.Route(rt, lfo, osc.Params(), "pitch", 0.3)

Each tick the resolved value of every routed field is recomputed for the
whole block as base plus modulator value times amount, clamped into [0, 1].

Execution

Build returns a runtime owned by exactly one goroutine, typically driven by
an audio device callback. The only concurrent entry point is the event
queue: any goroutine may push events, the driving goroutine drains them
before every tick:

    rt.Tick(sampleRate, queue.Drain(), in, out)

The portaudio and oto packages provide drivers that own this loop, the wav
and mp3 packages render a graph offline.
*/
package modular
