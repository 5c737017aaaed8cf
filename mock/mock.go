// Package mock provides components and modulators for testing graphs.
package mock

import (
	"math"

	"github.com/pipelined/modular"
	"github.com/pipelined/modular/params"
)

// Event is the event type used across the test suites.
type Event struct {
	Kind  string
	Value float64
}

// Constant is a modulator that reports the same level at every sample
// offset. It records every update so tests can assert what the runtime fed
// to it.
type Constant struct {
	Level      float64
	Updates    int
	SampleRate float64
	Events     []Event
}

// Update records the call and keeps a copy of the drained events.
func (c *Constant) Update(sampleRate float64, events []Event) {
	c.Updates++
	c.SampleRate = sampleRate
	c.Events = append(c.Events[:0], events...)
}

// Value returns the configured level regardless of offset.
func (c *Constant) Value(int) float64 {
	return c.Level
}

// Ramp is a modulator whose value grows linearly with the sample offset,
// from 0 at offset 0 towards 1 at the end of the block. Useful to observe
// per-offset resolution and index wrapping.
type Ramp struct {
	Updates int
}

func (r *Ramp) Update(float64, []Event) {
	r.Updates++
}

func (r *Ramp) Value(i int) float64 {
	return float64(i%modular.BlockSize) / modular.BlockSize
}

// Pair is a two-field parameter set for routing tests.
type Pair struct {
	A float64
	B float64
}

// NewRuntime describes both fields to the modulation router.
func (Pair) NewRuntime() modular.ParameterRuntime[Event] {
	return params.NewTable[Pair, Event](Pair{A: 0.25, B: 0.5},
		params.Field[Pair]{
			Name: "a",
			Get:  func(p *Pair) float64 { return p.A },
			Set:  func(p *Pair, v float64) { p.A = v },
		},
		params.Field[Pair]{
			Name: "b",
			Get:  func(p *Pair) float64 { return p.B },
			Set:  func(p *Pair, v float64) { p.B = v },
		},
	)
}

// Pass returns a component that copies input to output unchanged.
func Pass() modular.Factory[Event] {
	return func(*modular.Builder[Event]) modular.ComponentFunc[Event] {
		return func(_ *modular.Runtime[Event], in, out []float64, _ float64) {
			copy(out, in)
		}
	}
}

// Gain returns a component that multiplies every sample by k.
func Gain(k float64) modular.Factory[Event] {
	return func(*modular.Builder[Event]) modular.ComponentFunc[Event] {
		return func(_ *modular.Runtime[Event], in, out []float64, _ float64) {
			for i := range out {
				out[i] = in[i] * k
			}
		}
	}
}

// Fill returns a component that ignores its input and writes v into every
// output sample.
func Fill(v float64) modular.Factory[Event] {
	return func(*modular.Builder[Event]) modular.ComponentFunc[Event] {
		return func(_ *modular.Runtime[Event], _, out []float64, _ float64) {
			for i := range out {
				out[i] = v
			}
		}
	}
}

// Counter is a pass-through component that counts invocations and samples.
type Counter struct {
	Ticks   int
	Samples int
	Peak    float64
}

// Component returns the counting pass-through.
func (c *Counter) Component() modular.Factory[Event] {
	return func(*modular.Builder[Event]) modular.ComponentFunc[Event] {
		return func(_ *modular.Runtime[Event], in, out []float64, _ float64) {
			c.Ticks++
			c.Samples += len(in)
			for i := range out {
				out[i] = in[i]
				if a := math.Abs(in[i]); a > c.Peak {
					c.Peak = a
				}
			}
		}
	}
}
