package synth

import (
	"math"

	"github.com/pipelined/modular"
	"github.com/pipelined/modular/params"
)

// OscParams are the modulated parameters of the oscillator. Pitch is a
// normalized exponential pitch, Level scales the output.
type OscParams struct {
	Level float64
	Pitch float64
}

// NewRuntime describes the oscillator fields to the modulation router.
func (OscParams) NewRuntime() modular.ParameterRuntime[Event] {
	return params.NewTable[OscParams, Event](OscParams{Level: 0.8, Pitch: 0.5},
		params.Field[OscParams]{
			Name: "level",
			Get:  func(p *OscParams) float64 { return p.Level },
			Set:  func(p *OscParams, v float64) { p.Level = v },
		},
		params.Field[OscParams]{
			Name: "pitch",
			Get:  func(p *OscParams) float64 { return p.Pitch },
			Set:  func(p *OscParams, v float64) { p.Pitch = v },
		},
	)
}

// GainParams is the modulated amount of the gain component.
type GainParams struct {
	Amount float64
}

// NewRuntime describes the gain field to the modulation router.
func (GainParams) NewRuntime() modular.ParameterRuntime[Event] {
	return params.NewTable[GainParams, Event](GainParams{Amount: 1},
		params.Field[GainParams]{
			Name: "amount",
			Get:  func(p *GainParams) float64 { return p.Amount },
			Set:  func(p *GainParams, v float64) { p.Amount = v },
		},
	)
}

// Osc is a sine generator. It ignores its input and writes a sine scaled by
// the resolved level, with the frequency taken from the resolved pitch at
// every sample.
type Osc struct {
	paramsHandle modular.ParamHandle[OscParams]
}

// Component returns the oscillator factory. The parameter set is registered
// during build, its handle is available through Params afterwards.
func (o *Osc) Component() modular.Factory[Event] {
	return func(b *modular.Builder[Event]) modular.ComponentFunc[Event] {
		o.paramsHandle = modular.UseParameters[OscParams](b)
		var phase float64
		return func(rt *modular.Runtime[Event], _, out []float64, sampleRate float64) {
			if sampleRate <= 0 {
				return
			}
			values := modular.Params(rt, o.paramsHandle)
			for i := range out {
				v := values.At(i)
				out[i] = v.Level * math.Sin(2*math.Pi*phase)
				phase += pitchFrequency(v.Pitch) / sampleRate
				if phase >= 1 {
					phase -= 1
				}
			}
		}
	}
}

// Params returns the handle registered by Component. Valid after build.
func (o *Osc) Params() modular.ParamHandle[OscParams] {
	return o.paramsHandle
}

// Gain scales the input by its resolved amount.
type Gain struct {
	paramsHandle modular.ParamHandle[GainParams]
}

// Component returns the gain factory.
func (g *Gain) Component() modular.Factory[Event] {
	return func(b *modular.Builder[Event]) modular.ComponentFunc[Event] {
		g.paramsHandle = modular.UseParameters[GainParams](b)
		return func(rt *modular.Runtime[Event], in, out []float64, _ float64) {
			values := modular.Params(rt, g.paramsHandle)
			for i := range out {
				out[i] = in[i] * values.At(i).Amount
			}
		}
	}
}

// Params returns the handle registered by Component. Valid after build.
func (g *Gain) Params() modular.ParamHandle[GainParams] {
	return g.paramsHandle
}

// Clip returns a soft clipping stage that keeps the signal inside unit
// amplitude, the usual tail of a parallel mix.
func Clip() modular.Factory[Event] {
	return func(*modular.Builder[Event]) modular.ComponentFunc[Event] {
		return func(_ *modular.Runtime[Event], in, out []float64, _ float64) {
			for i := range out {
				out[i] = math.Tanh(in[i])
			}
		}
	}
}

// PeakState holds the largest absolute sample a Meter has seen.
type PeakState struct {
	Max float64
}

// Meter is a pass-through that tracks the peak amplitude in runtime state,
// readable through State after processing.
type Meter struct {
	stateHandle modular.StateHandle[PeakState]
}

// Component returns the metering pass-through.
func (m *Meter) Component() modular.Factory[Event] {
	return func(b *modular.Builder[Event]) modular.ComponentFunc[Event] {
		m.stateHandle = modular.UseState[PeakState](b)
		return func(rt *modular.Runtime[Event], in, out []float64, _ float64) {
			state := modular.State(rt, m.stateHandle)
			for i := range out {
				out[i] = in[i]
				if a := math.Abs(in[i]); a > state.Max {
					state.Max = a
				}
			}
		}
	}
}

// State returns the handle registered by Component. Valid after build.
func (m *Meter) State() modular.StateHandle[PeakState] {
	return m.stateHandle
}
