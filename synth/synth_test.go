package synth_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipelined/modular"
	"github.com/pipelined/modular/synth"
)

const sampleRate = 44100.0

func TestLFORange(t *testing.T) {
	lfo := synth.NewLFO()
	lfo.Freq = 100

	for block := 0; block < 10; block++ {
		lfo.Update(sampleRate, nil)
		for i := 0; i < modular.BlockSize; i++ {
			v := lfo.Value(i)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestLFOPhaseContinuity(t *testing.T) {
	lfo := synth.NewLFO()
	lfo.Freq = 10

	lfo.Update(sampleRate, nil)
	last := lfo.Value(modular.BlockSize - 1)
	lfo.Update(sampleRate, nil)
	first := lfo.Value(0)

	// one sample step at 10 Hz moves the unipolar sine by far less than this
	assert.InDelta(t, last, first, 0.01)
}

func TestLFOStartsAtMidpoint(t *testing.T) {
	lfo := synth.NewLFO()
	lfo.Update(sampleRate, nil)
	assert.InDelta(t, 0.5, lfo.Value(0), 1e-12)
}

func TestEnvelopeIdleIsSilent(t *testing.T) {
	env := synth.NewADEnvelope()
	env.Update(sampleRate, nil)
	for i := 0; i < modular.BlockSize; i++ {
		assert.Zero(t, env.Value(i))
	}
}

func TestEnvelopeGateTriggersAttack(t *testing.T) {
	env := synth.NewADEnvelope()
	env.Update(sampleRate, []synth.Event{{Gate: true, Velocity: 1}})

	assert.Greater(t, env.Value(0), 0.0)
	assert.Greater(t, env.Value(100), env.Value(0))
}

func TestEnvelopeFullCycle(t *testing.T) {
	env := synth.NewADEnvelope()
	env.Attack = 0.0005
	env.Decay = 0.0005
	env.Update(sampleRate, []synth.Event{{Gate: true, Velocity: 1}})

	var peak float64
	for i := 0; i < modular.BlockSize; i++ {
		if v := env.Value(i); v > peak {
			peak = v
		}
	}
	assert.InDelta(t, 1.0, peak, 1e-9)
	// both segments fit into one block, the tail is silent again
	assert.Zero(t, env.Value(modular.BlockSize-1))
}

func TestEnvelopeGateOffForcesDecay(t *testing.T) {
	env := synth.NewADEnvelope()
	env.Attack = 10 // would rise for ages
	env.Update(sampleRate, []synth.Event{{Gate: true, Velocity: 1}})
	rising := env.Value(modular.BlockSize - 1)
	require.Greater(t, rising, 0.0)

	env.Update(sampleRate, []synth.Event{{Gate: false}})
	assert.Less(t, env.Value(modular.BlockSize-1), rising)
}

func TestOscillatorRendersSine(t *testing.T) {
	_, b := modular.New[synth.Event]()
	var osc synth.Osc
	rt := b.Build(osc.Component())

	out := make([]float64, modular.BlockSize)
	rt.Tick(sampleRate, nil, nil, out)

	var energy float64
	for _, s := range out {
		energy += s * s
		assert.LessOrEqual(t, math.Abs(s), 0.8+1e-9) // default level
	}
	assert.Greater(t, energy, 0.0)
}

func TestGainFollowsEnvelope(t *testing.T) {
	_, b := modular.New[synth.Event]()
	var (
		gain synth.Gain
		env  modular.ModulatorHandle[*synth.ADEnvelope]
	)
	rt := b.Build(func(b *modular.Builder[synth.Event]) modular.ComponentFunc[synth.Event] {
		env = modular.UseModulator(b, synth.NewADEnvelope)
		return gain.Component()(b)
	})
	// fully modulated gain: silence without gate, signal once gated
	table, ok := modular.Params(rt, gain.Params()).(interface{ SetBase(string, float64) })
	require.True(t, ok)
	table.SetBase("amount", 0)
	modular.Route(rt, env, gain.Params(), "amount", 1)

	in := make([]float64, modular.BlockSize)
	for i := range in {
		in[i] = 1
	}
	out := make([]float64, modular.BlockSize)

	rt.Tick(sampleRate, nil, in, out)
	assert.Zero(t, out[0])

	rt.Tick(sampleRate, []synth.Event{{Gate: true, Velocity: 1}}, in, out)
	var energy float64
	for _, s := range out {
		energy += s * s
	}
	assert.Greater(t, energy, 0.0)
}

func TestMeterTracksPeak(t *testing.T) {
	_, b := modular.New[synth.Event]()
	var (
		osc   synth.Osc
		meter synth.Meter
	)
	rt := b.Build(modular.Serial(osc.Component(), meter.Component()))

	out := make([]float64, modular.BlockSize)
	for i := 0; i < 8; i++ {
		rt.Tick(sampleRate, nil, nil, out)
	}

	peak := modular.State(rt, meter.State())
	assert.Greater(t, peak.Max, 0.5)
	assert.LessOrEqual(t, peak.Max, 0.8+1e-9)
}

func TestClipStaysInsideUnit(t *testing.T) {
	_, b := modular.New[synth.Event]()
	rt := b.Build(modular.Serial(synth.Clip()))

	in := []float64{-10, -1, 0, 1, 10}
	out := make([]float64, len(in))
	rt.Tick(sampleRate, nil, in, out)
	for _, s := range out {
		assert.LessOrEqual(t, math.Abs(s), 1.0)
	}
	assert.Zero(t, out[2])
}
