package synth

import (
	"math"

	"github.com/pipelined/modular"
)

// LFO is a unipolar sine oscillator used as a modulation source. Its values
// swing between 0 and 1 so they can be routed into normalized parameter
// fields directly. Phase is continuous across blocks.
type LFO struct {
	Freq  float64 // hertz
	phase float64
	table [modular.BlockSize]float64
}

// NewLFO returns an LFO running at 2 Hz.
func NewLFO() *LFO {
	return &LFO{Freq: 2}
}

// Update recomputes the value table for the upcoming block. Events are
// ignored, the LFO is free-running.
func (l *LFO) Update(sampleRate float64, _ []Event) {
	if sampleRate <= 0 {
		return
	}
	step := l.Freq / sampleRate
	for i := range l.table {
		l.table[i] = 0.5 + 0.5*math.Sin(2*math.Pi*l.phase)
		l.phase += step
		if l.phase >= 1 {
			l.phase -= 1
		}
	}
}

// Value reads the table at a sample offset.
func (l *LFO) Value(i int) float64 {
	return l.table[i%modular.BlockSize]
}
