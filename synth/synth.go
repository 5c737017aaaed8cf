// Package synth provides modulators and components for building small
// synthesizer graphs: an LFO and an attack/decay envelope as modulation
// sources, and oscillator, gain, clip and meter components.
package synth

import "math"

// Event is the trigger carried through the event queue. Gate true starts a
// note, Gate false releases it.
type Event struct {
	Gate     bool
	Velocity float64
}

// pitchFrequency maps a normalized pitch in [0, 1] onto an exponential
// frequency range of seven octaves above A0.
func pitchFrequency(pitch float64) float64 {
	return 27.5 * math.Pow(2, pitch*7)
}
