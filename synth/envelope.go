package synth

import "github.com/pipelined/modular"

// ADEnvelope is an attack/decay envelope triggered by gate events. A gate-on
// event restarts the attack ramp, a gate-off event forces the decay. The
// envelope output spans [0, 1].
type ADEnvelope struct {
	Attack float64 // seconds
	Decay  float64 // seconds

	level  float64
	rising bool
	active bool
	table  [modular.BlockSize]float64
}

// NewADEnvelope returns an envelope with a 10 ms attack and 200 ms decay.
func NewADEnvelope() *ADEnvelope {
	return &ADEnvelope{Attack: 0.01, Decay: 0.2}
}

// Update applies the block's events and recomputes the value table. Events
// take effect at the start of the block.
func (e *ADEnvelope) Update(sampleRate float64, events []Event) {
	for _, ev := range events {
		if ev.Gate {
			e.active = true
			e.rising = true
		} else {
			e.rising = false
		}
	}
	if sampleRate <= 0 {
		return
	}
	up := rate(e.Attack, sampleRate)
	down := rate(e.Decay, sampleRate)
	for i := range e.table {
		switch {
		case !e.active:
			e.level = 0
		case e.rising:
			e.level += up
			if e.level >= 1 {
				e.level = 1
				e.rising = false
			}
		default:
			e.level -= down
			if e.level <= 0 {
				e.level = 0
				e.active = false
			}
		}
		e.table[i] = e.level
	}
}

// Value reads the table at a sample offset.
func (e *ADEnvelope) Value(i int) float64 {
	return e.table[i%modular.BlockSize]
}

// rate converts a segment duration into a per-sample increment.
func rate(seconds, sampleRate float64) float64 {
	samples := seconds * sampleRate
	if samples < 1 {
		return 1
	}
	return 1 / samples
}
