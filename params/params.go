// Package params implements the modulation router behind a parameter set.
//
// A parameter set is a plain struct of float fields. The application
// describes its fields once, at construction time, with Field descriptors,
// and Table does the rest: it keeps at most one routing per field and
// recomputes a full block of resolved snapshots on every update. This is the
// construction-time registry that stands in for generated per-type routing
// code: resolution is by field name, so graph wiring needs no compile-time
// coupling between modulator and parameter types.
package params

import "github.com/pipelined/modular"

// Field describes one float field of the parameter struct P. Get and Set
// must address the same field.
type Field[P any] struct {
	Name string
	Get  func(p *P) float64
	Set  func(p *P, v float64)
}

// routing binds a modulator slot to a field with a scalar amount.
type routing struct {
	source int
	amount float64
	active bool
}

// Table resolves a parameter set of type P against the modulator slots of a
// runtime with event type E. It implements modular.ParameterRuntime and
// modular.Values.
type Table[P any, E any] struct {
	base     P
	fields   []Field[P]
	index    map[string]int
	routings []routing
	resolved [modular.BlockSize]P
}

// NewTable returns a table with the given base values and field descriptors.
// Duplicate field names are a defect in the descriptor list and panic.
func NewTable[P any, E any](base P, fields ...Field[P]) *Table[P, E] {
	t := &Table[P, E]{
		base:     base,
		fields:   fields,
		index:    make(map[string]int, len(fields)),
		routings: make([]routing, len(fields)),
	}
	for i, f := range fields {
		if _, ok := t.index[f.Name]; ok {
			panic("params: duplicate field " + f.Name)
		}
		t.index[f.Name] = i
	}
	for i := range t.resolved {
		t.resolved[i] = base
	}
	return t
}

// Update recomputes the resolved block. For every sample offset and every
// described field the resolved value is base plus the routed modulator value
// scaled by the routing amount, clamped into [0, 1]. Fields without a
// routing contribute zero modulation but are still clamped.
func (t *Table[P, E]) Update(sources []modular.Modulator[E]) {
	for i := 0; i < modular.BlockSize; i++ {
		snapshot := t.base
		for f := range t.fields {
			v := t.fields[f].Get(&t.base)
			if r := t.routings[f]; r.active {
				v += sources[r.source].Value(i) * r.amount
			}
			t.fields[f].Set(&snapshot, clamp(v))
		}
		t.resolved[i] = snapshot
	}
}

// RouteParameter installs a routing for the named field, replacing any
// previous one. Unknown names are ignored.
func (t *Table[P, E]) RouteParameter(name string, source int, amount float64) {
	f, ok := t.index[name]
	if !ok {
		return
	}
	t.routings[f] = routing{source: source, amount: amount, active: true}
}

// At returns the resolved snapshot at a sample offset, wrapping modulo the
// block length.
func (t *Table[P, E]) At(i int) P {
	return t.resolved[i%modular.BlockSize]
}

// Base returns the current base values.
func (t *Table[P, E]) Base() P {
	return t.base
}

// SetBase replaces the base value of the named field. Unknown names are
// ignored, same as routing.
func (t *Table[P, E]) SetBase(name string, v float64) {
	f, ok := t.index[name]
	if !ok {
		return
	}
	t.fields[f].Set(&t.base, v)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
