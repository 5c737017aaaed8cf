// Package patch loads declarative modulation wiring from YAML. A patch
// names sources, targets and fields, the application resolves those names to
// its handles through the Connector it passes to Apply.
package patch

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Routing wires a named modulation source into a field of a named parameter
// set.
type Routing struct {
	Source string  `yaml:"source"`
	Target string  `yaml:"target"`
	Param  string  `yaml:"param"`
	Amount float64 `yaml:"amount"`
}

// Base overrides the base value of a field of a named parameter set.
type Base struct {
	Target string  `yaml:"target"`
	Param  string  `yaml:"param"`
	Value  float64 `yaml:"value"`
}

// Patch is the full declarative wiring of a graph.
type Patch struct {
	Routings []Routing `yaml:"routings"`
	Bases    []Base    `yaml:"bases"`
}

// Connector resolves patch names against a built graph. Implementations
// typically switch on the names and call into the runtime with the matching
// handles.
type Connector interface {
	Route(r Routing) error
	SetBase(b Base) error
}

// Parse decodes a patch and rejects unknown fields and entries with missing
// names.
func Parse(r io.Reader) (*Patch, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var p Patch
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return &Patch{}, nil
		}
		return nil, fmt.Errorf("patch: %w", err)
	}
	for i, r := range p.Routings {
		if r.Source == "" || r.Target == "" || r.Param == "" {
			return nil, fmt.Errorf("patch: routing %d: source, target and param are required", i)
		}
	}
	for i, b := range p.Bases {
		if b.Target == "" || b.Param == "" {
			return nil, fmt.Errorf("patch: base %d: target and param are required", i)
		}
	}
	return &p, nil
}

// Load reads a patch file.
func Load(path string) (*Patch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Apply hands every base override and routing to the connector, bases first
// so routings modulate the overridden values.
func (p *Patch) Apply(c Connector) error {
	for _, b := range p.Bases {
		if err := c.SetBase(b); err != nil {
			return err
		}
	}
	for _, r := range p.Routings {
		if err := c.Route(r); err != nil {
			return err
		}
	}
	return nil
}
