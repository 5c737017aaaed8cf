package patch_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipelined/modular/patch"
)

const valid = `
routings:
  - source: lfo
    target: osc
    param: pitch
    amount: 0.3
  - source: env
    target: gain
    param: amount
    amount: 1
bases:
  - target: gain
    param: amount
    value: 0.5
`

type recorder struct {
	calls []string
}

func (r *recorder) Route(routing patch.Routing) error {
	r.calls = append(r.calls, "route "+routing.Source+"->"+routing.Target+"."+routing.Param)
	return nil
}

func (r *recorder) SetBase(base patch.Base) error {
	r.calls = append(r.calls, "base "+base.Target+"."+base.Param)
	return nil
}

func TestParse(t *testing.T) {
	p, err := patch.Parse(strings.NewReader(valid))
	require.NoError(t, err)

	require.Len(t, p.Routings, 2)
	assert.Equal(t, patch.Routing{Source: "lfo", Target: "osc", Param: "pitch", Amount: 0.3}, p.Routings[0])
	require.Len(t, p.Bases, 1)
	assert.Equal(t, patch.Base{Target: "gain", Param: "amount", Value: 0.5}, p.Bases[0])
}

func TestParseEmpty(t *testing.T) {
	p, err := patch.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, p.Routings)
	assert.Empty(t, p.Bases)
}

func TestParseRejectsMissingNames(t *testing.T) {
	_, err := patch.Parse(strings.NewReader(`
routings:
  - source: lfo
    amount: 0.3
`))
	assert.Error(t, err)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := patch.Parse(strings.NewReader(`
routing:
  - source: lfo
`))
	assert.Error(t, err)
}

func TestApplyOrder(t *testing.T) {
	p, err := patch.Parse(strings.NewReader(valid))
	require.NoError(t, err)

	r := &recorder{}
	require.NoError(t, p.Apply(r))

	// bases first, then routings, both in declaration order
	assert.Equal(t, []string{
		"base gain.amount",
		"route lfo->osc.pitch",
		"route env->gain.amount",
	}, r.calls)
}
