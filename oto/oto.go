// Package oto plays a runtime through the oto v3 context. Unlike the
// portaudio player, oto pulls: the player reads encoded samples from an
// io.Reader, so the driver renders blocks on demand inside Read.
package oto

import (
	"encoding/binary"
	"math"

	"github.com/ebitengine/oto/v3"

	"github.com/pipelined/modular"
	"github.com/pipelined/modular/event"
)

// Player drives a runtime from an oto playback context.
type Player[E any] struct {
	ctx    *oto.Context
	player *oto.Player
}

// NewPlayer creates the oto context and a player fed by the runtime. The
// context setup blocks until the audio backend is ready.
func NewPlayer[E any](rt *modular.Runtime[E], queue *event.Queue[E], sampleRate int) (*Player[E], error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	r := &blockReader[E]{
		rt:         rt,
		queue:      queue,
		sampleRate: float64(sampleRate),
		in:         make([]float64, modular.BlockSize),
		out:        make([]float64, modular.BlockSize),
	}
	return &Player[E]{
		ctx:    ctx,
		player: ctx.NewPlayer(r),
	}, nil
}

// Play starts playback. Oto reads from the runtime on its own goroutine.
func (p *Player[E]) Play() {
	p.player.Play()
}

// Close stops playback and releases the player.
func (p *Player[E]) Close() error {
	return p.player.Close()
}

// blockReader renders one block per refill and hands it out as little-endian
// float32 frames. Oto is the single consumer, so draining the queue here
// keeps the one-drain-per-tick discipline.
type blockReader[E any] struct {
	rt         *modular.Runtime[E]
	queue      *event.Queue[E]
	sampleRate float64
	in, out    []float64
	block      [modular.BlockSize * 4]byte
	rest       []byte
}

func (r *blockReader[E]) Read(p []byte) (int, error) {
	if len(r.rest) == 0 {
		r.rt.Tick(r.sampleRate, r.queue.Drain(), r.in, r.out)
		for i := range r.out {
			binary.LittleEndian.PutUint32(r.block[4*i:], math.Float32bits(float32(r.out[i])))
		}
		r.rest = r.block[:]
	}
	n := copy(p, r.rest)
	r.rest = r.rest[n:]
	return n, nil
}
