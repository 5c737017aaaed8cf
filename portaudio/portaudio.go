// Package portaudio plays a runtime through the default output device. The
// player owns the feeding goroutine: it drains the event queue, ticks the
// runtime and writes the block to the stream, one block at a time.
package portaudio

import (
	"github.com/gordonklaus/portaudio"
	"github.com/sirupsen/logrus"

	"github.com/pipelined/modular"
	"github.com/pipelined/modular/event"
	"github.com/pipelined/modular/log"
)

// Player drives a runtime from a portaudio output stream.
type Player[E any] struct {
	rt         *modular.Runtime[E]
	queue      *event.Queue[E]
	sampleRate float64

	stream  *portaudio.Stream
	buf     []float32
	in, out []float64

	done    chan struct{}
	stopped chan struct{}
	logger  *logrus.Logger
}

// NewPlayer returns a player for the runtime. Events pushed to the queue are
// drained once per block.
func NewPlayer[E any](rt *modular.Runtime[E], queue *event.Queue[E], sampleRate float64) *Player[E] {
	return &Player[E]{
		rt:         rt,
		queue:      queue,
		sampleRate: sampleRate,
		in:         make([]float64, modular.BlockSize),
		out:        make([]float64, modular.BlockSize),
		buf:        make([]float32, modular.BlockSize),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
		logger:     log.GetLogger(),
	}
}

// Start initializes portaudio, opens the default mono output stream and
// starts the feeding goroutine.
func (p *Player[E]) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 1, p.sampleRate, modular.BlockSize, &p.buf)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}
	p.stream = stream
	p.logger.WithField("runtime", p.rt.ID()).Debug("portaudio stream started")
	go p.loop()
	return nil
}

func (p *Player[E]) loop() {
	defer close(p.stopped)
	for {
		select {
		case <-p.done:
			return
		default:
		}
		p.rt.Tick(p.sampleRate, p.queue.Drain(), p.in, p.out)
		for i := range p.out {
			p.buf[i] = float32(p.out[i])
		}
		if err := p.stream.Write(); err != nil {
			// under- and overflows are transient, keep feeding
			p.logger.WithField("runtime", p.rt.ID()).Debug("portaudio write: ", err)
		}
	}
}

// Close stops the feeding goroutine and tears the stream down.
func (p *Player[E]) Close() error {
	close(p.done)
	<-p.stopped
	if err := p.stream.Stop(); err != nil {
		return err
	}
	if err := p.stream.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}
