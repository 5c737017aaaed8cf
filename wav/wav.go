// Package wav renders a runtime into a wav file, block by block.
package wav

import (
	"os"

	"github.com/go-audio/audio"
	wavenc "github.com/go-audio/wav"

	"github.com/pipelined/modular"
)

// EventsFunc supplies the events for a block of an offline render, standing
// in for the queue draining a live driver does. Nil means no events.
type EventsFunc[E any] func(block int) []E

// Render runs the graph for the given number of blocks with silent input and
// writes the output as a 16-bit mono wav file.
func Render[E any](path string, rt *modular.Runtime[E], sampleRate float64, blocks int, events EventsFunc[E]) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := wavenc.NewEncoder(f, int(sampleRate), 16, 1, 1)

	in := make([]float64, modular.BlockSize)
	out := make([]float64, modular.BlockSize)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  int(sampleRate),
		},
		SourceBitDepth: 16,
		Data:           make([]int, modular.BlockSize),
	}
	for block := 0; block < blocks; block++ {
		var evs []E
		if events != nil {
			evs = events(block)
		}
		rt.Tick(sampleRate, evs, in, out)
		for i := range out {
			buf.Data[i] = int(out[i] * 0x7FFF)
		}
		if err := enc.Write(buf); err != nil {
			f.Close()
			return err
		}
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
