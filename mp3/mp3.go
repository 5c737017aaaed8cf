// Package mp3 renders a runtime into an mp3 file using the lame encoder.
package mp3

import (
	"encoding/binary"
	"os"

	"github.com/viert/lame"

	"github.com/pipelined/modular"
)

// EventsFunc supplies the events for a block of an offline render. Nil means
// no events.
type EventsFunc[E any] func(block int) []E

// Render runs the graph for the given number of blocks with silent input and
// writes the output as a mono mp3 file with the given bit rate and encoding
// quality.
func Render[E any](path string, rt *modular.Runtime[E], sampleRate float64, blocks int, bitRate, quality int, events EventsFunc[E]) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	wr := lame.NewWriter(f)
	wr.Encoder.SetBitrate(bitRate)
	wr.Encoder.SetQuality(quality)
	wr.Encoder.SetNumChannels(1)
	wr.Encoder.SetInSamplerate(int(sampleRate))
	wr.Encoder.SetMode(lame.JOINT_STEREO)
	wr.Encoder.SetVBR(lame.VBR_RH)
	wr.Encoder.InitParams()

	in := make([]float64, modular.BlockSize)
	out := make([]float64, modular.BlockSize)
	pcm := make([]byte, modular.BlockSize*2)
	for block := 0; block < blocks; block++ {
		var evs []E
		if events != nil {
			evs = events(block)
		}
		rt.Tick(sampleRate, evs, in, out)
		for i := range out {
			binary.LittleEndian.PutUint16(pcm[2*i:], uint16(int16(out[i]*0x7FFF)))
		}
		if _, err := wr.Write(pcm); err != nil {
			f.Close()
			return err
		}
	}
	if err := wr.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
