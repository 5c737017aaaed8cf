package wav_test

import (
	"os"
	"path/filepath"
	"testing"

	wavdec "github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipelined/modular"
	"github.com/pipelined/modular/mock"
	"github.com/pipelined/modular/wav"
)

func TestRender(t *testing.T) {
	_, b := modular.New[mock.Event]()
	rt := b.Build(mock.Fill(0.5))

	path := filepath.Join(t.TempDir(), "render.wav")
	const blocks = 4
	err := wav.Render(path, rt, 44100, blocks, nil)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wavdec.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, 1, buf.Format.NumChannels)
	assert.Equal(t, 44100, buf.Format.SampleRate)
	require.Len(t, buf.Data, blocks*modular.BlockSize)
	half := 0.5
	for _, s := range buf.Data {
		assert.Equal(t, int(half*0x7FFF), s)
	}
}

func TestRenderSchedulesEvents(t *testing.T) {
	_, b := modular.New[mock.Event]()
	var h modular.ModulatorHandle[*mock.Constant]
	rt := b.Build(func(b *modular.Builder[mock.Event]) modular.ComponentFunc[mock.Event] {
		h = modular.UseModulator(b, func() *mock.Constant { return &mock.Constant{} })
		return mock.Fill(0)(b)
	})

	path := filepath.Join(t.TempDir(), "render.wav")
	seen := map[int]int{}
	err := wav.Render(path, rt, 44100, 3, func(block int) []mock.Event {
		seen[block]++
		if block == 1 {
			return []mock.Event{{Kind: "gate"}}
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, map[int]int{0: 1, 1: 1, 2: 1}, seen)
	// the last tick carried no events
	assert.Equal(t, 3, modular.Source(rt, h).Updates)
	assert.Empty(t, modular.Source(rt, h).Events)
}
