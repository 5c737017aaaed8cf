// Command modular renders or plays a small modulated synth graph: a sine
// oscillator with an LFO routed into its pitch, an envelope-driven gain, a
// soft clipper and a peak meter.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pipelined/modular"
	"github.com/pipelined/modular/event"
	"github.com/pipelined/modular/log"
	"github.com/pipelined/modular/mp3"
	otodrv "github.com/pipelined/modular/oto"
	"github.com/pipelined/modular/patch"
	"github.com/pipelined/modular/portaudio"
	"github.com/pipelined/modular/synth"
	"github.com/pipelined/modular/wav"
)

func main() {
	var (
		out       = flag.String("o", "out.wav", "output file, .wav or .mp3")
		duration  = flag.Duration("duration", 2*time.Second, "render or playback duration")
		rate      = flag.Float64("rate", 44100, "sample rate")
		play      = flag.Bool("play", false, "play through the audio device instead of rendering")
		driver    = flag.String("driver", "portaudio", "playback driver, portaudio or oto")
		patchFile = flag.String("patch", "", "yaml patch file with modulation wiring")
	)
	flag.Parse()
	logger := log.GetLogger()

	queue, b := modular.New[synth.Event]()

	var (
		osc   synth.Osc
		gain  synth.Gain
		meter synth.Meter
		lfo   modular.ModulatorHandle[*synth.LFO]
		env   modular.ModulatorHandle[*synth.ADEnvelope]
	)
	rt := b.Build(func(b *modular.Builder[synth.Event]) modular.ComponentFunc[synth.Event] {
		lfo = modular.UseModulator(b, synth.NewLFO)
		env = modular.UseModulator(b, synth.NewADEnvelope)
		return modular.Serial(
			osc.Component(),
			gain.Component(),
			synth.Clip(),
			meter.Component(),
		)(b)
	})

	if *patchFile != "" {
		p, err := patch.Load(*patchFile)
		if err != nil {
			logger.Info(err)
			os.Exit(1)
		}
		c := &connector{rt: rt, lfo: lfo, env: env, osc: &osc, gain: &gain}
		if err := p.Apply(c); err != nil {
			logger.Info(err)
			os.Exit(1)
		}
	} else {
		modular.Route(rt, lfo, osc.Params(), "pitch", 0.05)
		modular.Route(rt, env, gain.Params(), "amount", 1)
	}

	if *play {
		if err := playback(rt, queue, *driver, *rate, *duration); err != nil {
			logger.Info(err)
			os.Exit(1)
		}
		return
	}

	blocks := int(duration.Seconds() * *rate / modular.BlockSize)
	schedule := func(block int) []synth.Event {
		switch block {
		case 0:
			return []synth.Event{{Gate: true, Velocity: 1}}
		case blocks / 2:
			return []synth.Event{{Gate: false}}
		}
		return nil
	}

	var err error
	if strings.HasSuffix(*out, ".mp3") {
		err = mp3.Render(*out, rt, *rate, blocks, 192, 2, schedule)
	} else {
		err = wav.Render(*out, rt, *rate, blocks, schedule)
	}
	if err != nil {
		logger.Info("render: ", err)
		os.Exit(1)
	}
	peak := modular.State(rt, meter.State())
	fmt.Printf("rendered %v to %s, peak %.3f\n", *duration, *out, peak.Max)
}

func playback(rt *modular.Runtime[synth.Event], queue *event.Queue[synth.Event], driver string, rate float64, duration time.Duration) error {
	var stop func() error
	switch driver {
	case "portaudio":
		player := portaudio.NewPlayer(rt, queue, rate)
		if err := player.Start(); err != nil {
			return err
		}
		stop = player.Close
	case "oto":
		player, err := otodrv.NewPlayer(rt, queue, int(rate))
		if err != nil {
			return err
		}
		player.Play()
		stop = player.Close
	default:
		return fmt.Errorf("unknown driver %q", driver)
	}
	queue.Push(synth.Event{Gate: true, Velocity: 1})
	time.Sleep(duration / 2)
	queue.Push(synth.Event{Gate: false})
	time.Sleep(duration / 2)
	return stop()
}

// connector resolves patch names against the demo graph.
type connector struct {
	rt   *modular.Runtime[synth.Event]
	lfo  modular.ModulatorHandle[*synth.LFO]
	env  modular.ModulatorHandle[*synth.ADEnvelope]
	osc  *synth.Osc
	gain *synth.Gain
}

func (c *connector) Route(r patch.Routing) error {
	switch {
	case r.Source == "lfo" && r.Target == "osc":
		modular.Route(c.rt, c.lfo, c.osc.Params(), r.Param, r.Amount)
	case r.Source == "lfo" && r.Target == "gain":
		modular.Route(c.rt, c.lfo, c.gain.Params(), r.Param, r.Amount)
	case r.Source == "env" && r.Target == "osc":
		modular.Route(c.rt, c.env, c.osc.Params(), r.Param, r.Amount)
	case r.Source == "env" && r.Target == "gain":
		modular.Route(c.rt, c.env, c.gain.Params(), r.Param, r.Amount)
	default:
		return fmt.Errorf("unknown routing %s -> %s", r.Source, r.Target)
	}
	return nil
}

func (c *connector) SetBase(b patch.Base) error {
	var values any
	switch b.Target {
	case "osc":
		values = modular.Params(c.rt, c.osc.Params())
	case "gain":
		values = modular.Params(c.rt, c.gain.Params())
	default:
		return fmt.Errorf("unknown target %q", b.Target)
	}
	if s, ok := values.(interface{ SetBase(string, float64) }); ok {
		s.SetBase(b.Param, b.Value)
	}
	return nil
}
