package synth

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// 背景琶音使用的音阶（C 大调五声）
var backgroundNotes = []float64{261.63, 293.66, 329.63, 392.00, 440.00, 392.00, 329.63, 293.66}

const backgroundNoteLength = 250 * time.Millisecond

// ArpeggioGenerator 无限循环的背景琶音
// 每个音符带一个指数衰减包络，避免音符切换时的爆音
type ArpeggioGenerator struct {
	sr        beep.SampleRate
	pos       int
	noteLen   int
	amplitude float64
}

// NewArpeggioGenerator 创建背景琶音发生器
func NewArpeggioGenerator(sr beep.SampleRate, amplitude float64) *ArpeggioGenerator {
	return &ArpeggioGenerator{
		sr:        sr,
		noteLen:   sr.N(backgroundNoteLength),
		amplitude: amplitude,
	}
}

func (g *ArpeggioGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		note := (g.pos / g.noteLen) % len(backgroundNotes)
		inNote := g.pos % g.noteLen
		t := float64(inNote) / float64(g.sr)

		env := math.Exp(-t * 6)
		freq := backgroundNotes[note]
		sample := g.amplitude * env * (math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(2*math.Pi*freq*2*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ArpeggioGenerator) Err() error {
	return nil
}

// SpinWhir 旋转音效：一串逐渐升高的短音，总长 d
// 每段长 step，最后一段截断到 d
func SpinWhir(sr beep.SampleRate, d, step time.Duration, volume float64) (beep.Streamer, error) {
	if d <= 0 || step <= 0 {
		return nil, fmt.Errorf("spin whir: invalid duration %v/%v", d, step)
	}

	var parts []beep.Streamer
	freq := 220.0
	for remaining := d; remaining > 0; remaining -= step {
		seg := step
		if remaining < seg {
			seg = remaining
		}
		tone, err := generators.SineTone(sr, freq)
		if err != nil {
			return nil, fmt.Errorf("spin whir tone %.1fHz: %w", freq, err)
		}
		parts = append(parts, beep.Take(sr.N(seg), tone))
		freq *= 1.06
		if freq > 880 {
			freq = 220
		}
	}

	return withVolume(beep.Seq(parts...), volume), nil
}

// withVolume 按线性音量缩放；0 表示静音
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
