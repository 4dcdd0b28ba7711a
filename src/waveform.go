package bell103

import (
	"time"
)

// Waveform is mono audio, amplitudes in [-1, 1], tagged with its sample rate.
type Waveform struct {
	SampleRate int
	Samples    []float64
}

func (w Waveform) Len() int {
	return len(w.Samples)
}

func (w Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}

	return time.Duration(len(w.Samples)) * time.Second / time.Duration(w.SampleRate)
}

// Slice returns samples [from, to) sharing the underlying array.
// Out of range bounds are clamped.
func (w Waveform) Slice(from int, to int) Waveform {
	from = min(max(from, 0), len(w.Samples))
	to = min(max(to, from), len(w.Samples))

	return Waveform{SampleRate: w.SampleRate, Samples: w.Samples[from:to]}
}

// PadFront returns a copy with n samples of silence in front.
func (w Waveform) PadFront(n int) Waveform {
	var samples = make([]float64, max(n, 0), max(n, 0)+len(w.Samples))
	samples = append(samples, w.Samples...)

	return Waveform{SampleRate: w.SampleRate, Samples: samples}
}
