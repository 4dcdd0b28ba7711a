package bell103

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// AddNoise returns a copy of w with Gaussian noise of standard deviation
// level added, clipped to -1..+1.  The same seed gives the same noise.
func AddNoise(w Waveform, level float64, seed uint64) Waveform {
	return addNoiseFrom(w, 0, level, seed)
}

// AddSignalNoise is AddNoise starting at the first sample above
// SIGNAL_THRESHOLD.  The leading silence stays silent so the demodulator
// still finds the start of the tones.
func AddSignalNoise(w Waveform, level float64, seed uint64) Waveform {
	var start, found = FindSignalStart(w.Samples, 0)
	if !found {
		start = len(w.Samples)
	}

	return addNoiseFrom(w, start, level, seed)
}

func addNoiseFrom(w Waveform, from int, level float64, seed uint64) Waveform {
	var out = Waveform{SampleRate: w.SampleRate, Samples: make([]float64, len(w.Samples))}

	copy(out.Samples, w.Samples)

	if level <= 0 {
		return out
	}

	var noise = distuv.Normal{
		Mu:    0,
		Sigma: level,
		Src:   rand.NewPCG(seed, seed^0x9E3779B97F4A7C15),
	}

	for i := from; i < len(out.Samples); i++ {
		out.Samples[i] = max(-1, min(1, out.Samples[i]+noise.Rand()))
	}

	return out
}
