package bell103

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const time_ms = time.Millisecond

func Test_WaveformDuration(t *testing.T) {
	assert.Equal(t, time.Second, Waveform{SampleRate: 8000, Samples: make([]float64, 8000)}.Duration())
	assert.Equal(t, 100*time_ms, Waveform{SampleRate: 44100, Samples: make([]float64, 4410)}.Duration())
	assert.Zero(t, Waveform{Samples: make([]float64, 10)}.Duration())
}

func Test_WaveformSlice(t *testing.T) {
	var w = Waveform{SampleRate: 8000, Samples: []float64{0, 1, 2, 3, 4}}

	assert.Equal(t, []float64{1, 2}, w.Slice(1, 3).Samples)
	assert.Equal(t, []float64{3, 4}, w.Slice(3, 99).Samples)
	assert.Empty(t, w.Slice(4, 2).Samples)
	assert.Equal(t, []float64{0, 1}, w.Slice(-5, 2).Samples)
	assert.Equal(t, 8000, w.Slice(0, 1).SampleRate)
}

func Test_WaveformPadFront(t *testing.T) {
	var w = Waveform{SampleRate: 8000, Samples: []float64{0.5, -0.5}}

	var padded = w.PadFront(3)

	assert.Equal(t, []float64{0, 0, 0, 0.5, -0.5}, padded.Samples)
	assert.Equal(t, []float64{0.5, -0.5}, w.Samples)
	assert.Equal(t, w.Samples, w.PadFront(-1).Samples)
}
