package bell103

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SurveyTonesEncoded(t *testing.T) {
	// Alternating bits.  With the phase starting over every bit, the
	// energy lands on harmonics of the bit pattern between the two tones
	// rather than on the tones themselves.
	var w, err = Encode("UUUUUUUUUUUUUUUUUUUUUUUUUUUUUUUUUUUUUUUU", DefaultConfig())
	require.NoError(t, err)

	var peaks = SurveyTones(w, 4)
	require.Len(t, peaks, 4)

	assert.Greater(t, peaks[0].Freq, 1000.0)
	assert.Less(t, peaks[0].Freq, 1400.0)

	for i := 1; i < len(peaks); i++ {
		assert.GreaterOrEqual(t, peaks[i-1].Power, peaks[i].Power)
	}
}

func Test_SurveyTonesSingleTone(t *testing.T) {
	var w = Waveform{SampleRate: 8000, Samples: toneBlock(1000, 8000, 1024)}

	var peaks = SurveyTones(w, 3)
	require.NotEmpty(t, peaks)

	assert.InDelta(t, 1000, peaks[0].Freq, 8000.0/1024)
}

func Test_SurveyTonesNotEnough(t *testing.T) {
	assert.Nil(t, SurveyTones(Waveform{SampleRate: 8000, Samples: make([]float64, 10)}, 3))
	assert.Nil(t, SurveyTones(Waveform{SampleRate: 8000, Samples: make([]float64, 1000)}, 0))
	assert.Nil(t, SurveyTones(Waveform{Samples: make([]float64, 1000)}, 3))
}
