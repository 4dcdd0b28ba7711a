package bell103

/*------------------------------------------------------------------
 *
 * Purpose:	Find out which tones a recording actually carries.
 *
 * Description:	When a file will not decode, the first question is
 *		whether it was made with the same mark and space
 *		frequencies we are listening for.  This takes one FFT
 *		over the start of the signal and lists the strongest
 *		peaks.
 *
 *		Our own synthesizer restarts the phase on every bit, so
 *		for its output the peaks sit on harmonics of the bit
 *		pattern near the tones, not exactly on them.  A recording
 *		from continuous phase equipment shows the tones directly.
 *
 *---------------------------------------------------------------*/

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

const (
	SURVEY_MAX_FFT = 65536
	SURVEY_MIN_FFT = 64
)

type TonePeak struct {
	Freq  float64 // Hz, to the nearest FFT bin.
	Power float64 // Relative to the other peaks only.
}

// SurveyTones returns up to count of the strongest spectral peaks after the
// signal start, strongest first.  Too little audio gives nil.
func SurveyTones(w Waveform, count int) []TonePeak {
	if count <= 0 || w.SampleRate <= 0 {
		return nil
	}

	var start, _ = FindSignalStart(w.Samples, 0)
	var avail = len(w.Samples) - start

	var n = SURVEY_MIN_FFT
	if avail < n {
		return nil
	}

	for n*2 <= min(avail, SURVEY_MAX_FFT) {
		n *= 2
	}

	var seq = make([]float64, n)
	copy(seq, w.Samples[start:start+n])
	window.Hann(seq)

	var fft = fourier.NewFFT(n)
	var coeffs = fft.Coefficients(nil, seq)

	var power = make([]float64, len(coeffs))
	for i, c := range coeffs {
		power[i] = real(c)*real(c) + imag(c)*imag(c)
	}

	var peaks []TonePeak

	// Bin 0 is DC, not a tone.
	for i := 1; i < len(power)-1; i++ {
		if power[i] > power[i-1] && power[i] >= power[i+1] && power[i] > 0 {
			peaks = append(peaks, TonePeak{
				Freq:  fft.Freq(i) * float64(w.SampleRate),
				Power: power[i],
			})
		}
	}

	slices.SortStableFunc(peaks, func(a, b TonePeak) int {
		return cmp.Compare(b.Power, a.Power)
	})

	if len(peaks) > count {
		peaks = peaks[:count]
	}

	return peaks
}
