package bell103

/*------------------------------------------------------------------
 *
 * Purpose:	Measure how much of one frequency is in a block of audio.
 *
 * Description:	Mix the block with cosine and sine at the frequency of
 *		interest (the I and Q parts) and sum.  I*I + Q*Q is the
 *		energy at that frequency whatever the phase of the input.
 *
 *		The reference time axis starts at zero for every block.
 *		Each bit from the synthesizer also starts at zero phase,
 *		but that does not matter since I and Q are combined.
 *
 *		The value has no units.  Only compare it with the value
 *		for another frequency over the same block.
 *
 *---------------------------------------------------------------*/

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Score returns the quadrature energy of segment at freq.
func Score(segment []float64, freq float64, sampleRate int) float64 {
	if len(segment) == 0 || sampleRate <= 0 {
		return 0
	}

	return newToneDetector(freq, sampleRate, len(segment)).score(segment)
}

// toneDetector holds the I and Q references for one frequency and block
// length so the demodulator can reuse them for every block.
type toneDetector struct {
	freq  float64
	i_ref []float64 // cosine
	q_ref []float64 // sine
}

func newToneDetector(freq float64, sampleRate int, n int) *toneDetector {
	var d = &toneDetector{
		freq:  freq,
		i_ref: make([]float64, n),
		q_ref: make([]float64, n),
	}

	for j := range n {
		var t = float64(j) / float64(sampleRate)
		var q, i = math.Sincos(2 * math.Pi * freq * t)
		d.i_ref[j] = i
		d.q_ref[j] = q
	}

	return d
}

// score expects len(block) to be the length the detector was built for.
func (d *toneDetector) score(block []float64) float64 {
	var i = floats.Dot(block, d.i_ref)
	var q = floats.Dot(block, d.q_ref)

	return i*i + q*q
}
