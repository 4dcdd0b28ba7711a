package bell103

/*------------------------------------------------------------------
 *
 * Purpose:	Convert bits to FSK audio.
 *
 *---------------------------------------------------------------*/

import (
	"math"
)

const (
	TONE_AMPLITUDE = 0.8 // Fraction of full scale.
	GUARD_SECONDS  = 0.1 // Silence before and after the tones.
)

// Tone blocks for one configuration.
// Phase starts from zero on every bit so every mark bit is the same run of
// samples, as is every space bit.  We work them out once.
type toneGen struct {
	mark  []float64
	space []float64
	guard int
}

/*------------------------------------------------------------------
 *
 * Name:        newToneGen
 *
 * Purpose:     Calculate the mark and space blocks for tone generation.
 *
 * Inputs:      cfg	- The fields we care about are:
 *
 *				SampleRate
 *				BaudRate
 *				MarkFreq
 *				SpaceFreq
 *
 *----------------------------------------------------------------*/

func newToneGen(cfg Config) *toneGen {
	var n = cfg.SamplesPerBit()

	return &toneGen{
		mark:  toneBlock(cfg.MarkFreq, cfg.SampleRate, n),
		space: toneBlock(cfg.SpaceFreq, cfg.SampleRate, n),
		guard: guardSamples(cfg.SampleRate),
	}
}

func toneBlock(freq float64, sampleRate int, n int) []float64 {
	var block = make([]float64, n)

	for i := range block {
		var t = float64(i) / float64(sampleRate)
		block[i] = TONE_AMPLITUDE * math.Sin(2*math.Pi*freq*t)
	}

	return block
}

// guardSamples is the number of samples in GUARD_SECONDS.
func guardSamples(sampleRate int) int {
	return max(sampleRate, 0) / 10
}

func (g *toneGen) put_bit(out []float64, bit bool) []float64 {
	if bit {
		return append(out, g.mark...)
	}

	return append(out, g.space...)
}

func (g *toneGen) totalSamples(nbits int) int {
	return 2*g.guard + nbits*len(g.mark)
}

/*-------------------------------------------------------------------
 *
 * Name:        Synthesize
 *
 * Purpose:     Generate the complete waveform for a bit stream.
 *
 * Inputs:      bits	- Data bits, may be empty.
 *		cfg	- Modem settings.
 *
 * Returns:	Leading silence, one tone block per bit, trailing silence.
 *
 * Description:	Each bit is SamplesPerBit samples of a sine at the mark
 *		(1) or space (0) frequency, starting at zero phase.  There
 *		is no attempt at phase continuity between bits.  The
 *		detector does not care and the result is reproducible.
 *
 *--------------------------------------------------------------------*/

func Synthesize(bits []bool, cfg Config) Waveform {
	return synthesize(bits, cfg, nil)
}

func synthesize(bits []bool, cfg Config, progress func(block int, total int)) Waveform {
	var gen = newToneGen(cfg)

	var out = make([]float64, gen.guard, gen.totalSamples(len(bits)))

	for i, bit := range bits {
		out = gen.put_bit(out, bit)

		if progress != nil {
			progress(i+1, len(bits))
		}
	}

	out = append(out, make([]float64, gen.guard)...)

	return Waveform{SampleRate: cfg.SampleRate, Samples: out}
}
