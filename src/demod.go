package bell103

/*------------------------------------------------------------------
 *
 * Purpose:	Recover bits from FSK audio.
 *
 * Description:	There is no clock recovery.  We find where the signal
 *		starts, then chop the audio into blocks one bit long and
 *		ask the tone detector which of the two tones is stronger
 *		in each block.
 *
 *---------------------------------------------------------------*/

const (
	// Anything louder than this, as a fraction of full scale, is signal.
	SIGNAL_THRESHOLD = 0.01
)

/*------------------------------------------------------------------
 *
 * Name:	FindSignalStart
 *
 * Purpose:	Skip the leading silence.
 *
 * Inputs:	samples		- Audio.
 *		samplesPerBit	- Block size used afterward.
 *
 * Returns:	Index of the first block, and whether anything above
 *		SIGNAL_THRESHOLD was found at all.
 *
 * Description:	Back up a quarter bit from the first loud sample so the
 *		beginning of the first tone is not clipped.  With no
 *		signal, start at the beginning; the blocks come out as
 *		nonsense but nothing breaks.
 *
 *----------------------------------------------------------------*/

func FindSignalStart(samples []float64, samplesPerBit int) (int, bool) {
	for i, s := range samples {
		if s > SIGNAL_THRESHOLD || s < -SIGNAL_THRESHOLD {
			return max(0, i-samplesPerBit/4), true
		}
	}

	return 0, false
}

// Demodulate returns one bit per complete block after the signal start.
// Blocks are sized from the waveform's own sample rate, not cfg.SampleRate,
// so a recording made at another rate still decodes.
func Demodulate(w Waveform, cfg Config) []bool {
	var bits, _ = demodulate(w, cfg, nil)
	return bits
}

type demodInfo struct {
	samplesPerBit int
	start         int
	signalFound   bool
}

func demodulate(w Waveform, cfg Config, progress func(block int, total int)) ([]bool, demodInfo) {
	var info = demodInfo{samplesPerBit: cfg.SamplesPerBitAt(w.SampleRate)}

	if len(w.Samples) == 0 || w.SampleRate <= 0 {
		return []bool{}, info
	}

	var n = info.samplesPerBit

	info.start, info.signalFound = FindSignalStart(w.Samples, n)

	var total = (len(w.Samples) - info.start) / n // Partial block at the end is dropped.
	var bits = make([]bool, 0, total)

	if total == 0 {
		return bits, info
	}

	var space = newToneDetector(cfg.SpaceFreq, w.SampleRate, n)
	var mark = newToneDetector(cfg.MarkFreq, w.SampleRate, n)

	for k := range total {
		var block = w.Samples[info.start+k*n : info.start+(k+1)*n]

		var spacePower = space.score(block)
		var markPower = mark.score(block)

		// A tie goes to space.
		bits = append(bits, markPower > spacePower)

		if progress != nil {
			progress(k+1, total)
		}
	}

	return bits, info
}
