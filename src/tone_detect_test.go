package bell103

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ScoreEmpty(t *testing.T) {
	assert.Zero(t, Score(nil, 1270, 8000))
	assert.Zero(t, Score([]float64{}, 1070, 8000))
	assert.Zero(t, Score([]float64{0.5}, 1070, 0))
}

func Test_ScoreSilence(t *testing.T) {
	assert.Zero(t, Score(make([]float64, 27), 1270, 8000))
}

func Test_ScoreDiscrimination(t *testing.T) {
	for _, cfg := range []Config{DefaultConfig(), Bell202Config()} {
		var n = cfg.SamplesPerBit()
		var mark = toneBlock(cfg.MarkFreq, cfg.SampleRate, n)
		var space = toneBlock(cfg.SpaceFreq, cfg.SampleRate, n)

		assert.Greater(t, Score(mark, cfg.MarkFreq, cfg.SampleRate), Score(mark, cfg.SpaceFreq, cfg.SampleRate), cfg.String())
		assert.Greater(t, Score(space, cfg.SpaceFreq, cfg.SampleRate), Score(space, cfg.MarkFreq, cfg.SampleRate), cfg.String())
	}
}

func Test_ScorePhaseIndependent(t *testing.T) {
	// A whole number of cycles, so the answer should not depend on phase.
	const n = 80

	var a = make([]float64, n)
	var b = make([]float64, n)

	for i := range n {
		var ts = float64(i) / 8000
		a[i] = math.Sin(2 * math.Pi * 1000 * ts)
		b[i] = math.Cos(2 * math.Pi * 1000 * ts)
	}

	assert.InDelta(t, Score(a, 1000, 8000), Score(b, 1000, 8000), 1e-9)
	assert.InDelta(t, float64(n*n)/4, Score(a, 1000, 8000), 1e-9)
}

func Test_ToneDetectorMatchesScore(t *testing.T) {
	var block = toneBlock(1270, 8000, 27)
	var d = newToneDetector(1070, 8000, 27)

	assert.InDelta(t, Score(block, 1070, 8000), d.score(block), 1e-12)
}
