package bell103

/*------------------------------------------------------------------
 *
 * Purpose:	Modem parameters: sample rate, baud rate and the two
 *		tone frequencies.
 *
 * Description:	A Config is a plain value.  Every encode and decode
 *		call gets its own copy so changing the settings between
 *		calls never disturbs a call already in progress.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"math"
)

const (
	DEFAULT_SAMPLE_RATE = 8000 // Hz
	DEFAULT_BAUD        = 300  // Symbols per second.
	DEFAULT_MARK_FREQ   = 1270 // Hz, bit 1.  Bell 103 originate.
	DEFAULT_SPACE_FREQ  = 1070 // Hz, bit 0.
)

var ErrInvalidConfig = errors.New("invalid modem configuration")

type Config struct {
	SampleRate int     `yaml:"sample_rate"`
	BaudRate   int     `yaml:"baud_rate"`
	MarkFreq   float64 `yaml:"mark_freq"`
	SpaceFreq  float64 `yaml:"space_freq"`
}

// DefaultConfig returns the Bell 103 originate settings at 8 kHz.
func DefaultConfig() Config {
	return Config{
		SampleRate: DEFAULT_SAMPLE_RATE,
		BaudRate:   DEFAULT_BAUD,
		MarkFreq:   DEFAULT_MARK_FREQ,
		SpaceFreq:  DEFAULT_SPACE_FREQ,
	}
}

// Bell202Config returns 1200 baud settings with the Bell 202 tone pair.
// A 200 Hz shift is too narrow for the correlator at 1200 baud; the
// 1000 Hz shift of Bell 202 is not.
func Bell202Config() Config {
	return Config{
		SampleRate: 44100,
		BaudRate:   1200,
		MarkFreq:   1200,
		SpaceFreq:  2200,
	}
}

// SamplesPerBit is round(SampleRate / BaudRate), never less than one.
func (c Config) SamplesPerBit() int {
	return c.SamplesPerBitAt(c.SampleRate)
}

// SamplesPerBitAt is like SamplesPerBit but for a recording made at some
// other sample rate.
func (c Config) SamplesPerBitAt(sampleRate int) int {
	if c.BaudRate <= 0 || sampleRate <= 0 {
		return 1
	}

	var n = int(math.Round(float64(sampleRate) / float64(c.BaudRate)))

	return max(n, 1)
}

func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d must be positive", ErrInvalidConfig, c.SampleRate)
	}

	if c.BaudRate <= 0 {
		return fmt.Errorf("%w: baud rate %d must be positive", ErrInvalidConfig, c.BaudRate)
	}

	if c.BaudRate > c.SampleRate*2 {
		// round() would give zero samples per bit.
		return fmt.Errorf("%w: baud rate %d is too high for sample rate %d", ErrInvalidConfig, c.BaudRate, c.SampleRate)
	}

	var nyquist = float64(c.SampleRate) / 2

	for _, f := range []struct {
		name string
		freq float64
	}{{"mark", c.MarkFreq}, {"space", c.SpaceFreq}} {
		if f.freq <= 0 || math.IsNaN(f.freq) || math.IsInf(f.freq, 0) {
			return fmt.Errorf("%w: %s frequency %g must be positive", ErrInvalidConfig, f.name, f.freq)
		}

		if f.freq >= nyquist {
			return fmt.Errorf("%w: %s frequency %g is not below the Nyquist limit %g", ErrInvalidConfig, f.name, f.freq, nyquist)
		}
	}

	if c.MarkFreq == c.SpaceFreq {
		return fmt.Errorf("%w: mark and space frequencies are both %g", ErrInvalidConfig, c.MarkFreq)
	}

	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("%d Hz, %d baud, mark %g Hz, space %g Hz, %d samples/bit",
		c.SampleRate, c.BaudRate, c.MarkFreq, c.SpaceFreq, c.SamplesPerBit())
}
