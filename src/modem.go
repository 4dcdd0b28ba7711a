package bell103

/*------------------------------------------------------------------
 *
 * Purpose:	Text in, audio out, and back again.
 *
 * Description:	Encode and Decode are the whole codec as two plain
 *		functions.  Modem wraps them with settings that can be
 *		changed between calls, a logger, counters and a progress
 *		observer.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Progress is reported this often, in blocks, and on the last block.
const PROGRESS_INTERVAL = 50

// Encode frames text and synthesizes it with cfg.  It fails with
// ErrEncoding or ErrPayloadTooLong for text that can't be framed, and
// also with ErrInvalidConfig, since a bad cfg would give audio nothing
// can decode.
func Encode(text string, cfg Config) (Waveform, error) {
	if err := cfg.Validate(); err != nil {
		return Waveform{}, err
	}

	var bits, serializeErr = Serialize(text)
	if serializeErr != nil {
		return Waveform{}, serializeErr
	}

	return Synthesize(bits, cfg), nil
}

// Decode never fails.  Anything it cannot make sense of comes back as "".
// The sample rate is taken from w; cfg supplies the baud rate and tones.
func Decode(w Waveform, cfg Config) string {
	return ParseFrame(Demodulate(w, cfg)).Text
}

type Stage int

const (
	StageEncode Stage = iota
	StageDecode
)

func (s Stage) String() string {
	switch s {
	case StageEncode:
		return "encode"
	case StageDecode:
		return "decode"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

type ProgressEvent struct {
	Stage Stage
	Block int // 1 based.
	Total int
}

type ProgressFunc func(ProgressEvent)

// DecodeResult is everything Decode found out along the way.
type DecodeResult struct {
	FrameResult

	Bits          int
	SignalStart   int
	SignalFound   bool
	SamplesPerBit int
}

type Modem struct {
	mu            sync.RWMutex
	cfg           Config
	samplesPerBit int

	logger   *log.Logger
	metrics  *Metrics
	progress ProgressFunc
}

type Option func(*Modem)

// WithConfig sets the starting configuration.  An invalid one is ignored
// with a warning and the defaults are kept.
func WithConfig(cfg Config) Option {
	return func(m *Modem) {
		m.cfg = cfg
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(m *Modem) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(m *Modem) {
		m.metrics = metrics
	}
}

func WithProgress(progress ProgressFunc) Option {
	return func(m *Modem) {
		m.progress = progress
	}
}

func NewModem(opts ...Option) *Modem {
	var m = &Modem{
		cfg:    DefaultConfig(),
		logger: NewLogger(os.Stderr, false),
	}

	for _, opt := range opts {
		opt(m)
	}

	if err := m.cfg.Validate(); err != nil {
		m.logger.Warn("Ignoring configuration", "err", err)
		m.cfg = DefaultConfig()
	}

	m.samplesPerBit = m.cfg.SamplesPerBit()

	return m
}

func (m *Modem) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.cfg
}

// SamplesPerBit at the configured sample rate.
func (m *Modem) SamplesPerBit() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.samplesPerBit
}

/*------------------------------------------------------------------
 *
 * Name:	SetConfig
 *
 * Purpose:	Replace the whole configuration.
 *
 * Returns:	Wrapped ErrInvalidConfig if cfg does not validate.
 *		The old configuration stays in effect in that case.
 *
 * Description:	The other setters all come through here.  Calls
 *		already running keep the configuration they started with.
 *
 *----------------------------------------------------------------*/

func (m *Modem) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	m.cfg = cfg
	m.samplesPerBit = cfg.SamplesPerBit()
	m.mu.Unlock()

	m.logger.Debug("Configuration changed", "config", cfg.String())

	return nil
}

func (m *Modem) update(change func(*Config)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cfg = m.cfg
	change(&cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	m.cfg = cfg
	m.samplesPerBit = cfg.SamplesPerBit()

	m.logger.Debug("Configuration changed", "config", cfg.String())

	return nil
}

func (m *Modem) SetSampleRate(sampleRate int) error {
	return m.update(func(c *Config) { c.SampleRate = sampleRate })
}

func (m *Modem) SetBaudRate(baud int) error {
	return m.update(func(c *Config) { c.BaudRate = baud })
}

func (m *Modem) SetFrequencies(mark float64, space float64) error {
	return m.update(func(c *Config) {
		c.MarkFreq = mark
		c.SpaceFreq = space
	})
}

// ResetConfig goes back to DefaultConfig.
func (m *Modem) ResetConfig() {
	var setErr = m.SetConfig(DefaultConfig())
	if setErr != nil {
		panic(setErr) // DefaultConfig always validates.
	}
}

// reporter turns block counts into throttled ProgressEvents.
func (m *Modem) reporter(stage Stage) func(block int, total int) {
	if m.progress == nil {
		return nil
	}

	return func(block int, total int) {
		if block%PROGRESS_INTERVAL == 0 || block == total {
			m.progress(ProgressEvent{Stage: stage, Block: block, Total: total})
		}
	}
}

func (m *Modem) Encode(text string) (Waveform, error) {
	var cfg = m.Config()

	var bits, serializeErr = Serialize(text)
	if serializeErr != nil {
		m.metrics.encodeFailed()
		return Waveform{}, fmt.Errorf("encode: %w", serializeErr)
	}

	m.logger.Debug("Encoding", "bytes", len(text), "bits", len(bits), "samples_per_bit", cfg.SamplesPerBit())

	var w = synthesize(bits, cfg, m.reporter(StageEncode))

	m.metrics.encoded(len(w.Samples))

	m.logger.Debug("Encoded", "samples", len(w.Samples), "duration", w.Duration())

	return w, nil
}

func (m *Modem) Decode(w Waveform) string {
	return m.DecodeDetailed(w).Text
}

/*------------------------------------------------------------------
 *
 * Name:	DecodeDetailed
 *
 * Purpose:	Decode and say how it went.
 *
 * Inputs:	w	- Audio at any sample rate.  Block size is worked
 *			  out from w.SampleRate and the configured baud.
 *
 * Returns:	The text and the details: how many bits came out of the
 *		demodulator, where the signal started, where the marker
 *		was, and whether the payload was cut short.
 *
 *----------------------------------------------------------------*/

func (m *Modem) DecodeDetailed(w Waveform) DecodeResult {
	var cfg = m.Config()

	var bits, info = demodulate(w, cfg, m.reporter(StageDecode))
	var frame = ParseFrame(bits)

	var result = DecodeResult{
		FrameResult:   frame,
		Bits:          len(bits),
		SignalStart:   info.start,
		SignalFound:   info.signalFound,
		SamplesPerBit: info.samplesPerBit,
	}

	m.metrics.decoded(len(bits), frame.Status)

	m.logger.Debug("Demodulated",
		"samples", len(w.Samples),
		"sample_rate", w.SampleRate,
		"samples_per_bit", info.samplesPerBit,
		"signal_start", info.start,
		"signal_found", info.signalFound,
		"bits", len(bits))

	switch frame.Status {
	case StatusTruncated:
		m.logger.Warn("Payload truncated",
			"declared", frame.DeclaredLength,
			"available", frame.PayloadLength)
	case StatusDecoded:
		m.logger.Debug("Frame decoded",
			"marker_offset", frame.MarkerOffset,
			"length", frame.DeclaredLength)
	default:
		m.logger.Debug("No frame", "status", frame.Status.String())
	}

	return result
}
