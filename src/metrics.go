package bell103

import (
	"github.com/prometheus/client_golang/prometheus"
)

/*------------------------------------------------------------------
 *
 * Purpose:	Counters for what the codec has done.
 *
 * Description:	The tools write these out with --metrics-file in the
 *		node exporter textfile format.  A nil *Metrics is fine
 *		everywhere and counts nothing.
 *
 *---------------------------------------------------------------*/

type Metrics struct {
	framesEncoded      prometheus.Counter
	encodeErrors       prometheus.Counter
	samplesSynthesized prometheus.Counter
	bitsDemodulated    prometheus.Counter
	framesDecoded      *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	var m = &Metrics{
		framesEncoded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bell103_frames_encoded_total",
			Help: "Frames synthesized into audio",
		}),
		encodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bell103_encode_errors_total",
			Help: "Texts that could not be framed",
		}),
		samplesSynthesized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bell103_samples_synthesized_total",
			Help: "Audio samples produced, guard bands included",
		}),
		bitsDemodulated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bell103_bits_demodulated_total",
			Help: "Bits recovered from audio, before framing",
		}),
		framesDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bell103_frames_decoded_total",
			Help: "Decode attempts by outcome",
		}, []string{"status"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.framesEncoded,
			m.encodeErrors,
			m.samplesSynthesized,
			m.bitsDemodulated,
			m.framesDecoded,
		)
	}

	return m
}

func (m *Metrics) encoded(samples int) {
	if m == nil {
		return
	}

	m.framesEncoded.Inc()
	m.samplesSynthesized.Add(float64(samples))
}

func (m *Metrics) encodeFailed() {
	if m == nil {
		return
	}

	m.encodeErrors.Inc()
}

func (m *Metrics) decoded(bits int, status DecodeStatus) {
	if m == nil {
		return
	}

	m.bitsDemodulated.Add(float64(bits))
	m.framesDecoded.WithLabelValues(status.String()).Inc()
}

// WriteMetricsFile does nothing when path is empty.
func WriteMetricsFile(path string, gatherer prometheus.Gatherer) error {
	if path == "" {
		return nil
	}

	return prometheus.WriteToTextfile(path, gatherer)
}
