package bell103

/*------------------------------------------------------------------
 *
 * Purpose:	Read and write .WAV files.
 *
 * Description:	We write one thing only: mono, 16 bit PCM.
 *
 *		We read more than that since recordings come from all
 *		sorts of places.  PCM at 8, 16, 24 or 32 bits, IEEE float
 *		at 32 or 64 bits, plain or WAVE_FORMAT_EXTENSIBLE.
 *		Everything is brought to the range -1 to +1.
 *		Stereo is refused.  Picking a channel is the caller's job.
 *
 *---------------------------------------------------------------*/

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

var (
	ErrNotWAV            = errors.New("not a RIFF/WAVE file")
	ErrUnsupportedFormat = errors.New("unsupported WAV format")
)

const (
	WAVE_FORMAT_PCM        = 1
	WAVE_FORMAT_IEEE_FLOAT = 3
	WAVE_FORMAT_EXTENSIBLE = 0xFFFE
)

// What we write.  Field order is the file layout.
type wavHeader struct {
	Riff          [4]byte // "RIFF"
	FileSize      uint32  // File length - 8.
	Wave          [4]byte // "WAVE"
	Fmt           [4]byte // "fmt "
	FmtSize       uint32  // 16.
	FormatTag     uint16  // 1 for PCM.
	Channels      uint16  // 1 for mono.
	SampleRate    uint32  // Hz.
	ByteRate      uint32  // = BlockAlign * SampleRate.
	BlockAlign    uint16  // = BitsPerSample / 8 * Channels.
	BitsPerSample uint16  // 16.
	Data          [4]byte // "data"
	DataSize      uint32  // Number of bytes following.
}

// WAVFormat is what the fmt chunk of a file said.
type WAVFormat struct {
	FormatTag     uint16 // After unwrapping WAVE_FORMAT_EXTENSIBLE.
	Channels      int
	SampleRate    int
	BitsPerSample int
}

/*------------------------------------------------------------------
 *
 * Name:	WriteWAV
 *
 * Purpose:	Write a waveform as mono 16 bit PCM.
 *
 * Description:	Samples are clamped to -1..+1 then scaled by 32767.
 *		The conversion truncates toward zero.
 *
 *----------------------------------------------------------------*/

func WriteWAV(w io.Writer, wf Waveform) error {
	if wf.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, wf.SampleRate)
	}

	var dataSize = len(wf.Samples) * 2

	var header = wavHeader{
		Riff:          [4]byte{'R', 'I', 'F', 'F'},
		FileSize:      uint32(36 + dataSize), //nolint:gosec
		Wave:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		FormatTag:     WAVE_FORMAT_PCM,
		Channels:      1,
		SampleRate:    uint32(wf.SampleRate),     //nolint:gosec
		ByteRate:      uint32(wf.SampleRate * 2), //nolint:gosec
		BlockAlign:    2,
		BitsPerSample: 16,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      uint32(dataSize), //nolint:gosec
	}

	var buf bytes.Buffer
	buf.Grow(44 + dataSize)

	var headerErr = binary.Write(&buf, binary.LittleEndian, header)
	if headerErr != nil {
		return headerErr
	}

	for _, s := range wf.Samples {
		if math.IsNaN(s) {
			s = 0
		}

		s = max(-1, min(1, s))
		buf.Write(binary.LittleEndian.AppendUint16(nil, uint16(int16(s*32767)))) //nolint:gosec
	}

	var _, writeErr = w.Write(buf.Bytes())

	return writeErr
}

func WriteWAVFile(path string, wf Waveform) error {
	var f, createErr = os.Create(path) //nolint:gosec
	if createErr != nil {
		return createErr
	}

	var writeErr = WriteWAV(f, wf)
	if writeErr != nil {
		f.Close() //nolint:gosec
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}

	return f.Close()
}

// ReadWAV reads a whole mono file.
func ReadWAV(r io.Reader) (Waveform, error) {
	var wf, _, err = ReadWAVFormat(r)
	return wf, err
}

/*------------------------------------------------------------------
 *
 * Name:	ReadWAVFormat
 *
 * Purpose:	Read a WAV file and say what format it was in.
 *
 * Returns:	Normalized samples, the format, and
 *		ErrNotWAV for something that is not RIFF/WAVE,
 *		ErrUnsupportedFormat for a kind of audio we can't handle.
 *
 * Description:	Chunks other than "fmt " and "data" (LIST and the like)
 *		are skipped.  A data size larger than what is actually
 *		there is taken to mean "to end of file", which is what
 *		some streaming recorders leave behind.
 *
 *----------------------------------------------------------------*/

func ReadWAVFormat(r io.Reader) (Waveform, WAVFormat, error) {
	var format WAVFormat

	var file, readErr = io.ReadAll(r)
	if readErr != nil {
		return Waveform{}, format, readErr
	}

	if len(file) < 12 || string(file[0:4]) != "RIFF" || string(file[8:12]) != "WAVE" {
		return Waveform{}, format, ErrNotWAV
	}

	var haveFmt = false
	var pos = 12

	for pos+8 <= len(file) {
		var id = string(file[pos : pos+4])
		var size = int(binary.LittleEndian.Uint32(file[pos+4 : pos+8]))
		var body = file[pos+8:]

		if size < 0 || size > len(body) {
			size = len(body)
		}

		body = body[:size]

		switch id {
		case "fmt ":
			var fmtErr error

			format, fmtErr = parseFmtChunk(body)
			if fmtErr != nil {
				return Waveform{}, format, fmtErr
			}

			haveFmt = true

		case "data":
			if !haveFmt {
				return Waveform{}, format, fmt.Errorf("%w: data chunk before fmt chunk", ErrNotWAV)
			}

			var samples, convErr = convertSamples(body, format)
			if convErr != nil {
				return Waveform{}, format, convErr
			}

			return Waveform{SampleRate: format.SampleRate, Samples: samples}, format, nil
		}

		pos += 8 + size + size%2 // Chunks are padded to an even length.
	}

	if !haveFmt {
		return Waveform{}, format, fmt.Errorf("%w: no fmt chunk", ErrNotWAV)
	}

	return Waveform{}, format, fmt.Errorf("%w: no data chunk", ErrNotWAV)
}

func ReadWAVFile(path string) (Waveform, error) {
	var f, openErr = os.Open(path) //nolint:gosec
	if openErr != nil {
		return Waveform{}, openErr
	}
	defer f.Close()

	var wf, readErr = ReadWAV(f)
	if readErr != nil {
		return Waveform{}, fmt.Errorf("%s: %w", path, readErr)
	}

	return wf, nil
}

func parseFmtChunk(body []byte) (WAVFormat, error) {
	var format WAVFormat

	if len(body) < 16 {
		return format, fmt.Errorf("%w: fmt chunk is %d bytes", ErrNotWAV, len(body))
	}

	format.FormatTag = binary.LittleEndian.Uint16(body[0:2])
	format.Channels = int(binary.LittleEndian.Uint16(body[2:4]))
	format.SampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
	format.BitsPerSample = int(binary.LittleEndian.Uint16(body[14:16]))

	if format.FormatTag == WAVE_FORMAT_EXTENSIBLE {
		// cbSize, valid bits, channel mask, then the sub format GUID
		// whose first two bytes are the real format tag.
		if len(body) < 26 {
			return format, fmt.Errorf("%w: short WAVE_FORMAT_EXTENSIBLE fmt chunk", ErrUnsupportedFormat)
		}

		format.FormatTag = binary.LittleEndian.Uint16(body[24:26])
	}

	if format.Channels != 1 {
		return format, fmt.Errorf("%w: %d channels, only mono is supported", ErrUnsupportedFormat, format.Channels)
	}

	if format.SampleRate <= 0 {
		return format, fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, format.SampleRate)
	}

	switch {
	case format.FormatTag == WAVE_FORMAT_PCM && (format.BitsPerSample == 8 || format.BitsPerSample == 16 || format.BitsPerSample == 24 || format.BitsPerSample == 32):
	case format.FormatTag == WAVE_FORMAT_IEEE_FLOAT && (format.BitsPerSample == 32 || format.BitsPerSample == 64):
	default:
		return format, fmt.Errorf("%w: format tag %d with %d bits per sample", ErrUnsupportedFormat, format.FormatTag, format.BitsPerSample)
	}

	return format, nil
}

// convertSamples drops a trailing partial sample.
func convertSamples(data []byte, format WAVFormat) ([]float64, error) {
	var width = format.BitsPerSample / 8
	var samples = make([]float64, len(data)/width)

	for i := range samples {
		var b = data[i*width : (i+1)*width]

		switch {
		case format.FormatTag == WAVE_FORMAT_IEEE_FLOAT && width == 4:
			samples[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
		case format.FormatTag == WAVE_FORMAT_IEEE_FLOAT && width == 8:
			samples[i] = math.Float64frombits(binary.LittleEndian.Uint64(b))
		case width == 1:
			samples[i] = (float64(b[0]) - 128) / 128
		case width == 2:
			samples[i] = float64(int16(binary.LittleEndian.Uint16(b))) / 32767 //nolint:gosec
		case width == 3:
			// Sign extend by putting the 24 bits at the top of an int32.
			var v = int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8 //nolint:gosec
			samples[i] = float64(v) / 8388607
		case width == 4:
			samples[i] = float64(int32(binary.LittleEndian.Uint32(b))) / 2147483647 //nolint:gosec
		default:
			return nil, fmt.Errorf("%w: %d byte samples", ErrUnsupportedFormat, width)
		}

		if math.IsNaN(samples[i]) {
			samples[i] = 0
		}

		samples[i] = max(-1, min(1, samples[i]))
	}

	return samples, nil
}
