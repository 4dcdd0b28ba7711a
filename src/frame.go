package bell103

/*------------------------------------------------------------------
 *
 * Purpose:	Convert text to a self delimiting bit stream and back.
 *
 * Description:	A frame on the wire is
 *
 *			AA 55 AA 55	start marker
 *			len_lo len_hi	payload length, little endian
 *			payload		UTF-8 bytes
 *
 *		Bits go out most significant bit first.
 *
 *		Decoding is deliberately forgiving.  A recording that was
 *		cut short still gives back whatever part of the text made
 *		it, and garbage gives back an empty string rather than an
 *		error.
 *
 *---------------------------------------------------------------*/

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

var StartMarker = [4]byte{0xAA, 0x55, 0xAA, 0x55}

const (
	LENGTH_FIELD_BYTES = 2
	FRAME_HEADER_BYTES = len(StartMarker) + LENGTH_FIELD_BYTES
	FRAME_HEADER_BITS  = FRAME_HEADER_BYTES * 8 // 48
	MAX_PAYLOAD_BYTES  = math.MaxUint16
)

var (
	ErrEncoding       = errors.New("text is not valid UTF-8")
	ErrPayloadTooLong = errors.New("payload does not fit the 16 bit length field")
)

// DecodeStatus says how a frame parse went.  None of these are errors;
// the caller decides what an empty result means.
type DecodeStatus int

const (
	StatusDecoded DecodeStatus = iota
	StatusInsufficientData
	StatusNoMarker
	StatusTruncated
)

func (s DecodeStatus) String() string {
	switch s {
	case StatusDecoded:
		return "decoded"
	case StatusInsufficientData:
		return "insufficient_data"
	case StatusNoMarker:
		return "no_marker"
	case StatusTruncated:
		return "truncated"
	default:
		return fmt.Sprintf("DecodeStatus(%d)", int(s))
	}
}

type FrameResult struct {
	Text   string
	Status DecodeStatus

	MarkerOffset   int // Byte offset of the start marker, -1 if not found.
	DeclaredLength int // Length field as received.
	PayloadLength  int // Payload bytes actually available, after clamping.
}

/*------------------------------------------------------------------
 *
 * Name:	Serialize
 *
 * Purpose:	Build the bit stream for one frame.
 *
 * Inputs:	text	- Must be valid UTF-8.
 *
 * Returns:	Bits, MSB first per byte.
 *		ErrEncoding if text is not valid UTF-8.
 *		ErrPayloadTooLong if it would not fit in 65535 bytes.
 *
 *----------------------------------------------------------------*/

func Serialize(text string) ([]bool, error) {
	if !utf8.ValidString(text) {
		return nil, ErrEncoding
	}

	if len(text) > MAX_PAYLOAD_BYTES {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLong, len(text))
	}

	var frame = make([]byte, 0, FRAME_HEADER_BYTES+len(text))
	frame = append(frame, StartMarker[:]...)
	frame = binary.LittleEndian.AppendUint16(frame, uint16(len(text)))
	frame = append(frame, text...)

	return bytesToBits(frame), nil
}

// Deserialize is ParseFrame without the details.
func Deserialize(bits []bool) string {
	return ParseFrame(bits).Text
}

/*------------------------------------------------------------------
 *
 * Name:	ParseFrame
 *
 * Purpose:	Find a frame in a demodulated bit stream.
 *
 * Inputs:	bits	- As produced by the demodulator.  May contain
 *			  junk before the marker and after the payload.
 *
 * Returns:	Text and how we got it.
 *
 * Description:	Bits are packed from the very first one; any partial
 *		byte at the end is dropped.  We search byte by byte for
 *		the marker, never bit by bit.
 *		If the length field asks for more than we have, we take
 *		what is there.  Invalid UTF-8 is skipped, not replaced,
 *		so a cut in the middle of a character still leaves a
 *		clean prefix of the text that was sent.
 *
 *----------------------------------------------------------------*/

func ParseFrame(bits []bool) FrameResult {
	var result = FrameResult{MarkerOffset: -1, Status: StatusInsufficientData}

	if len(bits) < FRAME_HEADER_BITS {
		return result
	}

	var data = bitsToBytes(bits)

	var markerOffset = bytes.Index(data, StartMarker[:])
	if markerOffset < 0 {
		result.Status = StatusNoMarker
		return result
	}

	result.MarkerOffset = markerOffset

	var rest = data[markerOffset+len(StartMarker):]
	if len(rest) < LENGTH_FIELD_BYTES {
		return result
	}

	var length = int(binary.LittleEndian.Uint16(rest))
	var payload = rest[LENGTH_FIELD_BYTES:]

	result.DeclaredLength = length
	result.Status = StatusDecoded

	if length > len(payload) {
		length = len(payload)
		result.Status = StatusTruncated
	}

	result.PayloadLength = length
	result.Text = strings.ToValidUTF8(string(payload[:length]), "")

	return result
}

func bytesToBits(data []byte) []bool {
	var bits = make([]bool, 0, len(data)*8)

	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>i)&1 == 1)
		}
	}

	return bits
}

func bitsToBytes(bits []bool) []byte {
	var data = make([]byte, len(bits)/8)

	for i := range data {
		var b byte

		for _, bit := range bits[i*8 : i*8+8] {
			b <<= 1
			if bit {
				b |= 1
			}
		}

		data[i] = b
	}

	return data
}
