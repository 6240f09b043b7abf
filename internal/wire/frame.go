// Package wire implements the length-prefixed framing used on both TCP
// endpoints of the directory.
//
// A frame is a 4-byte unsigned length in network (big-endian) byte order
// followed by exactly that many payload bytes.
package wire

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// LengthPrefixSize is the size in bytes of the frame length field.
const LengthPrefixSize = 4

// MaxFrameSize is the largest payload the length field can describe.
const MaxFrameSize uint64 = math.MaxUint32

var (
	// ErrTruncatedFrame is returned when the stream ends before the length
	// field or the announced payload has been fully read.
	ErrTruncatedFrame = errors.New("wire: truncated frame")

	// ErrPayloadTooLarge is returned when a payload does not fit the length
	// field or exceeds the configured limit.
	ErrPayloadTooLarge = errors.New("wire: payload too large")
)

// Limits constrains frame memory use.
type Limits struct {
	// MaxPayloadBytes caps the payload length accepted or sent.
	// Zero means the protocol maximum, [MaxFrameSize].
	MaxPayloadBytes uint64
}

// DefaultLimits allows payloads of up to 1 MiB.
func DefaultLimits() Limits {
	return Limits{MaxPayloadBytes: 1 << 20}
}

func (l Limits) max() uint64 {
	if l.MaxPayloadBytes == 0 || l.MaxPayloadBytes > MaxFrameSize {
		return MaxFrameSize
	}
	return l.MaxPayloadBytes
}

// ReadFrame blocks until one complete frame has been read from r and returns
// its payload. The announced length is checked against limits before any
// payload memory is allocated.
func ReadFrame(r io.Reader, limits Limits) ([]byte, error) {
	var prefix [LengthPrefixSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, truncated(err)
	}

	size := uint64(binary.BigEndian.Uint32(prefix[:]))
	if size > limits.max() {
		return nil, ErrPayloadTooLarge
	}

	payload := make([]byte, size)
	if size > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, truncated(err)
		}
	}

	return payload, nil
}

// WriteFrame writes payload to w as a single frame. Oversized payloads are
// rejected before anything is written.
func WriteFrame(w io.Writer, payload []byte, limits Limits) error {
	if uint64(len(payload)) > limits.max() {
		return ErrPayloadTooLarge
	}

	buf := make([]byte, LengthPrefixSize+len(payload))
	binary.BigEndian.PutUint32(buf[:LengthPrefixSize], uint32(len(payload)))
	copy(buf[LengthPrefixSize:], payload)

	_, err := w.Write(buf)
	return err
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncatedFrame
	}
	return err
}
