package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

func TestReadWriteFrameRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		[]byte("x"),
		[]byte(`{"direction":"server"}`),
		bytes.Repeat([]byte{0xAB}, 70000),
	}

	for _, p := range payloads {
		var buf bytes.Buffer
		if err := WriteFrame(&buf, p, DefaultLimits()); err != nil {
			t.Fatalf("write frame: %v", err)
		}
		if buf.Len() != LengthPrefixSize+len(p) {
			t.Fatalf("frame size = %d, want %d", buf.Len(), LengthPrefixSize+len(p))
		}
		out, err := ReadFrame(&buf, DefaultLimits())
		if err != nil {
			t.Fatalf("read frame: %v", err)
		}
		if !bytes.Equal(out, p) {
			t.Fatalf("payload mismatch for len %d", len(p))
		}
	}
}

func TestWriteFrameLengthIsBigEndian(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, make([]byte, 258), DefaultLimits()); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	if got := buf.Bytes()[:4]; !bytes.Equal(got, []byte{0, 0, 1, 2}) {
		t.Fatalf("length prefix = %v, want [0 0 1 2]", got)
	}
}

func TestReadFrameShortPrefix(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader([]byte{0, 0}), DefaultLimits())
	if !errors.Is(err, ErrTruncatedFrame) {
		t.Fatalf("expected ErrTruncatedFrame, got %v", err)
	}
}

func TestReadFrameEmptyStream(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader(nil), DefaultLimits())
	if !errors.Is(err, ErrTruncatedFrame) {
		t.Fatalf("expected ErrTruncatedFrame, got %v", err)
	}
}

func TestReadFrameShortPayload(t *testing.T) {
	frame := make([]byte, 4, 7)
	binary.BigEndian.PutUint32(frame, 10)
	frame = append(frame, 'a', 'b', 'c')

	_, err := ReadFrame(bytes.NewReader(frame), DefaultLimits())
	if !errors.Is(err, ErrTruncatedFrame) {
		t.Fatalf("expected ErrTruncatedFrame, got %v", err)
	}
}

func TestReadFrameOverLimitDoesNotReadPayload(t *testing.T) {
	frame := make([]byte, 4)
	binary.BigEndian.PutUint32(frame, 1<<30)

	_, err := ReadFrame(bytes.NewReader(frame), Limits{MaxPayloadBytes: 1024})
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestWriteFrameOverLimit(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFrame(&buf, make([]byte, 11), Limits{MaxPayloadBytes: 10})
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing must be written on error, got %d bytes", buf.Len())
	}
}

func TestLimitsZeroMeansProtocolMaximum(t *testing.T) {
	if got := (Limits{}).max(); got != MaxFrameSize {
		t.Fatalf("max = %d, want %d", got, MaxFrameSize)
	}
	if got := (Limits{MaxPayloadBytes: 1 << 40}).max(); got != MaxFrameSize {
		t.Fatalf("max = %d, want %d", got, MaxFrameSize)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestReadFramePassesThroughIOErrors(t *testing.T) {
	_, err := ReadFrame(failingReader{}, DefaultLimits())
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("expected io.ErrClosedPipe, got %v", err)
	}
}
