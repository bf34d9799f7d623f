package sqlwire

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

const (
	// MaxFrameSize limits memory usage on malformed/hostile input.
	MaxFrameSize = 8 << 20 // 8 MiB

	headerSize = 4
)

// ReadFrame reads a single length-prefixed JSON frame.
// Numbers inside interface values decode as json.Number so INT cells keep
// their exact digits.
func ReadFrame(r io.Reader, v any) error {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return err
	}
	n := binary.BigEndian.Uint32(hdr[:])
	if n == 0 {
		return fmt.Errorf("sqlwire: empty frame")
	}
	if n > MaxFrameSize {
		return fmt.Errorf("sqlwire: frame too large: %d > %d", n, MaxFrameSize)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("sqlwire: bad json: %w", err)
	}
	return nil
}

// WriteFrame writes v as a length-prefixed JSON frame in a single Write.
func WriteFrame(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("sqlwire: marshal: %w", err)
	}
	if len(b) > MaxFrameSize {
		return fmt.Errorf("sqlwire: json too large: %d > %d", len(b), MaxFrameSize)
	}

	frame := make([]byte, headerSize+len(b))
	binary.BigEndian.PutUint32(frame[:headerSize], uint32(len(b)))
	copy(frame[headerSize:], b)

	_, err = w.Write(frame)
	return err
}
