package wire

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bamboomc/plugin-sdk-go/internal/errors"
)

// Sentinel is the frame delimiter. It cannot occur inside a well-formed
// payload, since payloads are JSON text.
const Sentinel byte = 0x00

// readChunkSize is the transport read granularity for Reader.
const readChunkSize = 1024

// Decoder incrementally splits a byte stream into frames.
//
// Feed appends raw bytes in whatever chunking the transport produced;
// Next returns complete frames as they become available. The zero value
// is ready to use.
type Decoder struct {
	buf []byte
}

// Feed appends raw transport bytes to the internal buffer.
func (d *Decoder) Feed(p []byte) {
	d.buf = append(d.buf, p...)
}

// Next returns the next complete frame, without its sentinel, or false if
// no full frame is buffered yet. The returned slice is a copy and remains
// valid across further Feed calls.
func (d *Decoder) Next() ([]byte, bool) {
	idx := bytes.IndexByte(d.buf, Sentinel)
	if idx < 0 {
		return nil, false
	}

	frame := make([]byte, idx)
	copy(frame, d.buf[:idx])
	d.buf = d.buf[idx+1:]

	return frame, true
}

// Pending returns the number of buffered bytes that do not yet form a
// complete frame. A non-zero value at end-of-stream means the final frame
// was truncated.
func (d *Decoder) Pending() int {
	return len(d.buf)
}

// partial returns the buffered incomplete frame for error reporting.
func (d *Decoder) partial() []byte {
	partial := make([]byte, len(d.buf))
	copy(partial, d.buf)

	return partial
}

// AppendFrame appends payload followed by the sentinel to dst and returns
// the extended slice. It rejects payloads that contain the sentinel, which
// would corrupt the framing for every later message on the stream.
func AppendFrame(dst, payload []byte) ([]byte, error) {
	if bytes.IndexByte(payload, Sentinel) >= 0 {
		return nil, fmt.Errorf("payload contains sentinel byte 0x%02x", Sentinel)
	}

	dst = append(dst, payload...)

	return append(dst, Sentinel), nil
}

// Reader pulls complete frames out of a byte stream.
type Reader struct {
	r     io.Reader
	dec   Decoder
	chunk []byte
}

// NewReader returns a Reader that frames the byte stream r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:     r,
		chunk: make([]byte, readChunkSize),
	}
}

// ReadFrame blocks until a complete frame is available and returns its
// payload. It returns io.EOF on a clean end-of-stream between frames, and
// *errors.TruncatedFrameError if the stream ends with a partial frame
// buffered.
func (r *Reader) ReadFrame() ([]byte, error) {
	for {
		if frame, ok := r.dec.Next(); ok {
			return frame, nil
		}

		n, err := r.r.Read(r.chunk)
		if n > 0 {
			r.dec.Feed(r.chunk[:n])
		}

		if err != nil {
			// A read can return data alongside the error; drain any frame
			// that completed before reporting the stream condition.
			if frame, ok := r.dec.Next(); ok {
				return frame, nil
			}

			if err == io.EOF {
				if r.dec.Pending() > 0 {
					return nil, &errors.TruncatedFrameError{Partial: r.dec.partial()}
				}

				return nil, io.EOF
			}

			return nil, err
		}
	}
}

// Writer emits frames onto a byte stream.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer that frames payloads onto w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteFrame writes payload plus the sentinel as a single Write call, so a
// frame is never interleaved mid-write with another sender's bytes.
func (w *Writer) WriteFrame(payload []byte) error {
	framed, err := AppendFrame(make([]byte, 0, len(payload)+1), payload)
	if err != nil {
		return err
	}

	if _, err := w.w.Write(framed); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}

	return nil
}
