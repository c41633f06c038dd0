package reader

import "io"

const defaultStreamBufSize = 4096

// StreamReader wraps an io.Reader with an internal buffer that compacts
// (moves the unread tail to the front) and refills on demand, growing to fit
// oversized ReadSpan requests. EndOfInput only becomes true once a refill
// attempt against the underlying stream returns zero bytes.
type StreamReader struct {
	src    io.Reader
	buf    []byte
	start  int // first unread byte
	end    int // one past last buffered byte
	eof    bool
	cursor cursor
}

// NewStreamReader creates a StreamReader pulling from src.
func NewStreamReader(src io.Reader) *StreamReader {
	return &StreamReader{
		src:    src,
		buf:    make([]byte, defaultStreamBufSize),
		cursor: newCursor(),
	}
}

func (r *StreamReader) buffered() int {
	return r.end - r.start
}

// compact moves the unread tail to the front of the buffer.
func (r *StreamReader) compact() {
	if r.start == 0 {
		return
	}
	n := copy(r.buf, r.buf[r.start:r.end])
	r.start = 0
	r.end = n
}

// ensure guarantees at least n bytes are buffered (or end of input is hit).
func (r *StreamReader) ensure(n int) {
	for r.buffered() < n && !r.eof {
		r.compact()
		if r.end == len(r.buf) {
			// Grow to fit the request.
			need := n
			if need < len(r.buf)*2 {
				need = len(r.buf) * 2
			}
			grown := make([]byte, need)
			copy(grown, r.buf[:r.end])
			r.buf = grown
		}
		read, err := r.src.Read(r.buf[r.end:])
		r.end += read
		if read == 0 || err != nil {
			r.eof = true
		}
	}
}

func (r *StreamReader) Peek() (byte, bool) {
	r.ensure(1)
	if r.buffered() == 0 {
		return 0, false
	}
	return r.buf[r.start], true
}

func (r *StreamReader) Read() (byte, bool) {
	r.ensure(1)
	if r.buffered() == 0 {
		return 0, false
	}
	b := r.buf[r.start]
	r.start++
	r.cursor.advance(b)
	return b, true
}

func (r *StreamReader) ReadSpan(n int) []byte {
	r.ensure(n)
	avail := r.buffered()
	if avail > n {
		avail = n
	}
	span := make([]byte, avail)
	copy(span, r.buf[r.start:r.start+avail])
	for _, b := range span {
		r.cursor.advance(b)
	}
	r.start += avail
	return span
}

func (r *StreamReader) EndOfInput() bool {
	if r.buffered() > 0 {
		return false
	}
	r.ensure(1)
	return r.buffered() == 0
}

func (r *StreamReader) Position() TextPosition {
	return r.cursor.Position()
}
