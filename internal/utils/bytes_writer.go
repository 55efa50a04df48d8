package utils

import (
	"errors"
	"io"
)

var errNegativePosition = errors.New("utils: negative position")
var errInvalidWhence = errors.New("utils: invalid whence")

// BytesWriter in-memory io.WriteSeeker, for container writers that patch
// their headers once the payload size is known
type BytesWriter struct {
	buf []byte
	pos int
}

// Write implements io.Writer, writing past the end grows the buffer and
// zero fills any gap left by a previous Seek
func (w *BytesWriter) Write(p []byte) (int, error) {
	if end := w.pos + len(p); end > len(w.buf) {
		w.buf = append(w.buf, make([]byte, end-len(w.buf))...)
	}
	n := copy(w.buf[w.pos:], p)
	w.pos += n
	return n, nil
}

// Seek implements io.Seeker
func (w *BytesWriter) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(w.pos) + offset
	case io.SeekEnd:
		abs = int64(len(w.buf)) + offset
	default:
		return 0, errInvalidWhence
	}
	if abs < 0 {
		return 0, errNegativePosition
	}
	w.pos = int(abs)
	return abs, nil
}

// Bytes written data
func (w *BytesWriter) Bytes() []byte {
	return w.buf
}
