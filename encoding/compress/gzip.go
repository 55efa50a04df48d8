package compress

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

func newGzipCompresser(w io.Writer, level int) (compresser, error) {
	return gzip.NewWriterLevel(w, level)
}

func newGzipDecompresser(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}
