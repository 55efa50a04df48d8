package compress

import (
	"io"

	"github.com/ulikunitz/xz"
)

func newXzCompresser(w io.Writer, _ int) (compresser, error) {
	return xz.NewWriter(w)
}

func newXzDecompresser(r io.Reader) (io.ReadCloser, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(xr), nil
}
