package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

var errUnknownMethod = errors.New("compress: unknown method")
var errInvalidLevel = errors.New("compress: invalid level")

// DefaultLevel gzip level used unless SetLevel is called
const DefaultLevel = gzip.DefaultCompression

// CheckLevel reject levels the gzip writer does not accept
func CheckLevel(level int) error {
	if level < gzip.StatelessCompression || level > gzip.BestCompression {
		return fmt.Errorf("%w: %d", errInvalidLevel, level)
	}
	return nil
}

// Method compress method
type Method byte

const (
	// Gzip gzip method
	Gzip Method = 1 << 0
	// Xz xz (lzma2) method
	Xz Method = 1 << 1
)

// String returns the method name
func (m Method) String() string {
	switch m {
	case Gzip:
		return "gzip"
	case Xz:
		return "xz"
	default:
		return "unknown"
	}
}

type compresser interface {
	io.Writer
	Close() error
}

// Compresser whole buffer compresser
type Compresser struct {
	nc    func(io.Writer, int) (compresser, error)
	nd    func(io.Reader) (io.ReadCloser, error)
	level int
}

// New create new compresser, returns nil for an unknown method
func New(m Method) *Compresser {
	switch m {
	case Gzip:
		return &Compresser{
			nc:    newGzipCompresser,
			nd:    newGzipDecompresser,
			level: DefaultLevel,
		}
	case Xz:
		return &Compresser{
			nc: newXzCompresser,
			nd: newXzDecompresser,
		}
	default:
		return nil
	}
}

// Compress compress func
func (cp *Compresser) Compress(data []byte) ([]byte, error) {
	if cp == nil {
		return nil, errUnknownMethod
	}
	var buf bytes.Buffer
	w, err := cp.nc(&buf, cp.level)
	if err != nil {
		return nil, err
	}
	_, err = io.Copy(w, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	err = w.Close()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress decompress func
func (cp *Compresser) Decompress(data []byte) ([]byte, error) {
	if cp == nil {
		return nil, errUnknownMethod
	}
	r, err := cp.nd(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// SetLevel set compress level, ignored by xz
func (cp *Compresser) SetLevel(level int) {
	cp.level = level
}
