package compress

import "github.com/lwch/wackypixels/encoding"

// Codec compression transform
type Codec struct {
	cp   *Compresser
	name string
	ext  string
}

// NewLzma create the xz transform
func NewLzma() *Codec {
	return &Codec{cp: New(Xz), name: "LZMA Compression", ext: "xz"}
}

// NewGzip create the gzip transform
func NewGzip() *Codec {
	return &Codec{cp: New(Gzip), name: "Gzip Compression", ext: "gz"}
}

// NewGzipLevel create the gzip transform compressing at level
func NewGzipLevel(level int) *Codec {
	c := NewGzip()
	c.cp.SetLevel(level)
	return c
}

// Name transform name
func (c *Codec) Name() string {
	return c.name
}

// Extension file extension of encoded data
func (c *Codec) Extension() string {
	return c.ext
}

// Encode compress data
func (c *Codec) Encode(data []byte) ([]byte, error) {
	out, err := c.cp.Compress(data)
	if err != nil {
		return nil, encoding.Wrap(encoding.KindCompression, err)
	}
	return out, nil
}

// Decode decompress data
func (c *Codec) Decode(data []byte) ([]byte, error) {
	out, err := c.cp.Decompress(data)
	if err != nil {
		return nil, encoding.Wrap(encoding.KindCompression, err)
	}
	return out, nil
}
