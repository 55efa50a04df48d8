// Package imageplane flattens an image container into its raw RGBA plane.
//
// Encoded layout, all integers little endian:
//
//	+----------+-----------+-----------+-----------------------------+
//	| Width(4) | Height(4) | Format(1) | Pixels(Width*Height*4)      |
//	+----------+-----------+-----------+-----------------------------+
//
// Pixels are non-premultiplied RGBA rows, top to bottom. Decoding always
// produces a PNG.
package imageplane

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/lwch/wackypixels/encoding"
	"github.com/lwch/wackypixels/internal/join"
)

// FormatRGBA the only supported pixel format
const FormatRGBA = 4

// HeaderSize encoded header size
const HeaderSize = 9

// ErrUnsupportedFormat format byte is not FormatRGBA
var ErrUnsupportedFormat = errors.New("imageplane: unsupported format, only rgba supported")

// ErrLengthMismatch pixel data length does not match the dimensions
var ErrLengthMismatch = errors.New("imageplane: pixel data length mismatch")

var errTooShort = errors.New("imageplane: data too short")

type header struct {
	Width  uint32
	Height uint32
	Format byte
}

func (h *header) Marshal() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:], h.Width)
	binary.LittleEndian.PutUint32(buf[4:], h.Height)
	buf[8] = h.Format
	return buf
}

// Codec raw image plane transform
type Codec struct{}

// New create codec
func New() *Codec {
	return &Codec{}
}

// Name transform name
func (*Codec) Name() string {
	return "PNG serialization"
}

// Extension file extension of encoded data
func (*Codec) Extension() string {
	return "bin"
}

// Encode decode any registered image container into header+rgba plane
func (*Codec) Encode(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, encoding.Wrap(encoding.KindImage, err)
	}
	plane := toNRGBA(img)
	hdr := header{
		Width:  uint32(plane.Rect.Dx()),
		Height: uint32(plane.Rect.Dy()),
		Format: FormatRGBA,
	}
	return join.New(&hdr, join.Bytes(plane.Pix)).Marshal(), nil
}

// Decode validate the plane and re-encode it as png
func (*Codec) Decode(data []byte) ([]byte, error) {
	if len(data) < HeaderSize {
		return nil, encoding.Wrap(encoding.KindImage, errTooShort)
	}
	hdr := header{
		Width:  binary.LittleEndian.Uint32(data[0:]),
		Height: binary.LittleEndian.Uint32(data[4:]),
		Format: data[8],
	}
	if hdr.Format != FormatRGBA {
		return nil, encoding.Wrap(encoding.KindImage, ErrUnsupportedFormat)
	}
	want := uint64(HeaderSize) + uint64(hdr.Width)*uint64(hdr.Height)*4
	if uint64(len(data)) != want {
		return nil, encoding.Wrap(encoding.KindImage,
			fmt.Errorf("%w: have %d bytes, want %d", ErrLengthMismatch, len(data), want))
	}

	pix := make([]byte, len(data)-HeaderSize)
	copy(pix, data[HeaderSize:])
	img := &image.NRGBA{
		Pix:    pix,
		Stride: int(hdr.Width) * 4,
		Rect:   image.Rect(0, 0, int(hdr.Width), int(hdr.Height)),
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, encoding.Wrap(encoding.KindImage, err)
	}
	return buf.Bytes(), nil
}

// toNRGBA copy img into a zero based, tightly packed NRGBA plane; NRGBA
// sources are copied row by row so translucent pixels keep their exact
// values
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if src, ok := img.(*image.NRGBA); ok {
		row := b.Dx() * 4
		for y := 0; y < b.Dy(); y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+row], src.Pix[off:off+row])
		}
		return dst
	}
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst
}
