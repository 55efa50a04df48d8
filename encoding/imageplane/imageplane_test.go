package imageplane_test

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lwch/wackypixels/encoding"
	"github.com/lwch/wackypixels/encoding/imageplane"
)

func testImage(t *testing.T) ([]byte, []byte) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	pixels := []color.NRGBA{
		{R: 255, G: 0, B: 0, A: 255},
		{R: 0, G: 255, B: 0, A: 128},
		{R: 0, G: 0, B: 255, A: 1},
		{R: 10, G: 20, B: 30, A: 0},
		{R: 1, G: 2, B: 3, A: 4},
		{R: 200, G: 100, B: 50, A: 250},
	}
	for i, c := range pixels {
		img.SetNRGBA(i%3, i/3, c)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes(), img.Pix
}

func TestEncodeLayout(t *testing.T) {
	t.Parallel()

	src, pix := testImage(t)
	out, err := imageplane.New().Encode(src)
	require.NoError(t, err)

	require.Len(t, out, imageplane.HeaderSize+len(pix))
	require.Equal(t, uint32(3), binary.LittleEndian.Uint32(out[0:]))
	require.Equal(t, uint32(2), binary.LittleEndian.Uint32(out[4:]))
	require.Equal(t, byte(imageplane.FormatRGBA), out[8])
	require.Equal(t, pix, out[imageplane.HeaderSize:])
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	c := imageplane.New()
	src, pix := testImage(t)
	plane, err := c.Encode(src)
	require.NoError(t, err)

	pngData, err := c.Decode(plane)
	require.NoError(t, err)

	again, err := c.Encode(pngData)
	require.NoError(t, err)
	require.Equal(t, plane, again)
	require.Equal(t, pix, again[imageplane.HeaderSize:])
}

func TestOpaqueSource(t *testing.T) {
	t.Parallel()

	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(1, 1, color.Gray{Y: 77})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	out, err := imageplane.New().Encode(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, []byte{77, 77, 77, 255}, out[imageplane.HeaderSize+12:])
}

func TestRejectFormat(t *testing.T) {
	t.Parallel()

	plane := make([]byte, imageplane.HeaderSize+4)
	binary.LittleEndian.PutUint32(plane[0:], 1)
	binary.LittleEndian.PutUint32(plane[4:], 1)
	for _, format := range []byte{0, 1, 3, 5, 255} {
		plane[8] = format
		_, err := imageplane.New().Decode(plane)
		require.ErrorIs(t, err, imageplane.ErrUnsupportedFormat)
		kind, ok := encoding.KindOf(err)
		require.True(t, ok)
		require.Equal(t, encoding.KindImage, kind)
	}
}

func TestRejectLength(t *testing.T) {
	t.Parallel()

	for _, extra := range []int{-1, 1, 4} {
		plane := make([]byte, imageplane.HeaderSize+2*2*4+extra)
		binary.LittleEndian.PutUint32(plane[0:], 2)
		binary.LittleEndian.PutUint32(plane[4:], 2)
		plane[8] = imageplane.FormatRGBA
		_, err := imageplane.New().Decode(plane)
		require.ErrorIs(t, err, imageplane.ErrLengthMismatch)
	}
}

func TestRejectHugeDimensions(t *testing.T) {
	t.Parallel()

	plane := make([]byte, imageplane.HeaderSize)
	binary.LittleEndian.PutUint32(plane[0:], 0xFFFFFFFF)
	binary.LittleEndian.PutUint32(plane[4:], 0xFFFFFFFF)
	plane[8] = imageplane.FormatRGBA
	_, err := imageplane.New().Decode(plane)
	require.ErrorIs(t, err, imageplane.ErrLengthMismatch)
}

func TestTooShort(t *testing.T) {
	t.Parallel()

	_, err := imageplane.New().Decode([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestNotAnImage(t *testing.T) {
	t.Parallel()

	_, err := imageplane.New().Encode([]byte("plain text"))
	require.Error(t, err)
	kind, ok := encoding.KindOf(err)
	require.True(t, ok)
	require.Equal(t, encoding.KindImage, kind)
}
