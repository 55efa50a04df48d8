package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lwch/wackypixels/encoding"
)

func testData() [][]byte {
	rng := rand.New(rand.NewSource(5))
	random := make([]byte, 64*1024)
	rng.Read(random)
	return [][]byte{
		nil,
		{0},
		[]byte("hello world"),
		bytes.Repeat([]byte("wacky pixels "), 1000),
		random,
	}
}

func TestCompress(t *testing.T) {
	for _, m := range []Method{Gzip, Xz} {
		cp := New(m)
		require.NotNil(t, cp, m.String())
		for _, data := range testData() {
			enc, err := cp.Compress(data)
			require.NoError(t, err, m.String())
			dec, err := cp.Decompress(enc)
			require.NoError(t, err, m.String())
			require.True(t, bytes.Equal(data, dec), "%s: round trip mismatch for %d bytes", m, len(data))
		}
	}
}

func TestCompressShrinks(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 100000)
	for _, m := range []Method{Gzip, Xz} {
		enc, err := New(m).Compress(data)
		require.NoError(t, err)
		require.Less(t, len(enc), len(data)/10, m.String())
	}
}

func TestSetLevel(t *testing.T) {
	cp := New(Gzip)
	cp.SetLevel(9)
	data := bytes.Repeat([]byte("level"), 500)
	enc, err := cp.Compress(data)
	require.NoError(t, err)
	dec, err := cp.Decompress(enc)
	require.NoError(t, err)
	require.Equal(t, data, dec)
}

func TestCheckLevel(t *testing.T) {
	for level := -3; level <= 9; level++ {
		require.NoError(t, CheckLevel(level), level)
	}
	require.ErrorIs(t, CheckLevel(10), errInvalidLevel)
	require.ErrorIs(t, CheckLevel(-4), errInvalidLevel)
}

func TestGzipLevelCodec(t *testing.T) {
	data := bytes.Repeat([]byte("wacky pixels "), 1000)
	stored, err := NewGzipLevel(0).Encode(data)
	require.NoError(t, err)
	best, err := NewGzipLevel(9).Encode(data)
	require.NoError(t, err)
	require.Greater(t, len(stored), len(data))
	require.Less(t, len(best), len(stored))
	for _, enc := range [][]byte{stored, best} {
		dec, err := NewGzip().Decode(enc)
		require.NoError(t, err)
		require.Equal(t, data, dec)
	}
}

func TestStandardMagic(t *testing.T) {
	gz, err := New(Gzip).Compress([]byte("x"))
	require.NoError(t, err)
	require.Equal(t, []byte{0x1f, 0x8b}, gz[:2])

	xz, err := New(Xz).Compress([]byte("x"))
	require.NoError(t, err)
	require.Equal(t, []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}, xz[:6])
}

func TestUnknownMethod(t *testing.T) {
	require.Nil(t, New(Method(0)))
	var cp *Compresser
	_, err := cp.Compress([]byte("x"))
	require.ErrorIs(t, err, errUnknownMethod)
}

func TestCodecs(t *testing.T) {
	for _, c := range []*Codec{NewLzma(), NewGzip()} {
		for _, data := range testData() {
			enc, err := c.Encode(data)
			require.NoError(t, err, c.Name())
			dec, err := c.Decode(enc)
			require.NoError(t, err, c.Name())
			require.True(t, bytes.Equal(data, dec), c.Name())
		}
	}
	require.Equal(t, "LZMA Compression", NewLzma().Name())
	require.Equal(t, "xz", NewLzma().Extension())
	require.Equal(t, "Gzip Compression", NewGzip().Name())
	require.Equal(t, "gz", NewGzip().Extension())
}

func TestCodecCorrupt(t *testing.T) {
	for _, c := range []*Codec{NewLzma(), NewGzip()} {
		_, err := c.Decode([]byte("this is not compressed"))
		require.Error(t, err, c.Name())
		kind, ok := encoding.KindOf(err)
		require.True(t, ok)
		require.Equal(t, encoding.KindCompression, kind)
	}
}
