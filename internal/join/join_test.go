package join

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fixedHeader [2]byte

func (h fixedHeader) Marshal() []byte {
	return h[:]
}

func TestMarshal(t *testing.T) {
	payload := Bytes("payload")
	j := New(fixedHeader{0xCA, 0xFE}, payload)
	out := j.Marshal()
	require.Equal(t, append([]byte{0xCA, 0xFE}, "payload"...), out)

	// the frame never aliases the payload
	out[2] = 'P'
	require.Equal(t, Bytes("payload"), payload)
}

func TestMarshalPartial(t *testing.T) {
	var j Joiner
	require.Empty(t, j.Marshal())
	require.Equal(t, []byte{1, 2}, New(nil, Bytes{1, 2}).Marshal())
	require.Equal(t, []byte{0, 0}, New(fixedHeader{}, nil).Marshal())
}
