// Package unistego hides a byte stream in a run of Unicode codepoints.
//
// Every body codepoint is drawn from one of four disjoint Unicode blocks.
// Which block a codepoint comes from carries two bits of payload, the
// offset inside the block carries the rest, so no bits are ever spent on
// announcing the active alphabet. The stream starts with a fixed three
// codepoint CJK header holding the payload length.
package unistego

import (
	"errors"
	"unicode/utf8"

	"github.com/lwch/wackypixels/encoding"
	"github.com/lwch/wackypixels/internal/bitqueue"
)

// ErrLengthMismatch decoded byte count differs from the header
var ErrLengthMismatch = errors.New("unistego: decoded length mismatch")

// ErrTooLarge payload does not fit in the length header
var ErrTooLarge = errors.New("unistego: payload too large")

var errMissingHeader = errors.New("unistego: missing header")
var errInvalidHeader = errors.New("unistego: invalid header char")
var errInvalidUTF8 = errors.New("unistego: invalid utf-8")
var errInvalidSymbol = errors.New("unistego: symbol offset out of range")

const (
	headerChars = 3
	headerDepth = 14
	modeBits    = 2
	// MaxLength largest payload the header can describe
	MaxLength = 1<<(headerChars*headerDepth) - 1
)

type mode byte

const (
	modeInvisible mode = iota // 00
	modeCJK                   // 01
	modeEmoji                 // 10
	modeAlphanum              // 11
)

type alphabet struct {
	base  rune
	last  rune // inclusive upper bound of the block
	depth int
}

var alphabets = [4]alphabet{
	modeInvisible: {base: 0xE0100, last: 0xE01EF, depth: 7},
	modeCJK:       {base: 0x4E00, last: 0x9FFF, depth: 14},
	modeEmoji:     {base: 0x1F600, last: 0x1F63F, depth: 6},
	modeAlphanum:  {base: 0x1D400, last: 0x1D7FF, depth: 10},
}

// fillBits pending bits required before a symbol is cut
const fillBits = modeBits + headerDepth

// queueBits enough for fillBits-1 pending bits plus one more byte on
// encode, and for 7 pending bits plus a full symbol on decode
const queueBits = 32

func classify(r rune) (mode, bool) {
	for m, a := range alphabets {
		if r >= a.base && r <= a.last {
			return mode(m), true
		}
	}
	return 0, false
}

// Codec unicode steganographic transform
type Codec struct{}

// New create codec
func New() *Codec {
	return &Codec{}
}

// Name transform name
func (*Codec) Name() string {
	return "Unicode Encoding"
}

// Extension file extension of encoded data
func (*Codec) Extension() string {
	return "txt"
}

// Encode pack data into utf-8 encoded codepoints
func (*Codec) Encode(data []byte) ([]byte, error) {
	if uint64(len(data)) > MaxLength {
		return nil, encoding.Wrap(encoding.KindText, ErrTooLarge)
	}
	// every body symbol carries at least 8 bits in 3 or 4 utf-8 bytes
	out := make([]byte, 0, headerChars*3+len(data)*4+4)

	hdr := alphabets[modeCJK]
	size := uint64(len(data))
	for i := 0; i < headerChars; i++ {
		chunk := (size >> (i * headerDepth)) & (1<<headerDepth - 1)
		out = utf8.AppendRune(out, hdr.base+rune(chunk))
	}

	q := bitqueue.New(queueBits)
	idx := 0
	for idx < len(data) || q.Len() > 0 {
		for q.Len() < fillBits && idx < len(data) {
			if err := q.Push(uint64(data[idx]), 8); err != nil {
				return nil, encoding.Wrap(encoding.KindText, err)
			}
			idx++
		}
		m, err := q.PopPadded(modeBits)
		if err != nil {
			return nil, encoding.Wrap(encoding.KindText, err)
		}
		a := alphabets[m]
		v, err := q.PopPadded(a.depth)
		if err != nil {
			return nil, encoding.Wrap(encoding.KindText, err)
		}
		out = utf8.AppendRune(out, a.base+rune(v))
	}
	return out, nil
}

// Decode recover the payload, codepoints outside the four alphabets are
// skipped
func (*Codec) Decode(data []byte) ([]byte, error) {
	if !utf8.Valid(data) {
		return nil, encoding.Wrap(encoding.KindText, errInvalidUTF8)
	}

	hdr := alphabets[modeCJK]
	var size uint64
	for i := 0; i < headerChars; i++ {
		if len(data) == 0 {
			return nil, encoding.Wrap(encoding.KindInvalidData, errMissingHeader)
		}
		r, n := utf8.DecodeRune(data)
		data = data[n:]
		if r < hdr.base || r-hdr.base >= 1<<headerDepth {
			return nil, encoding.Wrap(encoding.KindInvalidData, errInvalidHeader)
		}
		size |= uint64(r-hdr.base) << (i * headerDepth)
	}

	// the header is untrusted, never reserve more than the input can hold
	capacity := size
	if limit := uint64(len(data)); capacity > limit {
		capacity = limit
	}
	out := make([]byte, 0, capacity)

	q := bitqueue.New(queueBits)
	for len(data) > 0 {
		r, n := utf8.DecodeRune(data)
		data = data[n:]
		m, ok := classify(r)
		if !ok {
			continue
		}
		a := alphabets[m]
		offset := uint64(r - a.base)
		if offset >= 1<<a.depth {
			return nil, encoding.Wrap(encoding.KindInvalidData, errInvalidSymbol)
		}
		if err := q.Push(uint64(m)<<a.depth|offset, modeBits+a.depth); err != nil {
			return nil, encoding.Wrap(encoding.KindText, err)
		}
		for q.Len() >= 8 && uint64(len(out)) < size {
			b, err := q.Pop(8)
			if err != nil {
				return nil, encoding.Wrap(encoding.KindText, err)
			}
			out = append(out, byte(b))
		}
		if uint64(len(out)) == size {
			// trailing padding, nothing more will be emitted
			q.Reset()
		}
	}

	if uint64(len(out)) != size {
		return nil, encoding.Wrap(encoding.KindInvalidData, ErrLengthMismatch)
	}
	return out, nil
}
