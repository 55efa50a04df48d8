// Package qam modulates a byte stream onto a two channel 8-bit PCM
// waveform with a 16 point QAM constellation.
//
// Channel 0 carries the in-phase (I) amplitude and channel 1 the
// quadrature (Q) amplitude. The waveform opens with a 32 bit length header
// sent as full scale pulses, followed by two symbols per byte, high nibble
// first. Every symbol is repeated Oversampling times and averaged back on
// demodulation.
package qam

import (
	"errors"
	"fmt"
	"math"

	"github.com/lwch/wackypixels/encoding"
)

const (
	// SampleRate samples per second per channel
	SampleRate = 8000
	// Channels I and Q
	Channels = 2
	// BitDepth bits per sample
	BitDepth = 8
	// Oversampling repeated samples per symbol per channel
	Oversampling = 2

	headerBits  = 32
	headerLevel = 127
	// MaxLength largest payload the header can describe
	MaxLength = math.MaxUint32
)

// ErrNotEnoughSamples the waveform is shorter than its header announces
var ErrNotEnoughSamples = errors.New("qam: not enough samples")

// ErrTooLarge payload does not fit in the length header
var ErrTooLarge = errors.New("qam: payload too large")

const headerSamples = headerBits * Oversampling * Channels

// symbolSamples interleaved samples one symbol occupies
const symbolSamples = Oversampling * Channels

// SampleCount interleaved samples produced for a payload of n bytes
func SampleCount(n int) int {
	return headerSamples + n*2*symbolSamples
}

// Modulate build the interleaved I/Q samples for data
func Modulate(data []byte) ([]int8, error) {
	if uint64(len(data)) > MaxLength {
		return nil, ErrTooLarge
	}
	samples := make([]int8, 0, SampleCount(len(data)))
	size := uint32(len(data))
	for i := 0; i < headerBits; i++ {
		v := int8(-headerLevel)
		if (size>>i)&1 == 1 {
			v = headerLevel
		}
		for s := 0; s < Oversampling; s++ {
			samples = append(samples, v, v)
		}
	}
	for _, b := range data {
		samples = appendSymbol(samples, b>>4)
		samples = appendSymbol(samples, b&0x0F)
	}
	return samples, nil
}

func appendSymbol(samples []int8, symbol byte) []int8 {
	p := mapSymbol(symbol)
	for s := 0; s < Oversampling; s++ {
		samples = append(samples, p.i, p.q)
	}
	return samples
}

// average mean of one channel across a symbol window starting at idx,
// truncated toward zero
func average(samples []int8, idx, channel int) int8 {
	var sum int
	for s := 0; s < Oversampling; s++ {
		sum += int(samples[idx+s*Channels+channel])
	}
	return int8(sum / Oversampling)
}

// Demodulate recover the payload from interleaved I/Q samples
func Demodulate(samples []int8) ([]byte, error) {
	if len(samples) < headerSamples {
		return nil, fmt.Errorf("%w: have %d, need %d for the header",
			ErrNotEnoughSamples, len(samples), headerSamples)
	}
	var size uint32
	for i := 0; i < headerBits; i++ {
		if average(samples, i*symbolSamples, 0) > 0 {
			size |= 1 << i
		}
	}

	need := uint64(headerSamples) + uint64(size)*2*symbolSamples
	if uint64(len(samples)) < need {
		return nil, fmt.Errorf("%w: have %d, need %d",
			ErrNotEnoughSamples, len(samples), need)
	}

	out := make([]byte, 0, size)
	idx := headerSamples
	for n := uint32(0); n < size; n++ {
		var b byte
		for nibble := 0; nibble < 2; nibble++ {
			if idx+symbolSamples > len(samples) {
				return nil, fmt.Errorf("%w: byte %d nibble %d at sample %d of %d",
					ErrNotEnoughSamples, n, nibble, idx, len(samples))
			}
			symbol := demapSymbol(average(samples, idx, 0), average(samples, idx, 1))
			b = b<<4 | symbol
			idx += symbolSamples
		}
		out = append(out, b)
	}
	return out, nil
}

// Codec 16-QAM audio transform
type Codec struct{}

// New create codec
func New() *Codec {
	return &Codec{}
}

// Name transform name
func (*Codec) Name() string {
	return "WAV Audio"
}

// Extension file extension of encoded data
func (*Codec) Extension() string {
	return "wav"
}

// Encode modulate data into a wav file
func (*Codec) Encode(data []byte) ([]byte, error) {
	samples, err := Modulate(data)
	if err != nil {
		return nil, encoding.Wrap(encoding.KindAudio, err)
	}
	wav, err := writeWAV(samples)
	if err != nil {
		return nil, encoding.Wrap(encoding.KindAudio, err)
	}
	return wav, nil
}

// Decode demodulate a wav file produced by Encode
func (*Codec) Decode(data []byte) ([]byte, error) {
	samples, err := readWAV(data)
	if err != nil {
		return nil, encoding.Wrap(encoding.KindAudio, err)
	}
	out, err := Demodulate(samples)
	if err != nil {
		return nil, encoding.Wrap(encoding.KindInvalidData, err)
	}
	return out, nil
}
