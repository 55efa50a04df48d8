package qam

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/lwch/wackypixels/internal/utils"
)

var errInvalidContainer = errors.New("qam: invalid wav container")

const (
	pcmFormat = 1
	// 8-bit wav samples are unsigned, zero amplitude sits at 128
	pcmOffset = 128
)

func writeWAV(samples []int8) ([]byte, error) {
	pcm := make([]int, len(samples))
	for i, s := range samples {
		pcm[i] = int(s) + pcmOffset
	}
	var w utils.BytesWriter
	enc := wav.NewEncoder(&w, SampleRate, BitDepth, Channels, pcmFormat)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: Channels,
			SampleRate:  SampleRate,
		},
		Data:           pcm,
		SourceBitDepth: BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close wav: %w", err)
	}
	return w.Bytes(), nil
}

// riffHeaderSize "RIFF", size, "WAVE"
const riffHeaderSize = 12

// checkChunks reject containers whose declared sizes exceed the data, the
// decoder allocates whatever a chunk header announces
func checkChunks(data []byte) error {
	if len(data) < riffHeaderSize ||
		!bytes.Equal(data[0:4], []byte("RIFF")) ||
		!bytes.Equal(data[8:12], []byte("WAVE")) {
		return errInvalidContainer
	}
	if size := binary.LittleEndian.Uint32(data[4:]); uint64(size) > uint64(len(data)-8) {
		return fmt.Errorf("%w: riff size %d exceeds %d bytes", errInvalidContainer, size, len(data)-8)
	}
	pos := riffHeaderSize
	for pos < len(data) {
		if len(data)-pos < 8 {
			return fmt.Errorf("%w: truncated chunk header at offset %d", errInvalidContainer, pos)
		}
		id := data[pos : pos+4]
		size := uint64(binary.LittleEndian.Uint32(data[pos+4:]))
		remain := uint64(len(data) - pos - 8)
		if size > remain {
			return fmt.Errorf("%w: chunk %q declares %d bytes, %d remain",
				errInvalidContainer, id, size, remain)
		}
		// chunks are padded to an even size
		size += size & 1
		if size > remain {
			size = remain
		}
		pos += 8 + int(size)
	}
	return nil
}

func readWAV(data []byte) ([]int8, error) {
	if err := checkChunks(data); err != nil {
		return nil, err
	}
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, errInvalidContainer
	}
	if dec.NumChans != Channels || dec.BitDepth != BitDepth {
		return nil, fmt.Errorf("%w: %d channels of %d bits",
			errInvalidContainer, dec.NumChans, dec.BitDepth)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	samples := make([]int8, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int8(v - pcmOffset)
	}
	return samples, nil
}
