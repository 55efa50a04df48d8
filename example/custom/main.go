package main

import (
	"bytes"
	"log"

	"github.com/lwch/wackypixels"
)

func assert(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	p := wackypixels.New().
		Add(wackypixels.StageGzip).
		Add(wackypixels.StageUnicode).
		Add(wackypixels.StageWav)
	payload := []byte("hello, wacky pixels")
	enc, err := p.EncodeBytes(payload)
	assert(err)
	log.Printf("encoded %d bytes into a %d byte %s file", len(payload), len(enc), p.Extension())
	dec, err := p.DecodeBytes(enc)
	assert(err)
	log.Printf("decoded: %s, match=%v", string(dec), bytes.Equal(payload, dec))
}
