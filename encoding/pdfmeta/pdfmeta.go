// Package pdfmeta hides a payload inside a one page PDF document.
//
// The payload is stored verbatim as the content of a stream object that no
// page references. The document info dictionary carries a single entry,
// InfoKey, pointing at that stream. Decode follows startxref, the cross
// reference table, the trailer /Info entry and finally InfoKey.
package pdfmeta

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/lwch/wackypixels/encoding"
)

// InfoKey info dictionary entry that references the payload stream
const InfoKey = "WackyPixels"

// ErrNotFound document has no payload reference
var ErrNotFound = errors.New("pdfmeta: payload not found")

// ErrMalformed document structure could not be followed
var ErrMalformed = errors.New("pdfmeta: malformed document")

// Codec pdf transform
type Codec struct{}

// New create codec
func New() *Codec {
	return &Codec{}
}

// Name transform name
func (*Codec) Name() string {
	return "PDF"
}

// Extension file extension of encoded data
func (*Codec) Extension() string {
	return "pdf"
}

// Encode wrap data into a pdf document
func (*Codec) Encode(data []byte) ([]byte, error) {
	return build(data), nil
}

// Decode extract the payload of a document produced by Encode
func (*Codec) Decode(data []byte) ([]byte, error) {
	payload, err := Extract(data)
	if err != nil {
		return nil, encoding.Wrap(encoding.KindDocument, err)
	}
	return payload, nil
}

// Extract returns a copy of the stream referenced by InfoKey
func Extract(data []byte) ([]byte, error) {
	doc, err := parse(data)
	if err != nil {
		return nil, err
	}
	infoRef, ok := doc.trailer["Info"]
	if !ok {
		return nil, fmt.Errorf("%w: trailer has no /Info", ErrNotFound)
	}
	info, err := doc.resolve(infoRef)
	if err != nil {
		return nil, err
	}
	infoDict, ok := info.(dict)
	if !ok {
		return nil, fmt.Errorf("%w: /Info is not a dictionary", ErrMalformed)
	}
	target, ok := infoDict[name(InfoKey)]
	if !ok {
		return nil, fmt.Errorf("%w: /Info has no /%s", ErrNotFound, InfoKey)
	}
	r, ok := target.(ref)
	if !ok {
		return nil, fmt.Errorf("%w: /%s is not a reference", ErrMalformed, InfoKey)
	}
	obj, err := doc.load(r.num, true)
	if err != nil {
		return nil, err
	}
	s, ok := obj.(*stream)
	if !ok {
		return nil, fmt.Errorf("%w: object %d is not a stream", ErrMalformed, r.num)
	}
	return s.content, nil
}

// document cross reference table and trailer of a parsed file
type document struct {
	data    []byte
	offsets map[int]int
	trailer dict
}

func parse(data []byte) (*document, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, fmt.Errorf("%w: missing %%PDF header", ErrMalformed)
	}
	idx := bytes.LastIndex(data, []byte("startxref"))
	if idx < 0 {
		return nil, fmt.Errorf("%w: missing startxref", ErrMalformed)
	}
	l := &lexer{data: data, pos: idx + len("startxref")}
	xref, err := l.integer()
	if err != nil {
		return nil, err
	}
	if xref < 0 || xref >= len(data) {
		return nil, fmt.Errorf("%w: startxref %d out of range", ErrMalformed, xref)
	}

	doc := &document{data: data, offsets: make(map[int]int)}
	l.pos = xref
	if err := l.expect("xref"); err != nil {
		return nil, err
	}
	for {
		l.skipSpace()
		if l.hasPrefix("trailer") {
			l.pos += len("trailer")
			break
		}
		start, err := l.integer()
		if err != nil {
			return nil, err
		}
		count, err := l.integer()
		if err != nil {
			return nil, err
		}
		if start < 0 || count < 0 {
			return nil, fmt.Errorf("%w: bad xref subsection %d %d", ErrMalformed, start, count)
		}
		for i := 0; i < count; i++ {
			off, err := l.integer()
			if err != nil {
				return nil, err
			}
			if _, err := l.integer(); err != nil {
				return nil, err
			}
			state, err := l.token()
			if err != nil {
				return nil, err
			}
			switch state {
			case "n":
				doc.offsets[start+i] = off
			case "f":
			default:
				return nil, fmt.Errorf("%w: bad xref entry state %q", ErrMalformed, state)
			}
		}
	}
	obj, err := l.object()
	if err != nil {
		return nil, err
	}
	trailer, ok := obj.(dict)
	if !ok {
		return nil, fmt.Errorf("%w: trailer is not a dictionary", ErrMalformed)
	}
	doc.trailer = trailer
	return doc, nil
}

func (d *document) resolve(obj any) (any, error) {
	r, ok := obj.(ref)
	if !ok {
		return obj, nil
	}
	return d.load(r.num, false)
}

// load read indirect object num, stream content is only read when
// withStream is set
func (d *document) load(num int, withStream bool) (any, error) {
	off, ok := d.offsets[num]
	if !ok {
		return nil, fmt.Errorf("%w: object %d not in xref", ErrMalformed, num)
	}
	if off < 0 || off >= len(d.data) {
		return nil, fmt.Errorf("%w: object %d offset %d out of range", ErrMalformed, num, off)
	}
	l := &lexer{data: d.data, pos: off}
	n, err := l.integer()
	if err != nil {
		return nil, err
	}
	if n != num {
		return nil, fmt.Errorf("%w: expected object %d at offset %d, got %d", ErrMalformed, num, off, n)
	}
	if _, err := l.integer(); err != nil {
		return nil, err
	}
	if err := l.expect("obj"); err != nil {
		return nil, err
	}
	obj, err := l.object()
	if err != nil {
		return nil, err
	}
	dct, ok := obj.(dict)
	if !ok || !withStream {
		return obj, nil
	}
	l.skipSpace()
	if !l.hasPrefix("stream") {
		return dct, nil
	}
	l.pos += len("stream")
	switch {
	case l.hasPrefix("\r\n"):
		l.pos += 2
	case l.hasPrefix("\n"):
		l.pos++
	}
	length, err := d.resolve(dct["Length"])
	if err != nil {
		return nil, err
	}
	size, ok := length.(int)
	if !ok || size < 0 {
		return nil, fmt.Errorf("%w: object %d has no valid /Length", ErrMalformed, num)
	}
	if size > len(d.data)-l.pos {
		return nil, fmt.Errorf("%w: object %d stream overruns the file", ErrMalformed, num)
	}
	content := make([]byte, size)
	copy(content, d.data[l.pos:l.pos+size])
	return &stream{dict: dct, content: content}, nil
}
