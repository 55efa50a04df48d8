package pdfmeta

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/lwch/wackypixels/encoding"
)

func TestRoundTrip(t *testing.T) {
	c := New()
	rng := rand.New(rand.NewSource(11))
	random := make([]byte, 4096)
	rng.Read(random)
	for _, data := range [][]byte{
		nil,
		{0},
		[]byte("hello"),
		[]byte("endstream\nendobj\nstartxref\n0\n%%EOF\n"),
		[]byte("\r\n leading whitespace"),
		random,
	} {
		doc, err := c.Encode(data)
		if err != nil {
			t.Fatal(err)
		}
		dec, err := c.Decode(doc)
		if err != nil {
			t.Fatalf("decode %q: %v", data, err)
		}
		if !bytes.Equal(data, dec) {
			t.Fatalf("round trip mismatch for %q", data)
		}
	}
}

func TestDocumentShape(t *testing.T) {
	doc, err := New().Encode([]byte("payload"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF-1.7\n")) {
		t.Fatal("missing pdf header")
	}
	if !bytes.HasSuffix(doc, []byte("%%EOF\n")) {
		t.Fatal("missing eof marker")
	}
	if !bytes.Contains(doc, []byte("(Hello, World!) Tj")) {
		t.Fatal("missing visible page text")
	}
	if !bytes.Contains(doc, []byte("/"+InfoKey+" 5 0 R")) {
		t.Fatal("info dictionary does not reference the payload")
	}
}

func TestDecodeCopies(t *testing.T) {
	doc, err := New().Encode([]byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	dec, err := New().Decode(doc)
	if err != nil {
		t.Fatal(err)
	}
	dec[0] = 'x'
	again, err := New().Decode(doc)
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != "abc" {
		t.Fatal("decode aliases the document")
	}
}

func TestMissingKey(t *testing.T) {
	doc, err := New().Encode([]byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	doc = bytes.Replace(doc, []byte("/"+InfoKey), []byte("/WackyPixelz"), 1)
	_, err = New().Decode(doc)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if kind, _ := encoding.KindOf(err); kind != encoding.KindDocument {
		t.Fatalf("unexpected kind %v", kind)
	}
}

func TestMissingInfo(t *testing.T) {
	doc, err := New().Encode([]byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	doc = bytes.Replace(doc, []byte("/Info 6 0 R"), []byte("           "), 1)
	_, err = New().Decode(doc)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReferenceNotStream(t *testing.T) {
	doc, err := New().Encode([]byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	doc = bytes.Replace(doc, []byte("/"+InfoKey+" 5 0 R"), []byte("/"+InfoKey+" 3 0 R"), 1)
	_, err = New().Decode(doc)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected malformed, got %v", err)
	}
}

func TestGarbage(t *testing.T) {
	doc, err := New().Encode([]byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	for _, data := range [][]byte{
		nil,
		[]byte("not a pdf"),
		[]byte("%PDF-1.7\n"),
		[]byte("%PDF-1.7\nstartxref\n999999\n%%EOF\n"),
		doc[:len(doc)/2],
	} {
		_, err := New().Decode(data)
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("decode %q: expected malformed, got %v", data, err)
		}
		if kind, _ := encoding.KindOf(err); kind != encoding.KindDocument {
			t.Fatalf("unexpected kind %v", kind)
		}
	}
}

func TestLexer(t *testing.T) {
	l := &lexer{data: []byte("<< /Length 7 0 R /Name /A#20B /Arr [1 -2 3.5 (x\\)y) <414243>] /T true >>")}
	obj, err := l.object()
	if err != nil {
		t.Fatal(err)
	}
	d := obj.(dict)
	if d["Length"] != (ref{num: 7, gen: 0}) {
		t.Fatalf("unexpected length %v", d["Length"])
	}
	if d["Name"] != name("A B") {
		t.Fatalf("unexpected name %v", d["Name"])
	}
	arr := d["Arr"].(array)
	if len(arr) != 5 || arr[0] != 1 || arr[1] != -2 || arr[2] != 3.5 || arr[3] != "x)y" || arr[4] != "ABC" {
		t.Fatalf("unexpected array %v", arr)
	}
	if d["T"] != true {
		t.Fatal("unexpected bool")
	}
}

func TestTruncated(t *testing.T) {
	payload := []byte("truncated payload")
	doc, err := New().Encode(payload)
	if err != nil {
		t.Fatal(err)
	}
	eof := bytes.LastIndex(doc, []byte("\n%%EOF"))
	for n := 0; n < len(doc); n++ {
		got, err := Extract(doc[:n])
		if err == nil {
			// only the end of file marker may be missing
			if n < eof || !bytes.Equal(got, payload) {
				t.Fatalf("prefix %d: unexpected success", n)
			}
			continue
		}
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("prefix %d: expected malformed, got %v", n, err)
		}
	}
}

func TestStreamOverrun(t *testing.T) {
	doc, err := New().Encode(bytes.Repeat([]byte{'x'}, 100))
	if err != nil {
		t.Fatal(err)
	}
	bad := bytes.Replace(doc, []byte("/Length 100 >>"), []byte("/Length 999 >>"), 1)
	if bytes.Equal(bad, doc) {
		t.Fatal("length entry not found")
	}
	_, err = Extract(bad)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected malformed, got %v", err)
	}
}
