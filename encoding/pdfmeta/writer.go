package pdfmeta

import (
	"bytes"
	"fmt"
)

const (
	version     = "1.7"
	visibleText = "Hello, World!"
)

// writer serializes numbered objects and tracks their offsets for the
// cross reference table
type writer struct {
	buf     bytes.Buffer
	offsets []int // offsets[n-1] is the offset of object n
}

func newWriter() *writer {
	w := &writer{}
	fmt.Fprintf(&w.buf, "%%PDF-%s\n", version)
	// binary marker so transfer tools treat the file as binary
	w.buf.WriteString("%\xE2\xE3\xCF\xD3\n")
	return w
}

// reserve allocate an object number ahead of writing it
func (w *writer) reserve() int {
	w.offsets = append(w.offsets, -1)
	return len(w.offsets)
}

func (w *writer) begin(num int) {
	w.offsets[num-1] = w.buf.Len()
	fmt.Fprintf(&w.buf, "%d 0 obj\n", num)
}

func (w *writer) object(num int, body string) {
	w.begin(num)
	w.buf.WriteString(body)
	w.buf.WriteString("\nendobj\n")
}

func (w *writer) stream(num int, dict string, content []byte) {
	w.begin(num)
	w.buf.WriteString(dict)
	w.buf.WriteString("\nstream\n")
	w.buf.Write(content)
	w.buf.WriteString("\nendstream\nendobj\n")
}

func (w *writer) finish(root, info int) []byte {
	xref := w.buf.Len()
	fmt.Fprintf(&w.buf, "xref\n0 %d\n", len(w.offsets)+1)
	w.buf.WriteString("0000000000 65535 f\r\n")
	for _, off := range w.offsets {
		fmt.Fprintf(&w.buf, "%010d 00000 n\r\n", off)
	}
	fmt.Fprintf(&w.buf, "trailer\n<< /Size %d /Root %d 0 R /Info %d 0 R >>\n",
		len(w.offsets)+1, root, info)
	fmt.Fprintf(&w.buf, "startxref\n%d\n%%%%EOF\n", xref)
	return w.buf.Bytes()
}

// build a one page document whose info dictionary points at payload
func build(payload []byte) []byte {
	w := newWriter()

	contents := w.reserve()
	page := w.reserve()
	pages := w.reserve()
	catalog := w.reserve()
	hidden := w.reserve()
	info := w.reserve()

	text := []byte(fmt.Sprintf("BT /F1 24 Tf 100 700 Td (%s) Tj ET", visibleText))
	w.stream(contents, fmt.Sprintf("<< /Length %d >>", len(text)), text)
	w.object(page, fmt.Sprintf("<< /Type /Page /Parent %d 0 R "+
		"/Resources << /Font << /F1 << /Type /Font /Subtype /Type1 /BaseFont /Helvetica >> >> >> "+
		"/Contents %d 0 R /MediaBox [0 0 600 800] >>", pages, contents))
	w.object(pages, fmt.Sprintf("<< /Type /Pages /Kids [%d 0 R] /Count 1 >>", page))
	w.object(catalog, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pages))
	w.stream(hidden, fmt.Sprintf("<< /Type /XObject /Subtype /Metadata /Length %d >>", len(payload)), payload)
	w.object(info, fmt.Sprintf("<< /%s %d 0 R >>", InfoKey, hidden))

	return w.finish(catalog, info)
}
