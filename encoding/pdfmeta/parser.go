package pdfmeta

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

var errUnexpectedEOF = fmt.Errorf("%w: unexpected end of data", ErrMalformed)

type name string

type keyword string

type ref struct {
	num, gen int
}

type dict map[name]any

type array []any

type stream struct {
	dict    dict
	content []byte
}

func isSpace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isRegular(c byte) bool {
	return !isSpace(c) && !isDelim(c)
}

// lexer reads pdf objects out of a byte slice
type lexer struct {
	data []byte
	pos  int
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case isSpace(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) hasPrefix(p string) bool {
	return bytes.HasPrefix(l.data[l.pos:], []byte(p))
}

func (l *lexer) regular() string {
	start := l.pos
	for l.pos < len(l.data) && isRegular(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

// token read the next bare token
func (l *lexer) token() (string, error) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return "", errUnexpectedEOF
	}
	return l.regular(), nil
}

func (l *lexer) expect(kw string) error {
	got, err := l.token()
	if err != nil {
		return err
	}
	if got != kw {
		return fmt.Errorf("%w: expected %q, got %q", ErrMalformed, kw, got)
	}
	return nil
}

func (l *lexer) integer() (int, error) {
	tok, err := l.token()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: expected integer, got %q", ErrMalformed, tok)
	}
	return n, nil
}

// object parse one direct object, references are returned unresolved
func (l *lexer) object() (any, error) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return nil, errUnexpectedEOF
	}
	switch c := l.data[l.pos]; {
	case c == '/':
		l.pos++
		return l.name()
	case l.hasPrefix("<<"):
		l.pos += 2
		return l.dict()
	case c == '<':
		l.pos++
		return l.hexString()
	case c == '[':
		l.pos++
		return l.array()
	case c == '(':
		l.pos++
		return l.literalString()
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return l.number()
	case isRegular(c):
		switch kw := l.regular(); kw {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "null":
			return nil, nil
		default:
			return keyword(kw), nil
		}
	default:
		return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrMalformed, c, l.pos)
	}
}

func (l *lexer) name() (name, error) {
	raw := l.regular()
	if strings.IndexByte(raw, '#') < 0 {
		return name(raw), nil
	}
	var out []byte
	for i := 0; i < len(raw); i++ {
		if raw[i] == '#' && i+2 < len(raw) {
			v, err := strconv.ParseUint(raw[i+1:i+3], 16, 8)
			if err == nil {
				out = append(out, byte(v))
				i += 2
				continue
			}
		}
		out = append(out, raw[i])
	}
	return name(out), nil
}

func (l *lexer) number() (any, error) {
	tok := l.regular()
	n, err := strconv.Atoi(tok)
	if err != nil {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q", ErrMalformed, tok)
		}
		return f, nil
	}
	if n < 0 {
		return n, nil
	}
	// "num gen R" is a reference
	save := l.pos
	l.skipSpace()
	if l.pos < len(l.data) && l.data[l.pos] >= '0' && l.data[l.pos] <= '9' {
		gen, err := strconv.Atoi(l.regular())
		if err == nil {
			l.skipSpace()
			if l.pos < len(l.data) && l.data[l.pos] == 'R' &&
				(l.pos+1 == len(l.data) || !isRegular(l.data[l.pos+1])) {
				l.pos++
				return ref{num: n, gen: gen}, nil
			}
		}
	}
	l.pos = save
	return n, nil
}

func (l *lexer) dict() (dict, error) {
	d := make(dict)
	for {
		l.skipSpace()
		if l.pos >= len(l.data) {
			return nil, errUnexpectedEOF
		}
		if l.hasPrefix(">>") {
			l.pos += 2
			return d, nil
		}
		if l.data[l.pos] != '/' {
			return nil, fmt.Errorf("%w: dictionary key is not a name at offset %d", ErrMalformed, l.pos)
		}
		l.pos++
		key, err := l.name()
		if err != nil {
			return nil, err
		}
		value, err := l.object()
		if err != nil {
			return nil, err
		}
		d[key] = value
	}
}

func (l *lexer) array() (array, error) {
	var arr array
	for {
		l.skipSpace()
		if l.pos >= len(l.data) {
			return nil, errUnexpectedEOF
		}
		if l.data[l.pos] == ']' {
			l.pos++
			return arr, nil
		}
		v, err := l.object()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func (l *lexer) hexString() (string, error) {
	var digits []byte
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		switch {
		case c == '>':
			if len(digits)%2 == 1 {
				digits = append(digits, '0')
			}
			out := make([]byte, len(digits)/2)
			for i := range out {
				v, err := strconv.ParseUint(string(digits[i*2:i*2+2]), 16, 8)
				if err != nil {
					return "", fmt.Errorf("%w: bad hex string", ErrMalformed)
				}
				out[i] = byte(v)
			}
			return string(out), nil
		case isSpace(c):
		default:
			digits = append(digits, c)
		}
	}
	return "", errUnexpectedEOF
}

func (l *lexer) literalString() (string, error) {
	var out []byte
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return string(out), nil
			}
		case '\\':
			if l.pos >= len(l.data) {
				return "", errUnexpectedEOF
			}
			e := l.data[l.pos]
			l.pos++
			switch e {
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case 't':
				c = '\t'
			case 'b':
				c = '\b'
			case 'f':
				c = '\f'
			case '\r':
				if l.pos < len(l.data) && l.data[l.pos] == '\n' {
					l.pos++
				}
				continue
			case '\n':
				continue
			default:
				if e >= '0' && e <= '7' {
					v := int(e - '0')
					for i := 0; i < 2 && l.pos < len(l.data) && l.data[l.pos] >= '0' && l.data[l.pos] <= '7'; i++ {
						v = v*8 + int(l.data[l.pos]-'0')
						l.pos++
					}
					c = byte(v)
				} else {
					c = e
				}
			}
		}
		out = append(out, c)
	}
	return "", errUnexpectedEOF
}
