package encoding

import (
	"errors"
	"fmt"
)

// DefaultExtension extension used when a transform does not declare one
const DefaultExtension = "bin"

// Transform reversible byte transform, Decode(Encode(x)) must equal x
// for every x the transform accepts
type Transform interface {
	Encode([]byte) ([]byte, error)
	Decode([]byte) ([]byte, error)
	Name() string
	Extension() string
}

// Kind failure category
type Kind byte

const (
	// KindInvalidData structurally invalid data: length mismatch, bad header
	KindInvalidData Kind = iota
	// KindIO filesystem failure
	KindIO
	// KindImage image container failure
	KindImage
	// KindDocument document container failure
	KindDocument
	// KindCompression compression stream failure
	KindCompression
	// KindText text encoding failure
	KindText
	// KindAudio audio container failure
	KindAudio
)

// String returns the human readable kind
func (k Kind) String() string {
	switch k {
	case KindInvalidData:
		return "invalid data"
	case KindIO:
		return "io"
	case KindImage:
		return "image"
	case KindDocument:
		return "document"
	case KindCompression:
		return "compression"
	case KindText:
		return "text encoding"
	case KindAudio:
		return "audio"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// Error failure tagged with its kind
type Error struct {
	Kind Kind
	Err  error
}

// Wrap tags err with kind, nil stays nil
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Error implements error
func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

// Unwrap returns the cause
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first tagged error in the chain
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
