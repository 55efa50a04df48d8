package wackypixels

import (
	"fmt"
	"strings"

	"github.com/lwch/wackypixels/encoding"
	"github.com/lwch/wackypixels/encoding/compress"
	"github.com/lwch/wackypixels/encoding/imageplane"
	"github.com/lwch/wackypixels/encoding/pdfmeta"
	"github.com/lwch/wackypixels/encoding/qam"
	"github.com/lwch/wackypixels/encoding/unistego"
)

// ImageExtension extension of the fully decoded artifact
const ImageExtension = "png"

// Stage one transform of the fixed vocabulary
type Stage byte

const (
	// StageImage image container to raw RGBA plane
	StageImage Stage = iota + 1
	// StagePdf payload hidden in pdf metadata
	StagePdf
	// StageLzma xz compression
	StageLzma
	// StageGzip gzip compression
	StageGzip
	// StageUnicode unicode steganography
	StageUnicode
	// StageWav 16-QAM audio
	StageWav
)

// Stages every stage of the vocabulary
func Stages() []Stage {
	return []Stage{StageImage, StagePdf, StageLzma, StageGzip, StageUnicode, StageWav}
}

// DefaultStages default pipeline order
func DefaultStages() []Stage {
	return []Stage{StageImage, StagePdf, StageLzma, StageUnicode, StageWav}
}

// ParseStage parse a vocabulary word, case insensitive
func ParseStage(s string) (Stage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "image":
		return StageImage, nil
	case "pdf":
		return StagePdf, nil
	case "lzma":
		return StageLzma, nil
	case "gzip":
		return StageGzip, nil
	case "unicode":
		return StageUnicode, nil
	case "wav":
		return StageWav, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownStage, s)
	}
}

// ParseStages parse a list of vocabulary words, each element may itself
// be a comma separated list
func ParseStages(list []string) ([]Stage, error) {
	var stages []Stage
	for _, item := range list {
		for _, word := range strings.Split(item, ",") {
			if strings.TrimSpace(word) == "" {
				continue
			}
			s, err := ParseStage(word)
			if err != nil {
				return nil, err
			}
			stages = append(stages, s)
		}
	}
	return stages, nil
}

// String returns the vocabulary word
func (s Stage) String() string {
	switch s {
	case StageImage:
		return "image"
	case StagePdf:
		return "pdf"
	case StageLzma:
		return "lzma"
	case StageGzip:
		return "gzip"
	case StageUnicode:
		return "unicode"
	case StageWav:
		return "wav"
	default:
		return fmt.Sprintf("stage(%d)", byte(s))
	}
}

// Description human readable summary of the stage
func (s Stage) Description() string {
	switch s {
	case StageImage:
		return "Image serialization (PNG -> binary)"
	case StagePdf:
		return "PDF, stored in the /Info metadata"
	case StageLzma:
		return "LZMA/XZ compression"
	case StageGzip:
		return "Gzip compression"
	case StageUnicode:
		return "Unicode, multimode encoding (CJK, Emojis, Hidden characters, etc)"
	case StageWav:
		return "WAV audio encoding (amplitude modulation)"
	default:
		return ""
	}
}

// options codec settings a pipeline applies to its stages
type options struct {
	gzipLevel int
}

var defaultOptions = options{gzipLevel: compress.DefaultLevel}

// transform returns nil for a stage outside the vocabulary
func (s Stage) transform(opts options) encoding.Transform {
	switch s {
	case StageImage:
		return imageplane.New()
	case StagePdf:
		return pdfmeta.New()
	case StageLzma:
		return compress.NewLzma()
	case StageGzip:
		return compress.NewGzipLevel(opts.gzipLevel)
	case StageUnicode:
		return unistego.New()
	case StageWav:
		return qam.New()
	default:
		return nil
	}
}

// Name display name of the transform
func (s Stage) Name() string {
	t := s.transform(defaultOptions)
	if t == nil {
		return s.String()
	}
	return t.Name()
}

// Extension file extension of the encoded form
func (s Stage) Extension() string {
	t := s.transform(defaultOptions)
	if t == nil || t.Extension() == "" {
		return encoding.DefaultExtension
	}
	return t.Extension()
}

// codec stage transform built with opts
func (s Stage) codec(opts options) (encoding.Transform, error) {
	t := s.transform(opts)
	if t == nil {
		return nil, fmt.Errorf("%w: %s", errUnknownStage, s)
	}
	return t, nil
}

// fileName stage name as used in intermediate file names
func (s Stage) fileName() string {
	return strings.ToLower(strings.ReplaceAll(s.Name(), " ", "_"))
}
