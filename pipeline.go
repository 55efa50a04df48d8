// Package wackypixels pushes a payload through a chain of reversible
// encodings and back.
package wackypixels

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lwch/logging"
	"github.com/lwch/wackypixels/encoding"
	"github.com/lwch/wackypixels/internal/digest"
)

const (
	encodedPrefix = "encrypted"
	// DefaultDecodedFile final decode artifact name
	DefaultDecodedFile = "decrypted.png"
)

// Pipeline ordered list of stages, decoding replays it in reverse
type Pipeline struct {
	stages            []Stage
	saveIntermediates bool
	opts              options
}

// New create empty pipeline, intermediates are not saved
func New() *Pipeline {
	return &Pipeline{opts: defaultOptions}
}

// NewDefault create pipeline with DefaultStages
func NewDefault() *Pipeline {
	p := New()
	for _, s := range DefaultStages() {
		p.Add(s)
	}
	return p
}

// NewCustom create pipeline from vocabulary words
func NewCustom(names []string) (*Pipeline, error) {
	stages, err := ParseStages(names)
	if err != nil {
		return nil, err
	}
	p := New()
	for _, s := range stages {
		p.Add(s)
	}
	return p, nil
}

// Add append stage
func (p *Pipeline) Add(s Stage) *Pipeline {
	p.stages = append(p.stages, s)
	return p
}

// SetSaveIntermediates toggle writing every step output to disk
func (p *Pipeline) SetSaveIntermediates(enable bool) *Pipeline {
	p.saveIntermediates = enable
	return p
}

// SetGzipLevel set the compression level of gzip stages
func (p *Pipeline) SetGzipLevel(level int) *Pipeline {
	p.opts.gzipLevel = level
	return p
}

// Stages returns a copy of the stage list in forward order
func (p *Pipeline) Stages() []Stage {
	return append([]Stage(nil), p.stages...)
}

// Extension extension of the final encoded artifact
func (p *Pipeline) Extension() string {
	if len(p.stages) == 0 {
		return encoding.DefaultExtension
	}
	return p.stages[len(p.stages)-1].Extension()
}

// EncodeBytes run every stage forward in memory
func (p *Pipeline) EncodeBytes(data []byte) ([]byte, error) {
	return p.encode(data, "")
}

// DecodeBytes run every stage in reverse in memory
func (p *Pipeline) DecodeBytes(data []byte) ([]byte, error) {
	return p.decode(data, "")
}

// Encode encode input into outputDir, returns the final artifact path
func (p *Pipeline) Encode(input, outputDir string) (string, error) {
	data, err := prepare(input, outputDir)
	if err != nil {
		return "", err
	}
	dir := ""
	if p.saveIntermediates {
		dir = outputDir
	}
	data, err = p.encode(data, dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(outputDir, encodedPrefix+"."+p.Extension())
	if err := writeFile(path, data); err != nil {
		return "", err
	}
	logging.Info("encode complete: %s", path)
	return path, nil
}

// Decode decode input into outputDir/outputFile, DefaultDecodedFile is
// used when outputFile is empty, returns the final artifact path
func (p *Pipeline) Decode(input, outputDir, outputFile string) (string, error) {
	data, err := prepare(input, outputDir)
	if err != nil {
		return "", err
	}
	dir := ""
	if p.saveIntermediates {
		dir = outputDir
	}
	data, err = p.decode(data, dir)
	if err != nil {
		return "", err
	}
	if outputFile == "" {
		outputFile = DefaultDecodedFile
	}
	path := filepath.Join(outputDir, outputFile)
	if err := writeFile(path, data); err != nil {
		return "", err
	}
	logging.Info("decode complete: %s", path)
	return path, nil
}

// encode intermediates are written to dir unless it is empty
func (p *Pipeline) encode(data []byte, dir string) ([]byte, error) {
	total := len(p.stages)
	for i, s := range p.stages {
		step := i + 1
		logging.Info("[%d/%d] applying: %s", step, total, s.Name())
		out, err := p.apply(s, data, Forward)
		if err != nil {
			logging.Error("failed at step %d/%d: %s: %v", step, total, s.Name(), err)
			return nil, &StepError{Step: step, Total: total, Stage: s, Direction: Forward, Err: err}
		}
		data = out
		if dir != "" {
			name := fmt.Sprintf("%03d_%s.%s", step, s.fileName(), s.Extension())
			if err := saveIntermediate(dir, name, data); err != nil {
				return nil, &StepError{Step: step, Total: total, Stage: s, Direction: Forward, Err: err}
			}
		}
		logging.Info("[%d/%d] output size: %d bytes, blake3: %s", step, total, len(data), digest.Short(data))
	}
	return data, nil
}

// decode intermediates are written to dir unless it is empty
func (p *Pipeline) decode(data []byte, dir string) ([]byte, error) {
	total := len(p.stages)
	for i := 0; i < total; i++ {
		step := i + 1
		idx := total - 1 - i
		s := p.stages[idx]
		logging.Info("[%d/%d] reversing: %s", step, total, s.Name())
		out, err := p.apply(s, data, Reverse)
		if err != nil {
			logging.Error("failed at decode step %d/%d: %s: %v", step, total, s.Name(), err)
			logging.Error("possible cause: corrupted data at this stage")
			logging.Error("possible cause: wrong pipeline order")
			logging.Error("possible cause: missing transformation step")
			return nil, &StepError{Step: step, Total: total, Stage: s, Direction: Reverse, Err: err}
		}
		data = out
		if dir != "" {
			ext := ImageExtension
			if idx > 0 {
				ext = p.stages[idx-1].Extension()
			}
			name := fmt.Sprintf("%03d_%s_decoded.%s", idx+1, s.fileName(), ext)
			if err := saveIntermediate(dir, name, data); err != nil {
				return nil, &StepError{Step: step, Total: total, Stage: s, Direction: Reverse, Err: err}
			}
		}
		logging.Info("[%d/%d] output size: %d bytes, blake3: %s", step, total, len(data), digest.Short(data))
	}
	return data, nil
}

func (p *Pipeline) apply(s Stage, data []byte, dir Direction) ([]byte, error) {
	t, err := s.codec(p.opts)
	if err != nil {
		return nil, err
	}
	if dir == Reverse {
		return t.Decode(data)
	}
	return t.Encode(data)
}

// prepare create outputDir and read input
func prepare(input, outputDir string) ([]byte, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, encoding.Wrap(encoding.KindIO, err)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		logging.Error("read input %s: %v", input, err)
		return nil, encoding.Wrap(encoding.KindIO, err)
	}
	return data, nil
}

func saveIntermediate(dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := writeFile(path, data); err != nil {
		return err
	}
	logging.Info("saved: %s", path)
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		logging.Error("write %s: %v", path, err)
		return encoding.Wrap(encoding.KindIO, err)
	}
	return nil
}
