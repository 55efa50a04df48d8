package wackypixels

import (
	"errors"
	"fmt"
)

var errUnknownStage = errors.New("wackypixels: unknown stage")

// Direction pipeline traversal direction
type Direction byte

const (
	// Forward encode
	Forward Direction = iota
	// Reverse decode
	Reverse
)

// String returns the direction name
func (d Direction) String() string {
	if d == Reverse {
		return "decode"
	}
	return "encode"
}

// StepError failure of one pipeline step, Step is 1-based in traversal order
type StepError struct {
	Step      int
	Total     int
	Stage     Stage
	Direction Direction
	Err       error
}

// Error implements error
func (e *StepError) Error() string {
	return fmt.Sprintf("%s step %d/%d (%s): %v",
		e.Direction, e.Step, e.Total, e.Stage.Name(), e.Err)
}

// Unwrap returns the cause
func (e *StepError) Unwrap() error {
	return e.Err
}
