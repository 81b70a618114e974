package chip8

import (
	"errors"
	"fmt"
)

// Error kinds returned by the machine. Execution errors are wrapped in an
// *ExecutionError, use errors.Is to check for the kind.
var (
	ErrDecodeFailure  = errors.New("decode failure")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrOutOfBounds    = errors.New("out of bounds access")
	ErrInputSize      = errors.New("input size error")
)

// ExecutionError is a fatal error that halted the machine.
type ExecutionError struct {
	Address uint16 // address of the failing instruction
	Opcode  uint16 // instruction word
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing opcode %04X at address %03X: %s", e.Opcode, e.Address, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Kind returns the sentinel error describing the kind of failure.
func (e *ExecutionError) Kind() error {
	for _, kind := range []error{ErrDecodeFailure, ErrStackOverflow, ErrStackUnderflow, ErrOutOfBounds} {
		if errors.Is(e.Err, kind) {
			return kind
		}
	}
	return e.Err
}
