package domask

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOrder indicates a masking order outside [1, MaxOrder], or a
	// batch operation given fewer elements than it requires.
	ErrInvalidOrder = errors.New("domask: invalid masking order")

	// ErrAllocation indicates share storage could not be allocated. Batch
	// operations release everything allocated earlier in the same batch
	// before returning this error.
	ErrAllocation = errors.New("domask: allocation failed")

	// ErrDomainMismatch indicates the operands' signatures (order plus bit
	// length) or domains are incompatible for the requested gadget.
	ErrDomainMismatch = errors.New("domask: incompatible masked operands")

	// ErrConversion indicates an internal step of a domain conversion failed
	// to allocate scratch state. The input value is left unchanged.
	ErrConversion = errors.New("domask: domain conversion failed")
)

// Error wraps an underlying error with the operation that produced it.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("domask.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorf creates a new Error.
func errorf(op string, format string, args ...interface{}) error {
	return &Error{
		Op:  op,
		Err: fmt.Errorf(format, args...),
	}
}
