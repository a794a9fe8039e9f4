package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	ErrFileNotFound   = errors.New("file not found")
	ErrTypeConversion = errors.New("type conversion")
	ErrInvalidState   = errors.New("invalid state")
)

// FileNotFoundError reports a yearly archive that does not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file '%s' does not exist", e.Path)
}

func (e *FileNotFoundError) Unwrap() error { return ErrFileNotFound }

// TypeConversionError reports a year or state value that is not an integer.
type TypeConversionError struct {
	Value any
	Cause error
}

func (e *TypeConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot convert %#v to integer: %v", e.Value, e.Cause)
	}
	return fmt.Sprintf("cannot convert %#v to integer", e.Value)
}

func (e *TypeConversionError) Is(target error) bool { return target == ErrTypeConversion }

func (e *TypeConversionError) Unwrap() error { return e.Cause }

// InvalidStateError reports a state code absent from a year's data.
type InvalidStateError struct {
	State any
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid STATE number: %v", e.State)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }
