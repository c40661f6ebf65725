// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for schedlab.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrConfigMismatch            = errors.New("configuration lists disagree with thread count")
	ErrInvalidArgument           = errors.New("invalid argument")
	ErrInvalidPolicy             = errors.New("invalid scheduling policy")
	ErrPriorityOutOfRange        = errors.New("scheduling priority out of range")
	ErrSchedulingPrivilegeDenied = errors.New("real-time scheduling privilege denied")
	ErrThreadCreationFailed      = errors.New("worker thread creation failed")
	ErrBarrierBroken             = errors.New("barrier broken")
	ErrNotSupported              = errors.New("operation not supported")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeConfigMismatch
	ErrCodeInvalidArgument
	ErrCodeInvalidPolicy
	ErrCodePriorityOutOfRange
	ErrCodePrivilegeDenied
	ErrCodeThreadCreation
	ErrCodeBarrierBroken
	ErrCodeNotSupported
	ErrCodeInternal
)

var codeSentinels = map[ErrorCode]error{
	ErrCodeConfigMismatch:     ErrConfigMismatch,
	ErrCodeInvalidArgument:    ErrInvalidArgument,
	ErrCodeInvalidPolicy:      ErrInvalidPolicy,
	ErrCodePriorityOutOfRange: ErrPriorityOutOfRange,
	ErrCodePrivilegeDenied:    ErrSchedulingPrivilegeDenied,
	ErrCodeThreadCreation:     ErrThreadCreationFailed,
	ErrCodeBarrierBroken:      ErrBarrierBroken,
	ErrCodeNotSupported:       ErrNotSupported,
}

// Error represents a structured error with code and context.
// It unwraps to the sentinel matching its code, and to the cause when one is set.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	if len(e.Context) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (context: %+v)", msg, e.Context)
}

// Unwrap exposes the code sentinel and the underlying cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	var out []error
	if s, ok := codeSentinels[e.Code]; ok {
		out = append(out, s)
	}
	if e.cause != nil {
		out = append(out, e.cause)
	}
	return out
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithCause records the lower-level error that triggered e.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// CodeOf returns the code of the first *Error in err's chain, or ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	for code, s := range codeSentinels {
		if errors.Is(err, s) {
			return code
		}
	}
	return ErrCodeInternal
}
