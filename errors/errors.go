package errors

import (
	"errors"

	"github.com/lopatinaanna/binarytree/logs"
)

const (
	// CodeConfiguration identifies errors caused by a component that
	// cannot be built with the configuration it was given
	CodeConfiguration = 1001

	// CodeInvalidArgument identifies errors caused by arguments that
	// are rejected before any state is modified
	CodeInvalidArgument = 1002

	// CodeEmptyContainer identifies errors caused by querying a
	// container that holds no elements
	CodeEmptyContainer = 1003
)

// Error is the error returned by the library and by the server when it
// fails to satisfy a request
type Error struct {
	// ErrorCode is a unique identifier for the error that can be used to identify
	// the particular type of error encountered
	ErrorCode int `json:"errorCode"`

	// Description is a human-readable description of the error that occurred
	// to aid the client in debugging
	Description string `json:"description"`
}

// New creates a new error with the code and description
func New(code int, description string) *Error {
	return &Error{ErrorCode: code, Description: description}
}

// Error is the implementation of go's error interface for Error
func (e *Error) Error() string {
	return e.Description
}

// Log implementation of logs.Loggable
func (e *Error) Log(fields logs.Fields) {
	fields.Add("error_code", e.ErrorCode)
	fields.Add("description", e.Description)
}

// Code returns the code of err if it is, or wraps, an *Error. It
// returns -1 otherwise
func Code(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return -1
	}

	return e.ErrorCode
}
