package errors

import (
	stdErrors "errors"
	"fmt"
	"reflect"
)

type Error interface {
	error
	New(args ...any) BaseError
	IsEqual(err error) bool
}

type BaseError struct {
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`

	messageFormat string
}

func (e BaseError) Error() string {
	return e.Message
}

// New returns a copy of the error with its message formatted from args.
func (e BaseError) New(args ...any) BaseError {

	if len(args) == 0 {
		e.Message = e.messageFormat
		return e
	}

	e.Message = fmt.Sprintf(e.messageFormat, args...)
	return e
}

// IsEqual reports whether err carries the same error code.
func (e BaseError) IsEqual(err error) bool {

	asserted, ok := TryAssertError(err)
	if !ok {
		return false
	}

	return asserted.Code == e.Code
}

// Is lets errors.Is match coded errors by code.
func (e BaseError) Is(target error) bool {
	return e.IsEqual(target)
}

func (e BaseError) IsNil() bool {
	return reflect.ValueOf(e).IsZero()
}

// TryAssertError finds a coded error in the chain of err.
func TryAssertError(err error) (BaseError, bool) {

	var asserted BaseError
	if stdErrors.As(err, &asserted) {
		return asserted, true
	}

	var pointer *BaseError
	if stdErrors.As(err, &pointer) && pointer != nil {
		return *pointer, true
	}

	return BaseError{}, false
}

func IsError(err error, expectedError BaseError) bool {

	asserted, ok := TryAssertError(err)
	if !ok {
		return false
	}

	return asserted.Code == expectedError.Code && asserted.Message == expectedError.Message
}

func new(errorCode int, name string, messageFormat string) Error {

	return BaseError{Code: errorCode, Name: name, messageFormat: messageFormat, Message: messageFormat}
}
