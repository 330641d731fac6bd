package util

import (
	"errors"
	"fmt"
)

// MyResponseError is a non-2xx answer from the API. Only the status is kept;
// the body is not inspected.
type MyResponseError struct {
	Msg    string
	Status int
}

func (e MyResponseError) Error() string { return e.Msg }

func NewResponseError(status int, format string, args ...interface{}) error {
	return MyResponseError{
		Msg:    fmt.Sprintf(format, args...),
		Status: status,
	}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var respErr MyResponseError
	if errors.As(err, &respErr) {
		return respErr.Status
	}
	return 0
}
