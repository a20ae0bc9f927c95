package api

import (
	"errors"
	"fmt"
)

// Error is a non-2xx backend response translated into a uniform shape.
// Fields carries the server's field-to-messages validation map when present,
// so forms can render inline messages verbatim.
type Error struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed (%d)", e.Status)
}

// AsError unwraps err into *Error when the failure originated from an HTTP
// error response (as opposed to a transport failure or a 401).
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
