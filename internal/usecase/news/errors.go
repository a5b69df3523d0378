// Package news implements the news use case: ask the provider for a list,
// recover a JSON array from its reply, validate it and fall back to a fixed
// list when anything about the reply cannot be trusted.
package news

import (
	"errors"
	"net/http"
)

// Messages returned to API callers.
const (
	MsgMethodNotAllowed = "Method Not Allowed. Use POST."
	MsgInvalidTopic     = "Missing or invalid \"topic\" in request body."
	MsgProviderFailure  = "Failed to fetch news from provider."
)

// ErrShape marks provider output that could not be parsed or failed validation.
// It never reaches the caller as an error status; the fallback list is served instead.
var ErrShape = errors.New("provider output did not match the news schema")

// ClientError is a request the caller must fix before retrying.
type ClientError struct {
	Status  int
	Message string
}

func (e *ClientError) Error() string {
	return e.Message
}

// ErrMethodNotAllowed is returned for anything but POST.
var ErrMethodNotAllowed = &ClientError{Status: http.StatusMethodNotAllowed, Message: MsgMethodNotAllowed}

// ErrInvalidTopic is returned when the body has no usable topic.
var ErrInvalidTopic = &ClientError{Status: http.StatusBadRequest, Message: MsgInvalidTopic}
