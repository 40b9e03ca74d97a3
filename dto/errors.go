package dto

import (
	"fmt"
)

// ErrorDescriptor is the structured error body some endpoints attach
// to non-2xx responses.
type ErrorDescriptor struct {
	Message    string   `json:"message"`
	ErrorCode  string   `json:"errorCode"`
	Parameters []string `json:"parameters,omitempty"`
}

// HTTPError is returned for any response with a status code outside 2xx.
// Descriptor is nil when the body carried no parseable descriptor.
type HTTPError struct {
	StatusCode int
	Descriptor *ErrorDescriptor
}

func (e *HTTPError) Error() string {
	if e.Descriptor != nil && e.Descriptor.ErrorCode != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Descriptor.ErrorCode)
	}
	return fmt.Sprintf("http %d", e.StatusCode)
}

// DecodingError wraps a failure to unmarshal a response body.
type DecodingError struct {
	Err error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}
