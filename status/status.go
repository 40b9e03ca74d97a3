package status

import (
	"errors"
	"fmt"

	"github.com/helioreports/helio-go/dto"
)

// Code classifies a failed SDK operation for callers that present
// errors to end users instead of inspecting transport details.
type Code int

const (
	Unknown Code = iota
	NetworkError
	ClientError
	AuthorizationError
	PermissionDenied
	InternalError
	DecodeError
	ExportOutOfRange
)

func (c Code) String() string {
	switch c {
	case NetworkError:
		return "network_error"
	case ClientError:
		return "client_error"
	case AuthorizationError:
		return "authorization_error"
	case PermissionDenied:
		return "permission_denied"
	case InternalError:
		return "internal_error"
	case DecodeError:
		return "decode_error"
	case ExportOutOfRange:
		return "export_out_of_range"
	default:
		return "unknown"
	}
}

// StatusError pairs a user-presentable message with a Code while
// keeping the original cause reachable through errors.Is/As.
type StatusError struct {
	Code    Code
	Message string
	Cause   error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.Cause
}

// Translate maps any error surfaced by the SDK into a StatusError.
// HTTP errors are classified by status code unless the server attached
// a descriptor the SDK knows a better answer for.
func Translate(err error) *StatusError {
	if err == nil {
		return nil
	}

	var httpErr *dto.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Descriptor != nil {
			return fromDescriptor(httpErr)
		}
		return fromStatusCode(httpErr)
	}

	var decodeErr *dto.DecodingError
	if errors.As(err, &decodeErr) {
		return &StatusError{
			Code:    DecodeError,
			Message: "Server response could not be decoded",
			Cause:   err,
		}
	}

	return &StatusError{
		Code:    NetworkError,
		Message: "Failed to perform network request. Check network!",
		Cause:   err,
	}
}

func fromStatusCode(err *dto.HTTPError) *StatusError {
	switch err.StatusCode {
	case 500:
		return &StatusError{Code: InternalError, Message: "Server encountered unexpected error", Cause: err}
	case 404:
		return &StatusError{Code: ClientError, Message: "Service exists but requested entity not found", Cause: err}
	case 400:
		return &StatusError{Code: ClientError, Message: "Some parameters in request not valid", Cause: err}
	case 403:
		return &StatusError{Code: PermissionDenied, Message: "User has no access to resource", Cause: err}
	case 401:
		return &StatusError{Code: AuthorizationError, Message: "User is not authorized", Cause: err}
	default:
		return &StatusError{Code: Unknown, Message: "The operation failed with no more detailed information", Cause: err}
	}
}

func fromDescriptor(err *dto.HTTPError) *StatusError {
	if err.Descriptor.ErrorCode == "export.pages.out.of.range" {
		return &StatusError{
			Code:    ExportOutOfRange,
			Message: err.Descriptor.Message,
			Cause:   err,
		}
	}
	return fromStatusCode(err)
}
