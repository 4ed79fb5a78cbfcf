package client

import (
	"encoding/json"
	"errors"
	"fmt"

	"booknotion-be/internal/apperror"
)

// Error is the normalized failure shape surfaced by the gateway. Transport
// failures carry the NETWORK_ERROR code and no HTTP status; application
// errors keep their original code and message from the server.
type Error struct {
	Code    string
	Message string
	Status  int // 0 for transport failures
	Body    []byte
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// IsNetworkError reports whether err is a transport-level failure, the only
// kind that triggers fallback-address retry.
func IsNetworkError(err error) bool {
	var gatewayErr *Error
	return errors.As(err, &gatewayErr) && gatewayErr.Code == apperror.CodeNetworkError
}

func networkError(err error) *Error {
	return &Error{
		Code:    apperror.CodeNetworkError,
		Message: err.Error(),
	}
}

// responseError decodes the server's {error, message?, code?} body into an
// Error, keeping the raw body for callers that want it.
func responseError(status int, body []byte) *Error {
	var wire struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	gatewayErr := &Error{Status: status, Body: body}
	if err := json.Unmarshal(body, &wire); err == nil && wire.Error != "" {
		gatewayErr.Message = wire.Error
		gatewayErr.Code = wire.Code
		if wire.Message != "" {
			gatewayErr.Message = wire.Error + ": " + wire.Message
		}
	} else {
		gatewayErr.Message = fmt.Sprintf("unexpected response (status %d)", status)
	}
	return gatewayErr
}
