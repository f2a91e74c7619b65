package wallet

import (
	"errors"
	"fmt"
)

// ErrUserRejected is wrapped by connectors when the user declines a prompt.
var ErrUserRejected = errors.New("user rejected the request")

// EIP-1193 provider error codes.
const (
	CodeUserRejected      = 4001
	CodeUnauthorized      = 4100
	CodeUnsupportedMethod = 4200
	CodeDisconnected      = 4900
	CodeChainDisconnected = 4901
	CodeUnrecognizedChain = 4902
)

// ProviderError is an EIP-1193 provider RPC error.
type ProviderError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
}

// IsUserRejected reports whether err means the user declined the prompt.
func IsUserRejected(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUserRejected) {
		return true
	}
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Code == CodeUserRejected
}
