package upstream

import (
	"net/http"

	"github.com/Abraxas-365/backoffice/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("UPSTREAM")

// Error codes. All of them render as a generic 500; the cause goes in details.
var (
	CodeNetworkError   = ErrRegistry.Register("NETWORK_ERROR", errx.TypeExternal, http.StatusInternalServerError, "Internal Server Error")
	CodeDecodeFailed   = ErrRegistry.Register("DECODE_FAILED", errx.TypeExternal, http.StatusInternalServerError, "Internal Server Error")
	CodeRequestInvalid = ErrRegistry.Register("REQUEST_INVALID", errx.TypeInternal, http.StatusInternalServerError, "Internal Server Error")
	CodeBodyTooLarge   = ErrRegistry.Register("BODY_TOO_LARGE", errx.TypeExternal, http.StatusInternalServerError, "Internal Server Error")
)

// ErrNetwork marks a failed outbound call: DNS, refused connection, timeout
func ErrNetwork() *errx.Error {
	return ErrRegistry.New(CodeNetworkError)
}

func ErrDecodeFailed() *errx.Error {
	return ErrRegistry.New(CodeDecodeFailed)
}

func ErrRequestInvalid() *errx.Error {
	return ErrRegistry.New(CodeRequestInvalid)
}

func ErrBodyTooLarge() *errx.Error {
	return ErrRegistry.New(CodeBodyTooLarge)
}
