package auth

import (
	"net/http"

	"github.com/Abraxas-365/backoffice/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("AUTH")

// Error codes
var (
	CodeAuthenticationRequired = ErrRegistry.Register("AUTHENTICATION_REQUIRED", errx.TypeAuthentication, http.StatusUnauthorized, "Authentication required")
	CodeInvalidRequest         = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeMissingCredentials     = ErrRegistry.Register("MISSING_CREDENTIALS", errx.TypeValidation, http.StatusBadRequest, "Email and password are required")
	CodeTokenNotIssued         = ErrRegistry.Register("TOKEN_NOT_ISSUED", errx.TypeExternal, http.StatusInternalServerError, "Internal Server Error")
)

// Helper functions
func ErrAuthenticationRequired() *errx.Error {
	return ErrRegistry.New(CodeAuthenticationRequired)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrMissingCredentials() *errx.Error {
	return ErrRegistry.New(CodeMissingCredentials)
}

func ErrTokenNotIssued() *errx.Error {
	return ErrRegistry.New(CodeTokenNotIssued)
}
