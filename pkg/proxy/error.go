package proxy

import (
	"net/http"

	"github.com/Abraxas-365/backoffice/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("PROXY")

// Error codes
var (
	CodeMissingParam = ErrRegistry.Register("MISSING_PARAM", errx.TypeValidation, http.StatusBadRequest, "Missing required path parameter")
	CodeInvalidParam = ErrRegistry.Register("INVALID_PARAM", errx.TypeValidation, http.StatusBadRequest, "Invalid path parameter")
	CodeInvalidBody  = ErrRegistry.Register("INVALID_BODY", errx.TypeValidation, http.StatusBadRequest, "Request body must be valid JSON")
)

// Helper functions
func ErrMissingParam() *errx.Error {
	return ErrRegistry.New(CodeMissingParam)
}

func ErrInvalidParam() *errx.Error {
	return ErrRegistry.New(CodeInvalidParam)
}

func ErrInvalidBody() *errx.Error {
	return ErrRegistry.New(CodeInvalidBody)
}
