package notification

import (
	"net/http"

	"github.com/Abraxas-365/backoffice/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("NOTIFICATION")

// Error codes
var (
	CodeInvalidRequest   = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeInvalidRecipient = ErrRegistry.Register("INVALID_RECIPIENT", errx.TypeValidation, http.StatusBadRequest, "A valid recipient email is required")
	CodeMissingField     = ErrRegistry.Register("MISSING_FIELD", errx.TypeValidation, http.StatusBadRequest, "Missing required field")
	CodeInvalidStatus    = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Unknown application status")
	CodeRenderFailed     = ErrRegistry.Register("RENDER_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Internal Server Error")
	CodeSendFailed       = ErrRegistry.Register("SEND_FAILED", errx.TypeExternal, http.StatusInternalServerError, "Internal Server Error")
	CodeEnqueueFailed    = ErrRegistry.Register("ENQUEUE_FAILED", errx.TypeExternal, http.StatusInternalServerError, "Internal Server Error")
)

// Helper functions
func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrInvalidRecipient() *errx.Error {
	return ErrRegistry.New(CodeInvalidRecipient)
}

func ErrMissingField() *errx.Error {
	return ErrRegistry.New(CodeMissingField)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrRenderFailed() *errx.Error {
	return ErrRegistry.New(CodeRenderFailed)
}

func ErrSendFailed() *errx.Error {
	return ErrRegistry.New(CodeSendFailed)
}

func ErrEnqueueFailed() *errx.Error {
	return ErrRegistry.New(CodeEnqueueFailed)
}
