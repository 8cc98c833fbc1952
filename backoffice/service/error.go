package service

import (
	"net/http"

	"github.com/Abraxas-365/backoffice/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("SERVICE")

// Error codes
var (
	CodeMissingSlug    = ErrRegistry.Register("MISSING_SLUG", errx.TypeValidation, http.StatusBadRequest, "Service slug is required")
	CodeMissingSubSlug = ErrRegistry.Register("MISSING_SUB_SLUG", errx.TypeValidation, http.StatusBadRequest, "Sub-service slug is required")
)

// Helper functions
func ErrMissingSlug() *errx.Error {
	return ErrRegistry.New(CodeMissingSlug)
}

func ErrMissingSubSlug() *errx.Error {
	return ErrRegistry.New(CodeMissingSubSlug)
}
