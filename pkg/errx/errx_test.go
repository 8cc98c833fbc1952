package errx

import (
	"errors"
	"net/http"
	"testing"
)

func TestRegistryNew(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("MISSING", TypeValidation, http.StatusBadRequest, "Something is missing")

	if code != "TEST.MISSING" {
		t.Fatalf("wanted code %q, got %q", "TEST.MISSING", code)
	}

	err := reg.New(code)
	if err.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("wanted status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
	if err.Type != TypeValidation {
		t.Fatalf("wanted type %s, got %s", TypeValidation, err.Type)
	}

	unknown := reg.New("TEST.NOPE")
	if unknown.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("wanted unknown codes to map to 500, got %d", unknown.HTTPStatus)
	}
}

func TestToHTTPResponse(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("BROKEN", TypeExternal, http.StatusInternalServerError, "Internal Server Error")

	resp := reg.New(code).WithCause(errors.New("dial tcp: refused")).WithDetail("id", "42").ToHTTPResponse()

	if resp["error"] != "Internal Server Error" {
		t.Fatalf("wanted error message, got %v", resp["error"])
	}
	if resp["details"] != "dial tcp: refused" {
		t.Fatalf("wanted cause in details, got %v", resp["details"])
	}
	ctx, ok := resp["context"].(map[string]any)
	if !ok || ctx["id"] != "42" {
		t.Fatalf("wanted context id=42, got %v", resp["context"])
	}
}

func TestWrapKeepsExistingError(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("GONE", TypeNotFound, http.StatusNotFound, "Gone")
	original := reg.New(code)

	wrapped := Wrap(original, "failed", TypeInternal)
	if wrapped != original {
		t.Fatalf("wanted Wrap to return the original *Error")
	}

	plain := Wrap(errors.New("boom"), "failed to do thing", TypeInternal)
	if plain.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("wanted 500, got %d", plain.HTTPStatus)
	}
	if plain.Cause == nil || plain.Cause.Error() != "boom" {
		t.Fatalf("wanted cause to be kept, got %v", plain.Cause)
	}

	if Wrap(nil, "x", TypeInternal) != nil {
		t.Fatalf("wanted nil for nil error")
	}
}

func TestErrorsIsMatchesCode(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("DUP", TypeConflict, http.StatusConflict, "Duplicate")

	err := error(reg.New(code).WithDetail("k", "v"))
	if !errors.Is(err, reg.New(code)) {
		t.Fatalf("wanted errors.Is to match by code")
	}

	e, ok := As(err)
	if !ok || e.Code != code {
		t.Fatalf("wanted As to extract the error")
	}
}
