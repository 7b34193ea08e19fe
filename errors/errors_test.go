package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrCodeValidation:            http.StatusBadRequest,
		ErrCodeInsufficientInventory: http.StatusBadRequest,
		ErrCodeInvalidSignature:      http.StatusBadRequest,
		ErrCodeNotFound:              http.StatusNotFound,
		ErrCodeUnauthorized:          http.StatusUnauthorized,
		ErrCodeForbidden:             http.StatusForbidden,
		ErrCodeConflict:              http.StatusConflict,
		ErrCodeStorageUnavailable:    http.StatusInternalServerError,
		ErrCodeInternal:              http.StatusInternalServerError,
		ErrCodeTimeout:               http.StatusGatewayTimeout,
	}
	for code, want := range cases {
		if got := HTTPStatus(code); got != want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", code, got, want)
		}
	}
}

func TestSentinelSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("reserve: %w", ErrInsufficientInventory)
	if !Is(err, ErrInsufficientInventory) {
		t.Fatal("wrapped sentinel not matched by Is")
	}
	if got := CodeOf(err); got != ErrCodeInsufficientInventory {
		t.Fatalf("CodeOf = %s", got)
	}
}

func TestStorageClassifiesDeadline(t *testing.T) {
	if got := Storage("x", context.DeadlineExceeded).Code; got != ErrCodeTimeout {
		t.Fatalf("deadline mapped to %s", got)
	}
	if got := Storage("x", New("connection refused")).Code; got != ErrCodeStorageUnavailable {
		t.Fatalf("backend failure mapped to %s", got)
	}
}

func TestFromUnknownError(t *testing.T) {
	appErr := From(New("boom"))
	if appErr.Code != ErrCodeInternal {
		t.Fatalf("code = %s", appErr.Code)
	}
	if From(nil) != nil {
		t.Fatal("From(nil) should be nil")
	}
}
