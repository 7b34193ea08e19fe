package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode định danh loại lỗi, quyết định HTTP status trả về cho client
type ErrorCode string

const (
	ErrCodeValidation            ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound              ErrorCode = "NOT_FOUND"
	ErrCodeInsufficientInventory ErrorCode = "INSUFFICIENT_INVENTORY"
	ErrCodeInvalidSignature      ErrorCode = "INVALID_SIGNATURE"
	ErrCodeUnauthorized          ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden             ErrorCode = "FORBIDDEN"
	ErrCodeConflict              ErrorCode = "CONFLICT"
	ErrCodeStorageUnavailable    ErrorCode = "STORAGE_UNAVAILABLE"
	ErrCodeInternal              ErrorCode = "INTERNAL"
	ErrCodeTimeout               ErrorCode = "TIMEOUT"
)

// AppError is the error type returned across service and storage boundaries.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation is shorthand for a VALIDATION_ERROR with the given message.
func Validation(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, nil)
}

// Storage wraps a backend failure. Deadline and cancellation errors are
// reported as TIMEOUT so callers can tell a slow store from a broken one.
func Storage(message string, err error) *AppError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewAppError(ErrCodeTimeout, message+": timed out", err)
	}
	return NewAppError(ErrCodeStorageUnavailable, message, err)
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// From normalises any error into an AppError.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr := GetAppError(err); appErr != nil {
		return appErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewAppError(ErrCodeTimeout, "Request timed out.", err)
	}
	return NewAppError(ErrCodeInternal, "Internal server error.", err)
}

// CodeOf trả về ErrorCode của err, INTERNAL nếu không xác định được
func CodeOf(err error) ErrorCode {
	if appErr := From(err); appErr != nil {
		return appErr.Code
	}
	return ""
}

// HTTPStatus maps an ErrorCode to its HTTP status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidation, ErrCodeInsufficientInventory, ErrCodeInvalidSignature:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }

func New(text string) error { return errors.New(text) }

var (
	// Not found
	ErrHotelNotFound   = NewAppError(ErrCodeNotFound, "Hotel not found.", nil)
	ErrBookingNotFound = NewAppError(ErrCodeNotFound, "Booking not found.", nil)
	ErrUserNotFound    = NewAppError(ErrCodeNotFound, "User not found.", nil)

	// Inventory and payment
	ErrInsufficientInventory = NewAppError(ErrCodeInsufficientInventory, "Not enough rooms available.", nil)
	ErrInvalidSignature      = NewAppError(ErrCodeInvalidSignature, "Invalid signature", nil)
	ErrBookingAlreadyPaid    = NewAppError(ErrCodeValidation, "Booking already paid.", nil)
	ErrPaymentRecorded       = NewAppError(ErrCodeConflict, "Payment already recorded.", nil)

	// Identity
	ErrUnauthorized       = NewAppError(ErrCodeUnauthorized, "Unauthorized", nil)
	ErrForbidden          = NewAppError(ErrCodeForbidden, "Access denied.", nil)
	ErrInvalidCredentials = NewAppError(ErrCodeValidation, "Invalid credentials", nil)
	ErrUserExists         = NewAppError(ErrCodeConflict, "User already exists", nil)
)
