package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime/debug"
)

type ErrorCode string

const (
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData ErrorCode = "INVALID_REQUEST_DATA"
	ErrWrongDate          ErrorCode = "WRONG_DATE"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrConflict           ErrorCode = "CONFLICT"
	ErrAlreadyExists      ErrorCode = "ALREADY_EXISTS"
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrForbidden          ErrorCode = "FORBIDDEN"
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrCreateFailed       ErrorCode = "CREATE_FAILED"
	ErrGetFailed          ErrorCode = "GET_FAILED"
	ErrUpdateFailed       ErrorCode = "UPDATE_FAILED"
	ErrDeleteFailed       ErrorCode = "DELETE_FAILED"
)

// AppError is the error every service method returns.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
	Stack   string    `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
		Stack:   string(debug.Stack()),
	}
}

// Newf builds an AppError with a formatted message and no cause.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return NewAppError(code, fmt.Sprintf(format, args...), nil)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on code so errors.Is(err, &AppError{Code: ErrNotFound}) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus maps the code to the response status.
func (e *AppError) HTTPStatus() int {
	return StatusOf(e.Code)
}

func StatusOf(code ErrorCode) int {
	switch code {
	case ErrInvalidInput, ErrInvalidRequestData, ErrWrongDate:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrNotFound:
		return http.StatusNotFound
	case ErrConflict, ErrAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Reason is the short human-readable label sent next to the message.
func Reason(code ErrorCode) string {
	switch code {
	case ErrInvalidInput, ErrInvalidRequestData:
		return "Incorrectly made request."
	case ErrWrongDate:
		return "Incorrect date range."
	case ErrNotFound:
		return "The required object was not found."
	case ErrConflict, ErrAlreadyExists:
		return "For the requested operation the conditions are not met."
	case ErrUnauthorized:
		return "Authentication required."
	case ErrForbidden:
		return "Access denied."
	default:
		return "Internal server error."
	}
}

// As is re-exported so callers do not need both errors packages.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// From returns err as an AppError, wrapping anything else as internal.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr != nil {
		return appErr
	}
	return NewAppError(ErrInternalServer, "internal server error", err)
}
