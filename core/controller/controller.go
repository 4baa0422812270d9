package controller

import (
	"net/http"
	"strings"

	"github.com/OmatthewY/explore-with-me/core/errors"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/utils"
	"github.com/OmatthewY/explore-with-me/core/validation"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed call.
type ErrorResponse struct {
	Status    string                  `json:"status"`
	Code      errors.ErrorCode        `json:"code"`
	Reason    string                  `json:"reason"`
	Message   string                  `json:"message"`
	Errors    []validation.FieldError `json:"errors,omitempty"`
	Trace     string                  `json:"trace,omitempty"`
	Timestamp string                  `json:"timestamp"`
}

type BaseController interface {
	BadRequest(c echo.Context, message string, err error) error
	Created(c echo.Context, data any) error
	OK(c echo.Context, data any) error
	NoContent(c echo.Context) error
	ErrorResponse(c echo.Context, err error) error
}

type responseHandler struct{}

func NewBaseController() BaseController {
	return &responseHandler{}
}

// NewErrorResponse builds the body for status and err. Traces are only
// attached to 500 responses.
func NewErrorResponse(httpStatus int, code errors.ErrorCode, message string, err error) *ErrorResponse {
	resp := &ErrorResponse{
		Status:    strings.ReplaceAll(strings.ToUpper(http.StatusText(httpStatus)), " ", "_"),
		Code:      code,
		Reason:    errors.Reason(code),
		Message:   message,
		Timestamp: utils.FormatDateTime(utils.Now()),
	}

	var res *validation.Result
	if errors.As(err, &res) {
		resp.Errors = res.Errors
	}

	if httpStatus == http.StatusInternalServerError {
		var ae *errors.AppError
		if errors.As(err, &ae) && ae.Stack != "" {
			resp.Trace = ae.Stack
		}
		if err != nil {
			resp.Message = message + ": " + rootMessage(err)
		}
	}
	return resp
}

func rootMessage(err error) string {
	var ae *errors.AppError
	if errors.As(err, &ae) && ae.Err != nil {
		return ae.Err.Error()
	}
	return err.Error()
}

func (h *responseHandler) BadRequest(c echo.Context, message string, err error) error {
	return h.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidRequestData, message, err))
}

func (h *responseHandler) Created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, data)
}

func (h *responseHandler) OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, data)
}

func (h *responseHandler) NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func (h *responseHandler) ErrorResponse(c echo.Context, err error) error {
	return WriteError(c, err)
}

// WriteError renders err. It is shared with the echo error handler.
func WriteError(c echo.Context, err error) error {
	httpStatus := http.StatusInternalServerError
	code := errors.ErrInternalServer
	msg := "internal server error"

	var ae *errors.AppError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &ae) && ae != nil:
		code = ae.Code
		httpStatus = ae.HTTPStatus()
		if ae.Message != "" {
			msg = ae.Message
		}
	case errors.As(err, &he):
		httpStatus = he.Code
		code = codeForStatus(he.Code)
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(he.Code)
		}
	case err != nil:
		msg = err.Error()
	}

	if httpStatus >= http.StatusInternalServerError {
		logger.Error("BaseController:ErrorResponse",
			"status", httpStatus,
			"code", code,
			"message", msg,
			"error", err,
		)
	} else {
		logger.Warn("BaseController:ErrorResponse",
			"status", httpStatus,
			"code", code,
			"message", msg,
		)
	}
	return c.JSON(httpStatus, NewErrorResponse(httpStatus, code, msg, err))
}

func codeForStatus(status int) errors.ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return errors.ErrInvalidRequestData
	case http.StatusUnauthorized:
		return errors.ErrUnauthorized
	case http.StatusForbidden:
		return errors.ErrForbidden
	case http.StatusNotFound:
		return errors.ErrNotFound
	case http.StatusConflict:
		return errors.ErrConflict
	default:
		return errors.ErrInternalServer
	}
}
