// Package response renders every API result in the same envelope.
package response

import (
	"net/http"

	domainerrors "estate/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// Envelope statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the body of every response, successful or not.
type Envelope struct {
	Status  string                    `json:"status"`
	Message string                    `json:"message"`
	Data    any                       `json:"data,omitempty"`
	Errors  []domainerrors.FieldError `json:"errors,omitempty"`
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, message string, data any) error {
	return c.JSON(statusCode, Envelope{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	})
}

// OK returns a 200 response
func OK(c echo.Context, message string, data any) error {
	return Success(c, http.StatusOK, message, data)
}

// Created returns a 201 response
func Created(c echo.Context, message string, data any) error {
	return Success(c, http.StatusCreated, message, data)
}

// Error returns an error response. Field errors are only meaningful for 400 responses.
func Error(c echo.Context, statusCode int, message string, fields []domainerrors.FieldError) error {
	if statusCode != http.StatusBadRequest {
		fields = nil
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Envelope{
		Status:  StatusError,
		Message: message,
		Errors:  fields,
	})
}
