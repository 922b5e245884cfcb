package handler

import (
	"errors"
	"net/http"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/service"
	"github.com/labstack/echo/v4"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// ValidationErrorResponse mirrors the shape clients re-render forms
// from: a map of field name to messages.
type ValidationErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}

func currentUID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}

// writeServiceError maps the service error taxonomy onto status codes.
// NotFound and Forbidden stay deliberately vague so non-participants
// learn nothing about what exists.
func writeServiceError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "resource not found"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "access denied"))
	}
	if ve, ok := service.AsValidation(err); ok {
		return c.JSON(http.StatusBadRequest, ValidationErrorResponse{Errors: ve.Fields})
	}
	return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", fallback))
}
