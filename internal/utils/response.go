package utils

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/smart-reviewer/internal/types"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// OKResponse sends {"ok": true} merged with any extra fields
func OKResponse(c *fiber.Ctx, status int, extra fiber.Map) error {
	body := fiber.Map{"ok": true}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// StatusForError maps a data-access error kind to an HTTP status
func StatusForError(err error) int {
	switch {
	case errors.Is(err, types.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, types.ErrAuth):
		return fiber.StatusUnauthorized
	case errors.Is(err, types.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, types.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, types.ErrConstraint):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

// KindName is the short name of a data-access error kind, used as the response type
func KindName(err error) string {
	switch {
	case errors.Is(err, types.ErrValidation):
		return "validation"
	case errors.Is(err, types.ErrAuth):
		return "auth"
	case errors.Is(err, types.ErrNotFound):
		return "notFound"
	case errors.Is(err, types.ErrConflict):
		return "conflict"
	case errors.Is(err, types.ErrConstraint):
		return "constraint"
	}
	return "internal"
}

// StoreErrorResponse sends the client-safe rendering of a data-access error
func StoreErrorResponse(c *fiber.Ctx, err error, errorType string) error {
	status := StatusForError(err)
	if errorType == "" || status != fiber.StatusInternalServerError {
		errorType = KindName(err)
	}
	return ErrorResponse(c, types.PublicMessage(err), status, errorType)
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

// OKResponseStruct defines the schema for bare success responses
type OKResponseStruct struct {
	Ok bool `json:"ok"`
}
