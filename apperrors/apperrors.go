// Package apperrors defines the domain failure taxonomy. Every error is
// terminal from the caller's point of view: it signals a policy or state
// violation, not a transient fault.
package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrInvalidState       = errors.New("operation not valid for current status")
	ErrNotAuthorized      = errors.New("actor lacks the required role or ownership")
	ErrDuplicateRequest   = errors.New("a live request or enrollment already exists")
	ErrCapacityExceeded   = errors.New("course has reached its maximum enrollment")
	ErrSchedulingConflict = errors.New("teacher already has a session in this slot")
	ErrInvalidAmount      = errors.New("amount does not reconcile to the session price")
	ErrNotFound           = errors.New("record not found")
)

// InvalidState wraps ErrInvalidState with the offending status.
func InvalidState(entity, status string) error {
	return fmt.Errorf("%w: %s is %s", ErrInvalidState, entity, status)
}

// StatusCode maps a taxonomy error to its HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, ErrInvalidAmount):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrDuplicateRequest),
		errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, ErrSchedulingConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// Reply writes the taxonomy error as the standard JSON error body.
func Reply(c *fiber.Ctx, err error) error {
	code := StatusCode(err)
	if code == fiber.StatusInternalServerError {
		return c.Status(code).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
