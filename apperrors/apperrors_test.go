package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrInvalidState, fiber.StatusConflict},
		{ErrNotAuthorized, fiber.StatusForbidden},
		{ErrDuplicateRequest, fiber.StatusConflict},
		{ErrCapacityExceeded, fiber.StatusConflict},
		{ErrSchedulingConflict, fiber.StatusConflict},
		{ErrInvalidAmount, fiber.StatusBadRequest},
		{ErrNotFound, fiber.StatusNotFound},
		{InvalidState("enrollment", "cancelled"), fiber.StatusConflict},
		{fmt.Errorf("wrapped: %w", ErrCapacityExceeded), fiber.StatusConflict},
		{errors.New("something unexpected"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := StatusCode(tc.err); got != tc.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestInvalidStateWrapping(t *testing.T) {
	err := InvalidState("payment", "failed")
	if !errors.Is(err, ErrInvalidState) {
		t.Error("InvalidState must wrap ErrInvalidState")
	}
}
