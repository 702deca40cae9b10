package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sayanm085/shopnex-api/internal/application/dto"
	"github.com/sayanm085/shopnex-api/internal/domain"
)

// httpError maps a domain error to status and machine code.
func httpError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusBadRequest, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrInsufficientPoints):
		return fiber.StatusBadRequest, "INSUFFICIENT_POINTS"
	case errors.Is(err, domain.ErrInsufficientPayment):
		return fiber.StatusBadRequest, "INSUFFICIENT_PAYMENT"
	case errors.Is(err, domain.ErrInvalidState):
		return fiber.StatusBadRequest, "INVALID_STATE"
	case errors.Is(err, domain.ErrFulfillment):
		return fiber.StatusInternalServerError, "FULFILLMENT"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// fail writes the uniform error payload for a usecase error.
func fail(c *fiber.Ctx, err error) error {
	status, code := httpError(err)
	msg := err.Error()
	if code == "INTERNAL" {
		// Internals are logged at the transaction boundary already.
		msg = "internal error"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// badRequest writes a handler-level validation failure.
func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
