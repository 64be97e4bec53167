package controller

import (
	"errors"

	"event-reg-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// toHTTPError converts service sentinel errors into fiber errors so the
// global error handler renders the right status code. Unknown errors
// pass through and become a 500.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrBadRequest):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}
