package controller

import (
	"event-reg-be/internal/dto"
	"event-reg-be/internal/lifecycle"
	"event-reg-be/internal/pkg/serverutils"
	"event-reg-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICheckInController interface {
	RegisterRoutes(r fiber.Router)
	CheckIn(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type checkInController struct {
	service service.ICheckInService
}

func NewCheckInController(service service.ICheckInService) ICheckInController {
	return &checkInController{service: service}
}

func (c *checkInController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/checkin",
		serverutils.JwtMiddleware,
		serverutils.RequireRoles(lifecycle.RoleEventOrganizer, lifecycle.RoleRegionalAdmin, lifecycle.RoleSuperAdmin),
	)
	h.Post("/", c.CheckIn)
	h.Get("/stats", c.Stats)
}

func (c *checkInController) CheckIn(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.CheckInRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CheckIn(ctx.Context(), actor.UserID, req.RegistrantId)
	if err != nil {
		return toHTTPError(err)
	}

	// Duplicate and ineligible scans come back as HTTP 200 with
	// success=false; the kiosk renders the message inline.
	if !res.Success {
		return ctx.JSON(serverutils.SoftFailureResponse(res.Message, res.Registrant))
	}
	return ctx.JSON(serverutils.SuccessResponse("Check-in recorded", res.Registrant))
}

func (c *checkInController) Stats(ctx *fiber.Ctx) error {
	res, err := c.service.Stats(ctx.Context())
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching stats", res))
}
