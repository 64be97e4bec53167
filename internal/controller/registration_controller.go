package controller

import (
	"event-reg-be/internal/dto"
	"event-reg-be/internal/pkg/serverutils"
	"event-reg-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRegistrationController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	ListOwn(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	ReportPayment(ctx *fiber.Ctx) error
	GetTickets(ctx *fiber.Ctx) error
	RequestCancellation(ctx *fiber.Ctx) error
}

type registrationController struct {
	service       service.IRegistrationService
	cancellations service.ICancellationService
}

func NewRegistrationController(service service.IRegistrationService, cancellations service.ICancellationService) IRegistrationController {
	return &registrationController{service: service, cancellations: cancellations}
}

func (c *registrationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/registrations", serverutils.JwtMiddleware)
	h.Post("/", c.Create)
	h.Get("/", c.ListOwn)
	h.Get("/:id", c.Get)
	h.Put("/:id", c.Update)
	h.Post("/:id/report-payment", c.ReportPayment)
	h.Get("/:id/tickets", c.GetTickets)
	h.Post("/:id/cancel", c.RequestCancellation)
}

func (c *registrationController) Create(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateRegistrationRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), actor.UserID, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Registration created", res))
}

func (c *registrationController) ListOwn(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListOwn(ctx.Context(), actor.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching registrations", res))
}

func (c *registrationController) Get(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid registration id")
	}

	res, err := c.service.Get(ctx.Context(), actor.UserID, actor.Role, id)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching registration", res))
}

func (c *registrationController) Update(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid registration id")
	}

	var req dto.UpdateRegistrationRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), actor.UserID, id, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Registration updated", res))
}

func (c *registrationController) ReportPayment(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid registration id")
	}

	receipt, err := ctx.FormFile("receipt")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Receipt file is required")
	}

	res, err := c.service.ReportPayment(ctx.Context(), actor.UserID, id, receipt)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment reported", res))
}

func (c *registrationController) GetTickets(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid registration id")
	}

	res, err := c.service.GetTickets(ctx.Context(), actor.UserID, actor.Role, id)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching tickets", res))
}

func (c *registrationController) RequestCancellation(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid registration id")
	}

	var req dto.CancelRegistrationRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.cancellations.RequestCancellation(ctx.Context(), actor.UserID, id, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}
