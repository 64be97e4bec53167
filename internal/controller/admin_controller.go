package controller

import (
	"time"

	"event-reg-be/internal/dto"
	"event-reg-be/internal/lifecycle"
	"event-reg-be/internal/pkg/serverutils"
	"event-reg-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
}

type adminController struct {
	service       service.IAdminService
	registrations service.IRegistrationService
	cancellations service.ICancellationService
}

func NewAdminController(
	service service.IAdminService,
	registrations service.IRegistrationService,
	cancellations service.ICancellationService,
) IAdminController {
	return &adminController{
		service:       service,
		registrations: registrations,
		cancellations: cancellations,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin",
		serverutils.JwtMiddleware,
		serverutils.RequireRoles(lifecycle.RoleEventOrganizer, lifecycle.RoleRegionalAdmin, lifecycle.RoleSuperAdmin),
	)

	h.Get("/dashboard", c.Dashboard)
	h.Get("/registrations", c.ListRegistrations)
	h.Get("/registrations/export", c.ExportRegistrants)
	h.Post("/registrations/:id/confirm", c.ConfirmPayment)
	h.Post("/registrations/:id/reject", c.RejectPayment)
	h.Post("/registrations/:id/temp-confirm", c.TempConfirm)

	h.Get("/cancel-requests", c.ListCancelRequests)
	h.Post("/cancel-requests/:id/approve", c.ApproveCancelRequest)
	h.Post("/cancel-requests/:id/reject", c.RejectCancelRequest)
}

func (c *adminController) Dashboard(ctx *fiber.Ctx) error {
	res, err := c.service.Dashboard(ctx.Context())
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching dashboard", res))
}

func (c *adminController) ListRegistrations(ctx *fiber.Ctx) error {
	res, err := c.service.ListRegistrations(ctx.Context(), ctx.Query("status"))
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching registrations", res))
}

func (c *adminController) ExportRegistrants(ctx *fiber.Ctx) error {
	filename := "registrants-" + time.Now().Format("20060102-150405") + ".csv"
	ctx.Set(fiber.HeaderContentType, "text/csv")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)

	if err := c.service.ExportRegistrantsCSV(ctx.Context(), ctx.Response().BodyWriter()); err != nil {
		return toHTTPError(err)
	}
	return nil
}

func (c *adminController) ConfirmPayment(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid registration id")
	}

	res, err := c.registrations.ConfirmPayment(ctx.Context(), actor.UserID, id)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment confirmed, tickets issued", res))
}

func (c *adminController) RejectPayment(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid registration id")
	}

	var req dto.AdminRejectPaymentRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.registrations.RejectPayment(ctx.Context(), actor.UserID, id, req.Reason)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment report rejected", res))
}

func (c *adminController) TempConfirm(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid registration id")
	}

	res, err := c.registrations.TempConfirm(ctx.Context(), actor.UserID, id)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Registration temporarily confirmed", res))
}

func (c *adminController) ListCancelRequests(ctx *fiber.Ctx) error {
	res, err := c.cancellations.ListPending(ctx.Context())
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching cancel requests", res))
}

func (c *adminController) ApproveCancelRequest(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request id")
	}

	var req dto.AdminProcessCancelRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.cancellations.Approve(ctx.Context(), actor.UserID, id, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *adminController) RejectCancelRequest(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request id")
	}

	var req dto.AdminProcessCancelRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.cancellations.Reject(ctx.Context(), actor.UserID, id, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}
