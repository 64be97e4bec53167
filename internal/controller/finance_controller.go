package controller

import (
	"event-reg-be/internal/dto"
	"event-reg-be/internal/lifecycle"
	"event-reg-be/internal/pkg/serverutils"
	"event-reg-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFinanceController interface {
	RegisterRoutes(r fiber.Router)
}

type financeController struct {
	service service.IFinanceService
}

func NewFinanceController(service service.IFinanceService) IFinanceController {
	return &financeController{service: service}
}

func (c *financeController) RegisterRoutes(r fiber.Router) {
	// Role gating happens per transition inside the service; any
	// authenticated staff role may read and submit.
	h := r.Group("/finance",
		serverutils.JwtMiddleware,
		serverutils.RequireRoles(
			lifecycle.RoleEventOrganizer,
			lifecycle.RoleRegionalAdmin,
			lifecycle.RoleCashier,
			lifecycle.RoleSuperAdmin,
		),
	)

	h.Post("/expenses", c.CreateExpense)
	h.Get("/expenses", c.ListExpenses)
	h.Patch("/expenses/:id/status", c.UpdateExpenseStatus)

	h.Post("/donations", c.CreateDonation)
	h.Get("/donations", c.ListDonations)
	h.Patch("/donations/:id/status", c.UpdateDonationStatus)

	h.Post("/income-sources", c.CreateIncomeSource)
	h.Get("/income-sources", c.ListIncomeSources)
	h.Patch("/income-sources/:id/status", c.UpdateIncomeSourceStatus)
}

func (c *financeController) CreateExpense(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateExpenseRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateExpense(ctx.Context(), actor, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Expense request submitted", res))
}

func (c *financeController) ListExpenses(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListExpenses(ctx.Context(), actor)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching expenses", res))
}

func (c *financeController) UpdateExpenseStatus(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid expense id")
	}

	var req dto.UpdateFinanceStatusRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateExpenseStatus(ctx.Context(), actor, id, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Expense status updated", res))
}

func (c *financeController) CreateDonation(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateDonationRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateDonation(ctx.Context(), actor, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Donation recorded", res))
}

func (c *financeController) ListDonations(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListDonations(ctx.Context(), actor)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching donations", res))
}

func (c *financeController) UpdateDonationStatus(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid donation id")
	}

	var req dto.UpdateFinanceStatusRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateDonationStatus(ctx.Context(), actor, id, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Donation status updated", res))
}

func (c *financeController) CreateIncomeSource(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateIncomeSourceRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateIncomeSource(ctx.Context(), actor, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Income source recorded", res))
}

func (c *financeController) ListIncomeSources(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListIncomeSources(ctx.Context(), actor)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching income sources", res))
}

func (c *financeController) UpdateIncomeSourceStatus(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid income source id")
	}

	var req dto.UpdateFinanceStatusRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateIncomeSourceStatus(ctx.Context(), actor, id, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Income source status updated", res))
}
