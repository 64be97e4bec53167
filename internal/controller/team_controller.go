package controller

import (
	"event-reg-be/internal/dto"
	"event-reg-be/internal/lifecycle"
	"event-reg-be/internal/pkg/serverutils"
	"event-reg-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITeamController interface {
	RegisterRoutes(r fiber.Router)
	CreateTeam(ctx *fiber.Ctx) error
	ListTeams(ctx *fiber.Ctx) error
	ListUnassigned(ctx *fiber.Ctx) error
	BulkAssign(ctx *fiber.Ctx) error
	CreateRole(ctx *fiber.Ctx) error
	ListRoles(ctx *fiber.Ctx) error
}

type teamController struct {
	service service.ITeamService
}

func NewTeamController(service service.ITeamService) ITeamController {
	return &teamController{service: service}
}

func (c *teamController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/teams",
		serverutils.JwtMiddleware,
		serverutils.RequireRoles(lifecycle.RoleEventOrganizer, lifecycle.RoleRegionalAdmin, lifecycle.RoleSuperAdmin),
	)
	h.Post("/", c.CreateTeam)
	h.Get("/", c.ListTeams)
	h.Get("/unassigned", c.ListUnassigned)
	h.Post("/:id/assign", c.BulkAssign)
	h.Post("/roles", c.CreateRole)
	h.Get("/roles", c.ListRoles)
}

func (c *teamController) CreateTeam(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateTeamRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateTeam(ctx.Context(), actor, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Team created", res))
}

func (c *teamController) ListTeams(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListTeams(ctx.Context(), actor)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching teams", res))
}

func (c *teamController) ListUnassigned(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListUnassigned(ctx.Context(), actor)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching unassigned registrants", res))
}

func (c *teamController) BulkAssign(ctx *fiber.Ctx) error {
	actor, err := serverutils.ActorFromLocals(ctx)
	if err != nil {
		return err
	}

	teamId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid team id")
	}

	var req dto.BulkAssignRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.BulkAssign(ctx.Context(), actor, teamId, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Assignment completed", res))
}

func (c *teamController) CreateRole(ctx *fiber.Ctx) error {
	var req dto.CreateEventRoleRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateRole(ctx.Context(), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Role created", res))
}

func (c *teamController) ListRoles(ctx *fiber.Ctx) error {
	res, err := c.service.ListRoles(ctx.Context())
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching roles", res))
}
