// FILE: internal/controller/database_connection_controller.go
package controller

import (
	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDatabaseConnectionController interface {
	RegisterRoutes(r fiber.Router)
}

type databaseConnectionController struct {
	service service.IDatabaseConnectionService
}

func NewDatabaseConnectionController(service service.IDatabaseConnectionService) IDatabaseConnectionController {
	return &databaseConnectionController{service: service}
}

func (c *databaseConnectionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/database_connections")
	h.Get("/", c.FindAll)
	h.Post("/", c.Create)
	h.Get("/:id", c.FindOne)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/test", c.Test)
}

func (c *databaseConnectionController) FindAll(ctx *fiber.Ctx) error {
	q := serverutils.ParsePageQuery(ctx, "created_at", "updated_at", "name", "engine")

	res, err := c.service.FindAll(ctx.Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *databaseConnectionController) FindOne(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.FindOne(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *databaseConnectionController) Create(ctx *fiber.Ctx) error {
	req := new(dto.CreateDatabaseConnectionRequest)
	if err := ctx.BodyParser(req); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("database connection created", res))
}

func (c *databaseConnectionController) Update(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	req := new(dto.UpdateDatabaseConnectionRequest)
	if err := ctx.BodyParser(req); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), id, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("database connection updated", res))
}

func (c *databaseConnectionController) Delete(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("database connection deleted", nil))
}

func (c *databaseConnectionController) Test(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.TestConnection(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}
