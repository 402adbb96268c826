// FILE: internal/controller/chat_engine_controller.go
package controller

import (
	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatEngineController interface {
	RegisterRoutes(r fiber.Router)
}

type chatEngineController struct {
	service service.IChatEngineService
}

func NewChatEngineController(service service.IChatEngineService) IChatEngineController {
	return &chatEngineController{service: service}
}

func (c *chatEngineController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat_engines")
	h.Get("/", c.FindAll)
	h.Post("/", c.Create)
	h.Get("/:id", c.FindOne)
	h.Put("/:id", c.Update)
	h.Put("/:id/default", c.SetDefault)
	h.Delete("/:id", c.Delete)
}

func (c *chatEngineController) FindAll(ctx *fiber.Ctx) error {
	q := serverutils.ParsePageQuery(ctx, "created_at", "updated_at", "name")

	res, err := c.service.FindAll(ctx.Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *chatEngineController) FindOne(ctx *fiber.Ctx) error {
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

func (c *chatEngineController) Create(ctx *fiber.Ctx) error {
	req := new(dto.CreateChatEngineRequest)
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
	return ctx.JSON(serverutils.SuccessResponse("chat engine created", res))
}

func (c *chatEngineController) Update(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	req := new(dto.UpdateChatEngineRequest)
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
	return ctx.JSON(serverutils.SuccessResponse("chat engine updated", res))
}

func (c *chatEngineController) SetDefault(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.SetDefault(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("default chat engine updated", res))
}

func (c *chatEngineController) Delete(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("chat engine deleted", nil))
}
