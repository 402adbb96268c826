// FILE: internal/controller/knowledge_base_controller.go
package controller

import (
	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IKnowledgeBaseController interface {
	RegisterRoutes(r fiber.Router)
}

type knowledgeBaseController struct {
	service service.IKnowledgeBaseService
}

func NewKnowledgeBaseController(service service.IKnowledgeBaseService) IKnowledgeBaseController {
	return &knowledgeBaseController{service: service}
}

func (c *knowledgeBaseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/knowledge_bases")
	h.Get("/", c.FindAll)
	h.Post("/", c.Create)
	h.Get("/:id", c.FindOne)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *knowledgeBaseController) FindAll(ctx *fiber.Ctx) error {
	q := serverutils.ParsePageQuery(ctx, "created_at", "updated_at", "name")

	res, err := c.service.FindAll(ctx.Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *knowledgeBaseController) FindOne(ctx *fiber.Ctx) error {
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

func (c *knowledgeBaseController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateKnowledgeBaseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("knowledge base created", res))
}

func (c *knowledgeBaseController) Update(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateKnowledgeBaseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("knowledge base updated", res))
}

func (c *knowledgeBaseController) Delete(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("knowledge base deleted", nil))
}
