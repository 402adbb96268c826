// FILE: internal/controller/document_controller.go
package controller

import (
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
}

type documentController struct {
	service service.IDocumentService
}

func NewDocumentController(service service.IDocumentService) IDocumentController {
	return &documentController{service: service}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/knowledge_bases/:kbId/documents")
	h.Get("/", c.FindAll)
	h.Get("/:id", c.FindOne)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/reindex", c.Reindex)
	h.Get("/:id/chunks", c.FindChunks)
}

func (c *documentController) FindAll(ctx *fiber.Ctx) error {
	kbId, err := parseUUIDParam(ctx, "kbId")
	if err != nil {
		return err
	}
	q := serverutils.ParsePageQuery(ctx, "created_at", "updated_at", "name", "index_status", "size_bytes")

	res, err := c.service.FindAll(ctx.Context(), kbId, q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *documentController) FindOne(ctx *fiber.Ctx) error {
	kbId, err := parseUUIDParam(ctx, "kbId")
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.FindOne(ctx.Context(), kbId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	kbId, err := parseUUIDParam(ctx, "kbId")
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), kbId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("document deleted", nil))
}

func (c *documentController) Reindex(ctx *fiber.Ctx) error {
	kbId, err := parseUUIDParam(ctx, "kbId")
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Reindex(ctx.Context(), kbId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("reindex queued", res))
}

func (c *documentController) FindChunks(ctx *fiber.Ctx) error {
	kbId, err := parseUUIDParam(ctx, "kbId")
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	q := serverutils.ParsePageQuery(ctx, "ordinal", "created_at")

	res, err := c.service.FindChunks(ctx.Context(), kbId, id, q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}
