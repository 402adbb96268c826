// FILE: internal/controller/chat_controller.go
package controller

import (
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
}

// chatController serves the signed-in user surface. Admins see every chat,
// everyone else only their own; the service treats a nil requester as
// unrestricted.
type chatController struct {
	service     service.IChatService
	documentSvc service.IDocumentService
}

func NewChatController(service service.IChatService, documentSvc service.IDocumentService) IChatController {
	return &chatController{service: service, documentSvc: documentSvc}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chats")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/", c.FindAll)
	h.Get("/:id", c.FindOne)
	h.Delete("/:id", c.Delete)
	h.Get("/:id/database/queries", c.GetQueryRecords)

	r.Get("/chunks/:id", serverutils.JwtMiddleware, c.GetChunkPreview)
}

// scope returns nil for admins so their queries are unscoped.
func (c *chatController) scope(ctx *fiber.Ctx) (*uuid.UUID, error) {
	if isAdmin(ctx) {
		return nil, nil
	}
	userId, err := requesterID(ctx)
	if err != nil {
		return nil, err
	}
	return &userId, nil
}

func (c *chatController) FindAll(ctx *fiber.Ctx) error {
	requester, err := c.scope(ctx)
	if err != nil {
		return err
	}
	q := serverutils.ParsePageQuery(ctx, "created_at", "updated_at", "title")

	res, err := c.service.FindAll(ctx.Context(), requester, q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *chatController) FindOne(ctx *fiber.Ctx) error {
	requester, err := c.scope(ctx)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.FindOne(ctx.Context(), requester, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *chatController) Delete(ctx *fiber.Ctx) error {
	if !isAdmin(ctx) {
		return apperrors.Forbidden("admin role required")
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("chat deleted", nil))
}

func (c *chatController) GetQueryRecords(ctx *fiber.Ctx) error {
	requester, err := c.scope(ctx)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	q := serverutils.ParsePageQuery(ctx, "created_at")

	res, err := c.service.GetQueryRecords(ctx.Context(), requester, id, q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

// GetChunkPreview resolves a citation to the chunk text it points at.
func (c *chatController) GetChunkPreview(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.documentSvc.GetChunkPreview(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}
