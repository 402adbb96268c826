// FILE: internal/controller/ai_model_controller.go
package controller

import (
	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAIModelController interface {
	RegisterRoutes(r fiber.Router)
}

// aiModelController serves the three model collections from one handler set.
// Each route group binds a ModelKind so llms, embedding_models and rerankers
// share validation and default-swap behavior without three copies of it.
type aiModelController struct {
	service service.IAIModelService
}

func NewAIModelController(service service.IAIModelService) IAIModelController {
	return &aiModelController{service: service}
}

func (c *aiModelController) RegisterRoutes(r fiber.Router) {
	c.registerKind(r.Group("/llms"), entity.ModelKindLLM)
	c.registerKind(r.Group("/embedding_models"), entity.ModelKindEmbedding)
	c.registerKind(r.Group("/rerankers"), entity.ModelKindReranker)
}

func (c *aiModelController) registerKind(h fiber.Router, kind entity.ModelKind) {
	h.Get("/", c.findAll(kind))
	h.Post("/", c.create(kind))
	h.Post("/test", c.test(kind))
	h.Get("/:id", c.findOne(kind))
	h.Put("/:id", c.update(kind))
	h.Put("/:id/default", c.setDefault(kind))
	h.Delete("/:id", c.delete(kind))
}

func (c *aiModelController) findAll(kind entity.ModelKind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		q := serverutils.ParsePageQuery(ctx, "created_at", "updated_at", "name", "provider")

		res, err := c.service.FindAll(ctx.Context(), kind, q)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("ok", res))
	}
}

func (c *aiModelController) findOne(kind entity.ModelKind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := parseUUIDParam(ctx, "id")
		if err != nil {
			return err
		}

		res, err := c.service.FindOne(ctx.Context(), kind, id)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("ok", res))
	}
}

func (c *aiModelController) create(kind entity.ModelKind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(dto.CreateModelRequest)
		if err := ctx.BodyParser(req); err != nil {
			return apperrors.InvalidInput("invalid request body")
		}
		if err := serverutils.ValidateRequest(req); err != nil {
			return err
		}

		res, err := c.service.Create(ctx.Context(), kind, req)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("model created", res))
	}
}

func (c *aiModelController) update(kind entity.ModelKind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := parseUUIDParam(ctx, "id")
		if err != nil {
			return err
		}

		req := new(dto.UpdateModelRequest)
		if err := ctx.BodyParser(req); err != nil {
			return apperrors.InvalidInput("invalid request body")
		}
		if err := serverutils.ValidateRequest(req); err != nil {
			return err
		}

		res, err := c.service.Update(ctx.Context(), kind, id, req)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("model updated", res))
	}
}

func (c *aiModelController) setDefault(kind entity.ModelKind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := parseUUIDParam(ctx, "id")
		if err != nil {
			return err
		}

		res, err := c.service.SetDefault(ctx.Context(), kind, id)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("default model updated", res))
	}
}

func (c *aiModelController) delete(kind entity.ModelKind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := parseUUIDParam(ctx, "id")
		if err != nil {
			return err
		}

		if err := c.service.Delete(ctx.Context(), kind, id); err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse[any]("model deleted", nil))
	}
}

// test probes the submitted configuration without saving it, so an admin can
// verify credentials before the row exists.
func (c *aiModelController) test(kind entity.ModelKind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(dto.CreateModelRequest)
		if err := ctx.BodyParser(req); err != nil {
			return apperrors.InvalidInput("invalid request body")
		}
		if err := serverutils.ValidateRequest(req); err != nil {
			return err
		}

		res, err := c.service.TestModel(ctx.Context(), kind, req)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("ok", res))
	}
}
