// FILE: internal/controller/graph_controller.go
package controller

import (
	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGraphController interface {
	RegisterRoutes(r fiber.Router)
}

type graphController struct {
	service service.IGraphService
}

func NewGraphController(service service.IGraphService) IGraphController {
	return &graphController{service: service}
}

func (c *graphController) RegisterRoutes(r fiber.Router) {
	r.Get("/knowledge_bases/:kbId/graph", c.Explore)

	nodes := r.Group("/graph/nodes")
	nodes.Get("/:id", c.GetNode)
	nodes.Put("/:id", c.UpdateNode)
	nodes.Delete("/:id", c.DeleteNode)

	rels := r.Group("/graph/relationships")
	rels.Get("/:id", c.GetRelationship)
	rels.Put("/:id", c.UpdateRelationship)
}

func (c *graphController) Explore(ctx *fiber.Ctx) error {
	kbId, err := parseUUIDParam(ctx, "kbId")
	if err != nil {
		return err
	}
	query := ctx.Query("query")
	depth := ctx.QueryInt("depth", 2)
	limit := ctx.QueryInt("limit", 0)
	if depth < 1 || depth > 5 {
		return apperrors.InvalidInput("depth must be between 1 and 5")
	}

	res, err := c.service.Explore(ctx.Context(), kbId, query, depth, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *graphController) GetNode(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetNode(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *graphController) UpdateNode(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	req := new(dto.UpdateGraphNodeRequest)
	if err := ctx.BodyParser(req); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateNode(ctx.Context(), id, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("graph node updated", res))
}

func (c *graphController) DeleteNode(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.DeleteNode(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("graph node deleted", nil))
}

func (c *graphController) GetRelationship(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetRelationship(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *graphController) UpdateRelationship(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	req := new(dto.UpdateGraphRelationshipRequest)
	if err := ctx.BodyParser(req); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateRelationship(ctx.Context(), id, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("graph relationship updated", res))
}
