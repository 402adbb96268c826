// FILE: internal/controller/feedback_controller.go
package controller

import (
	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFeedbackController interface {
	RegisterRoutes(r fiber.Router)
	RegisterPublicRoutes(r fiber.Router)
}

type feedbackController struct {
	service service.IFeedbackService
}

func NewFeedbackController(service service.IFeedbackService) IFeedbackController {
	return &feedbackController{service: service}
}

// RegisterRoutes mounts the admin review surface.
func (c *feedbackController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/feedbacks")
	h.Get("/", c.FindAll)
	h.Get("/:id", c.FindOne)
	h.Delete("/:id", c.Delete)
}

// RegisterPublicRoutes mounts the submission endpoint any signed-in user can hit.
func (c *feedbackController) RegisterPublicRoutes(r fiber.Router) {
	r.Post("/feedbacks", serverutils.JwtMiddleware, c.Create)
}

func (c *feedbackController) Create(ctx *fiber.Ctx) error {
	userId, err := requesterID(ctx)
	if err != nil {
		return err
	}

	req := new(dto.CreateFeedbackRequest)
	if err := ctx.BodyParser(req); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), userId, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("feedback submitted", res))
}

func (c *feedbackController) FindAll(ctx *fiber.Ctx) error {
	q := serverutils.ParsePageQuery(ctx, "created_at", "rating")

	res, err := c.service.FindAll(ctx.Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *feedbackController) FindOne(ctx *fiber.Ctx) error {
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

func (c *feedbackController) Delete(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("feedback deleted", nil))
}
