// FILE: internal/controller/system_controller.go
package controller

import (
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISystemController interface {
	RegisterRoutes(r fiber.Router)
}

type systemController struct {
	service service.ISystemService
}

func NewSystemController(service service.ISystemService) ISystemController {
	return &systemController{service: service}
}

func (c *systemController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/system")
	h.Get("/stats", c.GetStats)
	h.Get("/logs", c.GetSystemLogs)
	h.Get("/logs/:id", c.GetLogDetail)
}

func (c *systemController) GetStats(ctx *fiber.Ctx) error {
	res, err := c.service.GetStats(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *systemController) GetSystemLogs(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 50)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	level := ctx.Query("level")

	res, err := c.service.GetSystemLogs(ctx.Context(), page, limit, level)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

// GetLogDetail looks a log entry up by the hash id the list endpoint returned,
// not by uuid.
func (c *systemController) GetLogDetail(ctx *fiber.Ctx) error {
	logId := ctx.Params("id")
	if logId == "" {
		return apperrors.InvalidInput("log id is required")
	}

	res, err := c.service.GetLogDetail(ctx.Context(), logId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}
