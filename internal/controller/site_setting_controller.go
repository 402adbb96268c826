// FILE: internal/controller/site_setting_controller.go
package controller

import (
	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISiteSettingController interface {
	RegisterRoutes(r fiber.Router)
}

type siteSettingController struct {
	service service.ISiteSettingService
}

func NewSiteSettingController(service service.ISiteSettingService) ISiteSettingController {
	return &siteSettingController{service: service}
}

// Settings are addressed by registry name, not by row id. A DELETE resets the
// setting to its registry default rather than removing it.
func (c *siteSettingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/site_settings")
	h.Get("/", c.FindAll)
	h.Get("/:name", c.FindOne)
	h.Put("/:name", c.Update)
	h.Delete("/:name", c.Reset)
}

func (c *siteSettingController) FindAll(ctx *fiber.Ctx) error {
	res, err := c.service.FindAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *siteSettingController) FindOne(ctx *fiber.Ctx) error {
	name := ctx.Params("name")
	if name == "" {
		return apperrors.InvalidInput("setting name is required")
	}

	res, err := c.service.FindOne(ctx.Context(), name)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *siteSettingController) Update(ctx *fiber.Ctx) error {
	name := ctx.Params("name")
	if name == "" {
		return apperrors.InvalidInput("setting name is required")
	}

	req := new(dto.UpdateSettingRequest)
	if err := ctx.BodyParser(req); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), name, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("setting updated", res))
}

func (c *siteSettingController) Reset(ctx *fiber.Ctx) error {
	name := ctx.Params("name")
	if name == "" {
		return apperrors.InvalidInput("setting name is required")
	}

	res, err := c.service.Reset(ctx.Context(), name)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("setting reset to default", res))
}
