// FILE: internal/controller/datasource_controller.go
package controller

import (
	"mime/multipart"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDatasourceController interface {
	RegisterRoutes(r fiber.Router)
}

type datasourceController struct {
	service service.IDatasourceService
}

func NewDatasourceController(service service.IDatasourceService) IDatasourceController {
	return &datasourceController{service: service}
}

func (c *datasourceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/knowledge_bases/:kbId/datasources")
	h.Get("/", c.FindAll)
	h.Post("/", c.Create)
	h.Get("/:id", c.FindOne)
	h.Delete("/:id", c.Delete)
}

func (c *datasourceController) FindAll(ctx *fiber.Ctx) error {
	kbId, err := parseUUIDParam(ctx, "kbId")
	if err != nil {
		return err
	}
	q := serverutils.ParsePageQuery(ctx, "created_at", "updated_at", "name", "status")

	res, err := c.service.FindAll(ctx.Context(), kbId, q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *datasourceController) FindOne(ctx *fiber.Ctx) error {
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

// Create accepts JSON for url/sitemap sources and multipart form data for
// file sources; the upload travels in the "file" part.
func (c *datasourceController) Create(ctx *fiber.Ctx) error {
	kbId, err := parseUUIDParam(ctx, "kbId")
	if err != nil {
		return err
	}

	var req dto.CreateDatasourceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	var file *multipart.FileHeader
	if req.SourceType == "file" {
		file, err = ctx.FormFile("file")
		if err != nil {
			return apperrors.InvalidInput("file part is required for file sources")
		}
	}

	res, err := c.service.Create(ctx.Context(), kbId, &req, file)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("datasource created", res))
}

func (c *datasourceController) Delete(ctx *fiber.Ctx) error {
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
	return ctx.JSON(serverutils.SuccessResponse[any]("datasource deleted", nil))
}
