// FILE: internal/controller/evaluation_controller.go
package controller

import (
	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEvaluationController interface {
	RegisterRoutes(r fiber.Router)
}

type evaluationController struct {
	service service.IEvaluationService
}

func NewEvaluationController(service service.IEvaluationService) IEvaluationController {
	return &evaluationController{service: service}
}

func (c *evaluationController) RegisterRoutes(r fiber.Router) {
	datasets := r.Group("/evaluation/datasets")
	datasets.Get("/", c.FindDatasets)
	datasets.Post("/", c.CreateDataset)
	datasets.Get("/:id", c.FindDataset)
	datasets.Put("/:id", c.UpdateDataset)
	datasets.Delete("/:id", c.DeleteDataset)
	datasets.Get("/:id/items", c.FindItems)
	datasets.Post("/:id/items", c.CreateItem)
	datasets.Post("/:id/items/upload", c.UploadItems)
	datasets.Put("/:id/items/:itemId", c.UpdateItem)
	datasets.Delete("/:id/items/:itemId", c.DeleteItem)

	tasks := r.Group("/evaluation/tasks")
	tasks.Get("/", c.FindTasks)
	tasks.Post("/", c.CreateTask)
	tasks.Get("/:id", c.FindTask)
	tasks.Get("/:id/progress", c.GetProgress)
	tasks.Post("/:id/cancel", c.Cancel)
	tasks.Get("/:id/results", c.FindResults)
}

func (c *evaluationController) FindDatasets(ctx *fiber.Ctx) error {
	q := serverutils.ParsePageQuery(ctx, "created_at", "updated_at", "name")

	res, err := c.service.FindDatasets(ctx.Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *evaluationController) FindDataset(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.FindDataset(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *evaluationController) CreateDataset(ctx *fiber.Ctx) error {
	req := new(dto.CreateEvaluationDatasetRequest)
	if err := ctx.BodyParser(req); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateDataset(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("dataset created", res))
}

func (c *evaluationController) UpdateDataset(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	req := new(dto.UpdateEvaluationDatasetRequest)
	if err := ctx.BodyParser(req); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateDataset(ctx.Context(), id, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("dataset updated", res))
}

func (c *evaluationController) DeleteDataset(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.DeleteDataset(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("dataset deleted", nil))
}

func (c *evaluationController) FindItems(ctx *fiber.Ctx) error {
	datasetId, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	q := serverutils.ParsePageQuery(ctx, "created_at", "updated_at")

	res, err := c.service.FindItems(ctx.Context(), datasetId, q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *evaluationController) CreateItem(ctx *fiber.Ctx) error {
	datasetId, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	req := new(dto.CreateEvaluationItemRequest)
	if err := ctx.BodyParser(req); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateItem(ctx.Context(), datasetId, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("item created", res))
}

func (c *evaluationController) UpdateItem(ctx *fiber.Ctx) error {
	datasetId, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	itemId, err := parseUUIDParam(ctx, "itemId")
	if err != nil {
		return err
	}

	req := new(dto.UpdateEvaluationItemRequest)
	if err := ctx.BodyParser(req); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateItem(ctx.Context(), datasetId, itemId, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("item updated", res))
}

func (c *evaluationController) DeleteItem(ctx *fiber.Ctx) error {
	datasetId, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	itemId, err := parseUUIDParam(ctx, "itemId")
	if err != nil {
		return err
	}

	if err := c.service.DeleteItem(ctx.Context(), datasetId, itemId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("item deleted", nil))
}

// UploadItems ingests a CSV file posted as multipart form data under the
// "file" part.
func (c *evaluationController) UploadItems(ctx *fiber.Ctx) error {
	datasetId, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return apperrors.InvalidInput("file part is required")
	}

	res, err := c.service.UploadItems(ctx.Context(), datasetId, file)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("items imported", res))
}

func (c *evaluationController) CreateTask(ctx *fiber.Ctx) error {
	req := new(dto.CreateEvaluationTaskRequest)
	if err := ctx.BodyParser(req); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateTask(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("evaluation task queued", res))
}

func (c *evaluationController) FindTasks(ctx *fiber.Ctx) error {
	q := serverutils.ParsePageQuery(ctx, "created_at", "status")

	var datasetId *uuid.UUID
	if raw := ctx.Query("dataset_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return apperrors.InvalidInput("invalid dataset_id")
		}
		datasetId = &parsed
	}

	res, err := c.service.FindTasks(ctx.Context(), datasetId, q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *evaluationController) FindTask(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.FindTask(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *evaluationController) GetProgress(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetProgress(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}

func (c *evaluationController) Cancel(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Cancel(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("cancellation requested", res))
}

func (c *evaluationController) FindResults(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	q := serverutils.ParsePageQuery(ctx, "created_at")

	res, err := c.service.FindResults(ctx.Context(), id, q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", res))
}
