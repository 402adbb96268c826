// FILE: internal/controller/params.go
package controller

import (
	"rag-admin-be/internal/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func parseUUIDParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperrors.InvalidInput("invalid " + name)
	}
	return id, nil
}

// requesterID reads the user id the jwt middleware stored in locals.
func requesterID(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := ctx.Locals("user_id").(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Unauthorized("invalid session")
	}
	return id, nil
}

func isAdmin(ctx *fiber.Ctx) bool {
	role, _ := ctx.Locals("role").(string)
	return role == "admin"
}
