package controller

import (
	"booknotion-be/internal/apperror"
	"booknotion-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func userIdFromCtx(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals(serverutils.LocalsUserId).(string)
	if !ok {
		return uuid.Nil, apperror.Auth("Access token required")
	}
	userId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Auth("Access token required")
	}
	return userId, nil
}

// idParam parses the :id path segment. Malformed ids can never match a row,
// so they surface as not found.
func idParam(ctx *fiber.Ctx, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.NotFound(resource + " not found")
	}
	return id, nil
}

// sectionIdQuery parses the optional section_id query filter.
func sectionIdQuery(ctx *fiber.Ctx) (*uuid.UUID, error) {
	raw := ctx.Query("section_id")
	if raw == "" {
		return nil, nil
	}
	sectionId, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.Validation("section_id must be a valid id")
	}
	return &sectionId, nil
}
