package controller

import (
	"booknotion-be/internal/apperror"
	"booknotion-be/internal/dto"
	"booknotion-be/internal/pkg/serverutils"
	"booknotion-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INotebookController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	GetAll(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	UpdateContent(ctx *fiber.Ctx) error
	Duplicate(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type notebookController struct {
	service service.INotebookService
}

func NewNotebookController(service service.INotebookService) INotebookController {
	return &notebookController{service: service}
}

func (c *notebookController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/notebooks")
	h.Use(jwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	// registered before :id so "search" is not captured as an id
	h.Get("/search", c.Search)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Patch("/:id/content", c.UpdateContent)
	h.Post("/:id/duplicate", c.Duplicate)
	h.Delete("/:id", c.Delete)
}

func (c *notebookController) GetAll(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return err
	}
	sectionId, err := sectionIdQuery(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetAll(ctx.Context(), userId, sectionId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *notebookController) Search(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return err
	}
	sectionId, err := sectionIdQuery(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Search(ctx.Context(), userId, ctx.Query("q"), sectionId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *notebookController) Show(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := idParam(ctx, "Notebook")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *notebookController) Create(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNotebookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *notebookController) Update(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := idParam(ctx, "Notebook")
	if err != nil {
		return err
	}

	var req dto.UpdateNotebookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}

	res, err := c.service.Update(ctx.Context(), userId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *notebookController) UpdateContent(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := idParam(ctx, "Notebook")
	if err != nil {
		return err
	}

	var req dto.UpdateContentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}

	res, err := c.service.UpdateContent(ctx.Context(), userId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *notebookController) Duplicate(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := idParam(ctx, "Notebook")
	if err != nil {
		return err
	}

	var req dto.DuplicateNotebookRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return apperror.Validation("Invalid request body")
		}
	}

	res, err := c.service.Duplicate(ctx.Context(), userId, id, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *notebookController) Delete(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := idParam(ctx, "Notebook")
	if err != nil {
		return err
	}

	res, err := c.service.Delete(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
