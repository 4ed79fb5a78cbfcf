package service

import (
	"context"
	"strings"

	"booknotion-be/internal/apperror"
	"booknotion-be/internal/dto"
	"booknotion-be/internal/entity"
	"booknotion-be/internal/repository/unitofwork"
	"booknotion-be/pkg/events"

	"github.com/google/uuid"
)

type INotebookService interface {
	GetAll(ctx context.Context, userId uuid.UUID, sectionId *uuid.UUID) ([]*dto.NotebookResponse, error)
	Show(ctx context.Context, userId, id uuid.UUID) (*dto.NotebookResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNotebookRequest) (*dto.NotebookResponse, error)
	Update(ctx context.Context, userId, id uuid.UUID, req *dto.UpdateNotebookRequest) (*dto.NotebookResponse, error)
	UpdateContent(ctx context.Context, userId, id uuid.UUID, req *dto.UpdateContentRequest) (*dto.MessageResponse, error)
	Delete(ctx context.Context, userId, id uuid.UUID) (*dto.MessageResponse, error)
	Duplicate(ctx context.Context, userId, id uuid.UUID, req *dto.DuplicateNotebookRequest) (*dto.DuplicateNotebookResponse, error)
	Search(ctx context.Context, userId uuid.UUID, query string, sectionId *uuid.UUID) ([]*dto.NotebookResponse, error)
}

type notebookService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewNotebookService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) INotebookService {
	return &notebookService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func toNotebookResponse(notebook *entity.Notebook) *dto.NotebookResponse {
	return &dto.NotebookResponse{
		Id:        notebook.Id,
		Name:      notebook.Name,
		Content:   notebook.Content,
		SectionId: notebook.SectionId,
		UserId:    notebook.UserId,
		CreatedAt: notebook.CreatedAt,
		UpdatedAt: notebook.UpdatedAt,
	}
}

func (c *notebookService) notifyChanged(ctx context.Context, notebookId uuid.UUID, sectionId uuid.UUID, previousSectionId *uuid.UUID) {
	data := map[string]interface{}{
		"notebook_id": notebookId.String(),
		"section_id":  sectionId.String(),
	}
	if previousSectionId != nil && *previousSectionId != sectionId {
		data["previous_section_id"] = previousSectionId.String()
	}
	_ = c.publisherService.Publish(ctx, events.TopicNotebookChanged, data)
}

func (c *notebookService) requireSection(ctx context.Context, uow unitofwork.UnitOfWork, sectionId, userId uuid.UUID) error {
	section, err := uow.SectionRepository().FindOne(ctx, sectionId, userId)
	if err != nil {
		return err
	}
	if section == nil {
		return apperror.NotFound("Section not found")
	}
	return nil
}

func (c *notebookService) GetAll(ctx context.Context, userId uuid.UUID, sectionId *uuid.UUID) ([]*dto.NotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	var (
		notebooks []*entity.Notebook
		err       error
	)
	if sectionId != nil {
		if err := c.requireSection(ctx, uow, *sectionId, userId); err != nil {
			return nil, err
		}
		notebooks, err = uow.NotebookRepository().FindAllBySection(ctx, *sectionId, userId)
	} else {
		notebooks, err = uow.NotebookRepository().FindAllByUser(ctx, userId)
	}
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NotebookResponse, 0, len(notebooks))
	for _, notebook := range notebooks {
		result = append(result, toNotebookResponse(notebook))
	}
	return result, nil
}

func (c *notebookService) Show(ctx context.Context, userId, id uuid.UUID) (*dto.NotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx, id, userId)
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, apperror.NotFound("Notebook not found")
	}
	return toNotebookResponse(notebook), nil
}

func (c *notebookService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNotebookRequest) (*dto.NotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("Notebook name is required")
	}
	if req.SectionId == nil {
		return nil, apperror.Validation("section_id is required")
	}

	if err := c.requireSection(ctx, uow, *req.SectionId, userId); err != nil {
		return nil, err
	}

	notebook := &entity.Notebook{
		Name:      name,
		Content:   req.Content,
		SectionId: *req.SectionId,
		UserId:    userId,
	}
	if err := uow.NotebookRepository().Create(ctx, notebook); err != nil {
		return nil, err
	}

	c.notifyChanged(ctx, notebook.Id, notebook.SectionId, nil)
	return toNotebookResponse(notebook), nil
}

// Update merges the provided fields over the stored notebook; omitted fields
// keep their current value.
func (c *notebookService) Update(ctx context.Context, userId, id uuid.UUID, req *dto.UpdateNotebookRequest) (*dto.NotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx, id, userId)
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, apperror.NotFound("Notebook not found")
	}
	previousSectionId := notebook.SectionId

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperror.Validation("Notebook name is required")
		}
		notebook.Name = name
	}
	if req.Content != nil {
		notebook.Content = *req.Content
	}
	if req.SectionId != nil && *req.SectionId != notebook.SectionId {
		if err := c.requireSection(ctx, uow, *req.SectionId, userId); err != nil {
			return nil, err
		}
		notebook.SectionId = *req.SectionId
	}

	affected, err := uow.NotebookRepository().Update(ctx, notebook)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperror.NotFound("Notebook not found")
	}

	updated, err := uow.NotebookRepository().FindOne(ctx, id, userId)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NotFound("Notebook not found")
	}

	c.notifyChanged(ctx, updated.Id, updated.SectionId, &previousSectionId)
	return toNotebookResponse(updated), nil
}

func (c *notebookService) UpdateContent(ctx context.Context, userId, id uuid.UUID, req *dto.UpdateContentRequest) (*dto.MessageResponse, error) {
	if req.Content == nil {
		return nil, apperror.Validation("Content is required")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	affected, err := uow.NotebookRepository().UpdateContent(ctx, id, userId, *req.Content)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperror.NotFound("Notebook not found")
	}

	// Content writes don't move notebooks between sections, so no section id
	// is attached; autosave fires this on every keystroke.
	_ = c.publisherService.Publish(ctx, events.TopicNotebookChanged, map[string]interface{}{
		"notebook_id": id.String(),
	})
	return &dto.MessageResponse{Message: "Content updated successfully"}, nil
}

func (c *notebookService) Delete(ctx context.Context, userId, id uuid.UUID) (*dto.MessageResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx, id, userId)
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, apperror.NotFound("Notebook not found")
	}

	affected, err := uow.NotebookRepository().Delete(ctx, id, userId)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperror.NotFound("Notebook not found")
	}

	c.notifyChanged(ctx, notebook.Id, notebook.SectionId, nil)
	return &dto.MessageResponse{Message: "Notebook deleted successfully"}, nil
}

// Duplicate copies a notebook, content included, into the requested section
// (the source's own section when none is given).
func (c *notebookService) Duplicate(ctx context.Context, userId, id uuid.UUID, req *dto.DuplicateNotebookRequest) (*dto.DuplicateNotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	source, err := uow.NotebookRepository().FindOne(ctx, id, userId)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, apperror.NotFound("Notebook not found")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = source.Name + " - Copy"
	}

	sectionId := source.SectionId
	if req.SectionId != nil {
		if err := c.requireSection(ctx, uow, *req.SectionId, userId); err != nil {
			return nil, err
		}
		sectionId = *req.SectionId
	}

	copyNotebook := &entity.Notebook{
		Name:      name,
		Content:   source.Content,
		SectionId: sectionId,
		UserId:    userId,
	}
	if err := uow.NotebookRepository().Create(ctx, copyNotebook); err != nil {
		return nil, err
	}

	c.notifyChanged(ctx, copyNotebook.Id, copyNotebook.SectionId, nil)
	return &dto.DuplicateNotebookResponse{
		Message:  "Notebook duplicated successfully",
		Notebook: *toNotebookResponse(copyNotebook),
	}, nil
}

func (c *notebookService) Search(ctx context.Context, userId uuid.UUID, query string, sectionId *uuid.UUID) ([]*dto.NotebookResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperror.Validation("Search query is required")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	if sectionId != nil {
		if err := c.requireSection(ctx, uow, *sectionId, userId); err != nil {
			return nil, err
		}
	}

	notebooks, err := uow.NotebookRepository().Search(ctx, query, userId, sectionId)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NotebookResponse, 0, len(notebooks))
	for _, notebook := range notebooks {
		result = append(result, toNotebookResponse(notebook))
	}
	return result, nil
}
