package service

import (
	"context"
	"strings"

	"booknotion-be/internal/apperror"
	"booknotion-be/internal/dto"
	"booknotion-be/internal/entity"
	"booknotion-be/internal/repository/memory"
	"booknotion-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISectionService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.SectionResponse, error)
	Show(ctx context.Context, userId, id uuid.UUID) (*dto.SectionResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSectionRequest) (*dto.SectionResponse, error)
	Rename(ctx context.Context, userId, id uuid.UUID, req *dto.UpdateSectionRequest) (*dto.SectionResponse, error)
	Delete(ctx context.Context, userId, id uuid.UUID) (*dto.DeleteSectionResponse, error)
	Notebooks(ctx context.Context, userId, id uuid.UUID) ([]*dto.NotebookResponse, error)
	Stats(ctx context.Context, userId, id uuid.UUID) (*dto.SectionStatsResponse, error)
}

type sectionService struct {
	uowFactory unitofwork.RepositoryFactory
	statsCache *memory.StatsCache
}

func NewSectionService(uowFactory unitofwork.RepositoryFactory, statsCache *memory.StatsCache) ISectionService {
	return &sectionService{
		uowFactory: uowFactory,
		statsCache: statsCache,
	}
}

func toSectionResponse(section *entity.Section) *dto.SectionResponse {
	return &dto.SectionResponse{
		Id:        section.Id,
		Name:      section.Name,
		UserId:    section.UserId,
		CreatedAt: section.CreatedAt,
		UpdatedAt: section.UpdatedAt,
	}
}

func (s *sectionService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.SectionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sections, err := uow.SectionRepository().FindAllByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SectionResponse, 0, len(sections))
	for _, section := range sections {
		result = append(result, toSectionResponse(section))
	}
	return result, nil
}

func (s *sectionService) Show(ctx context.Context, userId, id uuid.UUID) (*dto.SectionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	section, err := uow.SectionRepository().FindOne(ctx, id, userId)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, apperror.NotFound("Section not found")
	}
	return toSectionResponse(section), nil
}

func (s *sectionService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSectionRequest) (*dto.SectionResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("Section name is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	section := &entity.Section{
		Name:   name,
		UserId: userId,
	}
	if err := uow.SectionRepository().Create(ctx, section); err != nil {
		return nil, err
	}
	return toSectionResponse(section), nil
}

func (s *sectionService) Rename(ctx context.Context, userId, id uuid.UUID, req *dto.UpdateSectionRequest) (*dto.SectionResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("Section name is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	affected, err := uow.SectionRepository().UpdateName(ctx, id, userId, name)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperror.NotFound("Section not found")
	}

	section, err := uow.SectionRepository().FindOne(ctx, id, userId)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, apperror.NotFound("Section not found")
	}
	s.statsCache.Invalidate(id)
	return toSectionResponse(section), nil
}

// Delete removes the section and every notebook inside it as one
// transaction, reporting how many notebooks went with it.
func (s *sectionService) Delete(ctx context.Context, userId, id uuid.UUID) (*dto.DeleteSectionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	deletedNotebooks, err := uow.NotebookRepository().DeleteBySection(ctx, id, userId)
	if err != nil {
		return nil, err
	}

	affected, err := uow.SectionRepository().Delete(ctx, id, userId)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperror.NotFound("Section not found")
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.statsCache.Invalidate(id)
	return &dto.DeleteSectionResponse{
		Message:          "Section and associated notebooks deleted successfully",
		DeletedNotebooks: deletedNotebooks,
	}, nil
}

func (s *sectionService) Notebooks(ctx context.Context, userId, id uuid.UUID) ([]*dto.NotebookResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	section, err := uow.SectionRepository().FindOne(ctx, id, userId)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, apperror.NotFound("Section not found")
	}

	notebooks, err := uow.NotebookRepository().FindAllBySection(ctx, id, userId)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NotebookResponse, 0, len(notebooks))
	for _, notebook := range notebooks {
		result = append(result, toNotebookResponse(notebook))
	}
	return result, nil
}

func (s *sectionService) Stats(ctx context.Context, userId, id uuid.UUID) (*dto.SectionStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Ownership is checked on every call; only the computed stats are cached.
	section, err := uow.SectionRepository().FindOne(ctx, id, userId)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, apperror.NotFound("Section not found")
	}

	if cached, found := s.statsCache.Get(id); found {
		return cached, nil
	}

	total, err := uow.NotebookRepository().CountBySection(ctx, id, userId)
	if err != nil {
		return nil, err
	}

	stats := &dto.SectionStatsResponse{
		SectionId:      section.Id,
		SectionName:    section.Name,
		TotalNotebooks: total,
		CreatedAt:      section.CreatedAt,
		UpdatedAt:      section.UpdatedAt,
	}
	s.statsCache.Save(stats)
	return stats, nil
}
