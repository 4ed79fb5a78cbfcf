package implementation

import (
	"context"
	"errors"

	"booknotion-be/internal/entity"
	"booknotion-be/internal/mapper"
	"booknotion-be/internal/model"
	"booknotion-be/internal/repository/contract"
	"booknotion-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotebookRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NotebookMapper
}

func NewNotebookRepository(db *gorm.DB) contract.NotebookRepository {
	return &NotebookRepositoryImpl{
		db:     db,
		mapper: mapper.NewNotebookMapper(),
	}
}

func (r *NotebookRepositoryImpl) findAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notebook, error) {
	var models []*model.Notebook
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NotebookRepositoryImpl) Create(ctx context.Context, notebook *entity.Notebook) error {
	m := r.mapper.ToModel(notebook)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*notebook = *r.mapper.ToEntity(m)
	return nil
}

func (r *NotebookRepositoryImpl) FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Notebook, error) {
	return r.findAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
}

func (r *NotebookRepositoryImpl) FindAllBySection(ctx context.Context, sectionId, userId uuid.UUID) ([]*entity.Notebook, error) {
	return r.findAll(ctx,
		specification.BySectionID{SectionID: sectionId},
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
}

func (r *NotebookRepositoryImpl) FindOne(ctx context.Context, id, userId uuid.UUID) (*entity.Notebook, error) {
	var m model.Notebook
	query := r.db.WithContext(ctx)
	query = specification.ByID{ID: id}.Apply(query)
	query = specification.UserOwnedBy{UserID: userId}.Apply(query)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NotebookRepositoryImpl) Update(ctx context.Context, notebook *entity.Notebook) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Notebook{}).
		Where("id = ? AND user_id = ?", notebook.Id, notebook.UserId).
		Updates(map[string]interface{}{
			"name":       notebook.Name,
			"content":    notebook.Content,
			"section_id": notebook.SectionId,
		})
	return res.RowsAffected, res.Error
}

func (r *NotebookRepositoryImpl) UpdateContent(ctx context.Context, id, userId uuid.UUID, content string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Notebook{}).
		Where("id = ? AND user_id = ?", id, userId).
		Update("content", content)
	return res.RowsAffected, res.Error
}

func (r *NotebookRepositoryImpl) Delete(ctx context.Context, id, userId uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userId).
		Delete(&model.Notebook{})
	return res.RowsAffected, res.Error
}

func (r *NotebookRepositoryImpl) DeleteBySection(ctx context.Context, sectionId, userId uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("section_id = ? AND user_id = ?", sectionId, userId).
		Delete(&model.Notebook{})
	return res.RowsAffected, res.Error
}

func (r *NotebookRepositoryImpl) CountBySection(ctx context.Context, sectionId, userId uuid.UUID) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Notebook{})
	query = specification.BySectionID{SectionID: sectionId}.Apply(query)
	query = specification.UserOwnedBy{UserID: userId}.Apply(query)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *NotebookRepositoryImpl) Search(ctx context.Context, queryText string, userId uuid.UUID, sectionId *uuid.UUID) ([]*entity.Notebook, error) {
	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.MatchingText{Query: queryText},
	}
	if sectionId != nil {
		specs = append(specs, specification.BySectionID{SectionID: *sectionId})
	}
	specs = append(specs, specification.OrderBy{Field: "updated_at", Desc: true})
	return r.findAll(ctx, specs...)
}
