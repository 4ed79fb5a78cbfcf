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

type SectionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SectionMapper
}

func NewSectionRepository(db *gorm.DB) contract.SectionRepository {
	return &SectionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSectionMapper(),
	}
}

func (r *SectionRepositoryImpl) Create(ctx context.Context, section *entity.Section) error {
	m := r.mapper.ToModel(section)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*section = *r.mapper.ToEntity(m)
	return nil
}

func (r *SectionRepositoryImpl) FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Section, error) {
	var models []*model.Section
	query := r.db.WithContext(ctx)
	query = specification.UserOwnedBy{UserID: userId}.Apply(query)
	query = specification.OrderBy{Field: "created_at", Desc: true}.Apply(query)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SectionRepositoryImpl) FindOne(ctx context.Context, id, userId uuid.UUID) (*entity.Section, error) {
	var m model.Section
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

func (r *SectionRepositoryImpl) UpdateName(ctx context.Context, id, userId uuid.UUID, name string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Section{}).
		Where("id = ? AND user_id = ?", id, userId).
		Update("name", name)
	return res.RowsAffected, res.Error
}

func (r *SectionRepositoryImpl) Delete(ctx context.Context, id, userId uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userId).
		Delete(&model.Section{})
	return res.RowsAffected, res.Error
}
