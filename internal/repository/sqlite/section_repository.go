package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"booknotion-be/internal/entity"
	"booknotion-be/internal/repository/contract"

	"github.com/google/uuid"
)

var _ contract.SectionRepository = (*SectionRepository)(nil)

type SectionRepository struct {
	q querier
}

func NewSectionRepository(q querier) *SectionRepository {
	return &SectionRepository{q: q}
}

func (r *SectionRepository) Create(ctx context.Context, section *entity.Section) error {
	if section.Id == uuid.Nil {
		section.Id = uuid.New()
	}
	now := time.Now().UTC()
	section.CreatedAt = now
	section.UpdatedAt = now

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO sections (id, name, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		section.Id.String(), section.Name, section.UserId.String(),
		section.CreatedAt, section.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating section: %w", err)
	}
	return nil
}

func (r *SectionRepository) FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Section, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name, user_id, created_at, updated_at
		 FROM sections WHERE user_id = ?
		 ORDER BY created_at DESC`,
		userId.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing sections: %w", err)
	}
	defer rows.Close()

	sections := make([]*entity.Section, 0)
	for rows.Next() {
		var s entity.Section
		if err := rows.Scan(&s.Id, &s.Name, &s.UserId, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning section row: %w", err)
		}
		sections = append(sections, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating sections: %w", err)
	}
	return sections, nil
}

func (r *SectionRepository) FindOne(ctx context.Context, id, userId uuid.UUID) (*entity.Section, error) {
	var s entity.Section
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, user_id, created_at, updated_at
		 FROM sections WHERE id = ? AND user_id = ?`,
		id.String(), userId.String(),
	).Scan(&s.Id, &s.Name, &s.UserId, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: finding section: %w", err)
	}
	return &s, nil
}

func (r *SectionRepository) UpdateName(ctx context.Context, id, userId uuid.UUID, name string) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE sections SET name = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		name, time.Now().UTC(), id.String(), userId.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: renaming section: %w", err)
	}
	return res.RowsAffected()
}

func (r *SectionRepository) Delete(ctx context.Context, id, userId uuid.UUID) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM sections WHERE id = ? AND user_id = ?`,
		id.String(), userId.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: deleting section: %w", err)
	}
	return res.RowsAffected()
}
