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

var _ contract.NotebookRepository = (*NotebookRepository)(nil)

type NotebookRepository struct {
	q querier
}

func NewNotebookRepository(q querier) *NotebookRepository {
	return &NotebookRepository{q: q}
}

const notebookColumns = `id, name, content, section_id, user_id, created_at, updated_at`

func (r *NotebookRepository) scanAll(rows *sql.Rows) ([]*entity.Notebook, error) {
	defer rows.Close()

	notebooks := make([]*entity.Notebook, 0)
	for rows.Next() {
		var n entity.Notebook
		if err := rows.Scan(&n.Id, &n.Name, &n.Content, &n.SectionId, &n.UserId, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning notebook row: %w", err)
		}
		notebooks = append(notebooks, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating notebooks: %w", err)
	}
	return notebooks, nil
}

func (r *NotebookRepository) Create(ctx context.Context, notebook *entity.Notebook) error {
	if notebook.Id == uuid.Nil {
		notebook.Id = uuid.New()
	}
	now := time.Now().UTC()
	notebook.CreatedAt = now
	notebook.UpdatedAt = now

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO notebooks (id, name, content, section_id, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		notebook.Id.String(), notebook.Name, notebook.Content,
		notebook.SectionId.String(), notebook.UserId.String(),
		notebook.CreatedAt, notebook.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating notebook: %w", err)
	}
	return nil
}

func (r *NotebookRepository) FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Notebook, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+notebookColumns+` FROM notebooks
		 WHERE user_id = ? ORDER BY updated_at DESC`,
		userId.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing notebooks: %w", err)
	}
	return r.scanAll(rows)
}

func (r *NotebookRepository) FindAllBySection(ctx context.Context, sectionId, userId uuid.UUID) ([]*entity.Notebook, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+notebookColumns+` FROM notebooks
		 WHERE section_id = ? AND user_id = ? ORDER BY updated_at DESC`,
		sectionId.String(), userId.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing notebooks by section: %w", err)
	}
	return r.scanAll(rows)
}

func (r *NotebookRepository) FindOne(ctx context.Context, id, userId uuid.UUID) (*entity.Notebook, error) {
	var n entity.Notebook
	err := r.q.QueryRowContext(ctx,
		`SELECT `+notebookColumns+` FROM notebooks WHERE id = ? AND user_id = ?`,
		id.String(), userId.String(),
	).Scan(&n.Id, &n.Name, &n.Content, &n.SectionId, &n.UserId, &n.CreatedAt, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: finding notebook: %w", err)
	}
	return &n, nil
}

func (r *NotebookRepository) Update(ctx context.Context, notebook *entity.Notebook) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE notebooks SET name = ?, content = ?, section_id = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		notebook.Name, notebook.Content, notebook.SectionId.String(),
		time.Now().UTC(), notebook.Id.String(), notebook.UserId.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: updating notebook: %w", err)
	}
	return res.RowsAffected()
}

func (r *NotebookRepository) UpdateContent(ctx context.Context, id, userId uuid.UUID, content string) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE notebooks SET content = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		content, time.Now().UTC(), id.String(), userId.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: updating notebook content: %w", err)
	}
	return res.RowsAffected()
}

func (r *NotebookRepository) Delete(ctx context.Context, id, userId uuid.UUID) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM notebooks WHERE id = ? AND user_id = ?`,
		id.String(), userId.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: deleting notebook: %w", err)
	}
	return res.RowsAffected()
}

func (r *NotebookRepository) DeleteBySection(ctx context.Context, sectionId, userId uuid.UUID) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM notebooks WHERE section_id = ? AND user_id = ?`,
		sectionId.String(), userId.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: deleting notebooks by section: %w", err)
	}
	return res.RowsAffected()
}

func (r *NotebookRepository) CountBySection(ctx context.Context, sectionId, userId uuid.UUID) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notebooks WHERE section_id = ? AND user_id = ?`,
		sectionId.String(), userId.String(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting notebooks: %w", err)
	}
	return count, nil
}

func (r *NotebookRepository) Search(ctx context.Context, query string, userId uuid.UUID, sectionId *uuid.UUID) ([]*entity.Notebook, error) {
	// LIKE is case-insensitive for ASCII in sqlite; lowering both sides
	// keeps behaviour aligned with ILIKE on postgres.
	pattern := "%" + query + "%"
	sqlText := `SELECT ` + notebookColumns + ` FROM notebooks
	 WHERE user_id = ? AND (LOWER(name) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?))`
	args := []interface{}{userId.String(), pattern, pattern}
	if sectionId != nil {
		sqlText += ` AND section_id = ?`
		args = append(args, sectionId.String())
	}
	sqlText += ` ORDER BY updated_at DESC`

	rows, err := r.q.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: searching notebooks: %w", err)
	}
	return r.scanAll(rows)
}
