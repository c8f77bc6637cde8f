package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mufradat/mufradat-backend/internal/model"
)

// TagRepository handles tag data access. Every query is user-scoped.
type TagRepository struct {
	pool *pgxpool.Pool
}

// NewTagRepository creates a new TagRepository.
func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{pool: pool}
}

// ListByUser retrieves all tags owned by a user, alphabetically.
func (r *TagRepository) ListByUser(ctx context.Context, userID int) ([]model.Tag, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, name, created_at
		 FROM tags WHERE user_id = $1
		 ORDER BY name`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// Create inserts a new tag.
func (r *TagRepository) Create(ctx context.Context, t *model.Tag) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO tags (user_id, name)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		t.UserID, t.Name,
	).Scan(&t.ID, &t.CreatedAt)
}

// Update renames a tag. Returns pgx.ErrNoRows via the scan if the tag does
// not exist or belongs to another user.
func (r *TagRepository) Update(ctx context.Context, id uuid.UUID, userID int, name string) (*model.Tag, error) {
	t := &model.Tag{}
	err := r.pool.QueryRow(ctx,
		`UPDATE tags SET name = $1
		 WHERE id = $2 AND user_id = $3
		 RETURNING id, user_id, name, created_at`,
		name, id, userID,
	).Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a tag and its word associations (cascade).
func (r *TagRepository) Delete(ctx context.Context, id uuid.UUID, userID int) (bool, error) {
	ct, err := r.pool.Exec(ctx,
		`DELETE FROM tags WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
