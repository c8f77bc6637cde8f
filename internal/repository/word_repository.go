package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mufradat/mufradat-backend/internal/model"
)

// WordRepository handles vocabulary data access. Every query is user-scoped.
type WordRepository struct {
	pool *pgxpool.Pool
}

// NewWordRepository creates a new WordRepository.
func NewWordRepository(pool *pgxpool.Pool) *WordRepository {
	return &WordRepository{pool: pool}
}

const wordColumns = `w.id, w.user_id, w.english, w.arabic, w.root, w.part_of_speech, w.noun, w.verb,
	COALESCE(array_agg(wt.tag_id) FILTER (WHERE wt.tag_id IS NOT NULL), '{}') AS tag_ids,
	w.created_at, w.updated_at`

func scanWord(row pgx.Row) (*model.Word, error) {
	w := &model.Word{}
	err := row.Scan(&w.ID, &w.UserID, &w.English, &w.Arabic, &w.Root, &w.PartOfSpeech,
		&w.Noun, &w.Verb, &w.TagIDs, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// GetByID retrieves one word with its tag associations.
func (r *WordRepository) GetByID(ctx context.Context, id uuid.UUID, userID int) (*model.Word, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+wordColumns+`
		 FROM words w
		 LEFT JOIN word_tags wt ON wt.word_id = w.id
		 WHERE w.id = $1 AND w.user_id = $2
		 GROUP BY w.id`, id, userID)
	return scanWord(row)
}

// List retrieves a user's words with optional tag filter and pagination.
func (r *WordRepository) List(ctx context.Context, userID int, tagID *uuid.UUID, page, perPage int) ([]model.Word, int64, error) {
	offset := (page - 1) * perPage

	baseWhere := `WHERE w.user_id = $1`
	args := []any{userID}
	if tagID != nil {
		args = append(args, *tagID)
		baseWhere += fmt.Sprintf(
			` AND EXISTS (SELECT 1 FROM word_tags f WHERE f.word_id = w.id AND f.tag_id = $%d)`,
			len(args))
	}

	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM words w `+baseWhere, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + wordColumns + `
		 FROM words w
		 LEFT JOIN word_tags wt ON wt.word_id = w.id
		 ` + baseWhere + `
		 GROUP BY w.id
		 ORDER BY w.created_at DESC
		 LIMIT $` + fmt.Sprintf("%d", len(args)+1) + ` OFFSET $` + fmt.Sprintf("%d", len(args)+2)
	args = append(args, perPage, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var words []model.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, 0, err
		}
		words = append(words, *w)
	}
	return words, total, rows.Err()
}

// DrawForQuiz draws up to limit random words from the user's collection. A
// word qualifies when it carries at least one of the requested tags; an
// empty tag set draws from the whole collection. Order is intentionally
// unstable between calls.
func (r *WordRepository) DrawForQuiz(ctx context.Context, userID int, tagIDs []uuid.UUID, limit int) ([]model.Word, error) {
	query := `SELECT w.id, w.user_id, w.english, w.arabic, w.root, w.part_of_speech, w.noun, w.verb
		 FROM words w
		 WHERE w.user_id = $1`
	args := []any{userID}

	if len(tagIDs) > 0 {
		args = append(args, tagIDs)
		query += fmt.Sprintf(
			` AND EXISTS (SELECT 1 FROM word_tags wt WHERE wt.word_id = w.id AND wt.tag_id = ANY($%d))`,
			len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY random() LIMIT $%d`, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []model.Word
	for rows.Next() {
		var w model.Word
		if err := rows.Scan(&w.ID, &w.UserID, &w.English, &w.Arabic, &w.Root,
			&w.PartOfSpeech, &w.Noun, &w.Verb); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// Create inserts a word and its tag associations in one transaction.
func (r *WordRepository) Create(ctx context.Context, w *model.Word) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO words (user_id, english, arabic, root, part_of_speech, noun, verb)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		w.UserID, w.English, w.Arabic, w.Root, w.PartOfSpeech, w.Noun, w.Verb,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertWordTags(ctx, tx, w); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update replaces a word's fields and tag associations. Returns
// pgx.ErrNoRows if the word does not exist or belongs to another user.
func (r *WordRepository) Update(ctx context.Context, w *model.Word) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`UPDATE words
		 SET english = $1, arabic = $2, root = $3, part_of_speech = $4,
		     noun = $5, verb = $6, updated_at = NOW()
		 WHERE id = $7 AND user_id = $8
		 RETURNING created_at, updated_at`,
		w.English, w.Arabic, w.Root, w.PartOfSpeech, w.Noun, w.Verb, w.ID, w.UserID,
	).Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM word_tags WHERE word_id = $1`, w.ID); err != nil {
		return err
	}
	if err := insertWordTags(ctx, tx, w); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete removes a word. Returns false when nothing matched.
func (r *WordRepository) Delete(ctx context.Context, id uuid.UUID, userID int) (bool, error) {
	ct, err := r.pool.Exec(ctx,
		`DELETE FROM words WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// insertWordTags links a word to its tags. Tags not owned by the word's
// user are silently skipped by the ownership join rather than failing the
// whole write.
func insertWordTags(ctx context.Context, tx pgx.Tx, w *model.Word) error {
	for _, tagID := range w.TagIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO word_tags (word_id, tag_id)
			 SELECT $1, t.id FROM tags t WHERE t.id = $2 AND t.user_id = $3
			 ON CONFLICT DO NOTHING`,
			w.ID, tagID, w.UserID)
		if err != nil {
			return err
		}
	}
	return nil
}
