package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mufradat/mufradat-backend/internal/model"
)

// QuizResultRepository persists completed quiz results. Writes are
// append-only; nothing here mutates a stored result.
type QuizResultRepository struct {
	pool *pgxpool.Pool
}

// NewQuizResultRepository creates a new QuizResultRepository.
func NewQuizResultRepository(pool *pgxpool.Pool) *QuizResultRepository {
	return &QuizResultRepository{pool: pool}
}

// Save inserts a completed result, assigning an ID if absent.
func (r *QuizResultRepository) Save(ctx context.Context, res *model.QuizResult) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}

	wordResults, err := json.Marshal(res.WordResults)
	if err != nil {
		return fmt.Errorf("marshal word results: %w", err)
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO quiz_results
		   (id, user_id, selected_tags, total_questions, correct_answers, completed_at, word_results)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		res.ID, res.UserID, res.SelectedTags, res.TotalQuestions,
		res.CorrectAnswers, res.CompletedAt, wordResults,
	).Scan(&res.CreatedAt, &res.UpdatedAt)
}

// GetByID retrieves one result scoped to its owner. A result belonging to
// another user surfaces as pgx.ErrNoRows, indistinguishable from absence.
func (r *QuizResultRepository) GetByID(ctx context.Context, id uuid.UUID, userID int) (*model.QuizResult, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, user_id, selected_tags, total_questions, correct_answers,
		        completed_at, word_results, created_at, updated_at
		 FROM quiz_results
		 WHERE id = $1 AND user_id = $2`, id, userID)
	return scanQuizResult(row)
}

// ListByUser retrieves a page of a user's results, newest first by
// completion time.
func (r *QuizResultRepository) ListByUser(ctx context.Context, userID, page, limit int) ([]model.QuizResult, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM quiz_results WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, selected_tags, total_questions, correct_answers,
		        completed_at, word_results, created_at, updated_at
		 FROM quiz_results
		 WHERE user_id = $1
		 ORDER BY completed_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, (page-1)*limit,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var results []model.QuizResult
	for rows.Next() {
		res, err := scanQuizResult(rows)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, *res)
	}
	return results, total, rows.Err()
}

func scanQuizResult(row pgx.Row) (*model.QuizResult, error) {
	res := &model.QuizResult{}
	var wordResults []byte
	err := row.Scan(&res.ID, &res.UserID, &res.SelectedTags, &res.TotalQuestions,
		&res.CorrectAnswers, &res.CompletedAt, &wordResults, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(wordResults, &res.WordResults); err != nil {
		return nil, fmt.Errorf("unmarshal word results: %w", err)
	}
	return res, nil
}
