package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mufradat/mufradat-backend/internal/config"
	"github.com/mufradat/mufradat-backend/internal/model"
	"github.com/mufradat/mufradat-backend/internal/store"
	"github.com/rs/zerolog"
)

// Quiz lifecycle errors surfaced to the boundary layer.
var (
	ErrNoWordsAvailable  = errors.New("no words available for the selected tags")
	ErrResultNotFound    = errors.New("quiz result not found")
	ErrInvalidPagination = errors.New("page and limit must be positive; limit is capped")
	ErrInvalidTags       = errors.New("selected tags must be valid tag IDs")
)

// WordSource supplies the question pool for a quiz. Implemented by
// repository.WordRepository.
type WordSource interface {
	DrawForQuiz(ctx context.Context, userID int, tagIDs []uuid.UUID, limit int) ([]model.Word, error)
}

// ResultSink persists and serves completed quiz results. Implemented by
// repository.QuizResultRepository.
type ResultSink interface {
	Save(ctx context.Context, res *model.QuizResult) error
	GetByID(ctx context.Context, id uuid.UUID, userID int) (*model.QuizResult, error)
	ListByUser(ctx context.Context, userID, page, limit int) ([]model.QuizResult, int64, error)
}

// QuizService orchestrates the quiz lifecycle: issue a session, accept its
// one submission, grade it, persist the result, serve history. Identity is
// always an explicit parameter; nothing below this layer reads request
// state.
type QuizService struct {
	words    WordSource
	sessions store.SessionStore
	results  ResultSink
	cfg      *config.Config
	log      zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(words WordSource, sessions store.SessionStore, results ResultSink, cfg *config.Config, log zerolog.Logger) *QuizService {
	return &QuizService{
		words:    words,
		sessions: sessions,
		results:  results,
		cfg:      cfg,
		log:      log.With().Str("component", "quiz_service").Logger(),
	}
}

// StartQuiz draws a question pool for the selected tags and opens a session.
func (s *QuizService) StartQuiz(ctx context.Context, userID int, req *model.StartQuizRequest) (*model.StartQuizResponse, error) {
	tagIDs, err := parseTagIDs(req.SelectedTags)
	if err != nil {
		return nil, ErrInvalidTags
	}

	pool, err := s.words.DrawForQuiz(ctx, userID, tagIDs, s.cfg.QuizMaxQuestions)
	if err != nil {
		return nil, fmt.Errorf("draw words: %w", err)
	}
	if len(pool) == 0 {
		return nil, ErrNoWordsAvailable
	}

	questions := make([]model.QuizQuestion, 0, len(pool))
	for _, w := range pool {
		questions = append(questions, model.QuizQuestion{
			WordID:       w.ID,
			English:      w.English,
			Arabic:       w.Arabic,
			Root:         w.Root,
			PartOfSpeech: w.PartOfSpeech,
			Noun:         w.Noun,
			Verb:         w.Verb,
			Direction:    s.cfg.QuizDirection,
		})
	}

	token, err := s.sessions.Create(ctx, userID, questions, req.SelectedTags, s.cfg.QuizSessionTTL)
	if err != nil {
		return nil, fmt.Errorf("create quiz session: %w", err)
	}

	s.log.Debug().
		Int("user_id", userID).
		Int("questions", len(questions)).
		Strs("tags", req.SelectedTags).
		Msg("Quiz started")

	return &model.StartQuizResponse{
		QuizID:         token,
		Questions:      stripAnswers(questions),
		SelectedTags:   req.SelectedTags,
		TotalQuestions: len(questions),
		StartedAt:      time.Now(),
	}, nil
}

// SubmitQuiz consumes the session, grades the answers, and persists the
// result. A token that is expired, already consumed, never issued, or owned
// by a different user fails identically with store.ErrSessionNotFound.
func (s *QuizService) SubmitQuiz(ctx context.Context, userID int, req *model.SubmitQuizRequest) (*model.SubmitQuizResponse, error) {
	sess, err := s.sessions.Consume(ctx, req.QuizID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("consume quiz session: %w", err)
	}

	if sess.UserID != userID {
		// The session is already gone; cross-user probing must not learn
		// that it ever existed.
		s.log.Warn().
			Int("user_id", userID).
			Int("session_user_id", sess.UserID).
			Msg("Quiz submission with foreign token")
		return nil, store.ErrSessionNotFound
	}

	outcome := Grade(sess, req.Answers)

	result := &model.QuizResult{
		UserID:         userID,
		SelectedTags:   sess.SelectedTags,
		TotalQuestions: outcome.TotalQuestions,
		CorrectAnswers: outcome.CorrectAnswers,
		CompletedAt:    time.Now(),
		WordResults:    outcome.WordResults,
	}
	if err := s.results.Save(ctx, result); err != nil {
		s.log.Error().Err(err).
			Int("user_id", userID).
			Str("quiz_id", req.QuizID).
			Msg("Failed to persist quiz result")
		return nil, fmt.Errorf("save quiz result: %w", err)
	}

	s.log.Info().
		Int("user_id", userID).
		Str("result_id", result.ID.String()).
		Int("correct", result.CorrectAnswers).
		Int("total", result.TotalQuestions).
		Msg("Quiz submitted")

	return &model.SubmitQuizResponse{
		QuizResult: *result,
		Score:      Score(result.CorrectAnswers, result.TotalQuestions),
		TimeSpent:  req.TimeSpent,
	}, nil
}

// GetQuizResult returns one result scoped to its owner.
func (s *QuizService) GetQuizResult(ctx context.Context, userID int, resultID uuid.UUID) (*model.QuizResult, error) {
	res, err := s.results.GetByID(ctx, resultID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("get quiz result: %w", err)
	}
	return res, nil
}

// GetQuizHistory returns a page of the user's results, newest first.
// Non-positive page or limit is rejected, as is a limit above the
// configured ceiling.
func (s *QuizService) GetQuizHistory(ctx context.Context, userID, page, limit int) (*model.QuizHistoryPage, error) {
	if page < 1 || limit < 1 || limit > s.cfg.QuizMaxPageSize {
		return nil, ErrInvalidPagination
	}

	items, total, err := s.results.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list quiz history: %w", err)
	}
	if items == nil {
		items = []model.QuizResult{}
	}

	return &model.QuizHistoryPage{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

// stripAnswers blanks the graded field on each question so the client never
// receives the canonical answer it is about to be asked for.
func stripAnswers(questions []model.QuizQuestion) []model.QuizQuestion {
	stripped := make([]model.QuizQuestion, len(questions))
	for i, q := range questions {
		if q.Direction == model.DirectionEnglishToArabic {
			q.Arabic = ""
		} else {
			q.English = ""
		}
		stripped[i] = q
	}
	return stripped
}

func parseTagIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, t := range raw {
		id, err := uuid.Parse(t)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
