package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mufradat/mufradat-backend/internal/model"
	"github.com/mufradat/mufradat-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrWordNotFound is returned when a word does not exist or belongs to
// another user.
var ErrWordNotFound = errors.New("word not found")

// WordService handles vocabulary management.
type WordService struct {
	wordRepo *repository.WordRepository
	log      zerolog.Logger
}

// NewWordService creates a new WordService.
func NewWordService(wordRepo *repository.WordRepository, log zerolog.Logger) *WordService {
	return &WordService{
		wordRepo: wordRepo,
		log:      log.With().Str("component", "word_service").Logger(),
	}
}

// List returns a page of the user's words, optionally filtered by one tag.
func (s *WordService) List(ctx context.Context, userID int, tagID *uuid.UUID, page, perPage int) ([]model.Word, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	words, total, err := s.wordRepo.List(ctx, userID, tagID, page, perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list words: %w", err)
	}
	if words == nil {
		words = []model.Word{}
	}
	return words, total, nil
}

// Get returns one word scoped to its owner.
func (s *WordService) Get(ctx context.Context, id uuid.UUID, userID int) (*model.Word, error) {
	w, err := s.wordRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWordNotFound
		}
		return nil, fmt.Errorf("get word: %w", err)
	}
	return w, nil
}

// Create adds a word to the user's collection.
func (s *WordService) Create(ctx context.Context, userID int, req *model.CreateWordRequest) (*model.Word, error) {
	tagIDs, err := parseTagIDs(req.TagIDs)
	if err != nil {
		return nil, ErrInvalidTags
	}

	word := &model.Word{
		UserID:       userID,
		English:      req.English,
		Arabic:       req.Arabic,
		Root:         req.Root,
		PartOfSpeech: model.PartOfSpeech(req.PartOfSpeech),
		Noun:         req.Noun,
		Verb:         req.Verb,
		TagIDs:       tagIDs,
	}
	if err := s.wordRepo.Create(ctx, word); err != nil {
		return nil, fmt.Errorf("create word: %w", err)
	}

	s.log.Debug().Int("user_id", userID).Str("word_id", word.ID.String()).Msg("Word created")
	return word, nil
}

// Update replaces a word's fields and tag associations.
func (s *WordService) Update(ctx context.Context, id uuid.UUID, userID int, req *model.UpdateWordRequest) (*model.Word, error) {
	tagIDs, err := parseTagIDs(req.TagIDs)
	if err != nil {
		return nil, ErrInvalidTags
	}

	word := &model.Word{
		ID:           id,
		UserID:       userID,
		English:      req.English,
		Arabic:       req.Arabic,
		Root:         req.Root,
		PartOfSpeech: model.PartOfSpeech(req.PartOfSpeech),
		Noun:         req.Noun,
		Verb:         req.Verb,
		TagIDs:       tagIDs,
	}
	if err := s.wordRepo.Update(ctx, word); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWordNotFound
		}
		return nil, fmt.Errorf("update word: %w", err)
	}
	return word, nil
}

// Delete removes a word from the user's collection.
func (s *WordService) Delete(ctx context.Context, id uuid.UUID, userID int) error {
	deleted, err := s.wordRepo.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("delete word: %w", err)
	}
	if !deleted {
		return ErrWordNotFound
	}
	return nil
}
