package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mufradat/mufradat-backend/internal/model"
	"github.com/mufradat/mufradat-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Tag errors.
var (
	ErrTagNotFound = errors.New("tag not found")
	ErrTagExists   = errors.New("tag name already in use")
)

// TagService handles tag management.
type TagService struct {
	tagRepo *repository.TagRepository
	log     zerolog.Logger
}

// NewTagService creates a new TagService.
func NewTagService(tagRepo *repository.TagRepository, log zerolog.Logger) *TagService {
	return &TagService{
		tagRepo: tagRepo,
		log:     log.With().Str("component", "tag_service").Logger(),
	}
}

// List returns all of the user's tags.
func (s *TagService) List(ctx context.Context, userID int) ([]model.Tag, error) {
	tags, err := s.tagRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	return tags, nil
}

// Create adds a tag for the user. Names are unique per user.
func (s *TagService) Create(ctx context.Context, userID int, name string) (*model.Tag, error) {
	tag := &model.Tag{UserID: userID, Name: name}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrTagExists
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

// Update renames a tag.
func (s *TagService) Update(ctx context.Context, id uuid.UUID, userID int, name string) (*model.Tag, error) {
	tag, err := s.tagRepo.Update(ctx, id, userID, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTagNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrTagExists
		}
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return tag, nil
}

// Delete removes a tag. Word associations are removed with it; the words
// themselves stay.
func (s *TagService) Delete(ctx context.Context, id uuid.UUID, userID int) error {
	deleted, err := s.tagRepo.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if !deleted {
		return ErrTagNotFound
	}
	return nil
}
