package question

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ganot/formbuilder/internal/query"
	"github.com/ganot/formbuilder/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service handles master question operations.
type Service struct {
	repo         Repository
	allowedTypes []string
	logger       zerolog.Logger
}

// NewService creates a new master question service. An empty allowedTypes
// accepts any non-empty type.
func NewService(repo Repository, allowedTypes []string, logger zerolog.Logger) *Service {
	return &Service{
		repo:         repo,
		allowedTypes: allowedTypes,
		logger:       logger.With().Str("component", "master_questions").Logger(),
	}
}

// CreateRequest defines master question creation inputs.
type CreateRequest struct {
	Text          string `validate:"required"`
	Type          string `validate:"required"`
	Options       []string
	MaxSelections *int `validate:"omitempty,gt=0"`
	Tags          []string
}

// Create stores a new active master question.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Question, error) {
	if err := ValidateCreateInput(req, s.allowedTypes); err != nil {
		return nil, err
	}

	tags := query.NormalizeTags(req.Tags)
	if tags == nil {
		tags = []string{}
	}

	q := &Question{
		ID:            uuid.NewString(),
		Text:          req.Text,
		Type:          req.Type,
		Options:       req.Options,
		MaxSelections: req.MaxSelections,
		Tags:          tags,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("creating master question: %w", err)
	}

	s.logger.Info().Str("question_id", q.ID).Str("type", q.Type).Msg("master question created")
	return q, nil
}

// Get fetches an active master question.
func (s *Service) Get(ctx context.Context, id string) (*Question, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("getting master question: %w", err)
	}
	return q, nil
}

// List returns active master questions, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Question, error) {
	questions, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing master questions: %w", err)
	}
	return questions, nil
}
