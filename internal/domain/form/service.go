package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ganot/formbuilder/internal/query"
	"github.com/ganot/formbuilder/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service handles form business logic.
type Service struct {
	repo   Repository
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates a new form service.
func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "forms").Logger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateRequest describes a form creation request.
type CreateRequest struct {
	TenantID      string          `validate:"required"`
	Name          string          `validate:"required"`
	Tags          []string
	FormStructure json.RawMessage `validate:"required"`
	CreatedBy     *string
}

// UpdateRequest replaces the mutable fields of a form.
type UpdateRequest struct {
	TenantID      string `validate:"required"`
	ID            string `validate:"required"`
	Name          string `validate:"required"`
	Tags          []string
	FormStructure json.RawMessage `validate:"required"`
}

// Create validates the structure and stores a new active form.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Form, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	now := s.now()
	f := &Form{
		ID:            uuid.NewString(),
		TenantID:      req.TenantID,
		Name:          req.Name,
		Tags:          normalizeTags(req.Tags),
		FormStructure: req.FormStructure,
		CreatedBy:     req.CreatedBy,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.logger.Debug().Str("tenant_id", req.TenantID).Str("name", req.Name).Msg("form name conflict")
			return nil, ErrNameConflict
		}
		return nil, fmt.Errorf("creating form: %w", err)
	}

	s.logger.Info().Str("tenant_id", f.TenantID).Str("form_id", f.ID).Msg("form created")
	return f, nil
}

// Get fetches an active form owned by tenantID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Form, error) {
	f, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("getting form: %w", err)
	}
	return f, nil
}

// List returns the tenant's active forms, most recently updated first.
func (s *Service) List(ctx context.Context, tenantID string, opts ListOptions) ([]Form, error) {
	forms, err := s.repo.List(ctx, tenantID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing forms: %w", err)
	}
	return forms, nil
}

// Update replaces name, tags and structure of an active form.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Form, error) {
	if err := ValidateUpdateInput(req); err != nil {
		return nil, err
	}

	f, err := s.repo.Update(ctx, req.TenantID, req.ID, Patch{
		Name:          req.Name,
		Tags:          normalizeTags(req.Tags),
		FormStructure: req.FormStructure,
		UpdatedAt:     s.now(),
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrFormNotFound
	case errors.Is(err, repository.ErrConflict):
		return nil, ErrNameConflict
	case err != nil:
		return nil, fmt.Errorf("updating form: %w", err)
	}

	s.logger.Info().Str("tenant_id", f.TenantID).Str("form_id", f.ID).Msg("form updated")
	return f, nil
}

// Deactivate soft-deletes a form. There is no way back to active.
func (s *Service) Deactivate(ctx context.Context, tenantID, id string) error {
	err := s.repo.Deactivate(ctx, tenantID, id, s.now())
	if errors.Is(err, repository.ErrNotFound) {
		return ErrFormNotFound
	}
	if err != nil {
		return fmt.Errorf("deactivating form: %w", err)
	}

	s.logger.Info().Str("tenant_id", tenantID).Str("form_id", id).Msg("form deactivated")
	return nil
}

func normalizeTags(tags []string) []string {
	tags = query.NormalizeTags(tags)
	if tags == nil {
		return []string{}
	}
	return tags
}
