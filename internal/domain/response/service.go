package response

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

// Options tunes the response service.
type Options struct {
	// CountIgnoresFilters makes Pagination.Total count every response of the
	// form, ignoring IsComplete and UserID. Existing clients rely on this.
	CountIgnoresFilters bool
}

// Service handles form response submission and listing.
type Service struct {
	repo   Repository
	opts   Options
	logger zerolog.Logger
}

// NewService creates a new response service.
func NewService(repo Repository, opts Options, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		opts:   opts,
		logger: logger.With().Str("component", "responses").Logger(),
	}
}

// CreateRequest describes a submission.
type CreateRequest struct {
	TenantID   string `validate:"required"`
	FormID     string `validate:"required"`
	UserID     *string
	SessionID  *string
	Responses  json.RawMessage `validate:"required"`
	IsComplete bool
	IPAddress  string
	UserAgent  string
}

// Create records a submission against an active form of the tenant.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Response, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	r := &Response{
		ID:          uuid.NewString(),
		FormID:      req.FormID,
		TenantID:    req.TenantID,
		UserID:      nonEmpty(req.UserID),
		SessionID:   nonEmpty(req.SessionID),
		Responses:   req.Responses,
		IsComplete:  req.IsComplete,
		IPAddress:   optional(req.IPAddress),
		UserAgent:   optional(req.UserAgent),
		SubmittedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, r); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("creating response: %w", err)
	}

	s.logger.Info().
		Str("tenant_id", r.TenantID).
		Str("form_id", r.FormID).
		Str("response_id", r.ID).
		Bool("is_complete", r.IsComplete).
		Msg("response submitted")
	return r, nil
}

// Get fetches a single response of a form.
func (s *Service) Get(ctx context.Context, tenantID, formID, id string) (*Response, error) {
	r, err := s.repo.Get(ctx, tenantID, formID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrResponseNotFound
		}
		return nil, fmt.Errorf("getting response: %w", err)
	}
	return r, nil
}

// List returns one page of a form's responses, newest first, with the total
// count for pagination.
func (s *Service) List(ctx context.Context, tenantID, formID string, opts ListOptions, page query.Page) (*Page, error) {
	items, err := s.repo.List(ctx, tenantID, formID, opts, page)
	if err != nil {
		return nil, fmt.Errorf("listing responses: %w", err)
	}

	countOpts := opts
	if s.opts.CountIgnoresFilters {
		countOpts = ListOptions{}
	}
	total, err := s.repo.Count(ctx, tenantID, formID, countOpts)
	if err != nil {
		return nil, fmt.Errorf("counting responses: %w", err)
	}

	if items == nil {
		items = []Response{}
	}
	return &Page{
		Items: items,
		Pagination: Pagination{
			Page:       page.Number,
			Limit:      page.Limit,
			Total:      total,
			TotalPages: page.TotalPages(total),
		},
	}, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
