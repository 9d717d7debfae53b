package response_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ganot/formbuilder/internal/domain"
	"github.com/ganot/formbuilder/internal/domain/response"
	"github.com/ganot/formbuilder/internal/query"
	"github.com/ganot/formbuilder/internal/repository"
	"github.com/ganot/formbuilder/internal/repository/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResponseService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ResponseRepository{}
	repo.On("Create", ctx, mock.AnythingOfType("*response.Response")).Return(nil)

	empty := ""
	svc := response.NewService(repo, response.Options{}, zerolog.Nop())
	r, err := svc.Create(ctx, response.CreateRequest{
		TenantID:   "t1",
		FormID:     "f1",
		SessionID:  &empty,
		Responses:  json.RawMessage(`{"q1":"yes"}`),
		IsComplete: true,
		IPAddress:  "10.0.0.1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, r.ID)
	require.True(t, r.IsComplete)
	require.Nil(t, r.UserID)
	require.Nil(t, r.SessionID)
	require.Nil(t, r.UserAgent)
	require.NotNil(t, r.IPAddress)
	require.Equal(t, "10.0.0.1", *r.IPAddress)
	require.False(t, r.SubmittedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestResponseService_Create_RequiresResponses(t *testing.T) {
	ctx := context.Background()
	svc := response.NewService(&mocks.ResponseRepository{}, response.Options{}, zerolog.Nop())

	for _, raw := range []string{"", "   ", "null", "  null "} {
		_, err := svc.Create(ctx, response.CreateRequest{
			TenantID:  "t1",
			FormID:    "f1",
			Responses: json.RawMessage(raw),
		})
		require.ErrorIs(t, err, domain.ErrValidation)

		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		require.Equal(t, "Responses are required", verr.Message)
	}

	// An empty, non-nil document must not reach the store either.
	_, err := svc.Create(ctx, response.CreateRequest{TenantID: "t1", FormID: "f1", Responses: json.RawMessage{}})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestResponseService_Create_FormMissing(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ResponseRepository{}
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrNotFound)

	svc := response.NewService(repo, response.Options{}, zerolog.Nop())
	_, err := svc.Create(ctx, response.CreateRequest{
		TenantID:  "t1",
		FormID:    "gone",
		Responses: json.RawMessage(`{}`),
	})
	require.ErrorIs(t, err, response.ErrFormNotFound)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResponseService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ResponseRepository{}
	repo.On("Get", ctx, "t1", "f1", "r1").Return(nil, repository.ErrNotFound)

	svc := response.NewService(repo, response.Options{}, zerolog.Nop())
	_, err := svc.Get(ctx, "t1", "f1", "r1")
	require.ErrorIs(t, err, response.ErrResponseNotFound)
}

func TestResponseService_List_CountIgnoresFilters(t *testing.T) {
	ctx := context.Background()
	complete := true
	opts := response.ListOptions{IsComplete: &complete, UserID: "u1"}
	page := query.NewPage(2, 10)

	repo := &mocks.ResponseRepository{}
	repo.On("List", ctx, "t1", "f1", opts, page).Return([]response.Response{{ID: "r1"}}, nil)
	repo.On("Count", ctx, "t1", "f1", response.ListOptions{}).Return(25, nil)

	svc := response.NewService(repo, response.Options{CountIgnoresFilters: true}, zerolog.Nop())
	got, err := svc.List(ctx, "t1", "f1", opts, page)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, response.Pagination{Page: 2, Limit: 10, Total: 25, TotalPages: 3}, got.Pagination)
	repo.AssertExpectations(t)
}

func TestResponseService_List_CountHonoursFilters(t *testing.T) {
	ctx := context.Background()
	complete := false
	opts := response.ListOptions{IsComplete: &complete}
	page := query.NewPage(1, 50)

	repo := &mocks.ResponseRepository{}
	repo.On("List", ctx, "t1", "f1", opts, page).Return(nil, nil)
	repo.On("Count", ctx, "t1", "f1", opts).Return(0, nil)

	svc := response.NewService(repo, response.Options{}, zerolog.Nop())
	got, err := svc.List(ctx, "t1", "f1", opts, page)
	require.NoError(t, err)
	require.NotNil(t, got.Items)
	require.Empty(t, got.Items)
	require.Equal(t, 0, got.Pagination.TotalPages)
	repo.AssertExpectations(t)
}
