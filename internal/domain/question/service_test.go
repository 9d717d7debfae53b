package question_test

import (
	"context"
	"testing"

	"github.com/ganot/formbuilder/internal/domain"
	"github.com/ganot/formbuilder/internal/domain/question"
	"github.com/ganot/formbuilder/internal/repository"
	"github.com/ganot/formbuilder/internal/repository/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestQuestionService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.QuestionRepository{}
	repo.On("Create", ctx, mock.AnythingOfType("*question.Question")).Return(nil)

	svc := question.NewService(repo, nil, zerolog.Nop())
	limit := 2
	q, err := svc.Create(ctx, question.CreateRequest{
		Text:          "Favourite colours?",
		Type:          "multi_select",
		Options:       []string{"red", "green", "blue"},
		MaxSelections: &limit,
		Tags:          []string{"prefs"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, q.ID)
	require.True(t, q.IsActive)
	require.Equal(t, []string{"red", "green", "blue"}, q.Options)
	repo.AssertExpectations(t)
}

func TestQuestionService_Create_MissingFields(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.QuestionRepository{}
	svc := question.NewService(repo, nil, zerolog.Nop())

	for _, req := range []question.CreateRequest{
		{Type: "free_text"},
		{Text: "Name?"},
		{},
	} {
		_, err := svc.Create(ctx, req)
		require.ErrorIs(t, err, domain.ErrValidation)
		require.Equal(t, "Text and type are required", err.Error())
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuestionService_Create_MaxSelections(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.QuestionRepository{}
	svc := question.NewService(repo, nil, zerolog.Nop())

	zero := 0
	_, err := svc.Create(ctx, question.CreateRequest{Text: "Pick", Type: "multi_select", MaxSelections: &zero})
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Contains(t, err.Error(), "max_selections")
}

func TestQuestionService_Create_AllowedTypes(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.QuestionRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)
	svc := question.NewService(repo, []string{"single_select", "free_text"}, zerolog.Nop())

	_, err := svc.Create(ctx, question.CreateRequest{Text: "Rate us", Type: "slider"})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(ctx, question.CreateRequest{Text: "Name?", Type: "free_text"})
	require.NoError(t, err)
}

func TestQuestionService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.QuestionRepository{}
	repo.On("Get", ctx, "q1").Return((*question.Question)(nil), repository.ErrNotFound)

	svc := question.NewService(repo, nil, zerolog.Nop())
	_, err := svc.Get(ctx, "q1")
	require.ErrorIs(t, err, question.ErrQuestionNotFound)
}
