package mocks

import (
	"context"
	"time"

	"github.com/ganot/formbuilder/internal/domain/form"
	"github.com/ganot/formbuilder/internal/domain/question"
	"github.com/ganot/formbuilder/internal/domain/response"
	"github.com/ganot/formbuilder/internal/query"
	"github.com/stretchr/testify/mock"
)

// QuestionRepository is a mock for question.Repository.
type QuestionRepository struct {
	mock.Mock
}

func (m *QuestionRepository) Create(ctx context.Context, q *question.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *QuestionRepository) Get(ctx context.Context, id string) (*question.Question, error) {
	args := m.Called(ctx, id)
	if q, ok := args.Get(0).(*question.Question); ok {
		return q, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *QuestionRepository) List(ctx context.Context, opts question.ListOptions) ([]question.Question, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]question.Question); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// FormRepository is a mock for form.Repository.
type FormRepository struct {
	mock.Mock
}

func (m *FormRepository) Create(ctx context.Context, f *form.Form) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *FormRepository) Get(ctx context.Context, tenantID, id string) (*form.Form, error) {
	args := m.Called(ctx, tenantID, id)
	if f, ok := args.Get(0).(*form.Form); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FormRepository) List(ctx context.Context, tenantID string, opts form.ListOptions) ([]form.Form, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]form.Form); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FormRepository) Update(ctx context.Context, tenantID, id string, patch form.Patch) (*form.Form, error) {
	args := m.Called(ctx, tenantID, id, patch)
	if f, ok := args.Get(0).(*form.Form); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FormRepository) Deactivate(ctx context.Context, tenantID, id string, at time.Time) error {
	args := m.Called(ctx, tenantID, id, at)
	return args.Error(0)
}

// ResponseRepository is a mock for response.Repository.
type ResponseRepository struct {
	mock.Mock
}

func (m *ResponseRepository) Create(ctx context.Context, r *response.Response) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *ResponseRepository) Get(ctx context.Context, tenantID, formID, id string) (*response.Response, error) {
	args := m.Called(ctx, tenantID, formID, id)
	if r, ok := args.Get(0).(*response.Response); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ResponseRepository) List(ctx context.Context, tenantID, formID string, opts response.ListOptions, page query.Page) ([]response.Response, error) {
	args := m.Called(ctx, tenantID, formID, opts, page)
	if list, ok := args.Get(0).([]response.Response); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ResponseRepository) Count(ctx context.Context, tenantID, formID string, opts response.ListOptions) (int, error) {
	args := m.Called(ctx, tenantID, formID, opts)
	return args.Int(0), args.Error(1)
}
