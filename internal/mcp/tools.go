package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ganot/formbuilder/internal/domain/form"
	"github.com/ganot/formbuilder/internal/domain/question"
	"github.com/ganot/formbuilder/internal/domain/response"
	"github.com/ganot/formbuilder/internal/query"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListQuestionsInput is the input schema for list_master_questions.
type ListQuestionsInput struct {
	Tags   []string `json:"tags,omitempty" jsonschema:"return questions sharing at least one of these tags"`
	Type   string   `json:"type,omitempty" jsonschema:"exact question type"`
	Search string   `json:"search,omitempty" jsonschema:"case-insensitive substring of the question text"`
}

// GetQuestionInput is the input schema for get_master_question.
type GetQuestionInput struct {
	ID string `json:"id" jsonschema:"master question id"`
}

// CreateQuestionInput is the input schema for create_master_question.
type CreateQuestionInput struct {
	Text          string   `json:"text" jsonschema:"question text"`
	Type          string   `json:"type" jsonschema:"question type, e.g. single-select, multi-select or free-text"`
	Options       []string `json:"options,omitempty" jsonschema:"ordered choices for selection types"`
	MaxSelections *int     `json:"max_selections,omitempty" jsonschema:"upper bound on selected choices for multi-select"`
	Tags          []string `json:"tags,omitempty" jsonschema:"discovery tags"`
}

// ListFormsInput is the input schema for list_forms.
type ListFormsInput struct {
	TenantID string   `json:"tenant_id" jsonschema:"owning tenant"`
	Tags     []string `json:"tags,omitempty" jsonschema:"return forms sharing at least one of these tags"`
	Search   string   `json:"search,omitempty" jsonschema:"case-insensitive substring of the form name"`
}

// FormRefInput identifies one form.
type FormRefInput struct {
	TenantID string `json:"tenant_id" jsonschema:"owning tenant"`
	FormID   string `json:"form_id" jsonschema:"form id"`
}

// CreateFormInput is the input schema for create_form.
type CreateFormInput struct {
	TenantID      string         `json:"tenant_id" jsonschema:"owning tenant"`
	Name          string         `json:"name" jsonschema:"form name, unique among the tenant's active forms"`
	Tags          []string       `json:"tags,omitempty" jsonschema:"discovery tags"`
	FormStructure map[string]any `json:"form_structure" jsonschema:"form definition, an object with a questions array"`
	CreatedBy     string         `json:"created_by,omitempty" jsonschema:"opaque author identifier"`
}

// UpdateFormInput is the input schema for update_form.
type UpdateFormInput struct {
	TenantID      string         `json:"tenant_id" jsonschema:"owning tenant"`
	FormID        string         `json:"form_id" jsonschema:"form id"`
	Name          string         `json:"name" jsonschema:"new form name"`
	Tags          []string       `json:"tags,omitempty" jsonschema:"replacement tags"`
	FormStructure map[string]any `json:"form_structure" jsonschema:"replacement form definition"`
}

// SubmitResponseInput is the input schema for submit_response.
type SubmitResponseInput struct {
	TenantID   string         `json:"tenant_id" jsonschema:"owning tenant"`
	FormID     string         `json:"form_id" jsonschema:"active form receiving the response"`
	UserID     string         `json:"user_id,omitempty" jsonschema:"respondent id"`
	SessionID  string         `json:"session_id,omitempty" jsonschema:"groups partial submissions"`
	Responses  map[string]any `json:"responses" jsonschema:"answers document"`
	IsComplete bool           `json:"is_complete,omitempty" jsonschema:"whether the submission is final"`
}

// ListResponsesInput is the input schema for list_responses.
type ListResponsesInput struct {
	TenantID   string `json:"tenant_id" jsonschema:"owning tenant"`
	FormID     string `json:"form_id" jsonschema:"form id"`
	Page       int    `json:"page,omitempty" jsonschema:"1-indexed page (default 1)"`
	Limit      int    `json:"limit,omitempty" jsonschema:"page size (default 50, max 1000)"`
	IsComplete *bool  `json:"is_complete,omitempty" jsonschema:"filter on completion; omit for all"`
	UserID     string `json:"user_id,omitempty" jsonschema:"filter on respondent"`
}

// GetResponseInput is the input schema for get_response.
type GetResponseInput struct {
	TenantID   string `json:"tenant_id" jsonschema:"owning tenant"`
	FormID     string `json:"form_id" jsonschema:"form id"`
	ResponseID string `json:"response_id" jsonschema:"response id"`
}

// DeleteFormOutput is the output schema for delete_form.
type DeleteFormOutput struct {
	Deleted bool `json:"deleted"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "list_master_questions",
		Description: "List active master questions, newest first, optionally filtered by tags, type and text",
	}, s.handleListQuestions)
	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "get_master_question",
		Description: "Get one active master question by id",
	}, s.handleGetQuestion)
	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "create_master_question",
		Description: "Create a reusable master question",
	}, s.handleCreateQuestion)

	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "list_forms",
		Description: "List a tenant's active forms, most recently updated first",
	}, s.handleListForms)
	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "get_form",
		Description: "Get one active form of a tenant",
	}, s.handleGetForm)
	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "create_form",
		Description: "Create a form for a tenant",
	}, s.handleCreateForm)
	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "update_form",
		Description: "Replace the name, tags and structure of an active form",
	}, s.handleUpdateForm)
	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "delete_form",
		Description: "Deactivate a form. Its responses are kept",
	}, s.handleDeleteForm)

	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "submit_response",
		Description: "Submit a response to an active form",
	}, s.handleSubmitResponse)
	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "list_responses",
		Description: "List a form's responses, newest first, with pagination metadata",
	}, s.handleListResponses)
	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "get_response",
		Description: "Get one response of a form",
	}, s.handleGetResponse)
}

func (s *Server) handleListQuestions(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListQuestionsInput) (*sdkmcp.CallToolResult, any, error) {
	questions, err := s.svc.Questions.List(ctx, question.ListOptions{
		Tags:   in.Tags,
		Type:   in.Type,
		Search: in.Search,
	})
	if err != nil {
		return nil, nil, MapError(err)
	}
	return nil, map[string]any{"questions": questions, "count": len(questions)}, nil
}

func (s *Server) handleGetQuestion(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetQuestionInput) (*sdkmcp.CallToolResult, any, error) {
	q, err := s.svc.Questions.Get(ctx, in.ID)
	if err != nil {
		return nil, nil, MapError(err)
	}
	return nil, q, nil
}

func (s *Server) handleCreateQuestion(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateQuestionInput) (*sdkmcp.CallToolResult, any, error) {
	q, err := s.svc.Questions.Create(ctx, question.CreateRequest{
		Text:          in.Text,
		Type:          in.Type,
		Options:       in.Options,
		MaxSelections: in.MaxSelections,
		Tags:          in.Tags,
	})
	if err != nil {
		return nil, nil, MapError(err)
	}
	return nil, q, nil
}

func (s *Server) handleListForms(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListFormsInput) (*sdkmcp.CallToolResult, any, error) {
	forms, err := s.svc.Forms.List(ctx, in.TenantID, form.ListOptions{
		Tags:   in.Tags,
		Search: in.Search,
	})
	if err != nil {
		return nil, nil, MapError(err)
	}
	return nil, map[string]any{"forms": forms, "count": len(forms)}, nil
}

func (s *Server) handleGetForm(ctx context.Context, _ *sdkmcp.CallToolRequest, in FormRefInput) (*sdkmcp.CallToolResult, any, error) {
	f, err := s.svc.Forms.Get(ctx, in.TenantID, in.FormID)
	if err != nil {
		return nil, nil, MapError(err)
	}
	return nil, f, nil
}

func (s *Server) handleCreateForm(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateFormInput) (*sdkmcp.CallToolResult, any, error) {
	structure, err := encodeDocument(in.FormStructure)
	if err != nil {
		return nil, nil, err
	}

	var createdBy *string
	if in.CreatedBy != "" {
		createdBy = &in.CreatedBy
	}

	f, err := s.svc.Forms.Create(ctx, form.CreateRequest{
		TenantID:      in.TenantID,
		Name:          in.Name,
		Tags:          in.Tags,
		FormStructure: structure,
		CreatedBy:     createdBy,
	})
	if err != nil {
		return nil, nil, MapError(err)
	}
	return nil, f, nil
}

func (s *Server) handleUpdateForm(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateFormInput) (*sdkmcp.CallToolResult, any, error) {
	structure, err := encodeDocument(in.FormStructure)
	if err != nil {
		return nil, nil, err
	}

	f, err := s.svc.Forms.Update(ctx, form.UpdateRequest{
		TenantID:      in.TenantID,
		ID:            in.FormID,
		Name:          in.Name,
		Tags:          in.Tags,
		FormStructure: structure,
	})
	if err != nil {
		return nil, nil, MapError(err)
	}
	return nil, f, nil
}

func (s *Server) handleDeleteForm(ctx context.Context, _ *sdkmcp.CallToolRequest, in FormRefInput) (*sdkmcp.CallToolResult, DeleteFormOutput, error) {
	if err := s.svc.Forms.Deactivate(ctx, in.TenantID, in.FormID); err != nil {
		return nil, DeleteFormOutput{}, MapError(err)
	}
	return nil, DeleteFormOutput{Deleted: true}, nil
}

func (s *Server) handleSubmitResponse(ctx context.Context, _ *sdkmcp.CallToolRequest, in SubmitResponseInput) (*sdkmcp.CallToolResult, any, error) {
	answers, err := encodeDocument(in.Responses)
	if err != nil {
		return nil, nil, err
	}

	req := response.CreateRequest{
		TenantID:   in.TenantID,
		FormID:     in.FormID,
		Responses:  answers,
		IsComplete: in.IsComplete,
	}
	if in.UserID != "" {
		req.UserID = &in.UserID
	}
	if in.SessionID != "" {
		req.SessionID = &in.SessionID
	}

	resp, err := s.svc.Responses.Create(ctx, req)
	if err != nil {
		return nil, nil, MapError(err)
	}
	return nil, resp, nil
}

func (s *Server) handleListResponses(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListResponsesInput) (*sdkmcp.CallToolResult, any, error) {
	number, limit := in.Page, in.Limit
	if number == 0 {
		number = query.DefaultPage
	}
	if limit == 0 {
		limit = query.DefaultLimit
	}

	page, err := s.svc.Responses.List(ctx, in.TenantID, in.FormID, response.ListOptions{
		IsComplete: in.IsComplete,
		UserID:     in.UserID,
	}, query.NewPage(number, limit))
	if err != nil {
		return nil, nil, MapError(err)
	}
	return nil, page, nil
}

func (s *Server) handleGetResponse(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetResponseInput) (*sdkmcp.CallToolResult, any, error) {
	resp, err := s.svc.Responses.Get(ctx, in.TenantID, in.FormID, in.ResponseID)
	if err != nil {
		return nil, nil, MapError(err)
	}
	return nil, resp, nil
}

// encodeDocument turns a decoded tool argument back into JSON. A nil document
// stays nil so the services report it as missing.
func encodeDocument(doc map[string]any) (json.RawMessage, error) {
	if doc == nil {
		return nil, nil
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return b, nil
}
