package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ganot/formbuilder/internal/domain/response"
	"github.com/ganot/formbuilder/internal/query"
	"github.com/ganot/formbuilder/internal/repository"
)

var responseColumns = []string{
	"id", "form_id", "tenant_id", "user_id", "session_id", "responses",
	"is_complete", "ip_address", "user_agent", "submitted_at",
}

// ResponseRepository implements response.Repository for SQLite.
type ResponseRepository struct {
	db *DB
}

// NewResponseRepository creates a new ResponseRepository
func NewResponseRepository(db *DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// Create inserts a response in the same statement that checks its form is
// active and owned by the tenant. If the form does not qualify nothing is
// written and repository.ErrNotFound is returned.
func (r *ResponseRepository) Create(ctx context.Context, resp *response.Response) (err error) {
	defer r.db.observe("response.create")(&err)

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO form_responses
			(id, form_id, tenant_id, user_id, session_id, responses, is_complete, ip_address, user_agent, submitted_at)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM forms WHERE id = ? AND tenant_id = ? AND is_active = 1)
	`,
		resp.ID,
		resp.FormID,
		resp.TenantID,
		nullString(resp.UserID),
		nullString(resp.SessionID),
		string(resp.Responses),
		resp.IsComplete,
		nullString(resp.IPAddress),
		nullString(resp.UserAgent),
		resp.SubmittedAt,
		resp.FormID,
		resp.TenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to create response: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Get retrieves one response of a form.
func (r *ResponseRepository) Get(ctx context.Context, tenantID, formID, id string) (resp *response.Response, err error) {
	defer r.db.observe("response.get")(&err)

	stmt, err := query.Select{
		Table:   "form_responses",
		Columns: responseColumns,
		Scope:   append(responseScope(tenantID, formID), query.Raw{Fragment: "id = ?", Args: []any{id}}),
	}.Build()
	if err != nil {
		return nil, err
	}

	resp, err = scanResponse(r.db.QueryRowContext(ctx, stmt.SQL, stmt.Args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get response: %w", err)
	}
	return resp, nil
}

// List returns one page of a form's responses, newest first.
func (r *ResponseRepository) List(ctx context.Context, tenantID, formID string, opts response.ListOptions, page query.Page) (responses []response.Response, err error) {
	defer r.db.observe("response.list")(&err)

	sel := responseSelect(tenantID, formID, opts)
	sel.OrderBy = []string{"submitted_at DESC", "rowid DESC"}
	sel.Page = &page

	stmt, err := sel.Build()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	defer rows.Close()

	responses = []response.Response{}
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, *resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate responses: %w", err)
	}
	return responses, nil
}

// Count returns the number of a form's responses matching opts.
func (r *ResponseRepository) Count(ctx context.Context, tenantID, formID string, opts response.ListOptions) (total int, err error) {
	defer r.db.observe("response.count")(&err)

	stmt, err := responseSelect(tenantID, formID, opts).Count()
	if err != nil {
		return 0, err
	}

	if err := r.db.QueryRowContext(ctx, stmt.SQL, stmt.Args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return total, nil
}

func responseScope(tenantID, formID string) []query.Criterion {
	return []query.Criterion{
		query.Raw{Fragment: "form_id = ?", Args: []any{formID}},
		query.Raw{Fragment: "tenant_id = ?", Args: []any{tenantID}},
	}
}

func responseSelect(tenantID, formID string, opts response.ListOptions) query.Select {
	return query.Select{
		Table:   "form_responses",
		Columns: responseColumns,
		Scope:   responseScope(tenantID, formID),
		Filters: []query.Criterion{
			query.BoolEquals{Column: "is_complete", Value: opts.IsComplete},
			query.Equals{Column: "user_id", Value: opts.UserID},
		},
	}
}

func scanResponse(s scanner) (*response.Response, error) {
	var (
		resp      response.Response
		userID    sql.NullString
		sessionID sql.NullString
		answers   string
		ipAddress sql.NullString
		userAgent sql.NullString
	)
	if err := s.Scan(
		&resp.ID,
		&resp.FormID,
		&resp.TenantID,
		&userID,
		&sessionID,
		&answers,
		&resp.IsComplete,
		&ipAddress,
		&userAgent,
		&resp.SubmittedAt,
	); err != nil {
		return nil, err
	}

	resp.UserID = stringPtr(userID)
	resp.SessionID = stringPtr(sessionID)
	resp.Responses = []byte(answers)
	resp.IPAddress = stringPtr(ipAddress)
	resp.UserAgent = stringPtr(userAgent)
	return &resp, nil
}
