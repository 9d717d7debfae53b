package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ganot/formbuilder/internal/domain/form"
	"github.com/ganot/formbuilder/internal/query"
	"github.com/ganot/formbuilder/internal/repository"
)

var formColumns = []string{
	"id", "tenant_id", "name", "tags", "form_structure", "created_by", "is_active", "created_at", "updated_at",
}

// FormRepository implements form.Repository for SQLite.
type FormRepository struct {
	db *DB
}

// NewFormRepository creates a new FormRepository
func NewFormRepository(db *DB) *FormRepository {
	return &FormRepository{db: db}
}

// Create inserts a form. A second active form with the same tenant and name
// fails with repository.ErrConflict.
func (r *FormRepository) Create(ctx context.Context, f *form.Form) (err error) {
	defer r.db.observe("form.create")(&err)

	tags, err := encodeStrings(f.Tags)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO forms (id, tenant_id, name, tags, form_structure, created_by, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		f.ID,
		f.TenantID,
		f.Name,
		tags,
		string(f.FormStructure),
		nullString(f.CreatedBy),
		f.IsActive,
		f.CreatedAt,
		f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create form: %w", err)
	}
	return nil
}

// Get retrieves an active form owned by tenantID.
func (r *FormRepository) Get(ctx context.Context, tenantID, id string) (f *form.Form, err error) {
	defer r.db.observe("form.get")(&err)
	return r.get(ctx, r.db, tenantID, id)
}

// List returns the tenant's active forms, most recently updated first.
func (r *FormRepository) List(ctx context.Context, tenantID string, opts form.ListOptions) (forms []form.Form, err error) {
	defer r.db.observe("form.list")(&err)

	stmt, err := query.Select{
		Table:   "forms",
		Columns: formColumns,
		Scope:   tenantScope(tenantID),
		Filters: []query.Criterion{
			query.TagsOverlap{Column: "tags", Tags: opts.Tags},
			query.Contains{Column: "name", Needle: opts.Search},
		},
		OrderBy: []string{"updated_at DESC", "rowid DESC"},
	}.Build()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	defer rows.Close()

	forms = []form.Form{}
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan form: %w", err)
		}
		forms = append(forms, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate forms: %w", err)
	}
	return forms, nil
}

// Update replaces name, tags and structure of an active form and returns the
// stored row. Inactive or foreign rows are repository.ErrNotFound.
func (r *FormRepository) Update(ctx context.Context, tenantID, id string, patch form.Patch) (f *form.Form, err error) {
	defer r.db.observe("form.update")(&err)

	tags, err := encodeStrings(patch.Tags)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE forms
		SET name = ?, tags = ?, form_structure = ?, updated_at = ?
		WHERE id = ? AND tenant_id = ? AND is_active = 1
	`,
		patch.Name,
		tags,
		string(patch.FormStructure),
		patch.UpdatedAt,
		id,
		tenantID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrConflict
		}
		return nil, fmt.Errorf("failed to update form: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}

	f, err = r.get(ctx, tx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit form update: %w", err)
	}
	return f, nil
}

// Deactivate soft-deletes an active form.
func (r *FormRepository) Deactivate(ctx context.Context, tenantID, id string, at time.Time) (err error) {
	defer r.db.observe("form.deactivate")(&err)

	result, err := r.db.ExecContext(ctx, `
		UPDATE forms SET is_active = 0, updated_at = ?
		WHERE id = ? AND tenant_id = ? AND is_active = 1
	`, at, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to deactivate form: %w", err)
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

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *FormRepository) get(ctx context.Context, q queryRower, tenantID, id string) (*form.Form, error) {
	stmt, err := query.Select{
		Table:   "forms",
		Columns: formColumns,
		Scope:   append(tenantScope(tenantID), query.Raw{Fragment: "id = ?", Args: []any{id}}),
	}.Build()
	if err != nil {
		return nil, err
	}

	f, err := scanForm(q.QueryRowContext(ctx, stmt.SQL, stmt.Args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get form: %w", err)
	}
	return f, nil
}

func tenantScope(tenantID string) []query.Criterion {
	return []query.Criterion{
		query.Raw{Fragment: "tenant_id = ?", Args: []any{tenantID}},
		query.Raw{Fragment: "is_active = 1"},
	}
}

func scanForm(s scanner) (*form.Form, error) {
	var (
		f         form.Form
		tags      string
		structure string
		createdBy sql.NullString
	)
	if err := s.Scan(
		&f.ID,
		&f.TenantID,
		&f.Name,
		&tags,
		&structure,
		&createdBy,
		&f.IsActive,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if f.Tags, err = decodeStrings(tags); err != nil {
		return nil, err
	}
	f.FormStructure = []byte(structure)
	f.CreatedBy = stringPtr(createdBy)
	return &f, nil
}
