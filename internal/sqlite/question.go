package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ganot/formbuilder/internal/domain/question"
	"github.com/ganot/formbuilder/internal/query"
	"github.com/ganot/formbuilder/internal/repository"
)

var questionColumns = []string{
	"id", "text", "type", "options", "max_selections", "tags", "is_active", "created_at",
}

// QuestionRepository implements question.Repository for SQLite.
type QuestionRepository struct {
	db *DB
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Create inserts a master question.
func (r *QuestionRepository) Create(ctx context.Context, q *question.Question) (err error) {
	defer r.db.observe("question.create")(&err)

	tags, err := encodeStrings(q.Tags)
	if err != nil {
		return err
	}

	var options sql.NullString
	if q.Options != nil {
		encoded, err := encodeStrings(q.Options)
		if err != nil {
			return err
		}
		options = sql.NullString{String: encoded, Valid: true}
	}

	var maxSelections sql.NullInt64
	if q.MaxSelections != nil {
		maxSelections = sql.NullInt64{Int64: int64(*q.MaxSelections), Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO master_questions (id, text, type, options, max_selections, tags, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		q.ID,
		q.Text,
		q.Type,
		options,
		maxSelections,
		tags,
		q.IsActive,
		q.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create master question: %w", err)
	}
	return nil
}

// Get retrieves an active master question by ID.
func (r *QuestionRepository) Get(ctx context.Context, id string) (q *question.Question, err error) {
	defer r.db.observe("question.get")(&err)

	stmt, err := query.Select{
		Table:   "master_questions",
		Columns: questionColumns,
		Scope: []query.Criterion{
			query.Raw{Fragment: "is_active = 1"},
			query.Raw{Fragment: "id = ?", Args: []any{id}},
		},
	}.Build()
	if err != nil {
		return nil, err
	}

	q, err = scanQuestion(r.db.QueryRowContext(ctx, stmt.SQL, stmt.Args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get master question: %w", err)
	}
	return q, nil
}

// List returns active master questions, newest first.
func (r *QuestionRepository) List(ctx context.Context, opts question.ListOptions) (questions []question.Question, err error) {
	defer r.db.observe("question.list")(&err)

	stmt, err := query.Select{
		Table:   "master_questions",
		Columns: questionColumns,
		Scope:   []query.Criterion{query.Raw{Fragment: "is_active = 1"}},
		Filters: []query.Criterion{
			query.TagsOverlap{Column: "tags", Tags: opts.Tags},
			query.Equals{Column: "type", Value: opts.Type},
			query.Contains{Column: "text", Needle: opts.Search},
		},
		OrderBy: []string{"created_at DESC", "rowid DESC"},
	}.Build()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list master questions: %w", err)
	}
	defer rows.Close()

	questions = []question.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan master question: %w", err)
		}
		questions = append(questions, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate master questions: %w", err)
	}
	return questions, nil
}

func scanQuestion(s scanner) (*question.Question, error) {
	var (
		q             question.Question
		options       sql.NullString
		maxSelections sql.NullInt64
		tags          string
	)
	if err := s.Scan(
		&q.ID,
		&q.Text,
		&q.Type,
		&options,
		&maxSelections,
		&tags,
		&q.IsActive,
		&q.CreatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if q.Tags, err = decodeStrings(tags); err != nil {
		return nil, err
	}
	if options.Valid {
		if q.Options, err = decodeStrings(options.String); err != nil {
			return nil, err
		}
	}
	if maxSelections.Valid {
		n := int(maxSelections.Int64)
		q.MaxSelections = &n
	}
	return &q, nil
}
