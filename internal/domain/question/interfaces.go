package question

import "context"

// Repository provides persistence for master questions.
type Repository interface {
	Create(ctx context.Context, q *Question) error
	Get(ctx context.Context, id string) (*Question, error)
	List(ctx context.Context, opts ListOptions) ([]Question, error)
}
