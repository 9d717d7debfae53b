package form

import (
	"context"
	"time"
)

// Repository provides persistence for forms. Every method is tenant scoped and
// only sees active rows.
type Repository interface {
	Create(ctx context.Context, f *Form) error
	Get(ctx context.Context, tenantID, id string) (*Form, error)
	List(ctx context.Context, tenantID string, opts ListOptions) ([]Form, error)
	Update(ctx context.Context, tenantID, id string, patch Patch) (*Form, error)
	Deactivate(ctx context.Context, tenantID, id string, at time.Time) error
}
