package response

import (
	"context"

	"github.com/ganot/formbuilder/internal/query"
)

// Repository provides persistence for form responses.
type Repository interface {
	// Create inserts r only if its form exists, is active and belongs to
	// r.TenantID. Otherwise it returns repository.ErrNotFound.
	Create(ctx context.Context, r *Response) error
	Get(ctx context.Context, tenantID, formID, id string) (*Response, error)
	List(ctx context.Context, tenantID, formID string, opts ListOptions, page query.Page) ([]Response, error)
	Count(ctx context.Context, tenantID, formID string, opts ListOptions) (int, error)
}
