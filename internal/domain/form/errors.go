package form

import "github.com/ganot/formbuilder/internal/domain"

var (
	// ErrFormNotFound indicates no active form with that id exists for the tenant.
	ErrFormNotFound = domain.Kind(domain.ErrNotFound, "Form not found")
	// ErrNameConflict indicates another active form of the tenant has the same name.
	ErrNameConflict = domain.Kind(domain.ErrConflict, "Form name already exists for this tenant")
)
