package response

import "github.com/ganot/formbuilder/internal/domain"

var (
	// ErrFormNotFound indicates the target form is absent, inactive or owned by another tenant.
	ErrFormNotFound = domain.Kind(domain.ErrNotFound, "Form not found")
	// ErrResponseNotFound indicates no response with that id exists for the form.
	ErrResponseNotFound = domain.Kind(domain.ErrNotFound, "Response not found")
)
