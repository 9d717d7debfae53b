package response

import (
	"bytes"
	"errors"

	"github.com/ganot/formbuilder/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateCreateInput checks that a submission names its tenant and form and
// carries a non-empty, non-null answers document.
func ValidateCreateInput(req CreateRequest) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() != "Responses" {
			return domain.Invalid(verrs[0].Field(), "Tenant and form are required")
		}
		return domain.Invalid("responses", "Responses are required")
	}
	if raw := bytes.TrimSpace(req.Responses); len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return domain.Invalid("responses", "Responses are required")
	}
	return nil
}
