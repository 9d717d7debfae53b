package question

import (
	"errors"

	"github.com/ganot/formbuilder/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateCreateInput validates a master question. allowedTypes restricts
// Type when non-empty.
func ValidateCreateInput(req CreateRequest, allowedTypes []string) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "MaxSelections" {
			return domain.Invalid("max_selections", "max_selections must be a positive integer")
		}
		return domain.Invalid("text", "Text and type are required")
	}

	if len(allowedTypes) > 0 && !contains(allowedTypes, req.Type) {
		return domain.Invalid("type", "Unknown question type %q", req.Type)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
