package form

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/ganot/formbuilder/internal/domain"
	"github.com/go-playground/validator/v10"
)

const (
	msgStructureNotObject = "Form structure must be an object"
	msgStructureQuestions = "Form structure must have a questions array"
	msgCreateRequired     = "Name, tenantId, and form_structure are required"
	msgUpdateRequired     = "Name and form_structure are required"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// StructureResult is the outcome of ValidateStructure. Error is empty when Valid.
type StructureResult struct {
	Valid bool
	Error string
}

// ValidateStructure checks the minimal shape of a form structure: an object with
// a questions array. Question contents are not inspected.
func ValidateStructure(candidate any) StructureResult {
	doc, ok := candidate.(map[string]any)
	if !ok || doc == nil {
		return StructureResult{Error: msgStructureNotObject}
	}
	if _, ok := doc["questions"].([]any); !ok {
		return StructureResult{Error: msgStructureQuestions}
	}
	return StructureResult{Valid: true}
}

// ValidateStructureJSON decodes raw and runs ValidateStructure on it. Input that
// is not JSON is reported as not being an object.
func ValidateStructureJSON(raw []byte) StructureResult {
	var candidate any
	if err := json.Unmarshal(raw, &candidate); err != nil {
		return StructureResult{Error: msgStructureNotObject}
	}
	return ValidateStructure(candidate)
}

// ValidateCreateInput validates fields required to create a form.
func ValidateCreateInput(req CreateRequest) error {
	if err := validate.Struct(req); err != nil || isJSONNull(req.FormStructure) {
		return requiredError(err, msgCreateRequired)
	}
	if res := ValidateStructureJSON(req.FormStructure); !res.Valid {
		return domain.Invalid("form_structure", "%s", res.Error)
	}
	return nil
}

// ValidateUpdateInput validates a replacement of a form's mutable fields.
func ValidateUpdateInput(req UpdateRequest) error {
	if err := validate.Struct(req); err != nil || isJSONNull(req.FormStructure) {
		return requiredError(err, msgUpdateRequired)
	}
	if res := ValidateStructureJSON(req.FormStructure); !res.Valid {
		return domain.Invalid("form_structure", "%s", res.Error)
	}
	return nil
}

func requiredError(err error, msg string) error {
	field := "form_structure"
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field = verrs[0].Field()
	}
	return domain.Invalid(field, "%s", msg)
}

// isJSONNull reports a missing document: empty input or a JSON null.
func isJSONNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
