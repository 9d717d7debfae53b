package form

import (
	"encoding/json"
	"time"
)

// Form is a tenant-scoped composition of questions.
type Form struct {
	ID            string          `json:"id"`
	TenantID      string          `json:"tenant_id"`
	Name          string          `json:"name"`
	Tags          []string        `json:"tags"`
	FormStructure json.RawMessage `json:"form_structure"`
	CreatedBy     *string         `json:"created_by"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Patch holds the replaceable fields of a form.
type Patch struct {
	Name          string
	Tags          []string
	FormStructure json.RawMessage
	UpdatedAt     time.Time
}
