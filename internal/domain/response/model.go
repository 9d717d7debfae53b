package response

import (
	"encoding/json"
	"time"
)

// Response is one submission against a form. Responses are append-only.
type Response struct {
	ID          string          `json:"id"`
	FormID      string          `json:"form_id"`
	TenantID    string          `json:"tenant_id"`
	UserID      *string         `json:"user_id"`
	SessionID   *string         `json:"session_id"`
	Responses   json.RawMessage `json:"responses"`
	IsComplete  bool            `json:"is_complete"`
	IPAddress   *string         `json:"ip_address"`
	UserAgent   *string         `json:"user_agent"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// ListOptions provides filtering options for listing responses.
type ListOptions struct {
	IsComplete *bool
	UserID     string
}

// Pagination describes the window returned by List.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page is a window of responses plus its pagination metadata.
type Page struct {
	Items      []Response `json:"responses"`
	Pagination Pagination `json:"pagination"`
}
