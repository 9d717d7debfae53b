package question

import "time"

// Question is a reusable question definition, independent of any form.
type Question struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	Type          string    `json:"type"`
	Options       []string  `json:"options"`
	MaxSelections *int      `json:"max_selections"`
	Tags          []string  `json:"tags"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListOptions provides filtering options for listing master questions.
type ListOptions struct {
	Tags   []string
	Type   string
	Search string
}
