package question

import "github.com/ganot/formbuilder/internal/domain"

// ErrQuestionNotFound indicates no active master question has that id.
var ErrQuestionNotFound = domain.Kind(domain.ErrNotFound, "Master question not found")
