package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ganot/formbuilder/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestValidationError_IsValidation(t *testing.T) {
	err := domain.Invalid("text", "Text and type are required")
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Equal(t, "Text and type are required", err.Error())

	wrapped := fmt.Errorf("creating question: %w", err)
	var verr *domain.ValidationError
	require.True(t, errors.As(wrapped, &verr))
	require.Equal(t, "text", verr.Field)
}

func TestKind(t *testing.T) {
	err := domain.Kind(domain.ErrNotFound, "form not found")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NotErrorIs(t, err, domain.ErrConflict)
	require.Equal(t, "form not found", err.Error())
}

func TestPublicMessage(t *testing.T) {
	msg, ok := domain.PublicMessage(fmt.Errorf("update: %w", domain.Kind(domain.ErrConflict, "Form name already exists")))
	require.True(t, ok)
	require.Equal(t, "Form name already exists", msg)

	msg, ok = domain.PublicMessage(domain.Invalid("name", "Name is required"))
	require.True(t, ok)
	require.Equal(t, "Name is required", msg)

	_, ok = domain.PublicMessage(errors.New("sql: connection refused"))
	require.False(t, ok)
}
