package form_test

import (
	"encoding/json"
	"testing"

	"github.com/ganot/formbuilder/internal/domain"
	"github.com/ganot/formbuilder/internal/domain/form"
	"github.com/stretchr/testify/require"
)

func TestValidateStructure(t *testing.T) {
	tests := []struct {
		name      string
		candidate any
		wantValid bool
		wantError string
	}{
		{name: "nil", candidate: nil, wantError: "Form structure must be an object"},
		{name: "string", candidate: "questions", wantError: "Form structure must be an object"},
		{name: "number", candidate: 42.0, wantError: "Form structure must be an object"},
		{name: "bool", candidate: true, wantError: "Form structure must be an object"},
		{name: "array", candidate: []any{}, wantError: "Form structure must be an object"},
		{name: "typed nil map", candidate: map[string]any(nil), wantError: "Form structure must be an object"},
		{name: "empty object", candidate: map[string]any{}, wantError: "Form structure must have a questions array"},
		{name: "questions object", candidate: map[string]any{"questions": map[string]any{}}, wantError: "Form structure must have a questions array"},
		{name: "questions null", candidate: map[string]any{"questions": nil}, wantError: "Form structure must have a questions array"},
		{name: "empty questions", candidate: map[string]any{"questions": []any{}}, wantValid: true},
		{name: "questions not inspected", candidate: map[string]any{"questions": []any{1.0, "x", nil}}, wantValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := form.ValidateStructure(tt.candidate)
			require.Equal(t, tt.wantValid, res.Valid)
			require.Equal(t, tt.wantError, res.Error)
		})
	}
}

func TestValidateStructureJSON(t *testing.T) {
	require.True(t, form.ValidateStructureJSON([]byte(`{"questions":[{"id":"q1"}],"title":"x"}`)).Valid)
	require.Equal(t, "Form structure must be an object", form.ValidateStructureJSON([]byte(`{not json`)).Error)
	require.Equal(t, "Form structure must be an object", form.ValidateStructureJSON(nil).Error)
	require.Equal(t, "Form structure must be an object", form.ValidateStructureJSON([]byte(`null`)).Error)
	require.Equal(t, "Form structure must have a questions array", form.ValidateStructureJSON([]byte(`{}`)).Error)
}

func TestValidateCreateInput(t *testing.T) {
	valid := form.CreateRequest{
		TenantID:      "t1",
		Name:          "Survey",
		FormStructure: json.RawMessage(`{"questions":[]}`),
	}
	require.NoError(t, form.ValidateCreateInput(valid))

	missingName := valid
	missingName.Name = ""
	err := form.ValidateCreateInput(missingName)
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Equal(t, "Name, tenantId, and form_structure are required", err.Error())

	missingTenant := valid
	missingTenant.TenantID = ""
	require.ErrorIs(t, form.ValidateCreateInput(missingTenant), domain.ErrValidation)

	nullStructure := valid
	nullStructure.FormStructure = json.RawMessage(`null`)
	err = form.ValidateCreateInput(nullStructure)
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Equal(t, "Name, tenantId, and form_structure are required", err.Error())

	noQuestions := valid
	noQuestions.FormStructure = json.RawMessage(`{}`)
	err = form.ValidateCreateInput(noQuestions)
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Contains(t, err.Error(), "questions")
}

func TestValidateInput_EmptyStructure(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		err := form.ValidateCreateInput(form.CreateRequest{
			TenantID:      "t1",
			Name:          "Survey",
			FormStructure: json.RawMessage(raw),
		})
		require.ErrorIs(t, err, domain.ErrValidation)
		require.Equal(t, "Name, tenantId, and form_structure are required", err.Error())

		err = form.ValidateUpdateInput(form.UpdateRequest{
			TenantID:      "t1",
			ID:            "f1",
			Name:          "Survey",
			FormStructure: json.RawMessage(raw),
		})
		require.ErrorIs(t, err, domain.ErrValidation)
		require.Equal(t, "Name and form_structure are required", err.Error())
	}
}
