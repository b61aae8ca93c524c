package service

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-assessment-intake/internal/dto"
)

func TestRegisterAssessmentRules(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	require.NoError(t, RegisterAssessmentRules(validate))

	req := validRequest()
	require.NoError(t, validate.Struct(req))

	req.StudentName = " \t"
	err := firstValidationError(validate.Struct(req))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "studentName", validationErr.Field)
}

func TestNewValidatorRegistersNotBlank(t *testing.T) {
	validate := NewValidator()

	require.NotPanics(t, func() {
		err := validate.Struct(dto.AssessmentResponseEntry{QuestionID: " ", ChoiceType: "correct"})
		require.Error(t, err)
	})
}
