package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ValidationError carries the user facing message of the first violated rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidator returns a validator configured for assessment payloads: JSON field
// names in error namespaces and the notblank rule.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterAssessmentRules(validate); err != nil {
		panic(fmt.Sprintf("register assessment rules: %v", err))
	}
	return validate
}

// RegisterAssessmentRules installs the rules used by AssessmentRequest on an existing validator.
func RegisterAssessmentRules(validate *validator.Validate) error {
	validate.RegisterTagNameFunc(jsonFieldName)
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return fmt.Errorf("register notblank: %w", err)
	}
	return nil
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// firstValidationError maps validator output to a ValidationError. Errors are
// reported in field declaration order, so the first entry is the first rule broken.
func firstValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}

	fe := validationErrors[0]
	path := fieldPath(fe)

	if fe.Field() == "responses" {
		return &ValidationError{
			Field:   path,
			Message: "Campo 'responses' é obrigatório e não pode ser vazio.",
		}
	}

	return &ValidationError{
		Field:   path,
		Message: fmt.Sprintf("Campo '%s' é obrigatório.", path),
	}
}

// fieldPath drops the root struct name: "AssessmentRequest.responses[0].questionId" -> "responses[0].questionId".
func fieldPath(fe validator.FieldError) string {
	namespace := fe.Namespace()
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return fe.Field()
}
