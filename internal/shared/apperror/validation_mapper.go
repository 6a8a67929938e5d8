package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatFieldName turns a json field name into a label: employee_ids -> Employee Ids.
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}

// MapValidationError converts a binding error into an INVALID_INPUT AppError naming the
// first failing field. Field names come from json tags, see Init.
func MapValidationError(err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		field := formatFieldName(e.Field())

		var mapped *AppError
		switch e.Tag() {
		case "required":
			mapped = RequiredField(field)
		case "min":
			mapped = New(CodeInvalidInput, fmt.Sprintf("%s needs at least %s item(s)", field, e.Param()), http.StatusBadRequest)
		case "max":
			mapped = New(CodeInvalidInput, fmt.Sprintf("%s must be at most %s characters", field, e.Param()), http.StatusBadRequest)
		case "uuid":
			mapped = New(CodeInvalidInput, fmt.Sprintf("%s must be a valid UUID", field), http.StatusBadRequest)
		default:
			mapped = InvalidField(field)
		}
		return WithDetails(mapped, map[string]any{"field": e.Field(), "rule": e.Tag()})
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
