package api

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validationIssues flattens validator errors into the issue list carried in
// the 422 details payload.
func validationIssues(err error) []map[string]string {
	var issues []map[string]string
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []map[string]string{{"message": err.Error()}}
	}
	for _, fieldErr := range validationErrs {
		issues = append(issues, map[string]string{
			"field":   fieldErr.Field(),
			"message": fmt.Sprintf("failed validation on %q", fieldErr.Tag()),
		})
	}
	return issues
}
