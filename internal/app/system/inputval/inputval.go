// Package inputval validates request payloads against their field
// constraints. Payload structs declare constraints with `validate` tags and
// handlers call Check before acting.
package inputval

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/inkboardhq/inkboard/internal/app/system/apperr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Check validates payload and maps any failure to a ValidationFailed error
// naming the offending fields.
func Check(payload any) *apperr.Error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Validation("Entered data is incorrect")
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return apperr.Validation("Validation failed for: " + strings.Join(fields, ", "))
}
