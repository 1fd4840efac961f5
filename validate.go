package paymentdomain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validationError shapes a validator error into a single descriptive error
// naming the first failing field.
func validationError(record string, err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("invalid %s: field %s failed on the %q rule", record, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("invalid %s: %w", record, err)
}
