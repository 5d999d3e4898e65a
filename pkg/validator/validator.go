package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator validates structs against their `validate` tags.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (vd *Validator) Validate(obj interface{}) error {
	if err := vd.v.Struct(obj); err != nil {
		var verrs validator.ValidationErrors
		if ok := errorsAs(err, &verrs); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("field %s failed on rule %s", fe.Field(), fe.Tag())
		}
		return err
	}
	return nil
}

func errorsAs(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}
