package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance reports field names by their yaml keys.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}

			return name
		})
	})

	return validate
}

// validateStruct runs the tag checks and converts each violation into a
// *ConfigError keyed by its dotted yaml path, e.g. "prune.margin".
func validateStruct(c *Config) error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		_, field, _ := strings.Cut(fe.Namespace(), ".")
		rule := fe.Tag()
		if p := fe.Param(); p != "" {
			rule += "=" + p
		}
		errs = append(errs, &ConfigError{
			Field:  field,
			Reason: fmt.Sprintf("must satisfy %s, got %v", rule, fe.Value()),
		})
	}

	return errors.Join(errs...)
}
