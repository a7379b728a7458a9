// Package validate wraps go-playground/validator for request DTOs. Failures
// are reported as blob.ErrMissingField naming the offending JSON fields.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/pdfdesk/service/internal/blob"
)

var (
	inst *validator.Validate
	once sync.Once
)

func engine() *validator.Validate {
	once.Do(func() {
		inst = validator.New(validator.WithRequiredStructEnabled())
		inst.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return inst
}

// FieldError lists the fields that failed validation.
type FieldError struct {
	Fields []string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", blob.ErrMissingField, strings.Join(e.Fields, ", "))
}

// Unwrap lets errors.Is match blob.ErrMissingField.
func (e *FieldError) Unwrap() error { return blob.ErrMissingField }

// Struct validates s. Validation failures return a *FieldError.
func Struct(s any) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	fe := &FieldError{}
	for _, v := range verrs {
		fe.Fields = append(fe.Fields, v.Field())
	}
	return fe
}
