package journal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound    = errors.New("trade not found")
	ErrDuplicateID = errors.New("duplicate trade id")
	ErrValidation  = errors.New("invalid trade")
	ErrEmptyCSV    = errors.New("csv has no header line")
	ErrImport      = errors.New("failed to import CSV")
)

// ValidationError lists the required fields a record is missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, " & ") + " required"
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

var validate = validator.New()

// Validate checks that r can be persisted: date and symbol must be set.
func Validate(r Record) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate trade: %w", err)
	}
	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, fe.StructField())
	}
	return ve
}
