package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/zerr"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateLifecycle, LifecycleDTO{})
	return v
}

// validateLifecycle enforces that each entry sets exactly one event and
// that only renames carry a target name.
func validateLifecycle(sl validator.StructLevel) {
	entry, ok := sl.Current().Interface().(LifecycleDTO)
	if !ok {
		return
	}

	set := 0
	for _, v := range []string{entry.Added, entry.Removed, entry.Renamed} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		sl.ReportError(entry, "lifecycle", "Lifecycle", "exactly_one_event", "")
		return
	}

	switch {
	case entry.Renamed != "" && entry.To == "":
		sl.ReportError(entry.To, "to", "To", "required_with_renamed", "")
	case entry.Renamed == "" && entry.To != "":
		sl.ReportError(entry.To, "to", "To", "excluded_without_renamed", "")
	}
}

// validateDocument runs the struct validator and folds every failure into
// one ErrConfigInvalid error.
func validateDocument(v *validator.Validate, doc *Document) error {
	err := v.Struct(doc)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return zerr.Wrap(err, domain.ErrConfigInvalid.Error())
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}

	return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, strings.Join(problems, "; ")), "problems", len(problems))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Document.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s %q is not one of [%s]", field, fe.Value(), fe.Param())
	case "exactly_one_event":
		return field + " must set exactly one of added, removed or renamed"
	case "required_with_renamed":
		return field + " is required for a rename"
	case "excluded_without_renamed":
		return field + " is only allowed on a rename"
	default:
		return fmt.Sprintf("%s failed %q", field, fe.Tag())
	}
}
