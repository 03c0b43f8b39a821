// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// Two styles can be mixed on one [Validator]:
//
//   - Fluent rules (Required, MaxLen, OneOf...) for checks that depend on
//     domain logic.
//   - [Validator.Struct] for `validate:"..."` tags declared on the entity,
//     evaluated by go-playground/validator.
//
// This package is used in the service layer, never in handlers or storage.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/taibuivan/spellbook/internal/platform/apperr"
)

var (
	// slugRegex matches slug format: lowercase letters, digits, hyphens.
	slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

	// structValidator is safe for concurrent use and caches struct metadata.
	structValidator = newStructValidator()
)

// newStructValidator reports field errors under their JSON names.
func newStructValidator() *validator.Validate {
	instance := validator.New(validator.WithRequiredStructEnabled())
	instance.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return instance
}

// Validator collects field-level validation errors via a fluent, chainable API.
//
// Validator is not safe for concurrent use. Create one per operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// Slug fails if the value is not a valid URL slug.
//
// Slugs consist only of lowercase letters, digits, and hyphens, with no
// leading or trailing hyphens.
func (v *Validator) Slug(field, value string) *Validator {
	if !slugRegex.MatchString(value) {
		v.add(field, "Must be a valid URL slug (lowercase letters, digits, hyphens only)")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
//	v.Custom("level", level > 9, "Spells stop at 9th level")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Struct evaluates the `validate` tags of value and records one error per
// failing field, keyed by the field's JSON name.
func (v *Validator) Struct(value any) *Validator {
	err := structValidator.Struct(value)
	if err == nil {
		return v
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		v.add("_", err.Error())
		return v
	}

	for _, fieldError := range fieldErrors {
		v.add(fieldPath(fieldError), tagMessage(fieldError))
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// fieldPath drops the root struct name: "Spell.components[0]" becomes "components[0]".
func fieldPath(fieldError validator.FieldError) string {
	namespace := fieldError.Namespace()
	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}
	return fieldError.Field()
}

// tagMessage renders a human readable message for the common tags.
func tagMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return fmt.Sprintf("Must be at most %s", fieldError.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s", fieldError.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fieldError.Param(), " ", ", "))
	}
	return fmt.Sprintf("Failed the %q rule", fieldError.Tag())
}
