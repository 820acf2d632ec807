package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	custom := map[string]validator.Func{
		"videourl": func(fl validator.FieldLevel) bool {
			return ValidVideoURL(fl.Field().String())
		},
		"tacterurl": func(fl validator.FieldLevel) bool {
			return ValidTacterURL(fl.Field().String())
		},
		"rank": func(fl validator.FieldLevel) bool {
			return Rank(fl.Field().String()).IsValid()
		},
		"difficulty": func(fl validator.FieldLevel) bool {
			return Difficulty(fl.Field().String()).IsValid()
		},
		"notblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	return v
}

// ValidateRecord checks a composition at the persistence boundary.
func ValidateRecord(c *Composition) error {
	return validateStruct(c)
}

// ValidatePatch checks a partial update before it is merged.
func ValidatePatch(p *CompositionPatch) error {
	return validateStruct(p)
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var out ValidationErrors
	for _, fe := range fieldErrs {
		out.Add(fieldPath(fe), formatFieldError(fe))
	}
	return out
}

// fieldPath drops the root struct name from the namespace: "Composition.champions[0].stars" -> "champions[0].stars"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at least %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at most %s entries", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "videourl":
		return "must be a valid YouTube URL"
	case "tacterurl":
		return "must be a valid Tacter.gg URL"
	case "rank":
		return "must be one of S, A, B, C, D"
	case "difficulty":
		return "must be one of Easy, Medium, Hard"
	default:
		return "is invalid"
	}
}
