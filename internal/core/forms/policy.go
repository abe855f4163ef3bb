// Package forms holds the transient drafts behind every entity form, the
// per-field error maps rendered next to the inputs, and the one canonical
// validation policy shared by all of them.
package forms

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Canonical field bounds. One definition lives here and every form uses
// it, so the registration and admin forms cannot drift apart.
const (
	NameMin     = 20
	NameMax     = 60
	AddressMax  = 400
	PasswordMin = 8
	PasswordMax = 16

	// SpecialChars is the canonical special-character set for passwords.
	SpecialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`
)

// emailRe is deliberately permissive: local@domain.tld, no whitespace.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s has the accepted local@domain.tld shape.
func ValidEmail(s string) bool { return emailRe.MatchString(s) }

// ValidPassword reports whether s satisfies the canonical policy:
// 8-16 characters, at least one uppercase letter, at least one character
// from SpecialChars.
func ValidPassword(s string) bool {
	// Length is counted in runes, matching the min/max tags elsewhere.
	if n := utf8.RuneCountInString(s); n < PasswordMin || n > PasswordMax {
		return false
	}
	hasUpper := false
	for _, r := range s {
		if unicode.IsUpper(r) {
			hasUpper = true
			break
		}
	}
	return hasUpper && strings.ContainsAny(s, SpecialChars)
}

// validate is the shared validator instance with the custom rules
// registered. Field names in errors come from the form tag, matching the
// input names posted by the templates.
var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	must(v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	}))
	must(v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return ValidPassword(fl.Field().String())
	}))
	return v
}()

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Errors maps form field names to the message shown inline next to the
// field. The reserved key "submit" carries the banner message for a
// rejected submission.
type Errors map[string]string

// Valid reports whether no field failed.
func (e Errors) Valid() bool { return len(e) == 0 }

// check runs the shared validator and converts the result into an Errors
// map, keeping only the first failure per field.
func check(draft any) Errors {
	out := Errors{}
	err := validate.Struct(draft)
	if err == nil {
		return out
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["submit"] = "invalid form submission"
		return out
	}
	for _, fe := range ve {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = message(fe)
		}
	}
	return out
}

var fieldLabels = map[string]string{
	"name":        "Name",
	"email":       "Email",
	"address":     "Address",
	"password":    "Password",
	"role":        "Role",
	"oldPassword": "Current password",
	"newPassword": "New password",
}

func message(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min", "max":
		if fe.Field() == "name" {
			return "Name must be between 20-60 characters"
		}
		return label + " must not exceed " + fe.Param() + " characters"
	case "simple_email":
		return "Please enter a valid email address"
	case "password":
		return "Password must be 8-16 characters and include an uppercase letter and a special character"
	case "oneof":
		return "Please select a valid role"
	default:
		return label + " is invalid"
	}
}
