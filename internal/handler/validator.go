package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/leolovestravel/vietnamtravel/internal/models"
)

// Validator plugs go-playground/validator into echo's c.Validate.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

var fieldLabels = map[string]string{
	"tourId":           "Tour",
	"fullName":         "Full name",
	"email":            "Email",
	"phone":            "Phone",
	"travelDate":       "Travel date",
	"travelers":        "Number of travellers",
	"notes":            "Notes",
	"name":             "Name",
	"subject":          "Subject",
	"message":          "Message",
	"username":         "Username",
	"password":         "Password",
	"old_password":     "Current password",
	"new_password":     "New password",
	"confirm_password": "Password confirmation",
	"role":             "Role",
}

// validationMessage turns a validation failure into one line for the page.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		label, ok := fieldLabels[fe.Field()]
		if !ok {
			label = fe.Field()
		}
		switch fe.Tag() {
		case "required":
			return label + " is required"
		case "email":
			return label + " must be a valid email address"
		case "min":
			if fe.Kind() == reflect.String {
				return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
			}
			return fmt.Sprintf("%s must be at least %s", label, fe.Param())
		case "max":
			if fe.Kind() == reflect.String {
				return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
			}
			return fmt.Sprintf("%s must be at most %s", label, fe.Param())
		case "datetime":
			return label + " must be a date (YYYY-MM-DD)"
		case "oneof":
			return fmt.Sprintf("%s must be one of: %s", label, fe.Param())
		}
		return label + " is invalid"
	}

	var ve models.ValidationError
	if errors.As(err, &ve) {
		return capitalize(ve.Error())
	}
	return capitalize(err.Error())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
