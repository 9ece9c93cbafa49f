package v1

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// validate checks request payloads against their `validate` tags.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// maxbytes limits the encoded length, unlike max which counts runes.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
	_ = v.RegisterValidation("hex6", func(fl validator.FieldLevel) bool {
		return hexColor.MatchString(fl.Field().String())
	})
	return v
}

// fieldMessages maps "Struct.Field.tag", or "Struct.Field" for any tag, to
// the message shown to the caller.
var fieldMessages = map[string]string{
	"SignupRequest.Name.min":          "Name must be at least 2 characters.",
	"SignupRequest.Name.max":          "Name must be at most 80 characters.",
	"SignupRequest.Email":             "Please enter a valid email.",
	"SignupRequest.Password.min":      "Password must be at least 8 characters.",
	"SignupRequest.Password.maxbytes": "Password must be at most 72 characters.",
	"LoginRequest.Email":              "Please enter a valid email.",
	"LoginRequest.Password":           "Password is required.",

	"updateBoardRequest.BackgroundColor": "Background color must be a hex value like #aabbcc",
	"updateBoardRequest.GradientFrom":    "Gradient start must be a hex value like #aabbcc",
	"updateBoardRequest.GradientTo":      "Gradient end must be a hex value like #aabbcc",
}

// validationMessage returns the message for the first violation in err, or
// fallback when none is registered.
func validationMessage(err error, fallback string) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return fallback
	}
	fe := errs[0]
	if msg, ok := fieldMessages[fe.StructNamespace()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := fieldMessages[fe.StructNamespace()]; ok {
		return msg
	}
	return fallback
}

// trimPtr trims the string behind p in place.
func trimPtr(p *string) {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
}
