package webhook

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidPayload is returned when a payload fails validation. No request
// is sent in that case.
var ErrInvalidPayload = errors.New("invalid webhook payload")

var zipRegex = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

const (
	minPhoneDigits = 10
	maxPhoneDigits = 15
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("zipcode", zipCodeValidator)
	_ = v.RegisterValidation("phone", phoneValidator)
	return v
}

func zipCodeValidator(fl validator.FieldLevel) bool {
	return zipRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

// phoneValidator accepts any formatting as long as the digit count is
// plausible for a dialable number.
func phoneValidator(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	digits := 0
	for _, r := range val {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case strings.ContainsRune(" +-().", r):
		default:
			return false
		}
	}
	return digits >= minPhoneDigits && digits <= maxPhoneDigits
}

// validationError flattens validator errors into one message.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidPayload, strings.Join(msgs, "; "))
}
