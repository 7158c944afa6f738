package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"labcatalog-api/pkg/apierror"
)

// Violation records a single failed field rule. Field and rule names are
// caller-shape feedback and safe to echo back.
type Violation struct {
	Field   string
	Rule    string
	Message string
}

// Validator collects per-field rule checks. Rules are evaluated
// independently and never short-circuit, so a caller receives the full
// violation list in one round trip.
type Validator struct {
	violations []Violation
}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) add(field string, rule string, format string, args ...any) {
	v.violations = append(v.violations, Violation{
		Field:   field,
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
	})
}

// Length checks inclusive rune-length bounds on a required string.
func (v *Validator) Length(field string, value string, min int, max int) *Validator {
	n := len([]rune(value))
	if n < min || n > max {
		v.add(field, "length", "%s must be between %d and %d characters", field, min, max)
	}
	return v
}

// OptionalLength applies Length only when the value is present.
func (v *Validator) OptionalLength(field string, value *string, min int, max int) *Validator {
	if value == nil {
		return v
	}
	return v.Length(field, *value, min, max)
}

// Email checks basic RFC 5322 address shape.
func (v *Validator) Email(field string, value string) *Validator {
	addr, err := mail.ParseAddress(strings.TrimSpace(value))
	if err != nil || addr.Address != strings.TrimSpace(value) {
		v.add(field, "email", "%s must be a valid email address", field)
	}
	return v
}

// URL checks that the value parses as an absolute http(s) URL.
func (v *Validator) URL(field string, value string) *Validator {
	parsed, err := url.Parse(strings.TrimSpace(value))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		v.add(field, "url", "%s must be a valid http or https URL", field)
	}
	return v
}

// OptionalURL applies URL only when the value is present.
func (v *Validator) OptionalURL(field string, value *string) *Validator {
	if value == nil || strings.TrimSpace(*value) == "" {
		return v
	}
	return v.URL(field, *value)
}

// Digits checks that the value is exactly length decimal digits.
func (v *Validator) Digits(field string, value string, length int) *Validator {
	valid := len(value) == length
	if valid {
		for i := 0; i < len(value); i++ {
			if value[i] < '0' || value[i] > '9' {
				valid = false
				break
			}
		}
	}
	if !valid {
		v.add(field, "digits", "%s must be exactly %d digits", field, length)
	}
	return v
}

// Range checks inclusive numeric bounds.
func (v *Validator) Range(field string, value int, min int, max int) *Validator {
	if value < min || value > max {
		v.add(field, "range", "%s must be between %d and %d", field, min, max)
	}
	return v
}

// NotEmpty checks that a collection has at least one element.
func (v *Validator) NotEmpty(field string, length int) *Validator {
	if length < 1 {
		v.add(field, "not_empty", "%s must contain at least one element", field)
	}
	return v
}

// Violations returns the accumulated violations in evaluation order.
func (v *Validator) Violations() []Violation {
	return v.violations
}

// Err returns nil when every rule passed, otherwise a single Validation
// error carrying all violation messages.
func (v *Validator) Err() error {
	if len(v.violations) == 0 {
		return nil
	}

	messages := make([]string, 0, len(v.violations))
	for _, violation := range v.violations {
		messages = append(messages, violation.Message)
	}

	return apierror.New(apierror.KindValidation, strings.Join(messages, "; "))
}
