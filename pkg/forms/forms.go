// Package forms holds the input checks that run before any database call.
package forms

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return Invalid(field, "must not be empty")
	}
	return nil
}

func RequiredID(field string, id uint) error {
	if id == 0 {
		return Invalid(field, "must be selected")
	}
	return nil
}

// Date parses a YYYY-MM-DD value as a UTC day.
func Date(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, Invalid(field, "must not be empty")
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, Invalid(field, "must be a date in the form YYYY-MM-DD")
	}
	return d, nil
}

// Number accepts a JSON number or a numeric string, as typed into a form field.
// null and "" mean the field was left empty.
type Number struct {
	raw     string
	set     bool
	invalid bool
	value   float64
}

func NewNumber(v float64) Number {
	return Number{raw: strconv.FormatFloat(v, 'f', -1, 64), set: true, value: v}
}

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = Number{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
		if s == "" {
			*n = Number{}
			return nil
		}
		// "4,50" from a German keyboard
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	invalid := err != nil || math.IsNaN(v) || math.IsInf(v, 0)
	*n = Number{raw: s, set: true, invalid: invalid, value: v}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set || n.invalid {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

func (n Number) IsSet() bool { return n.set }

// Required returns the parsed value or a ValidationError naming field.
func (n Number) Required(field string) (float64, error) {
	if !n.set {
		return 0, Invalid(field, "must not be empty")
	}
	if n.invalid {
		return 0, Invalid(field, fmt.Sprintf("%q is not a number", n.raw))
	}
	return n.value, nil
}

// Optional returns nil for an empty field.
func (n Number) Optional(field string) (*float64, error) {
	if !n.set {
		return nil, nil
	}
	v, err := n.Required(field)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// NonNegative is Required plus a lower bound of zero.
func (n Number) NonNegative(field string) (float64, error) {
	v, err := n.Required(field)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, Invalid(field, "must not be negative")
	}
	return v, nil
}
