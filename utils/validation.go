package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MinPasswordLength is the only password rule; no complexity requirements.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Field is one named value to check for presence. Fields are a slice, not a
// map, so the error message lists missing names in declaration order.
type Field struct {
	Name  string
	Value string
}

// ValidateRequired checks every field and reports all missing ones at once.
// A value is missing when it is empty after trimming whitespace.
func ValidateRequired(fields []Field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEmail checks the value looks like local-part@domain with a dotted
// domain and no embedded whitespace.
func ValidateEmail(value string) error {
	if !emailPattern.MatchString(value) {
		return errors.New("invalid email format")
	}
	return nil
}

// ValidatePassword enforces the minimum length.
func ValidatePassword(value string) error {
	if len(value) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
