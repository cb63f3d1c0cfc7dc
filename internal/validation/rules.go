// Package validation holds the jellydator/validation rules shared by the user, expense
// and budget inputs.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/fintrack/internal/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// WrapValidationError turns a failed rule set into ErrInvalidInput so handlers map it
// to 422. Errors that already carry ErrInvalidInput are returned unchanged.
func WrapValidationError(err error) error {
	if err == nil || apperrors.Is(err, apperrors.ErrInvalidInput) {
		return err
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Email validates an optional email address.
var Email = validation.NewStringRuleWithError(
	emailRegex.MatchString,
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NotBlank rejects strings made only of whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool { return strings.TrimSpace(s) != "" },
	validation.NewError("validation_not_blank", "must not be blank"),
)

// UUID validates an optional UUID string.
var UUID = validation.NewStringRuleWithError(
	func(s string) bool { return uuid.Validate(s) == nil },
	validation.NewError("validation_uuid_format", "must be a valid UUID"),
)

type charClass struct {
	code    string
	message string
	match   func(rune) bool
}

var (
	upperClass   = charClass{"validation_password_uppercase", "password must contain at least one uppercase letter", unicode.IsUpper}
	lowerClass   = charClass{"validation_password_lowercase", "password must contain at least one lowercase letter", unicode.IsLower}
	numberClass  = charClass{"validation_password_number", "password must contain at least one number", unicode.IsNumber}
	specialClass = charClass{"validation_password_special", "password must contain at least one special character", isSpecial}
)

func isSpecial(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func (c charClass) presentIn(s string) bool {
	return strings.IndexFunc(s, c.match) >= 0
}

// PasswordStrength requires a minimum length and, optionally, one character of each
// enabled class.
type PasswordStrength struct {
	MinLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireNumber  bool
	RequireSpecial bool
}

// UserPassword is the policy applied to account passwords.
var UserPassword = PasswordStrength{
	MinLength:      8,
	RequireUpper:   true,
	RequireLower:   true,
	RequireNumber:  true,
	RequireSpecial: true,
}

// Validate implements validation.Rule.
func (p PasswordStrength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}
	if len(s) < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			"password must be at least "+strconv.Itoa(p.MinLength)+" characters",
		)
	}

	checks := []struct {
		enabled bool
		class   charClass
	}{
		{p.RequireUpper, upperClass},
		{p.RequireLower, lowerClass},
		{p.RequireNumber, numberClass},
		{p.RequireSpecial, specialClass},
	}
	for _, c := range checks {
		if c.enabled && !c.class.presentIn(s) {
			return validation.NewError(c.class.code, c.class.message)
		}
	}
	return nil
}
