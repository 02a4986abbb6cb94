// Package validation checks volunteer-supplied fields before any store or
// mail I/O happens.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/mercury/internal/common"
)

// Error names the offending field. It matches common.ErrInvalidArgument
// under errors.Is.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *Error) Unwrap() error {
	return common.ErrInvalidArgument
}

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9@._-]+$`)
	namePattern     = regexp.MustCompile(`^[a-zA-Z- ]+$`)
)

func length(field, v string, min, max int) error {
	n := utf8.RuneCountInString(v)
	if n < min || n > max {
		return &Error{Field: field, Reason: fmt.Sprintf("must be %d to %d characters", min, max)}
	}
	return nil
}

func Username(v string) error {
	if err := length("username", v, 4, 16); err != nil {
		return err
	}
	if !usernamePattern.MatchString(v) {
		return &Error{Field: "username", Reason: "only letters and digits are allowed"}
	}
	return nil
}

func Password(v string) error {
	return length("password", v, 6, 24)
}

// Email validates v and returns it lower-cased.
func Email(v string) (string, error) {
	if err := length("email", v, 5, 50); err != nil {
		return "", err
	}
	if !strings.Contains(v, "@") || !emailPattern.MatchString(v) {
		return "", &Error{Field: "email", Reason: "not a valid address"}
	}
	return strings.ToLower(v), nil
}

func Name(v string) error {
	if err := length("name", v, 5, 50); err != nil {
		return err
	}
	if !namePattern.MatchString(v) {
		return &Error{Field: "name", Reason: "only letters, spaces and dashes are allowed"}
	}
	return nil
}

// Registration is the input accepted by volunteer registration.
type Registration struct {
	Username string
	Password string
	Email    string
	Name     string
}

// Normalize validates r field by field, stopping at the first failure, and
// returns a copy with the email lower-cased.
func (r Registration) Normalize() (Registration, error) {
	if err := Username(r.Username); err != nil {
		return Registration{}, err
	}
	if err := Password(r.Password); err != nil {
		return Registration{}, err
	}
	email, err := Email(r.Email)
	if err != nil {
		return Registration{}, err
	}
	if err := Name(r.Name); err != nil {
		return Registration{}, err
	}
	r.Email = email
	return r, nil
}

// ContactUs checks a contact form submission.
func ContactUs(name, email, subject, body string) error {
	if name == "" || utf8.RuneCountInString(name) > 50 {
		return &Error{Field: "name", Reason: "must be 1 to 50 characters"}
	}
	if email == "" || utf8.RuneCountInString(email) > 50 || !strings.Contains(email, "@") {
		return &Error{Field: "email", Reason: "must be an address of at most 50 characters"}
	}
	if subject == "" || utf8.RuneCountInString(subject) > 50 {
		return &Error{Field: "subject", Reason: "must be 1 to 50 characters"}
	}
	return length("body", body, 5, 500)
}
