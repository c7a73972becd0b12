// Package types holds the shared data structures used across the
// application. Keeping them in one place prevents import cycles —
// the shell and every storage backend import types without depending
// on each other.
package types

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StudentRecord is one student's registration for one course.
//
// The fields are unexported on purpose: the only way to obtain a
// StudentRecord is through NewStudentRecord or NewRegistration, so a
// record that exists has already passed name validation. There are no
// setters.
//
// The raw first/last names are kept exactly as supplied; the accessors
// return the title-cased form ("jOHN" is stored as "jOHN" and read back
// as "John").
type StudentRecord struct {
	firstName  string
	lastName   string
	courseName string
}

// nameRules is what the validator actually checks.
//
// validate:"omitempty,alphaunicode" — an empty value skips the check,
// anything else must consist of letters only (Unicode letters, so
// "Zoë" is accepted).
type nameRules struct {
	FirstName string `validate:"omitempty,alphaunicode"`
	LastName  string `validate:"omitempty,alphaunicode"`
}

// registrationRules is the stricter variant used for interactive entry:
// an empty name is rejected as well.
type registrationRules struct {
	FirstName string `validate:"required,alphaunicode"`
	LastName  string `validate:"required,alphaunicode"`
}

// validate is shared: a *validator.Validate caches struct metadata and
// is safe for concurrent use.
var validate = validator.New()

// fieldLabels maps struct field names to the words shown to the user.
var fieldLabels = map[string]string{
	"FirstName": "first name",
	"LastName":  "last name",
}

// ValidationError reports a name that failed validation.
// Field is the human label ("first name"), Value the rejected input.
type ValidationError struct {
	Field string
	Value string
	Rule  string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Rule == "required" {
		return fmt.Sprintf("The %s must not be empty.", e.Field)
	}
	return fmt.Sprintf("The %s should contain only letters, got %q.", e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewStudentRecord validates first and last and builds a record.
// Empty names are allowed (they bypass the letters-only check), the
// course name is free-form.
//
// This is the constructor used when reading stored data.
func NewStudentRecord(first, last, course string) (StudentRecord, error) {
	if err := check(validate.Struct(nameRules{FirstName: first, LastName: last})); err != nil {
		return StudentRecord{}, err
	}
	return StudentRecord{firstName: first, lastName: last, courseName: course}, nil
}

// NewRegistration is NewStudentRecord for a fresh registration: both
// names must be present and alphabetic.
func NewRegistration(first, last, course string) (StudentRecord, error) {
	if err := check(validate.Struct(registrationRules{FirstName: first, LastName: last})); err != nil {
		return StudentRecord{}, err
	}
	return StudentRecord{firstName: first, lastName: last, courseName: course}, nil
}

// CheckFirstName applies the registration rule to a first name alone,
// so an interactive caller can reject it before asking for the rest.
func CheckFirstName(first string) error {
	return check(validate.StructPartial(registrationRules{FirstName: first}, "FirstName"))
}

// check converts the first failing field of a validator result into a
// *ValidationError. Fields are checked in declaration order, so the
// first name is reported before the last name.
func check(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("types.check: %w", err)
	}

	first := fieldErrs[0]
	value, _ := first.Value().(string)
	return &ValidationError{
		Field: fieldLabels[first.Field()],
		Value: value,
		Rule:  first.ActualTag(),
		Err:   fieldErrs,
	}
}

// FirstName returns the first name in title case.
func (s StudentRecord) FirstName() string { return titleCase(s.firstName) }

// LastName returns the last name in title case.
func (s StudentRecord) LastName() string { return titleCase(s.lastName) }

// CourseName returns the course name exactly as entered.
func (s StudentRecord) CourseName() string { return s.courseName }

// String renders "First,Last,Course".
func (s StudentRecord) String() string {
	return fmt.Sprintf("%s,%s,%s", s.FirstName(), s.LastName(), s.CourseName())
}

// titleCase upper-cases the first letter of every word and lower-cases
// the rest. A cases.Caser keeps state, so one is built per call.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
