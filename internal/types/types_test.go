package types

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestNewStudentRecord_TitleCasesNames(t *testing.T) {
	t.Parallel()

	cases := []struct {
		first, last         string
		wantFirst, wantLast string
	}{
		{"john", "doe", "John", "Doe"},
		{"JOHN", "DOE", "John", "Doe"},
		{"mARY", "sMiTh", "Mary", "Smith"},
		{"zoë", "ångström", "Zoë", "Ångström"},
		{"", "", "", ""},
		{"a", "b", "A", "B"},
	}

	for _, tc := range cases {
		rec, err := NewStudentRecord(tc.first, tc.last, "Python 100")
		require.NoError(t, err, "input %q %q", tc.first, tc.last)
		require.Equal(t, tc.wantFirst, rec.FirstName())
		require.Equal(t, tc.wantLast, rec.LastName())
		require.Equal(t, "Python 100", rec.CourseName())
	}
}

func TestNewStudentRecord_KeepsRawValue(t *testing.T) {
	t.Parallel()

	rec, err := NewStudentRecord("jOHN", "dOE", "x")
	require.NoError(t, err)

	require.Equal(t, "jOHN", rec.firstName)
	require.Equal(t, "dOE", rec.lastName)
	require.Equal(t, "John", rec.FirstName())
}

func TestNewStudentRecord_RejectsNonLetters(t *testing.T) {
	t.Parallel()

	cases := []struct {
		first, last string
		wantField   string
	}{
		{"John3", "Doe", "first name"},
		{"John", "D0e", "last name"},
		{"Jo hn", "Doe", "first name"},
		{"John", "Doe-Smith", "last name"},
		{"J@hn", "D!e", "first name"},
		{"42", "", "first name"},
	}

	for _, tc := range cases {
		rec, err := NewStudentRecord(tc.first, tc.last, "Python 100")
		require.Error(t, err, "input %q %q", tc.first, tc.last)
		require.Equal(t, StudentRecord{}, rec)

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		require.Equal(t, tc.wantField, vErr.Field)
		require.Equal(t, "alphaunicode", vErr.Rule)

		var fieldErrs validator.ValidationErrors
		require.True(t, errors.As(err, &fieldErrs), "validator errors should be reachable through Unwrap")
	}
}

func TestNewStudentRecord_CourseIsFreeForm(t *testing.T) {
	t.Parallel()

	rec, err := NewStudentRecord("Ann", "Lee", "  C++ / 101 !! ")
	require.NoError(t, err)
	require.Equal(t, "  C++ / 101 !! ", rec.CourseName())
}

func TestNewRegistration_RequiresNames(t *testing.T) {
	t.Parallel()

	_, err := NewRegistration("", "Doe", "Python 100")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "first name", vErr.Field)
	require.Equal(t, "required", vErr.Rule)
	require.Contains(t, vErr.Error(), "must not be empty")

	_, err = NewRegistration("John", "", "Python 100")
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "last name", vErr.Field)

	rec, err := NewRegistration("john", "doe", "Python 100")
	require.NoError(t, err)
	require.Equal(t, "John,Doe,Python 100", rec.String())
}

func TestValidationError_Message(t *testing.T) {
	t.Parallel()

	_, err := NewStudentRecord("John3", "Doe", "")
	require.EqualError(t, err, `The first name should contain only letters, got "John3".`)
}

func TestCheckFirstName(t *testing.T) {
	t.Parallel()

	require.NoError(t, CheckFirstName("john"))

	var vErr *ValidationError
	require.ErrorAs(t, CheckFirstName("John3"), &vErr)
	require.Equal(t, "first name", vErr.Field)

	require.ErrorAs(t, CheckFirstName(""), &vErr)
	require.Equal(t, "required", vErr.Rule)
}
