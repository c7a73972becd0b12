// Package report prints user-facing error messages in one consistent
// shape:
//
//	<message>
//
//	-- Technical Error Message --
//	<error text>
//
// Every shell action reports failures through here rather than writing
// ad-hoc Println calls, so the user always knows what errors look like.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/enrollments/internal/storage"
	"github.com/aanand-mishra/enrollments/internal/types"
)

// Messages for each error condition.
const (
	MsgFileMissing  = "Text file must exist before running this script!."
	MsgReadFailure  = "There was a non-specific error when reading the file!"
	MsgWriteFailure = "There was a problem writing to the file!"
	MsgInvalidData  = "One of the values was not correct type of data!"
	MsgInputFailure = "Error: There was a problem with your entered data!"
)

const technicalHeader = "-- Technical Error Message --"

// ─────────────────────────────────────────────────────────────────────────────
// Error writes message followed by a blank line and, when err is not
// nil, the technical detail block.
//
// Example usage:
//
//	report.Error(out, report.MsgWriteFailure, err)
//
// ─────────────────────────────────────────────────────────────────────────────
func Error(w io.Writer, message string, err error) {
	fmt.Fprintf(w, "%s\n\n", message)
	if err == nil {
		return
	}

	fmt.Fprintln(w, technicalHeader)
	fmt.Fprintln(w, err.Error())

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fmt.Fprintln(w, ValidationDetail(fieldErrs))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// MessageFor picks the headline for an error returned by a storage or
// types operation. Errors outside the storage and validation taxonomy
// get the generic input message.
// ─────────────────────────────────────────────────────────────────────────────
func MessageFor(err error) string {
	var vErr *types.ValidationError
	switch {
	case errors.Is(err, storage.ErrFileMissing):
		return MsgFileMissing
	case errors.Is(err, storage.ErrWriteFailure):
		return MsgWriteFailure
	case errors.Is(err, storage.ErrReadFailure):
		return MsgReadFailure
	case errors.As(err, &vErr):
		return MsgInvalidData
	default:
		return MsgInputFailure
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationDetail converts validator.FieldError values into a single
// human-readable line, one sentence per failing field joined by ", ".
//
// Example output:
//
//	field FirstName must contain only letters, field LastName is required
//
// ─────────────────────────────────────────────────────────────────────────────
func ValidationDetail(errs validator.ValidationErrors) string {
	var msgs []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", e.Field()))
		case "alpha", "alphaunicode":
			msgs = append(msgs, fmt.Sprintf("field %s must contain only letters", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return strings.Join(msgs, ", ")
}
