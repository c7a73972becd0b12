// Package shell is the text menu in front of the record model and the
// storage backend. It prompts, prints and dispatches; the business
// rules live in types and storage.
//
// No error reported here ends the program. The only way out of Run is
// menu choice 4 (or end of input).
package shell

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aanand-mishra/enrollments/internal/storage"
	"github.com/aanand-mishra/enrollments/internal/types"
	"github.com/aanand-mishra/enrollments/internal/utils/report"
)

// Menu is printed before every choice.
const Menu = `
---- Course Registration Program ----
  Select from the following menu:
    1. Register a Student for a Course
    2. Show current data
    3. Save data to a file
    4. Exit the program
-----------------------------------------
`

// Menu choices.
const (
	ChoiceRegister = "1"
	ChoiceShow     = "2"
	ChoiceSave     = "3"
	ChoiceExit     = "4"
)

const (
	msgBadChoice = "Please, choose only 1, 2, 3, or 4"
	msgGoodbye   = "Program Ended"
	divider      = "--------------------------------------------------"
)

// Shell owns the input and output streams for one interactive session.
type Shell struct {
	in    *bufio.Scanner
	out   io.Writer
	store storage.Storage
	log   *slog.Logger
}

// New wires a shell to its streams and storage backend.
func New(in io.Reader, out io.Writer, store storage.Storage, log *slog.Logger) *Shell {
	return &Shell{
		in:    bufio.NewScanner(in),
		out:   out,
		store: store,
		log:   log,
	}
}

// Run loads the stored records and serves the menu until the user
// exits. It returns the in-memory list as it was at exit.
func (s *Shell) Run() []types.StudentRecord {
	records := s.LoadInitial()

	for {
		fmt.Fprintln(s.out)
		fmt.Fprint(s.out, Menu)
		fmt.Fprintln(s.out)

		choice, ok := s.ReadMenuChoice()
		if !ok {
			s.log.Debug("input closed, exiting")
			break
		}

		if choice == ChoiceExit {
			break
		}

		// Invalid choices were already reported by ReadMenuChoice.
		switch choice {
		case ChoiceRegister:
			records = s.RegisterInteractive(records)
		case ChoiceShow:
			s.Display(records)
		case ChoiceSave:
			s.Persist(records)
		}
	}

	fmt.Fprintln(s.out, msgGoodbye)
	return records
}

// LoadInitial reads the backend's file into an empty list. A missing or
// unreadable file is reported and an empty (or partial) list returned.
func (s *Shell) LoadInitial() []types.StudentRecord {
	records, err := s.store.Load(nil)
	if err != nil {
		s.fail(err, "load")
	}
	return records
}

// ReadMenuChoice prompts for a choice. Anything but 1–4 is reported and
// returned as-is so the caller simply redisplays the menu. ok is false
// once input is exhausted.
func (s *Shell) ReadMenuChoice() (choice string, ok bool) {
	choice, ok = s.prompt("Enter your menu choice number: ")
	if !ok {
		return "", false
	}

	switch choice {
	case ChoiceRegister, ChoiceShow, ChoiceSave, ChoiceExit:
		s.log.Debug("menu choice", slog.String("choice", choice))
	default:
		s.log.Debug("invalid menu choice", slog.String("choice", choice))
		report.Error(s.out, msgBadChoice, nil)
	}
	return choice, true
}

// RegisterInteractive asks for first name, last name and course, and
// appends the new record. On invalid input the list is returned
// unchanged.
func (s *Shell) RegisterInteractive(records []types.StudentRecord) []types.StudentRecord {
	first, ok := s.prompt("Enter the student's first name: ")
	if !ok {
		report.Error(s.out, report.MsgInputFailure, io.ErrUnexpectedEOF)
		return records
	}
	// Check the first name straight away so the user is not asked for
	// the rest of a registration that cannot succeed.
	if err := types.CheckFirstName(first); err != nil {
		s.fail(err, "register")
		return records
	}

	last, ok := s.prompt("Enter the student's last name: ")
	if !ok {
		report.Error(s.out, report.MsgInputFailure, io.ErrUnexpectedEOF)
		return records
	}

	course, ok := s.prompt("Please enter the name of the course: ")
	if !ok {
		report.Error(s.out, report.MsgInputFailure, io.ErrUnexpectedEOF)
		return records
	}

	rec, err := types.NewRegistration(first, last, course)
	if err != nil {
		s.fail(err, "register")
		return records
	}

	records = append(records, rec)
	s.log.Info("student registered",
		slog.String("student", rec.String()),
		slog.Int("total", len(records)))

	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "You have registered %s %s for %s.\n",
		rec.FirstName(), rec.LastName(), rec.CourseName())
	return records
}

// Display prints one line per record between two dividers.
func (s *Shell) Display(records []types.StudentRecord) {
	fmt.Fprintln(s.out, divider)
	for _, r := range records {
		fmt.Fprintf(s.out, "Student %s %s is enrolled in %s\n",
			r.FirstName(), r.LastName(), r.CourseName())
	}
	fmt.Fprintln(s.out, divider)
}

// Persist saves records and, on success, shows what was saved.
func (s *Shell) Persist(records []types.StudentRecord) {
	if err := s.store.Save(records); err != nil {
		s.fail(err, "save")
		return
	}

	s.log.Info("records saved",
		slog.String("path", s.store.Path()),
		slog.Int("count", len(records)))
	s.Display(records)
}

// prompt prints label and reads one line, trimmed of surrounding
// whitespace.
func (s *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			s.log.Warn("reading input", slog.String("error", err.Error()))
		}
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// fail reports err to the user and logs it.
func (s *Shell) fail(err error, action string) {
	s.log.Warn("action failed",
		slog.String("action", action),
		slog.String("path", s.store.Path()),
		slog.String("error", err.Error()))
	report.Error(s.out, report.MessageFor(err), err)
}
