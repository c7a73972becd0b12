package shell

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/enrollments/internal/storage"
	"github.com/aanand-mishra/enrollments/internal/storage/jsonfile"
	"github.com/aanand-mishra/enrollments/internal/types"
	"github.com/aanand-mishra/enrollments/internal/utils/report"
)

// fakeStore is an in-memory storage.Storage with injectable errors.
type fakeStore struct {
	stored  []types.StudentRecord
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeStore) Load(dst []types.StudentRecord) ([]types.StudentRecord, error) {
	if f.loadErr != nil {
		return dst, f.loadErr
	}
	return append(dst, f.stored...), nil
}

func (f *fakeStore) Save(records []types.StudentRecord) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.stored = append([]types.StudentRecord(nil), records...)
	return nil
}

func (f *fakeStore) Path() string { return "fake.json" }

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newTestShell(input string, store storage.Storage) (*Shell, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return New(strings.NewReader(input), out, store, discard()), out
}

func TestRun_RegisterSaveReload(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "Enrollments.json")
	store := jsonfile.New(path, discard())
	sh, out := newTestShell("1\njohn\ndoe\nPython 100\n3\n4\n", store)

	// --- Act ---
	records := sh.Run()

	// --- Assert ---
	require.Len(t, records, 1)
	require.Equal(t, "John,Doe,Python 100", records[0].String())
	require.Contains(t, out.String(), report.MsgFileMissing, "first start has no data file yet")
	require.Contains(t, out.String(), "You have registered John Doe for Python 100.")
	require.Contains(t, out.String(), "Student John Doe is enrolled in Python 100")
	require.True(t, strings.HasSuffix(out.String(), "Program Ended\n"))

	// A second session on the same file starts with the saved record.
	again, out2 := newTestShell("4\n", jsonfile.New(path, discard()))
	reloaded := again.Run()
	require.NotContains(t, out2.String(), report.MsgFileMissing)
	require.Len(t, reloaded, 1)
	require.Equal(t, records[0].String(), reloaded[0].String())
}

func TestRun_MenuLayout(t *testing.T) {
	t.Parallel()

	sh, out := newTestShell("4\n", &fakeStore{})

	sh.Run()

	require.Equal(t,
		"\n"+Menu+"\n"+"Enter your menu choice number: "+"Program Ended\n",
		out.String())
}

func TestRun_EchoesTitleCasedNames(t *testing.T) {
	t.Parallel()

	sh, out := newTestShell("1\njOHN\nDOE\nPython 100\n4\n", &fakeStore{})

	sh.Run()

	require.Contains(t, out.String(), "You have registered John Doe for Python 100.")
	require.NotContains(t, out.String(), "jOHN")
}

func TestRun_InvalidFirstNameIsRejected(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	sh, out := newTestShell("1\nJohn3\n2\n4\n", store)

	records := sh.Run()

	require.Empty(t, records)
	require.Contains(t, out.String(), report.MsgInvalidData)
	require.Contains(t, out.String(), "-- Technical Error Message --")
	require.NotContains(t, out.String(), "Enter the student's last name")
}

func TestRun_InvalidLastNameIsRejected(t *testing.T) {
	t.Parallel()

	sh, out := newTestShell("1\njohn\nd0e\nPython\n4\n", &fakeStore{})

	records := sh.Run()

	require.Empty(t, records)
	require.Contains(t, out.String(), "The last name should contain only letters")
}

func TestRun_InvalidMenuChoices(t *testing.T) {
	t.Parallel()

	sh, out := newTestShell("abc\n9\n\n4\n", &fakeStore{})

	sh.Run()

	require.Equal(t, 3, strings.Count(out.String(), msgBadChoice))
	require.Equal(t, 4, strings.Count(out.String(), "---- Course Registration Program ----"))
	require.Contains(t, out.String(), "Program Ended")
}

func TestRun_EndOfInputExits(t *testing.T) {
	t.Parallel()

	sh, out := newTestShell("1\njohn\n", &fakeStore{})

	records := sh.Run()

	require.Empty(t, records)
	require.Contains(t, out.String(), report.MsgInputFailure)
	require.Contains(t, out.String(), "Program Ended")
}

func TestRun_DuplicatesAllowed(t *testing.T) {
	t.Parallel()

	in := strings.Repeat("1\nann\nlee\nArt\n", 2) + "4\n"
	sh, _ := newTestShell(in, &fakeStore{})

	records := sh.Run()

	require.Len(t, records, 2)
	require.Equal(t, records[0], records[1])
}

func TestLoadInitial_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("load: %w", storage.ErrFileMissing), report.MsgFileMissing},
		{fmt.Errorf("load: %w", storage.ErrReadFailure), report.MsgReadFailure},
	}

	for _, tc := range cases {
		sh, out := newTestShell("", &fakeStore{loadErr: tc.err})
		records := sh.LoadInitial()
		require.Empty(t, records)
		require.Contains(t, out.String(), tc.want)
	}
}

func TestPersist_WriteFailureKeepsRecords(t *testing.T) {
	t.Parallel()

	rec, err := types.NewRegistration("john", "doe", "Python 100")
	require.NoError(t, err)
	records := []types.StudentRecord{rec}

	store := &fakeStore{saveErr: fmt.Errorf("save: %w", storage.ErrWriteFailure)}
	sh, out := newTestShell("", store)

	sh.Persist(records)

	require.Equal(t, 1, store.saves)
	require.Len(t, records, 1)
	require.Contains(t, out.String(), report.MsgWriteFailure)
	require.NotContains(t, out.String(), "is enrolled in")
}

func TestPersist_DisplaysSavedRecords(t *testing.T) {
	t.Parallel()

	rec, err := types.NewRegistration("sue", "jones", "Math 200")
	require.NoError(t, err)

	store := &fakeStore{}
	sh, out := newTestShell("", store)

	sh.Persist([]types.StudentRecord{rec})

	require.Len(t, store.stored, 1)
	require.Equal(t,
		divider+"\nStudent Sue Jones is enrolled in Math 200\n"+divider+"\n",
		out.String())
}

func TestReadMenuChoice(t *testing.T) {
	t.Parallel()

	sh, out := newTestShell(" 2 \n7\n", &fakeStore{})

	choice, ok := sh.ReadMenuChoice()
	require.True(t, ok)
	require.Equal(t, ChoiceShow, choice)
	require.NotContains(t, out.String(), msgBadChoice)

	choice, ok = sh.ReadMenuChoice()
	require.True(t, ok)
	require.Equal(t, "7", choice)
	require.Contains(t, out.String(), msgBadChoice)

	_, ok = sh.ReadMenuChoice()
	require.False(t, ok)
}
