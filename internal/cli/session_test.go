package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/phonebook/internal/contact"
	"github.com/roach88/phonebook/internal/phonebook"
	"github.com/roach88/phonebook/internal/store"
	"github.com/roach88/phonebook/internal/testutil"
)

var testNow = time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)

// failingStore loads nothing and refuses every save.
type failingStore struct {
	saves int
}

func (s *failingStore) Load(context.Context) []contact.Contact { return nil }

func (s *failingStore) Save(context.Context, []contact.Contact) error {
	s.saves++
	return errors.New("disk full")
}

func (s *failingStore) Close() error { return nil }

// runSession feeds lines to a session over st and returns its output.
func runSession(t *testing.T, st store.Store, lines ...string) (string, *Session) {
	t.Helper()
	out := &bytes.Buffer{}
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")

	s := NewSession(context.Background(), st, testutil.NewFixedClock(testNow), in, out)
	require.NoError(t, s.Run(context.Background()))
	return out.String(), s
}

func tempJSON(t *testing.T) *store.JSONFile {
	t.Helper()
	return store.OpenJSON(filepath.Join(t.TempDir(), "phonebook.json"))
}

func TestSession_MenuAndQuit(t *testing.T) {
	out, _ := runSession(t, tempJSON(t), "quit")

	want := `Phone book. Available commands:
1: Add a record
2: Update a record
3: Delete a record
4: View all records
5: Search records
6: Next birthday
quit: Exit
Enter command number: `
	assert.Equal(t, want, out)
}

func TestSession_QuitDoesNotSave(t *testing.T) {
	st := tempJSON(t)
	runSession(t, st, "4", "quit")

	_, err := os.Stat(st.Path())
	assert.True(t, os.IsNotExist(err), "read-only commands must not write the file")
}

func TestSession_UnknownCommand(t *testing.T) {
	out, _ := runSession(t, tempJSON(t), "9", "quit")
	assert.Contains(t, out, "Enter command number: Unknown command. Try again.\n")
}

func TestSession_AddPersists(t *testing.T) {
	st := tempJSON(t)
	out, s := runSession(t, st, "1", "ivan;petrov;01.01.2000;+79991234567", "quit")

	assert.Contains(t, out, "Enter a record as: Name;Surname;DD.MM.YYYY;XXXXXXXXXXX\nRecord: Record added.\n")
	assert.Equal(t, 1, s.Book().Len())

	saved := st.Load(context.Background())
	require.Len(t, saved, 1)
	assert.Equal(t, "Ivan", saved[0].FirstName)
	assert.Equal(t, "Petrov", saved[0].LastName)
	assert.Equal(t, "+79991234567", saved[0].Phone)
	assert.Equal(t, "01.01.2000", saved[0].BirthDate.String())
}

func TestSession_AddErrors(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"Ivan;Petrov;89991234567", "Invalid record format."},
		{"Iv4n!;Petrov;;89991234567", "Invalid first or last name."},
		{"Ivan;Petrov;;123", "Invalid phone number."},
		{"Ivan;Petrov;29.02.2021;89991234567", "Invalid birth date."},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			out, s := runSession(t, tempJSON(t), "1", tt.line, "quit")
			assert.Contains(t, out, "Record: "+tt.want+"\n")
			assert.Equal(t, 0, s.Book().Len())
		})
	}
}

func TestSession_AddDuplicate(t *testing.T) {
	out, s := runSession(t, tempJSON(t),
		"1", "Ivan;Petrov;;89991234567",
		"1", "IVAN;PETROV;;89990000000",
		"quit",
	)
	assert.Contains(t, out, "Record: Record already exists.\n")
	assert.Equal(t, 1, s.Book().Len())
}

func TestSession_Update(t *testing.T) {
	st := tempJSON(t)
	out, _ := runSession(t, st,
		"1", "Ivan;Petrov;;89991234567",
		"2", "ivan;petrov", "Pyotr;Sidorov;05.05.1995;89990001122",
		"quit",
	)

	assert.Contains(t, out, "Enter the name of the record to update (format: Name;Surname):\n"+
		"Enter the new record as: Name;Surname;DD.MM.YYYY;XXXXXXXXXXX\n"+
		"New record: Record updated.\n")

	saved := st.Load(context.Background())
	require.Len(t, saved, 1)
	assert.Equal(t, "Pyotr", saved[0].FirstName)
	assert.Equal(t, "Sidorov", saved[0].LastName)
	assert.Equal(t, "89990001122", saved[0].Phone)
	assert.Equal(t, "05.05.1995", saved[0].BirthDate.String())
}

func TestSession_UpdateNotFound(t *testing.T) {
	out, _ := runSession(t, tempJSON(t), "2", "Nobody;Here", "quit")

	assert.Contains(t, out, "(format: Name;Surname):\nRecord not found.\n")
	assert.NotContains(t, out, "New record:")
}

func TestSession_UpdateBadLookup(t *testing.T) {
	out, _ := runSession(t, tempJSON(t), "2", "Nobody", "quit")
	assert.Contains(t, out, "(format: Name;Surname):\nInvalid input format.\n")
}

func TestSession_UpdateInvalidKeepsRecord(t *testing.T) {
	st := tempJSON(t)
	out, _ := runSession(t, st,
		"1", "Ivan;Petrov;;89991234567",
		"2", "Ivan;Petrov", "Pyotr;Sidorov;;42",
		"2", "Ivan;Petrov", "Pyotr;Sidorov",
		"quit",
	)

	assert.Contains(t, out, "New record: Invalid phone number.\n")
	assert.Contains(t, out, "New record: Invalid new record format.\n")

	saved := st.Load(context.Background())
	require.Len(t, saved, 1)
	assert.Equal(t, "Ivan", saved[0].FirstName)
}

func TestSession_Delete(t *testing.T) {
	st := tempJSON(t)
	out, s := runSession(t, st,
		"1", "Ivan;Petrov;;89991234567",
		"1", "Anna;Smith;;89990000000",
		"3", "ivan;petrov",
		"3", "ivan;petrov",
		"quit",
	)

	assert.Contains(t, out, "(format: Name;Surname):\nRecord deleted.\n")
	assert.Contains(t, out, "(format: Name;Surname):\nRecord not found.\n")
	assert.Equal(t, 1, s.Book().Len())

	saved := st.Load(context.Background())
	require.Len(t, saved, 1)
	assert.Equal(t, "Anna", saved[0].FirstName)
}

func TestSession_View(t *testing.T) {
	out, _ := runSession(t, tempJSON(t), "4", "quit")
	assert.Contains(t, out, "Enter command number: Directory is empty.\n")

	out, _ = runSession(t, tempJSON(t),
		"1", "Ivan;Petrov;01.01.2000;89991234567",
		"1", "Anna;Smith;;89990000000",
		"4",
		"quit",
	)
	assert.Contains(t, out, "Enter command number: "+
		"First name: Ivan, Last name: Petrov, Phone: 89991234567, Birth date: 01.01.2000\n"+
		"First name: Anna, Last name: Smith, Phone: 89990000000, Birth date: -\n")
}

func TestSession_Search(t *testing.T) {
	out, _ := runSession(t, tempJSON(t),
		"1", "Ivan;Petrov;01.01.2000;89991234567",
		"1", "Anna;Smith;;89990000000",
		"5", "SMITH",
		"5", "nobody",
		"quit",
	)

	assert.Contains(t, out, "Search query: Found records:\n"+
		"First name: Anna, Last name: Smith, Phone: 89990000000, Birth date: -\n")
	assert.Contains(t, out, "Search query: No records found.\n")
}

func TestSession_NextBirthday(t *testing.T) {
	out, _ := runSession(t, tempJSON(t), "6", "quit")
	assert.Contains(t, out, "Enter command number: No records with a birth date.\n")

	out, _ = runSession(t, tempJSON(t),
		"1", "Far;Away;12.08.1980;89990000001",
		"1", "Soon;Enough;26.10.1990;89990000003",
		"6",
		"quit",
	)
	assert.Contains(t, out, "Next birthday: Soon Enough in 10 days.\n")
}

func TestSession_EndOfInput(t *testing.T) {
	out := &bytes.Buffer{}
	s := NewSession(context.Background(), tempJSON(t), nil, strings.NewReader("4\n"), out)

	require.NoError(t, s.Run(context.Background()))
	assert.True(t, strings.HasSuffix(out.String(), "Directory is empty.\nEnter command number: \n"))
}

func TestSession_EndOfInputMidCommand(t *testing.T) {
	st := tempJSON(t)
	out := &bytes.Buffer{}
	s := NewSession(context.Background(), st, nil, strings.NewReader("1\n"), out)

	require.NoError(t, s.Run(context.Background()))
	assert.True(t, strings.HasSuffix(out.String(), "Record: \n"))
	assert.Equal(t, 0, s.Book().Len())
}

func TestSession_SaveFailureKeepsRunning(t *testing.T) {
	st := &failingStore{}
	out, s := runSession(t, st,
		"1", "Ivan;Petrov;;89991234567",
		"4",
		"quit",
	)

	assert.Equal(t, 1, st.saves)
	assert.Contains(t, out, "Record added.\nFailed to save: disk full\n")
	assert.Contains(t, out, "First name: Ivan")
	assert.Equal(t, 1, s.Book().Len())
}

func TestSession_SavesAfterRejectedMutation(t *testing.T) {
	st := &failingStore{}
	runSession(t, st, "1", "bad", "3", "a;b", "quit")
	assert.Equal(t, 2, st.saves)
}

func TestSession_LoadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phonebook.json")
	content := `[
    {
        "Имя": "Иван",
        "Фамилия": "Петров",
        "Номер телефона": "89991234567",
        "Дата рождения": null
    }
]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, s := runSession(t, store.OpenJSON(path), "4", "quit")
	assert.Equal(t, 1, s.Book().Len())
	assert.Contains(t, out, "First name: Иван, Last name: Петров, Phone: 89991234567, Birth date: -\n")
}

func TestSession_SQLiteBackend(t *testing.T) {
	st, err := store.OpenSQLite(filepath.Join(t.TempDir(), "phonebook.db"))
	require.NoError(t, err)
	defer st.Close()

	runSession(t, st, "1", "Ivan;Petrov;01.01.2000;89991234567", "quit")

	saved := st.Load(context.Background())
	require.Len(t, saved, 1)
	assert.Equal(t, "Ivan", saved[0].FirstName)
}

func TestSession_HasID(t *testing.T) {
	_, a := runSession(t, tempJSON(t), "quit")
	_, b := runSession(t, tempJSON(t), "quit")

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSession_LongLineKeepsRunning(t *testing.T) {
	long := strings.Repeat("a", 70*1024)
	out, _ := runSession(t, tempJSON(t), "5", long, "4", "quit")

	assert.Contains(t, out, "Search query: No records found.\n")
	assert.Contains(t, out, "Directory is empty.\n")
}

func TestSession_LongRecordIsRejected(t *testing.T) {
	long := "Ivan;Petrov;;" + strings.Repeat("8", 70*1024)
	out, s := runSession(t, tempJSON(t), "1", long, "quit")

	assert.Contains(t, out, "Invalid phone number.\n")
	assert.Equal(t, 0, s.Book().Len())
}

func TestSession_LastLineWithoutNewline(t *testing.T) {
	out := &bytes.Buffer{}
	in := strings.NewReader("1\r\nAnna;Smith;;89990000000\r\n4")
	s := NewSession(context.Background(), tempJSON(t), nil, in, out)

	require.NoError(t, s.Run(context.Background()))
	assert.Contains(t, out.String(), "Record added.\n")
	assert.True(t, strings.HasSuffix(out.String(),
		"First name: Anna, Last name: Smith, Phone: 89990000000, Birth date: -\nEnter command number: \n"))
}

func TestDescribe_UnknownError(t *testing.T) {
	assert.Equal(t, "Error [E001]: boom", describe(errors.New("boom"), msgBadRecord))
	assert.Equal(t, msgBadRecord, describe(fmt.Errorf("wrapped: %w", phonebook.ErrFormat), msgBadRecord))
}
