package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/phonebook/internal/contact"
)

// createTestSQLite opens a fresh database in a temp directory.
func createTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// sampleContacts returns contacts covering both birth date states and
// non-ASCII names.
func sampleContacts() []contact.Contact {
	d1 := contact.MustParseDate("01.01.2000")
	d2 := contact.MustParseDate("29.02.1996")
	return []contact.Contact{
		{FirstName: "Иван", LastName: "Петров", Phone: "89991234567", BirthDate: &d1},
		{FirstName: "Anna Maria", LastName: "Smith", Phone: "+79990000000"},
		{FirstName: "Boris", LastName: "Ivanov", Phone: "89990000001", BirthDate: &d2},
	}
}
