package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roach88/phonebook/internal/contact"
)

// JSONFile stores contacts in a single JSON document.
type JSONFile struct {
	path string
}

// OpenJSON returns a JSONFile backed by path. The file is not touched until
// Load or Save.
func OpenJSON(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the backing file path.
func (f *JSONFile) Path() string {
	return f.path
}

// Load reads the file. Missing or malformed files yield an empty list.
func (f *JSONFile) Load(ctx context.Context) []contact.Contact {
	data, err := os.ReadFile(f.path)
	if err != nil {
		slog.DebugContext(ctx, "phone book file not readable, starting empty", "path", f.path, "error", err)
		return []contact.Contact{}
	}

	contacts, err := unmarshalContacts(data)
	if err != nil {
		slog.DebugContext(ctx, "phone book file malformed, starting empty", "path", f.path, "error", err)
		return []contact.Contact{}
	}

	slog.DebugContext(ctx, "phone book loaded", "path", f.path, "contacts", len(contacts))
	return contacts
}

// Save overwrites the file with contacts. The document is written to a
// temporary file in the same directory and renamed into place.
func (f *JSONFile) Save(ctx context.Context, contacts []contact.Contact) error {
	data, err := marshalContacts(contacts)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".phonebook-*.tmp")
	if err != nil {
		return fmt.Errorf("save phone book: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save phone book: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("save phone book: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save phone book: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("save phone book: %w", err)
	}

	slog.DebugContext(ctx, "phone book saved", "path", f.path, "contacts", len(contacts))
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (f *JSONFile) Close() error {
	return nil
}
