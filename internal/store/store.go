package store

import (
	"context"
	"fmt"

	"github.com/roach88/phonebook/internal/contact"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Default data file per backend.
const (
	DefaultJSONPath   = "phonebook.json"
	DefaultSQLitePath = "phonebook.db"
)

// Backends lists the valid backend names.
var Backends = []string{BackendJSON, BackendSQLite}

// Store loads and saves the full contact list.
type Store interface {
	// Load returns the stored contacts, or an empty list if nothing usable
	// is stored.
	Load(ctx context.Context) []contact.Contact

	// Save replaces the stored contacts with contacts.
	Save(ctx context.Context, contacts []contact.Contact) error

	// Close releases any resources held by the store.
	Close() error
}

// Open returns the Store for backend at path. An empty path selects the
// backend's default file.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendJSON, "":
		if path == "" {
			path = DefaultJSONPath
		}
		return OpenJSON(path), nil
	case BackendSQLite:
		if path == "" {
			path = DefaultSQLitePath
		}
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown backend %q: must be one of %v", backend, Backends)
	}
}

// DefaultPath returns the file used by backend when no path is given.
func DefaultPath(backend string) string {
	if backend == BackendSQLite {
		return DefaultSQLitePath
	}
	return DefaultJSONPath
}
