package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mattn/go-sqlite3"

	"github.com/roach88/phonebook/internal/contact"
)

//go:embed schema.sql
var schemaSQL string

// SQLite stores contacts in a SQLite database file.
type SQLite struct {
	db   *sql.DB
	path string

	// foreign is set when path holds a file that is not a SQLite database.
	// Such a store loads empty and refuses to save, so the file is never
	// overwritten.
	foreign error
}

// OpenSQLite creates or opens the database at path and applies the schema.
// Safe to call on an existing database. A file that is not a SQLite
// database does not fail the open; see SQLite.foreign.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		if isNotADatabase(err) {
			return foreignFile(db, path, err), nil
		}
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One connection: the phone book has a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		if isNotADatabase(err) {
			return foreignFile(db, path, err), nil
		}
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLite{db: db, path: path}, nil
}

func foreignFile(db *sql.DB, path string, err error) *SQLite {
	slog.Debug("file is not a phone book database, starting empty", "path", path, "error", err)
	return &SQLite{db: db, path: path, foreign: fmt.Errorf("%s is not a SQLite database: %w", path, err)}
}

func isNotADatabase(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrNotADB
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns all contacts ordered by position. Query or scan failures
// yield an empty list.
func (s *SQLite) Load(ctx context.Context) []contact.Contact {
	if s.foreign != nil {
		return []contact.Contact{}
	}

	contacts, err := s.readAll(ctx)
	if err != nil {
		slog.DebugContext(ctx, "phone book database not readable, starting empty", "path", s.path, "error", err)
		return []contact.Contact{}
	}
	slog.DebugContext(ctx, "phone book loaded", "path", s.path, "contacts", len(contacts))
	return contacts
}

func (s *SQLite) readAll(ctx context.Context) ([]contact.Contact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT first_name, last_name, phone, birth_date
		FROM contacts
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	contacts := []contact.Contact{}
	for rows.Next() {
		var (
			c     contact.Contact
			birth sql.NullString
		)
		if err := rows.Scan(&c.FirstName, &c.LastName, &c.Phone, &birth); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		if birth.Valid {
			d, err := contact.ParseDate(birth.String)
			if err != nil {
				return nil, fmt.Errorf("contact %s: %w", c.FullName(), err)
			}
			c.BirthDate = &d
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, nil
}

// Save replaces every row in a single transaction.
func (s *SQLite) Save(ctx context.Context, contacts []contact.Contact) error {
	if s.foreign != nil {
		return fmt.Errorf("save phone book: %w", s.foreign)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save phone book: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM contacts`); err != nil {
		return fmt.Errorf("save phone book: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO contacts (position, first_name, last_name, phone, birth_date)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save phone book: %w", err)
	}
	defer stmt.Close()

	for i, c := range contacts {
		var birth sql.NullString
		if c.BirthDate != nil {
			birth = sql.NullString{String: c.BirthDate.String(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, c.FirstName, c.LastName, c.Phone, birth); err != nil {
			return fmt.Errorf("save contact %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save phone book: %w", err)
	}

	slog.DebugContext(ctx, "phone book saved", "path", s.path, "contacts", len(contacts))
	return nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *SQLite) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
