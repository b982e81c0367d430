// Package phonebook holds the in-memory contact list and the operations the
// command loop runs against it.
//
// A Book is an ordered slice of contacts owned by one session. Operations
// take the raw ';'-separated lines the user typed, normalize and validate
// them, and either mutate the Book or return one of the sentinel errors in
// errors.go. A failed operation never changes the Book.
//
// # Input Formats
//
//	record: first;last;DD.MM.YYYY;phone   (date may be empty)
//	lookup: first;last
//
// Checks run in a fixed order and the first failure wins: format, names,
// phone, birth date, then duplicate name (Add only).
//
// Persistence is not handled here; see package store.
package phonebook
