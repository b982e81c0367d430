package phonebook

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/roach88/phonebook/internal/contact"
)

// Book is the ordered contact list for one session.
// Insertion order is preserved. A Book is not safe for concurrent use.
type Book struct {
	contacts []contact.Contact
}

// New returns a Book holding a copy of contacts.
func New(contacts []contact.Contact) *Book {
	b := &Book{contacts: make([]contact.Contact, len(contacts))}
	copy(b.contacts, contacts)
	return b
}

// Len returns the number of contacts.
func (b *Book) Len() int {
	return len(b.contacts)
}

// All returns a copy of the contacts in order.
func (b *Book) All() []contact.Contact {
	out := make([]contact.Contact, len(b.contacts))
	copy(out, b.contacts)
	return out
}

// Add parses line as a record and appends it.
// The new name pair must not already be present.
func (b *Book) Add(line string) (contact.Contact, error) {
	c, err := ParseRecord(line)
	if err != nil {
		return contact.Contact{}, err
	}

	if b.indexOf(c.FirstName, c.LastName) >= 0 {
		return contact.Contact{}, fmt.Errorf("%w: %s", ErrDuplicate, c.FullName())
	}

	b.contacts = append(b.contacts, c)
	return c, nil
}

// Find resolves a "first;last" lookup line to the index of the first
// matching contact.
func (b *Book) Find(lookup string) (int, error) {
	first, last, err := ParseLookup(lookup)
	if err != nil {
		return -1, err
	}

	i := b.indexOf(first, last)
	if i < 0 {
		return -1, fmt.Errorf("%w: %s %s", ErrNotFound, first, last)
	}
	return i, nil
}

// Update replaces every field of the contact at index with the record in
// line. The new name pair is not checked against other contacts. On error
// the contact is left as it was.
func (b *Book) Update(index int, line string) (contact.Contact, error) {
	if index < 0 || index >= len(b.contacts) {
		return contact.Contact{}, fmt.Errorf("%w: index %d", ErrNotFound, index)
	}

	c, err := ParseRecord(line)
	if err != nil {
		return contact.Contact{}, err
	}

	b.contacts[index] = c
	return c, nil
}

// Delete removes the first contact matching the "first;last" lookup line
// and returns it.
func (b *Book) Delete(lookup string) (contact.Contact, error) {
	i, err := b.Find(lookup)
	if err != nil {
		return contact.Contact{}, err
	}

	removed := b.contacts[i]
	b.contacts = append(b.contacts[:i], b.contacts[i+1:]...)
	return removed, nil
}

// Search returns, in order, the contacts whose labelled form contains query
// ignoring case. Surrounding whitespace in query is dropped; an empty query
// matches everything.
func (b *Book) Search(query string) []contact.Contact {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(query))

	var found []contact.Contact
	for _, c := range b.contacts {
		if strings.Contains(fold.String(c.String()), needle) {
			found = append(found, c)
		}
	}
	return found
}

func (b *Book) indexOf(first, last string) int {
	for i, c := range b.contacts {
		if c.HasName(first, last) {
			return i
		}
	}
	return -1
}
