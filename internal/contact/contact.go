package contact

import (
	"fmt"
	"strings"
)

// Contact is a single phone book entry.
// BirthDate is nil when the entry was created without a birth date.
type Contact struct {
	FirstName string
	LastName  string
	Phone     string
	BirthDate *Date
}

// HasName reports whether the contact carries the given name pair.
// Both sides are compared in normalized form, so case and surrounding
// whitespace in the arguments do not matter.
func (c Contact) HasName(first, last string) bool {
	return NormalizeName(c.FirstName) == NormalizeName(first) &&
		NormalizeName(c.LastName) == NormalizeName(last)
}

// FullName returns "First Last".
func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// String renders the labelled one-line form used by listings and search.
func (c Contact) String() string {
	birth := "-"
	if c.BirthDate != nil {
		birth = c.BirthDate.String()
	}
	return fmt.Sprintf("First name: %s, Last name: %s, Phone: %s, Birth date: %s",
		c.FirstName, c.LastName, c.Phone, birth)
}
