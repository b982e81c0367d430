package phonebook

import (
	"fmt"
	"strings"

	"github.com/roach88/phonebook/internal/contact"
)

const (
	fieldSeparator = ";"
	recordFields   = 4
	lookupFields   = 2
)

// ParseRecord turns a "first;last;date;phone" line into a validated contact.
// Names are normalized before they are checked; the phone is stored trimmed
// but otherwise as typed.
func ParseRecord(line string) (contact.Contact, error) {
	fields := strings.Split(strings.TrimSpace(line), fieldSeparator)
	if len(fields) != recordFields {
		return contact.Contact{}, fmt.Errorf("%w: expected %d fields separated by %q, got %d",
			ErrFormat, recordFields, fieldSeparator, len(fields))
	}

	first := contact.NormalizeName(fields[0])
	last := contact.NormalizeName(fields[1])
	if !contact.ValidName(first) || !contact.ValidName(last) {
		return contact.Contact{}, fmt.Errorf("%w: %q %q", ErrInvalidName, first, last)
	}

	phone := strings.TrimSpace(fields[3])
	if !contact.ValidPhone(phone) {
		return contact.Contact{}, fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}

	c := contact.Contact{FirstName: first, LastName: last, Phone: phone}
	if raw := strings.TrimSpace(fields[2]); raw != "" {
		d, err := contact.ParseDate(raw)
		if err != nil {
			return contact.Contact{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		c.BirthDate = &d
	}

	return c, nil
}

// ParseLookup splits a "first;last" line and normalizes both names.
func ParseLookup(line string) (first, last string, err error) {
	fields := strings.Split(strings.TrimSpace(line), fieldSeparator)
	if len(fields) != lookupFields {
		return "", "", fmt.Errorf("%w: expected %d fields separated by %q, got %d",
			ErrFormat, lookupFields, fieldSeparator, len(fields))
	}
	return contact.NormalizeName(fields[0]), contact.NormalizeName(fields[1]), nil
}
