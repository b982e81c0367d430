package phonebook

import "errors"

// Sentinel errors returned by Book operations. Callers match them with
// errors.Is; the returned error wraps one of these with detail.
var (
	// ErrFormat means the line did not split into the expected number of fields.
	ErrFormat = errors.New("invalid format")

	// ErrInvalidName means the first or last name failed contact.ValidName.
	ErrInvalidName = errors.New("invalid first or last name")

	// ErrInvalidPhone means the phone failed contact.ValidPhone.
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrInvalidDate means a non-empty birth date failed contact.ParseDate.
	ErrInvalidDate = errors.New("invalid birth date")

	// ErrDuplicate means a contact with the same name pair already exists.
	ErrDuplicate = errors.New("record already exists")

	// ErrNotFound means no contact carries the requested name pair.
	ErrNotFound = errors.New("record not found")
)
