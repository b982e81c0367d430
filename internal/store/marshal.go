package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/phonebook/internal/contact"
)

// record is the on-disk shape of a contact. Key order matches the order
// fields are written in.
type record struct {
	FirstName string        `json:"Имя"`
	LastName  string        `json:"Фамилия"`
	Phone     string        `json:"Номер телефона"`
	BirthDate *contact.Date `json:"Дата рождения"`
}

const indent = "    "

// marshalContacts encodes contacts as an indented JSON array without HTML
// or non-ASCII escaping. An empty list encodes as [].
func marshalContacts(contacts []contact.Contact) ([]byte, error) {
	records := make([]record, 0, len(contacts))
	for _, c := range contacts {
		records = append(records, record{
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Phone:     c.Phone,
			BirthDate: c.BirthDate,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("marshal contacts: %w", err)
	}
	return buf.Bytes(), nil
}

// unmarshalContacts decodes a JSON array written by marshalContacts.
// A document of null decodes to an empty list, and an empty birth date
// string is read as no birth date.
func unmarshalContacts(data []byte) ([]contact.Contact, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal contacts: %w", err)
	}

	contacts := make([]contact.Contact, 0, len(records))
	for _, r := range records {
		c := contact.Contact{FirstName: r.FirstName, LastName: r.LastName, Phone: r.Phone}
		if r.BirthDate != nil && !r.BirthDate.IsZero() {
			c.BirthDate = r.BirthDate
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}
