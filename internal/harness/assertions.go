package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/phonebook/internal/contact"
	"github.com/roach88/phonebook/internal/phonebook"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("Assertion failed: %s\n  Expected: %s\n  Actual: %s", e.Type, e.Expected, e.Actual)
}

// EvaluateAssertions checks every assertion against result and returns one
// message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertOutputContains:
			err = assertOutputContains(result.Output, assertion)
		case AssertOutputAbsent:
			err = assertOutputAbsent(result.Output, assertion)
		case AssertRecordCount:
			err = assertRecordCount(result.Contacts, assertion)
		case AssertRecordExists:
			err = assertRecordExists(result.Contacts, assertion)
		case AssertRecordAbsent:
			err = assertRecordAbsent(result.Contacts, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

func assertOutputContains(output string, a Assertion) error {
	if strings.Contains(output, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutputContains,
		Expected: fmt.Sprintf("output containing %q", a.Text),
		Actual:   output,
	}
}

func assertOutputAbsent(output string, a Assertion) error {
	if !strings.Contains(output, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutputAbsent,
		Expected: fmt.Sprintf("output without %q", a.Text),
		Actual:   output,
	}
}

func assertRecordCount(contacts []contact.Contact, a Assertion) error {
	if len(contacts) == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertRecordCount,
		Expected: fmt.Sprintf("%d records", a.Count),
		Actual:   fmt.Sprintf("%d records", len(contacts)),
	}
}

func assertRecordExists(contacts []contact.Contact, a Assertion) error {
	c, ok, err := findRecord(contacts, a.Name)
	if err != nil {
		return err
	}
	if !ok {
		return &AssertionError{
			Type:     AssertRecordExists,
			Expected: fmt.Sprintf("record %q", a.Name),
			Actual:   "not found",
		}
	}

	fields := recordFields(c)
	for field, want := range a.Expect {
		if got := fields[field]; got != want {
			return &AssertionError{
				Type:     AssertRecordExists,
				Expected: fmt.Sprintf("%s.%s = %q", a.Name, field, want),
				Actual:   fmt.Sprintf("%q", got),
			}
		}
	}
	return nil
}

func assertRecordAbsent(contacts []contact.Contact, a Assertion) error {
	c, ok, err := findRecord(contacts, a.Name)
	if err != nil {
		return err
	}
	if ok {
		return &AssertionError{
			Type:     AssertRecordAbsent,
			Expected: fmt.Sprintf("no record %q", a.Name),
			Actual:   c.String(),
		}
	}
	return nil
}

func findRecord(contacts []contact.Contact, name string) (contact.Contact, bool, error) {
	first, last, err := phonebook.ParseLookup(name)
	if err != nil {
		return contact.Contact{}, false, fmt.Errorf("record name %q: %w", name, err)
	}
	for _, c := range contacts {
		if c.HasName(first, last) {
			return c, true, nil
		}
	}
	return contact.Contact{}, false, nil
}

func recordFields(c contact.Contact) map[string]string {
	birth := ""
	if c.BirthDate != nil {
		birth = c.BirthDate.String()
	}
	return map[string]string{
		"first_name": c.FirstName,
		"last_name":  c.LastName,
		"phone":      c.Phone,
		"birth_date": birth,
	}
}
