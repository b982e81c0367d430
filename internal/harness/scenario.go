package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/phonebook/internal/store"
)

// Scenario defines a scripted session and what must hold afterwards.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Now is the session clock in RFC 3339 form.
	Now string `yaml:"now"`

	// Backend selects the store backend. Defaults to json.
	Backend string `yaml:"backend,omitempty"`

	// Setup lists records, in add format, stored before the session starts.
	// Setup records are assumed valid.
	Setup []string `yaml:"setup,omitempty"`

	// Input lists the lines typed into the session, in order.
	Input []string `yaml:"input"`

	// Assertions validate the transcript and the saved records.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates the transcript or the saved records.
type Assertion struct {
	// Type specifies the assertion type:
	// - "output_contains": Text appears in the transcript
	// - "output_absent": Text does not appear in the transcript
	// - "record_count": Exactly Count records were saved
	// - "record_exists": A record named Name was saved, with Expect fields
	// - "record_absent": No record named Name was saved
	Type string `yaml:"type"`

	// Text is the transcript fragment (used by output_contains, output_absent).
	Text string `yaml:"text,omitempty"`

	// Count is the expected number of records (used by record_count).
	Count int `yaml:"count,omitempty"`

	// Name is a "First;Last" lookup (used by record_exists, record_absent).
	Name string `yaml:"name,omitempty"`

	// Expect holds expected field values (used by record_exists).
	// Subset match over first_name, last_name, phone and birth_date;
	// birth_date "" means no birth date.
	Expect map[string]string `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertOutputContains = "output_contains"
	AssertOutputAbsent   = "output_absent"
	AssertRecordCount    = "record_count"
	AssertRecordExists   = "record_exists"
	AssertRecordAbsent   = "record_absent"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// Clock returns the parsed Now field.
func (s *Scenario) Clock() (time.Time, error) {
	now, err := time.Parse(time.RFC3339, s.Now)
	if err != nil {
		return time.Time{}, fmt.Errorf("now must be RFC 3339: %w", err)
	}
	return now, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if _, err := s.Clock(); err != nil {
		return err
	}

	switch s.Backend {
	case "", store.BackendJSON, store.BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q: must be one of %v", s.Backend, store.Backends)
	}

	if len(s.Input) == 0 {
		return fmt.Errorf("input list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}

	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertOutputContains, AssertOutputAbsent:
		if a.Text == "" {
			return fmt.Errorf("%s requires text", a.Type)
		}
	case AssertRecordCount:
		if a.Count < 0 {
			return fmt.Errorf("record_count requires a non-negative count")
		}
	case AssertRecordExists, AssertRecordAbsent:
		if a.Name == "" {
			return fmt.Errorf("%s requires name", a.Type)
		}
		for field := range a.Expect {
			if !knownFields[field] {
				return fmt.Errorf("unknown expect field %q", field)
			}
		}
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

var knownFields = map[string]bool{
	"first_name": true,
	"last_name":  true,
	"phone":      true,
	"birth_date": true,
}
