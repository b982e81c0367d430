package harness

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/phonebook/internal/cli"
	"github.com/roach88/phonebook/internal/contact"
	"github.com/roach88/phonebook/internal/phonebook"
	"github.com/roach88/phonebook/internal/store"
	"github.com/roach88/phonebook/internal/testutil"
)

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool

	// Output is the full session transcript.
	Output string

	// Contacts are the records reloaded from the store after the session.
	Contacts []contact.Contact

	// Errors holds one message per failed assertion.
	Errors []string
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{Pass: true, Errors: []string{}}
}

// AddError records a failed assertion and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Run executes a scenario and returns the result.
//
// Each scenario gets a fresh store in its own temporary directory, removed
// afterwards. Execution flow:
//  1. Save the setup records
//  2. Run an interactive session over the input lines with a fixed clock
//  3. Reload the store and evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	now, err := scenario.Clock()
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "phonebook-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario directory: %w", err)
	}
	defer os.RemoveAll(dir)

	backend := scenario.Backend
	if backend == "" {
		backend = store.BackendJSON
	}
	st, err := store.Open(backend, filepath.Join(dir, store.DefaultPath(backend)))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	if err := seed(ctx, st, scenario.Setup); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(scenario.Input, "\n") + "\n")
	session := cli.NewSession(ctx, st, testutil.NewFixedClock(now), in, &out)
	if err := session.Run(ctx); err != nil {
		return nil, fmt.Errorf("session failed: %w", err)
	}

	result := NewResult()
	result.Output = out.String()
	result.Contacts = st.Load(ctx)

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func seed(ctx context.Context, st store.Store, setup []string) error {
	if len(setup) == 0 {
		return nil
	}

	book := phonebook.New(nil)
	for i, line := range setup {
		if _, err := book.Add(line); err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
	}

	if err := st.Save(ctx, book.All()); err != nil {
		return fmt.Errorf("failed to save setup records: %w", err)
	}
	return nil
}
