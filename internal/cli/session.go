package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/phonebook/internal/phonebook"
	"github.com/roach88/phonebook/internal/store"
)

// Prompts and messages shown by the interactive session.
const (
	menuTitle      = "Phone book. Available commands:"
	promptCommand  = "Enter command number: "
	promptRecord   = "Record: "
	promptNew      = "New record: "
	promptQuery    = "Search query: "
	recordHint     = "Enter a record as: Name;Surname;DD.MM.YYYY;XXXXXXXXXXX"
	newRecordHint  = "Enter the new record as: Name;Surname;DD.MM.YYYY;XXXXXXXXXXX"
	updateHint     = "Enter the name of the record to update (format: Name;Surname):"
	deleteHint     = "Enter the name of the record to delete (format: Name;Surname):"
	msgUnknown     = "Unknown command. Try again."
	msgAdded       = "Record added."
	msgUpdated     = "Record updated."
	msgDeleted     = "Record deleted."
	msgEmpty       = "Directory is empty."
	msgFound       = "Found records:"
	msgNoneFound   = "No records found."
	msgNoBirthdays = "No records with a birth date."
	msgBadRecord   = "Invalid record format."
	msgBadNew      = "Invalid new record format."
	msgBadLookup   = "Invalid input format."
	msgBadName     = "Invalid first or last name."
	msgBadPhone    = "Invalid phone number."
	msgBadDate     = "Invalid birth date."
	msgDuplicate   = "Record already exists."
	msgNotFound    = "Record not found."
)

// Session is one run of the interactive menu loop.
//
// The book is loaded from the store when the session is created and saved
// back in full after every command that can change it. Handler errors are
// reported to the user and never end the loop; only quit, end of input or
// a read failure do.
type Session struct {
	// ID tags the session's log lines.
	ID string

	book  *phonebook.Book
	store store.Store
	clock phonebook.Clock
	in    *bufio.Reader
	out   io.Writer
}

// NewSession loads the phone book from st and prepares a session that reads
// commands from in and writes to out.
func NewSession(ctx context.Context, st store.Store, clock phonebook.Clock, in io.Reader, out io.Writer) *Session {
	if clock == nil {
		clock = phonebook.SystemClock{}
	}

	s := &Session{
		ID:    newSessionID(),
		book:  phonebook.New(st.Load(ctx)),
		store: st,
		clock: clock,
		in:    bufio.NewReader(in),
		out:   out,
	}
	slog.DebugContext(ctx, "session started", "session", s.ID, "contacts", s.book.Len())
	return s
}

// Book returns the session's phone book.
func (s *Session) Book() *phonebook.Book {
	return s.book
}

// Run prints the menu and processes commands until quit or end of input.
// It returns an error only when reading input fails.
func (s *Session) Run(ctx context.Context) error {
	s.printMenu()

	for {
		token, err := s.readLine(promptCommand)
		if err != nil {
			return s.finish(ctx, err)
		}

		command := ParseCommand(token)
		switch command {
		case CommandQuit:
			return s.finish(ctx, nil)
		case CommandUnknown:
			fmt.Fprintln(s.out, msgUnknown)
			continue
		}

		slog.DebugContext(ctx, "command", "session", s.ID, "command", command.String())
		if err := s.execute(ctx, command); err != nil {
			return s.finish(ctx, err)
		}

		if command.Mutates() {
			s.save(ctx)
		}
	}
}

func (s *Session) execute(ctx context.Context, command Command) error {
	switch command {
	case CommandAdd:
		return s.add(ctx)
	case CommandUpdate:
		return s.update(ctx)
	case CommandDelete:
		return s.delete(ctx)
	case CommandView:
		s.view()
		return nil
	case CommandSearch:
		return s.search()
	case CommandNextBirthday:
		s.nextBirthday()
		return nil
	default:
		return fmt.Errorf("unhandled command %d", command)
	}
}

func (s *Session) add(ctx context.Context) error {
	fmt.Fprintln(s.out, recordHint)
	line, err := s.readLine(promptRecord)
	if err != nil {
		return err
	}

	c, err := s.book.Add(line)
	if err != nil {
		s.report(ctx, err, msgBadRecord)
		return nil
	}

	slog.DebugContext(ctx, "record added", "session", s.ID, "name", c.FullName())
	fmt.Fprintln(s.out, msgAdded)
	return nil
}

func (s *Session) update(ctx context.Context) error {
	fmt.Fprintln(s.out, updateHint)
	lookup, err := s.readLine("")
	if err != nil {
		return err
	}

	index, err := s.book.Find(lookup)
	if err != nil {
		s.report(ctx, err, msgBadLookup)
		return nil
	}

	fmt.Fprintln(s.out, newRecordHint)
	line, err := s.readLine(promptNew)
	if err != nil {
		return err
	}

	c, err := s.book.Update(index, line)
	if err != nil {
		s.report(ctx, err, msgBadNew)
		return nil
	}

	slog.DebugContext(ctx, "record updated", "session", s.ID, "name", c.FullName())
	fmt.Fprintln(s.out, msgUpdated)
	return nil
}

func (s *Session) delete(ctx context.Context) error {
	fmt.Fprintln(s.out, deleteHint)
	lookup, err := s.readLine("")
	if err != nil {
		return err
	}

	c, err := s.book.Delete(lookup)
	if err != nil {
		s.report(ctx, err, msgBadLookup)
		return nil
	}

	slog.DebugContext(ctx, "record deleted", "session", s.ID, "name", c.FullName())
	fmt.Fprintln(s.out, msgDeleted)
	return nil
}

func (s *Session) view() {
	contacts := s.book.All()
	if len(contacts) == 0 {
		fmt.Fprintln(s.out, msgEmpty)
		return
	}
	for _, c := range contacts {
		fmt.Fprintln(s.out, c.String())
	}
}

func (s *Session) search() error {
	query, err := s.readLine(promptQuery)
	if err != nil {
		return err
	}

	found := s.book.Search(query)
	if len(found) == 0 {
		fmt.Fprintln(s.out, msgNoneFound)
		return nil
	}

	fmt.Fprintln(s.out, msgFound)
	for _, c := range found {
		fmt.Fprintln(s.out, c.String())
	}
	return nil
}

func (s *Session) nextBirthday() {
	next, ok := s.book.NextBirthday(s.clock.Now())
	if !ok {
		fmt.Fprintln(s.out, msgNoBirthdays)
		return
	}
	fmt.Fprintln(s.out, birthdayMessage(next))
}

// save writes the whole book. Failures are shown to the user and the
// session carries on with the in-memory copy.
func (s *Session) save(ctx context.Context) {
	if err := s.store.Save(ctx, s.book.All()); err != nil {
		slog.ErrorContext(ctx, "save failed", "session", s.ID, "error", err)
		fmt.Fprintf(s.out, "Failed to save: %v\n", err)
	}
}

// report prints the user-facing message for a handler error. formatMsg is
// used for ErrFormat since its wording depends on which line was malformed.
func (s *Session) report(ctx context.Context, err error, formatMsg string) {
	slog.DebugContext(ctx, "command rejected", "session", s.ID, "error", err)
	fmt.Fprintln(s.out, describe(err, formatMsg))
}

func describe(err error, formatMsg string) string {
	switch {
	case errors.Is(err, phonebook.ErrFormat):
		return formatMsg
	case errors.Is(err, phonebook.ErrInvalidName):
		return msgBadName
	case errors.Is(err, phonebook.ErrInvalidPhone):
		return msgBadPhone
	case errors.Is(err, phonebook.ErrInvalidDate):
		return msgBadDate
	case errors.Is(err, phonebook.ErrDuplicate):
		return msgDuplicate
	case errors.Is(err, phonebook.ErrNotFound):
		return msgNotFound
	default:
		return fmt.Sprintf("Error [%s]: %v", ErrCodeGeneric, err)
	}
}

func birthdayMessage(b phonebook.Birthday) string {
	return fmt.Sprintf("Next birthday: %s in %d days.", b.Contact.FullName(), b.Days)
}

func (s *Session) printMenu() {
	fmt.Fprintln(s.out, menuTitle)
	for _, c := range menuOrder {
		fmt.Fprintf(s.out, "%s: %s\n", c.Token(), c)
	}
}

// readLine prints prompt and returns the next input line without its line
// ending. Lines have no length limit. A final line without a newline is
// still returned; io.EOF means the input is exhausted.
func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", io.EOF
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// finish ends the session. End of input is a normal exit; the dangling
// prompt is closed with a newline.
func (s *Session) finish(ctx context.Context, err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(s.out)
		err = nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "session aborted", "session", s.ID, "error", err)
		return WrapExitError(ExitFailure, "session aborted", err)
	}
	slog.DebugContext(ctx, "session ended", "session", s.ID, "contacts", s.book.Len())
	return nil
}

func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
