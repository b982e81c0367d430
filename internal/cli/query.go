package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/phonebook/internal/contact"
)

// contactView is the JSON form of a contact in subcommand output.
type contactView struct {
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Phone     string        `json:"phone"`
	BirthDate *contact.Date `json:"birth_date"`
}

// ListResult is the payload of the list and search commands.
type ListResult struct {
	Contacts []contactView `json:"contacts"`
	Count    int           `json:"count"`
}

// BirthdayResult is the payload of the birthday command.
type BirthdayResult struct {
	Found   bool         `json:"found"`
	Contact *contactView `json:"contact,omitempty"`
	Date    string       `json:"date,omitempty"`
	Days    int          `json:"days"`
}

func newContactView(c contact.Contact) contactView {
	return contactView{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		BirthDate: c.BirthDate,
	}
}

func newListResult(contacts []contact.Contact) ListResult {
	views := make([]contactView, 0, len(contacts))
	for _, c := range contacts {
		views = append(views, newContactView(c))
	}
	return ListResult{Contacts: views, Count: len(views)}
}

func contactLines(contacts []contact.Contact) []string {
	lines := make([]string, 0, len(contacts))
	for _, c := range contacts {
		lines = append(lines, c.String())
	}
	return lines
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "Print every record",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			book, err := loadBook(rootOpts, cmd, formatter)
			if err != nil {
				return err
			}

			contacts := book.All()
			if len(contacts) == 0 {
				return formatter.Success(newListResult(contacts), msgEmpty)
			}
			return formatter.Success(newListResult(contacts), contactLines(contacts)...)
		},
	}
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Print records containing the query",
		Long: `Print every record whose text contains the query, ignoring case.

The query is matched against the whole labelled record, so names, phone
numbers and birth dates can all be searched. Several arguments are joined
with spaces.

Example:
  phonebook search ivan
  phonebook search 01.01.2000`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			book, err := loadBook(rootOpts, cmd, formatter)
			if err != nil {
				return err
			}

			found := book.Search(strings.Join(args, " "))
			if len(found) == 0 {
				return formatter.Success(newListResult(found), msgNoneFound)
			}
			lines := append([]string{msgFound}, contactLines(found)...)
			return formatter.Success(newListResult(found), lines...)
		},
	}
}

// NewBirthdayCommand creates the birthday command.
func NewBirthdayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "birthday",
		Short:         "Show whose birthday comes next",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			book, err := loadBook(rootOpts, cmd, formatter)
			if err != nil {
				return err
			}

			next, ok := book.NextBirthday(rootOpts.clock().Now())
			if !ok {
				return formatter.Success(BirthdayResult{}, msgNoBirthdays)
			}

			view := newContactView(next.Contact)
			result := BirthdayResult{
				Found:   true,
				Contact: &view,
				Date:    next.Date.Format(contact.DateLayout),
				Days:    next.Days,
			}
			return formatter.Success(result, birthdayMessage(next))
		},
	}
}
