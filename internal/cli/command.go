package cli

import "strings"

// Command is one entry of the interactive menu.
type Command int

const (
	CommandUnknown Command = iota
	CommandAdd
	CommandUpdate
	CommandDelete
	CommandView
	CommandSearch
	CommandNextBirthday
	CommandQuit
)

// menuOrder is the order commands appear in the menu.
var menuOrder = []Command{
	CommandAdd,
	CommandUpdate,
	CommandDelete,
	CommandView,
	CommandSearch,
	CommandNextBirthday,
	CommandQuit,
}

// ParseCommand maps a typed token to a Command. Surrounding whitespace and
// case are ignored.
func ParseCommand(token string) Command {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "1":
		return CommandAdd
	case "2":
		return CommandUpdate
	case "3":
		return CommandDelete
	case "4":
		return CommandView
	case "5":
		return CommandSearch
	case "6":
		return CommandNextBirthday
	case "quit":
		return CommandQuit
	default:
		return CommandUnknown
	}
}

// Token returns the text the user types to select c.
func (c Command) Token() string {
	switch c {
	case CommandAdd:
		return "1"
	case CommandUpdate:
		return "2"
	case CommandDelete:
		return "3"
	case CommandView:
		return "4"
	case CommandSearch:
		return "5"
	case CommandNextBirthday:
		return "6"
	case CommandQuit:
		return "quit"
	default:
		return ""
	}
}

// String returns the menu label.
func (c Command) String() string {
	switch c {
	case CommandAdd:
		return "Add a record"
	case CommandUpdate:
		return "Update a record"
	case CommandDelete:
		return "Delete a record"
	case CommandView:
		return "View all records"
	case CommandSearch:
		return "Search records"
	case CommandNextBirthday:
		return "Next birthday"
	case CommandQuit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// Mutates reports whether c can change the phone book, and therefore must
// be followed by a save.
func (c Command) Mutates() bool {
	switch c {
	case CommandAdd, CommandUpdate, CommandDelete:
		return true
	default:
		return false
	}
}
