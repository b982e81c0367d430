package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/phonebook/internal/config"
	"github.com/roach88/phonebook/internal/phonebook"
	"github.com/roach88/phonebook/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	File    string // data file; empty selects the backend default
	Backend string // "json" | "sqlite"
	Config  string // optional YAML config path

	// Clock supplies the current time (for testing).
	// If nil, defaults to phonebook.SystemClock.
	Clock phonebook.Clock
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the phonebook CLI.
// Run without a subcommand it starts the interactive menu.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phonebook",
		Short: "Phonebook - contacts with birthdays",
		Long: `A single-user phone book kept in a local file.

Run without arguments to start the interactive menu:

  1: Add a record        (Name;Surname;DD.MM.YYYY;XXXXXXXXXXX)
  2: Update a record
  3: Delete a record
  4: View all records
  5: Search records
  6: Next birthday
  quit: Exit

The file is saved after every add, update and delete.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("%s: invalid format %q: must be one of %v", ErrCodeFormat, opts.Format, ValidFormats))
			}
			if err := opts.resolve(cmd); err != nil {
				return err
			}
			configureLogging(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(opts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.File, "file", "", "path to the phone book file (default phonebook.json, or phonebook.db for sqlite)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", store.BackendJSON, "storage backend (json|sqlite)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "path to a YAML config file")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewBirthdayCommand(opts))

	return cmd
}

// resolve merges the config file, if any, with flags given on the command
// line. Flags win over the file. The result is validated and written back
// into opts.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.Config != "" {
		loaded, err := config.Load(o.Config)
		if err != nil {
			return WrapExitError(ExitCommandError, ErrCodeConfig+": failed to load config", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.File = o.File
	}
	if flags.Changed("backend") {
		cfg.Backend = o.Backend
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.Verbose
	}

	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, ErrCodeConfig+": invalid settings", err)
	}

	o.File = cfg.DataPath()
	o.Backend = cfg.Backend
	o.Verbose = cfg.Verbose
	return nil
}

func (o *RootOptions) clock() phonebook.Clock {
	if o.Clock == nil {
		return phonebook.SystemClock{}
	}
	return o.Clock
}

// configureLogging installs the default slog logger. Interactive output
// shares the terminal, so only warnings show unless verbose is set.
func configureLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func runInteractive(opts *RootOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Backend, opts.File)
	if err != nil {
		return WrapExitError(ExitCommandError, ErrCodeStoreOpen+": failed to open store", err)
	}
	defer closeStore(st)

	ctx := commandContext(cmd)
	session := NewSession(ctx, st, opts.clock(), cmd.InOrStdin(), cmd.OutOrStdout())
	return session.Run(ctx)
}

// loadBook opens the store, reads it and closes it again. Used by the
// read-only subcommands.
func loadBook(opts *RootOptions, cmd *cobra.Command, formatter *OutputFormatter) (*phonebook.Book, error) {
	st, err := store.Open(opts.Backend, opts.File)
	if err != nil {
		return nil, formatter.fail(ErrCodeStoreOpen, "failed to open store", err)
	}
	defer closeStore(st)

	formatter.VerboseLog("Reading %s (%s)", opts.File, opts.Backend)
	return phonebook.New(st.Load(commandContext(cmd))), nil
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

func closeStore(st store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing store", "error", err)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
