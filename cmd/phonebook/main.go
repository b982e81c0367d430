// Command phonebook is a single-user phone book kept in a local file.
//
// Run without arguments for the interactive menu, or use the list, search
// and birthday subcommands for one-shot queries.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/phonebook/internal/cli"
)

// Version is set at build time.
var Version = "dev"

func main() {
	root := cli.NewRootCommand()
	root.Version = Version

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
