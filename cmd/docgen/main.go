// Command docgen drafts quotations and invoices offline, keeps their history
// in a local database and pushes them to the document API.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
)

const (
	defaultDataDirname = ".docgen"
	defaultServer      = "http://localhost:5000/api"
)

// options are the flags shared by every command.
type options struct {
	DataDir string `long:"datadir" description:"Directory holding the local history database"`
	Server  string `long:"server" description:"Document API base URL (defaults to the logged in server)"`
	JSON    bool   `short:"j" long:"json" description:"Print raw JSON output"`
}

type docgen struct {
	Options options `group:"Application Options"`

	// Document commands
	Quote   quoteCmd   `command:"quote" description:"Draft a quotation from a project description"`
	Invoice invoiceCmd `command:"invoice" description:"Issue an invoice from line items"`
	Convert convertCmd `command:"convert" description:"Issue an invoice from a quotation in history"`
	Render  renderCmd  `command:"render" description:"Print or write the preview of a document"`

	// History commands
	History historyCmd `command:"history" description:"List issued documents"`
	Search  searchCmd  `command:"search" description:"Search issued documents"`
	Stats   statsCmd   `command:"stats" description:"Summarize issued documents by status"`

	// Server commands
	Login loginCmd `command:"login" description:"Log in to the document API"`
	Push  pushCmd  `command:"push" description:"Save a document to the document API"`
}

var (
	// cfg holds the parsed application options for the running command.
	cfg = &options{}

	stdout io.Writer = os.Stdout
)

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDataDirname
	}
	return filepath.Join(home, defaultDataDirname)
}

// run parses args and executes the selected command.
func run(args []string) error {
	app := &docgen{}
	parser := flags.NewParser(app, flags.HelpFlag|flags.PassDoubleDash)
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		cfg = &app.Options
		if cfg.DataDir == "" {
			cfg.DataDir = defaultDataDir()
		}
		if command == nil {
			return nil
		}
		return command.Execute(args)
	}
	_, err := parser.ParseArgs(args)
	return err
}

func main() {
	err := run(os.Args[1:])
	if err == nil {
		return
	}
	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
		fmt.Fprintln(stdout, err)
		return
	}
	fmt.Fprintf(os.Stderr, "%v\n", err)
	os.Exit(1)
}
