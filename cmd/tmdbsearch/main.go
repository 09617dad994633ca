package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/tmdbsearch/internal/config"
	"github.com/vadimtrunov/tmdbsearch/internal/metadata/tmdb"
)

const version = "0.1.0"

// Process exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var configPath string

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, newDefaultSearcher))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer, newSearcher searcherFactory) int {
	rootCmd := newRootCmd(newSearcher)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := checkCommand(rootCmd, args)
	if err == nil {
		err = rootCmd.Execute()
	}
	if err == nil {
		return exitOK
	}

	fmt.Fprintln(stderr, renderError(errorMessage(err)))

	var ue *usageError
	if errors.As(err, &ue) {
		return exitUsage
	}
	return exitFailure
}

func newRootCmd(newSearcher searcherFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tmdbsearch",
		Short: "Search The Movie Database from the terminal",
		Long: "tmdbsearch queries the TMDB search API and prints matching movies.\n" +
			"Set TMDB_API_KEY (or tmdb.api_key in the config file) before searching.",
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default ~/"+config.DefaultFileName+")")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	rootCmd.AddCommand(
		newVersionCmd(),
		newSearchCmd(newSearcher),
		newConfigCmd(),
	)
	return rootCmd
}

// checkCommand reports an unknown subcommand as a usage error. Cobra only
// returns a plain error for it.
func checkCommand(root *cobra.Command, args []string) error {
	if _, _, err := root.Find(args); err != nil {
		return &usageError{msg: err.Error()}
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tmdbsearch v%s\n", version)
		},
	}
}

// usageError reports malformed command-line input. It is always raised
// before any network or file I/O.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// errorMessage returns the text shown to the user for err. TMDB failures
// carry a user-facing message; everything else prints as is.
func errorMessage(err error) string {
	var se *tmdb.SearchError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
