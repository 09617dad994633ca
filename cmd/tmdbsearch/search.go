package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vadimtrunov/tmdbsearch/internal/metadata/tmdb"
)

const (
	argSearch = "search"
	argLimit  = "limit"
	optYear   = "year"
	optPage   = "page"
)

// searcher is the part of the TMDB client the search command needs.
type searcher interface {
	SearchMovies(ctx context.Context, q tmdb.SearchQuery) (*tmdb.SearchOutcome, error)
}

// searcherFactory builds a searcher once the arguments are known to be valid.
// stderr receives logs and progress output.
type searcherFactory func(stderr io.Writer) (searcher, error)

// newSearchCmd returns the "search" subcommand.
func newSearchCmd(newSearcher searcherFactory) *cobra.Command {
	var year, page string

	cmd := &cobra.Command{
		Use:     "search <search> <limit>",
		Aliases: []string{"tmdb"},
		Short:   "Search movies on TMDB",
		Long: "Search The Movie Database for movies matching <search> and show at most <limit> of them.\n" +
			"Results come from a single TMDB page; use --page to move through larger result sets.",
		Example: `  tmdbsearch search "Dune" 5
  tmdbsearch search "Alien" 3 --year 1979
  tmdbsearch search "Star Wars" 10 --page 2`,
		Args: requireArgs(argSearch, argLimit),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			q, err := parseSearchQuery(args[0], args[1],
				optionalFlag(flags, optYear, year),
				optionalFlag(flags, optPage, page),
			)
			if err != nil {
				return err
			}

			s, err := newSearcher(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return runSearch(ctx, cmd.OutOrStdout(), s, q)
		},
	}

	cmd.Flags().StringVar(&year, optYear, "", "Filter by release year")
	cmd.Flags().StringVar(&page, optPage, "", "TMDB result page to show (default 1)")
	return cmd
}

// runSearch performs the search and renders the outcome. Nothing is written
// to w when the search fails.
func runSearch(ctx context.Context, w io.Writer, s searcher, q tmdb.SearchQuery) error {
	outcome, err := s.SearchMovies(ctx, q)
	if err != nil {
		return err
	}
	renderOutcome(w, q, outcome)
	return nil
}

// requireArgs accepts exactly the named positional arguments.
func requireArgs(names ...string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < len(names) {
			return usageErrorf("Not enough arguments (missing: %q).", strings.Join(names[len(args):], ", "))
		}
		if len(args) > len(names) {
			return usageErrorf("Too many arguments, expected arguments %q.", strings.Join(names, " "))
		}
		return nil
	}
}

// optionalFlag returns nil unless the flag was given on the command line.
func optionalFlag(flags *pflag.FlagSet, name, value string) *string {
	if !flags.Changed(name) {
		return nil
	}
	return &value
}

// parseSearchQuery validates raw input in a fixed order (search, limit, year,
// page) and stops at the first violation.
func parseSearchQuery(search, limit string, year, page *string) (tmdb.SearchQuery, error) {
	var q tmdb.SearchQuery

	q.Text = strings.TrimSpace(search)
	if q.Text == "" {
		return q, usageErrorf("%s must not be empty.", label(argSearch))
	}

	n, err := parseInt(argLimit, limit)
	if err != nil {
		return q, err
	}
	q.Limit = n

	if year != nil {
		y, err := parseInt(optYear, *year)
		if err != nil {
			return q, err
		}
		// A zero or negative year filters nothing.
		if y > 0 {
			q.Year = &y
		}
	}

	q.Page = 1
	if page != nil {
		p, err := parseInt(optPage, *page)
		if err != nil {
			return q, err
		}
		if p < 1 {
			return q, usageErrorf("Page number must be greater than 0.")
		}
		q.Page = p
	}

	return q, nil
}

func parseInt(name, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, usageErrorf("%s must be an integer.", label(name))
	}
	return n, nil
}

// label capitalizes an argument name for messages.
func label(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
