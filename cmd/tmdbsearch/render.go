package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/vadimtrunov/tmdbsearch/internal/metadata/tmdb"
)

const (
	overviewWidth  = 80
	overviewIndent = "      "
	missingDate    = "N/A"
	missingSummary = "No description available"
)

// renderOutcome writes either a warning or the movie listing.
func renderOutcome(w io.Writer, q tmdb.SearchQuery, o *tmdb.SearchOutcome) {
	switch {
	// TMDB reports zero pages when nothing matched; that case is a plain
	// "no results" rather than an out-of-range page.
	case o.TotalPages > 0 && q.Page > o.TotalPages:
		fmt.Fprintln(w, renderWarning(fmt.Sprintf(
			"Page %d exceeds total pages of %d. Please change the page option to maximum of %d.",
			q.Page, o.TotalPages, o.TotalPages)))
	case len(o.Movies) == 0:
		fmt.Fprintln(w, renderWarning(fmt.Sprintf("No results found for '%s'.", q.Text)))
	default:
		renderIntroduction(w, q, len(o.Movies), o.TotalPages)
		renderMovies(w, o.Movies)
	}
}

func renderIntroduction(w io.Writer, q tmdb.SearchQuery, found, totalPages int) {
	fmt.Fprintln(w, styleHeader.Render("Search for: "+q.Text))
	if q.Year != nil && *q.Year > 0 {
		fmt.Fprintf(w, "Filtered by year: %d\n", *q.Year)
	}
	fmt.Fprintf(w, "Limit: %d\n", q.Limit)
	fmt.Fprintf(w, "Found: %d movie(s)\n", found)
	fmt.Fprintf(w, "Page: %d/%d\n", q.Page, totalPages)
	fmt.Fprintln(w)
}

func renderMovies(w io.Writer, movies []tmdb.MovieRecord) {
	for _, m := range movies {
		fmt.Fprintf(w, "  🎬 %s %s\n",
			styleTitle.Render(m.Title),
			styleDate.Render("("+valueOr(m.ReleaseDate, missingDate)+")"),
		)
		fmt.Fprintln(w, styleDim.Render(wrapOverview(valueOr(m.Overview, missingSummary))))
		fmt.Fprintln(w)
	}
}

// wrapOverview word-wraps text to overviewWidth and indents every line.
func wrapOverview(text string) string {
	lines := strings.Split(ansi.Wordwrap(text, overviewWidth, ""), "\n")
	for i, line := range lines {
		lines[i] = overviewIndent + strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// valueOr treats nil and empty strings as missing.
func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func renderWarning(msg string) string {
	return styleWarning.Render("[WARNING] " + msg)
}

func renderError(msg string) string {
	return styleError.Render("[ERROR] " + msg)
}
