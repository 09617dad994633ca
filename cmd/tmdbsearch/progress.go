package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vadimtrunov/tmdbsearch/internal/metadata/tmdb"
)

var errSearchInterrupted = errors.New("search interrupted")

// interrupted reports a search abandoned before it finished the same way the
// client reports a cancelled request.
func interrupted(ctx context.Context) error {
	cause := ctx.Err()
	if cause == nil {
		cause = errSearchInterrupted
	}
	return tmdb.NetworkError(cause)
}

// progressSearcher shows a spinner on out while the wrapped search runs.
// The spinner line is cleared before results are printed. Interrupts arrive
// through ctx, so the program installs no signal handler of its own.
type progressSearcher struct {
	next searcher
	out  io.Writer
}

func (p progressSearcher) SearchMovies(ctx context.Context, q tmdb.SearchQuery) (*tmdb.SearchOutcome, error) {
	prog := tea.NewProgram(newSearchModel(ctx, p.next, q),
		tea.WithOutput(p.out),
		tea.WithInput(nil),
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	)

	m, err := prog.Run()
	if errors.Is(err, tea.ErrProgramKilled) || (err != nil && ctx.Err() != nil) {
		return nil, interrupted(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("run search: %w", err)
	}

	sm, ok := m.(searchModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type from tea program")
	}
	if !sm.done {
		return nil, interrupted(ctx)
	}
	return sm.outcome, sm.err
}

// searchDoneMsg carries the search result back to the TUI.
type searchDoneMsg struct {
	outcome *tmdb.SearchOutcome
	err     error
}

type searchModel struct {
	ctx     context.Context
	next    searcher
	query   tmdb.SearchQuery
	spinner spinner.Model
	outcome *tmdb.SearchOutcome
	err     error
	done    bool
}

func newSearchModel(ctx context.Context, next searcher, q tmdb.SearchQuery) searchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleWarning
	return searchModel{
		ctx:     ctx,
		next:    next,
		query:   q,
		spinner: s,
	}
}

func (m searchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.search())
}

func (m searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDoneMsg:
		m.outcome = msg.outcome
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m searchModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + styleDim.Render(" Searching TMDB...") + "\n"
}

func (m searchModel) search() tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.next.SearchMovies(m.ctx, m.query)
		return searchDoneMsg{outcome: outcome, err: err}
	}
}
