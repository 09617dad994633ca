package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vadimtrunov/tmdbsearch/internal/config"
	"github.com/vadimtrunov/tmdbsearch/internal/metadata/tmdb"
)

// Lipgloss styles used across commands.
var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray

	styleTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleDate  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5")).
			MarginBottom(1)
)

// loadConfig loads and validates the configuration file.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// newDefaultSearcher builds the TMDB client from configuration. On an
// interactive terminal the client is wrapped with a progress spinner.
func newDefaultSearcher(stderr io.Writer) (searcher, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := config.SetupLogger(cfg.App.LogLevel, stderr)
	client := tmdb.New(tmdb.Config{
		APIKey:  cfg.TMDb.APIKey,
		BaseURL: cfg.TMDb.BaseURL,
		Timeout: cfg.TMDb.Timeout,
	}, logger)
	logger.Debug("TMDB client initialized", slog.String("url", sanitizeURL(cfg.TMDb.BaseURL)))

	if isTerminal(stderr) {
		return progressSearcher{next: client, out: stderr}, nil
	}
	return client, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// sanitizeURL strips credentials, query params, and fragment from a URL for safe logging.
func sanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || u.Scheme == "" {
		return "<redacted>"
	}
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
