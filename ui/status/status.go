// Package status provides the bottom status bar: which feed is shown, how much
// of it is loaded, and whether a page load or refresh is running.
package status

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-feed/style"
	"github.com/miosa/osa-feed/ui/list"
)

// Model is the status bar state. Drive it via setter methods; it has no Update loop.
type Model struct {
	feed  string
	count int
	load  list.LoadState
	phase list.RefreshPhase
	help  string
}

// New returns a zero-value Model.
func New() Model {
	return Model{}
}

// SetFeed sets the name of the visible feed.
func (m *Model) SetFeed(name string) { m.feed = name }

// SetList copies the counters of the visible list.
func (m *Model) SetList(count int, load list.LoadState, phase list.RefreshPhase) {
	m.count = count
	m.load = load
	m.phase = phase
}

// SetHelp sets the short key help shown on the right.
func (m *Model) SetHelp(h string) { m.help = h }

// View renders the status line at width.
func (m Model) View(width int) string {
	parts := []string{style.StatusValue.Render(m.feed)}
	if p := ItemsPill(m.count); p != "" {
		parts = append(parts, p)
	}
	if p := PagePill(m.load.Page); p != "" {
		parts = append(parts, p)
	}
	if p := m.activity(); p != "" {
		parts = append(parts, p)
	}
	left := strings.Join(parts, style.Faint.Render(" · "))

	if m.help == "" {
		return left
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(m.help)
	if gap < 2 {
		return left
	}
	return left + strings.Repeat(" ", gap) + m.help
}

func (m Model) activity() string {
	switch {
	case m.phase == list.RefreshRefreshing:
		return style.StatusKey.Render("refreshing…")
	case m.load.Loading:
		return style.StatusKey.Render("loading…")
	case m.load.Err != nil:
		return style.FooterError.Render("load failed")
	case !m.load.HasMore && m.count > 0:
		return style.Faint.Render("end of list")
	}
	return ""
}
