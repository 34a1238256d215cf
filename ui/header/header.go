// Package header renders the two-line header: product title with backend
// health on the first line, feed tabs on the second.
package header

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-feed/msg"
	"github.com/miosa/osa-feed/style"
)

// Height is the number of lines View renders.
const Height = 2

// Model holds the state for the header.
type Model struct {
	version   string
	connected bool
	checked   bool
	errText   string
	width     int
}

// NewHeader returns a Model for the given client version.
func NewHeader(version string) Model {
	return Model{version: version}
}

// SetHealth applies the outcome of the startup health check.
func (m *Model) SetHealth(h msg.HealthResult) {
	m.checked = true
	m.connected = h.Err == nil && h.Status == "ok"
	m.errText = ""
	if h.Err != nil {
		m.errText = h.Err.Error()
	}
	if h.Version != "" {
		m.version = h.Version
	}
}

// SetWidth updates the terminal width used for the tab bar.
func (m *Model) SetWidth(w int) { m.width = w }

// Connected reports whether the last health check succeeded.
func (m Model) Connected() bool { return m.connected }

// View renders the title line and the tab bar with tabs[active] highlighted.
func (m Model) View(tabs []string, active int) string {
	sep := style.Faint.Render(" · ")
	title := style.GradientTextBold("osa feed", style.GradColorA, style.GradColorB)
	if m.version != "" {
		title += sep + style.Faint.Render(m.version)
	}
	title += sep + m.healthBadge()

	var rendered []string
	for i, t := range tabs {
		if i == active {
			rendered = append(rendered, style.TabActive.Render(t))
		} else {
			rendered = append(rendered, style.TabInactive.Render(t))
		}
	}
	bar := strings.Join(rendered, "")
	if gap := m.width - lipgloss.Width(bar); gap > 0 {
		bar += strings.Repeat(" ", gap)
	}
	return title + "\n" + bar
}

func (m Model) healthBadge() string {
	switch {
	case !m.checked:
		return style.Faint.Render("connecting…")
	case m.connected:
		return style.OnlineDot.Render("●") + style.Faint.Render(" online")
	default:
		text := "offline"
		if m.errText != "" && m.width > 60 {
			text = fmt.Sprintf("offline (%s)", truncate(m.errText, m.width/3))
		}
		return style.OfflineDot.Render("○") + style.FooterError.Render(" "+text)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "…"
}
