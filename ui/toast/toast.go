// Package toast provides auto-dismissing notification toasts shown above the
// status bar, mostly for failed page loads and refreshes.
package toast

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-feed/style"
)

// ToastLevel classifies toast severity.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastWarning
	ToastError
)

const (
	maxToasts = 3
	toastTTL  = 4 * time.Second
)

// ExpireMsg asks the model to prune expired toasts.
type ExpireMsg struct{}

type toast struct {
	message string
	level   ToastLevel
	expiry  time.Time
}

// ToastsModel manages a queue of auto-dismissing toast notifications.
type ToastsModel struct {
	queue []toast
	now   func() time.Time
}

// NewToasts creates an empty ToastsModel.
func NewToasts() ToastsModel {
	return ToastsModel{now: time.Now}
}

// Add enqueues a toast notification and returns the command that expires it.
// Oldest toasts are dropped when the queue exceeds maxToasts. A message equal
// to the newest toast only extends its lifetime.
func (m *ToastsModel) Add(message string, level ToastLevel) tea.Cmd {
	expiry := m.clock()().Add(toastTTL)
	if n := len(m.queue); n > 0 && m.queue[n-1].message == message && m.queue[n-1].level == level {
		m.queue[n-1].expiry = expiry
	} else {
		m.queue = append(m.queue, toast{message: message, level: level, expiry: expiry})
	}
	if len(m.queue) > maxToasts {
		m.queue = m.queue[len(m.queue)-maxToasts:]
	}
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return ExpireMsg{} })
}

// Tick prunes expired toasts.
func (m *ToastsModel) Tick() {
	now := m.clock()()
	alive := m.queue[:0]
	for _, t := range m.queue {
		if now.Before(t.expiry) {
			alive = append(alive, t)
		}
	}
	m.queue = alive
}

// Len returns the number of visible toasts.
func (m ToastsModel) Len() int { return len(m.queue) }

// HasToasts reports whether any toasts are currently visible.
func (m ToastsModel) HasToasts() bool {
	return len(m.queue) > 0
}

// View renders visible toasts as right-aligned colored lines.
func (m ToastsModel) View(termWidth int) string {
	if len(m.queue) == 0 {
		return ""
	}
	var lines []string
	for _, t := range m.queue {
		icon, col := toastIconColor(t.level)
		text := fmt.Sprintf(" %s %s ", icon, t.message)
		rendered := lipgloss.NewStyle().Foreground(col).Render(text)
		pad := max(termWidth-lipgloss.Width(rendered), 0)
		lines = append(lines, strings.Repeat(" ", pad)+rendered)
	}
	return strings.Join(lines, "\n")
}

func (m ToastsModel) clock() func() time.Time {
	if m.now == nil {
		return time.Now
	}
	return m.now
}

// toastIconColor returns the icon rune and color.Color for the given level.
func toastIconColor(level ToastLevel) (string, color.Color) {
	switch level {
	case ToastWarning:
		return "\u26A0", style.Warning // ⚠
	case ToastError:
		return "\u2718", style.Error // ✘
	default:
		return "\u2713", style.Success // ✓
	}
}
