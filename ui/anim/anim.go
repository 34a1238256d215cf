// Package anim provides the gradient Braille spinner shown while a list is
// refreshing or loading its next page.
//
// Frames are pre-rendered once per color pair, and each spinner gets its own
// ID so TickMsg events from several lists don't cross-talk.
package anim

import (
	"image/color"
	"math"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-feed/style"
)

const (
	fps           = 20
	frameDuration = time.Second / fps
	// ellipsisFrames is how many frames elapse per ellipsis state (400ms).
	ellipsisFrames = 8
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var ellipsisStates = []string{"", ".", "..", "..."}

var idCounter atomic.Int64

// TickMsg advances the spinner whose ID matches.
type TickMsg struct {
	ID int64
}

// Model is a gradient-animated spinner with an optional label.
type Model struct {
	id       int64
	label    string
	colorA   color.Color
	colorB   color.Color
	spinning bool
	frame    int
	ellipsis int
	cache    []string
}

// New returns a stopped spinner using the theme gradient.
func New(label string) Model {
	m := Model{
		id:     idCounter.Add(1),
		label:  label,
		colorA: style.GradColorA,
		colorB: style.GradColorB,
	}
	m.cache = buildFrames(m.colorA, m.colorB)
	return m
}

// ID returns the spinner's message ID.
func (m Model) ID() int64 { return m.id }

// SetLabel changes the text rendered next to the glyph.
func (m *Model) SetLabel(s string) { m.label = s }

// IsSpinning reports whether the animation is running.
func (m Model) IsSpinning() bool { return m.spinning }

// Start begins the animation and returns the first tick. Starting a running
// spinner returns nil so ticks never double up.
func (m *Model) Start() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	m.frame, m.ellipsis = 0, 0
	if m.colorA != style.GradColorA || m.colorB != style.GradColorB {
		m.colorA, m.colorB = style.GradColorA, style.GradColorB
		m.cache = buildFrames(m.colorA, m.colorB)
	}
	return m.tick()
}

// Stop halts the animation; View returns "" until the next Start.
func (m *Model) Stop() { m.spinning = false }

// Update advances one frame when msg is this spinner's tick.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != m.id || !m.spinning {
		return m, nil
	}
	m.frame = (m.frame + 1) % len(frames)
	if m.frame%ellipsisFrames == 0 {
		m.ellipsis = (m.ellipsis + 1) % len(ellipsisStates)
	}
	return m, m.tick()
}

// View renders the current frame.
func (m Model) View() string {
	if !m.spinning {
		return ""
	}
	glyph := m.cache[m.frame%len(m.cache)]
	if m.label == "" {
		return glyph
	}
	return glyph + " " + style.Faint.Render(m.label+ellipsisStates[m.ellipsis])
}

func (m Model) tick() tea.Cmd {
	id := m.id
	return tea.Tick(frameDuration, func(time.Time) tea.Msg { return TickMsg{ID: id} })
}

// buildFrames pre-renders one colored glyph per frame. The gradient
// oscillates on a sine so it bounces between a and b instead of wrapping.
func buildFrames(a, b color.Color) []string {
	n := len(frames)
	out := make([]string, n)
	for i, glyph := range frames {
		t := 0.0
		if n > 1 {
			t = (math.Sin(math.Pi*float64(i)/float64(n-1)) + 1) / 2
		}
		out[i] = lipgloss.NewStyle().Foreground(style.LerpColor(a, b, t)).Render(glyph)
	}
	return out
}
