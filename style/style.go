package style

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors, initialized to dark theme defaults. Updated via SetTheme().
var (
	Primary   color.Color = lipgloss.Color("#7C3AED")
	Secondary color.Color = lipgloss.Color("#06B6D4")
	Success   color.Color = lipgloss.Color("#22C55E")
	Warning   color.Color = lipgloss.Color("#F59E0B")
	Error     color.Color = lipgloss.Color("#EF4444")
	Muted     color.Color = lipgloss.Color("#6B7280")
	Dim       color.Color = lipgloss.Color("#374151")
	Border    color.Color = lipgloss.Color("#4B5563")
	Credit    color.Color = lipgloss.Color("#22C55E")
	Debit     color.Color = lipgloss.Color("#F87171")
	Online    color.Color = lipgloss.Color("#4ADE80")

	// Gradient endpoints default to dark theme violet→cyan
	GradColorA color.Color = lipgloss.Color("#7C3AED")
	GradColorB color.Color = lipgloss.Color("#06B6D4")
)

// Base styles, rebuilt when the theme changes via rebuildStyles().
var (
	Bold      lipgloss.Style
	Faint     lipgloss.Style
	ErrorText lipgloss.Style

	// Tabs
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabBar      lipgloss.Style

	// Cards and rows
	CardTitle    lipgloss.Style
	CardSubtitle lipgloss.Style
	CardMeta     lipgloss.Style
	CardDivider  lipgloss.Style
	OnlineDot    lipgloss.Style
	OfflineDot   lipgloss.Style
	AmountCredit lipgloss.Style
	AmountDebit  lipgloss.Style
	CallMissed   lipgloss.Style
	CallOK       lipgloss.Style

	// List chrome
	Placeholder    lipgloss.Style
	PullHint       lipgloss.Style
	PullArmed      lipgloss.Style
	RefreshOK      lipgloss.Style
	RefreshFailed  lipgloss.Style
	FooterError    lipgloss.Style
	FooterEnd      lipgloss.Style
	ScrollbarTrack lipgloss.Style
	ScrollbarThumb lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style

	// Key help
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
)

func init() {
	rebuildStyles()
}

// SetTheme applies a named theme, updating all color vars and rebuilding styles.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentThemeName = name
	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border
	Credit = t.Credit
	Debit = t.Debit
	Online = t.Online
	GradColorA = t.GradA
	GradColorB = t.GradB
	rebuildStyles()
	return true
}

// IsDark returns whether the current theme is dark.
func IsDark() bool {
	return CurrentThemeName != "light"
}

func rebuildStyles() {
	Bold = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)

	TabActive = lipgloss.NewStyle().Foreground(Primary).Bold(true).Underline(true).Padding(0, 1)
	TabInactive = lipgloss.NewStyle().Foreground(Muted).Padding(0, 1)
	TabBar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Border)

	CardTitle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	CardSubtitle = lipgloss.NewStyle().Foreground(Secondary)
	CardMeta = lipgloss.NewStyle().Foreground(Muted)
	CardDivider = lipgloss.NewStyle().Foreground(Dim)
	OnlineDot = lipgloss.NewStyle().Foreground(Online)
	OfflineDot = lipgloss.NewStyle().Foreground(Dim)
	AmountCredit = lipgloss.NewStyle().Foreground(Credit).Bold(true)
	AmountDebit = lipgloss.NewStyle().Foreground(Debit).Bold(true)
	CallMissed = lipgloss.NewStyle().Foreground(Error)
	CallOK = lipgloss.NewStyle().Foreground(Success)

	Placeholder = lipgloss.NewStyle().Foreground(Dim).Italic(true)
	PullHint = lipgloss.NewStyle().Foreground(Muted)
	PullArmed = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	RefreshOK = lipgloss.NewStyle().Foreground(Success)
	RefreshFailed = lipgloss.NewStyle().Foreground(Error)
	FooterError = lipgloss.NewStyle().Foreground(Warning)
	FooterEnd = lipgloss.NewStyle().Foreground(Dim)
	ScrollbarTrack = lipgloss.NewStyle().Foreground(Dim)
	ScrollbarThumb = lipgloss.NewStyle().Foreground(Muted)

	StatusBar = lipgloss.NewStyle().Foreground(Muted)
	StatusKey = lipgloss.NewStyle().Foreground(Muted)
	StatusValue = lipgloss.NewStyle().Foreground(Secondary)

	HelpKey = lipgloss.NewStyle().Foreground(Secondary)
	HelpDesc = lipgloss.NewStyle().Foreground(Muted)
	HelpSeparator = lipgloss.NewStyle().Foreground(Dim)

	ToastInfo = lipgloss.NewStyle().Foreground(Secondary)
	ToastWarning = lipgloss.NewStyle().Foreground(Warning)
	ToastError = lipgloss.NewStyle().Foreground(Error).Bold(true)
}
