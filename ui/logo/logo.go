// Package logo renders the wordmark shown while the client connects.
package logo

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-feed/style"
)

// FullLogo is the 3-line wordmark.
const FullLogo = `█▀▀ █▀▀ █▀▀ █▀▄
█▀  █▀▀ █▀▀ █ █
▀   ▀▀▀ ▀▀▀ ▀▀ `

// CompactLogo is used when the terminal is too narrow for the full logo.
const CompactLogo = "◈ feed"

// fullLogoMinWidth is the minimum terminal width to use the full logo.
const fullLogoMinWidth = 24

// RenderWithGradient renders the full logo (or compact fallback) with a
// left-to-right sweep of the theme gradient.
func RenderWithGradient(width int) string {
	if width < fullLogoMinWidth {
		return style.ApplyBoldForegroundGrad(CompactLogo)
	}
	lines := strings.Split(FullLogo, "\n")
	for i, line := range lines {
		lines[i] = style.ApplyBoldForegroundGrad(line)
	}
	return strings.Join(lines, "\n")
}

// Splash centers the logo and a status label in a width x height area.
func Splash(width, height int, label string) string {
	body := RenderWithGradient(width)
	if label != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(style.Muted).Italic(true).Render(label)
	}
	if width <= 0 || height <= 0 {
		return body
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
