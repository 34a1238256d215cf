package style

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// LerpColor linearly interpolates between two colors at position t ∈ [0,1].
// Both inputs must satisfy color.Color (RGBA). Returns an image/color.NRGBA.
func LerpColor(a, b color.Color, t float64) color.Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()

	// RGBA() returns values in [0, 65535]. Convert to [0, 255].
	lerp := func(x, y uint32) uint8 {
		v := float64(x>>8)*(1-t) + float64(y>>8)*t
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}

	return color.NRGBA{
		R: lerp(ar, br),
		G: lerp(ag, bg),
		B: lerp(ab, bb),
		A: lerp(aa, ba),
	}
}

// nrgbaToHex converts a color.Color to a CSS hex string "#RRGGBB".
// Alpha is ignored for terminal compatibility.
func nrgbaToHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
}

// GradientText renders text with a left-to-right horizontal color gradient
// from `from` to `to`, coloring each rune individually.
func GradientText(text string, from, to color.Color) string {
	return gradient(text, from, to, lipgloss.NewStyle())
}

// GradientTextBold renders gradient text in bold.
func GradientTextBold(text string, from, to color.Color) string {
	return gradient(text, from, to, lipgloss.NewStyle().Bold(true))
}

func gradient(text string, from, to color.Color, base lipgloss.Style) string {
	runes := []rune(text)
	n := len(runes)
	var sb strings.Builder
	for i, r := range runes {
		c := from
		if n > 1 {
			c = LerpColor(from, to, float64(i)/float64(n-1))
		}
		sb.WriteString(base.Foreground(lipgloss.Color(nrgbaToHex(c))).Render(string(r)))
	}
	return sb.String()
}

// ApplyBoldForegroundGrad applies the default theme gradient in bold.
func ApplyBoldForegroundGrad(s string) string {
	return GradientTextBold(s, GradColorA, GradColorB)
}

// PullMeter renders a width-cell bar filled to frac (0..1) with the theme
// gradient; the rest of the bar is drawn dim.
func PullMeter(frac float64, width int) string {
	if width <= 0 {
		return ""
	}
	frac = max(0, min(frac, 1))
	filled := int(frac * float64(width))
	bar := GradientText(strings.Repeat("━", filled), GradColorA, GradColorB)
	if rest := width - filled; rest > 0 {
		bar += lipgloss.NewStyle().Foreground(Dim).Render(strings.Repeat("─", rest))
	}
	return bar
}
