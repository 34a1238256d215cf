// Package cards renders feed items for the list engine: creator cards with a
// markdown bio, call history rows and wallet transaction rows.
package cards

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/miosa/osa-feed/client"
	"github.com/miosa/osa-feed/ui/list"
)

// ---------------------------------------------------------------------------
// Items
// ---------------------------------------------------------------------------

// CreatorItem wraps a creator for the list.
type CreatorItem struct{ client.Creator }

func (c CreatorItem) Key() string { return "creator:" + c.ID }

// ContentVersion changes whenever the backend touches the profile, which
// drops the cached render.
func (c CreatorItem) ContentVersion() int { return int(c.UpdatedAt.Unix()) }

// CallItem wraps a call record.
type CallItem struct{ client.CallRecord }

func (c CallItem) Key() string { return "call:" + c.ID }

// TxItem wraps a wallet transaction.
type TxItem struct{ client.Transaction }

func (t TxItem) Key() string { return "tx:" + t.ID }

// Creators converts a page of creators into list items.
func Creators(in []client.Creator) []list.Item {
	out := make([]list.Item, len(in))
	for i, c := range in {
		out[i] = CreatorItem{c}
	}
	return out
}

// Calls converts a page of call records into list items.
func Calls(in []client.CallRecord) []list.Item {
	out := make([]list.Item, len(in))
	for i, c := range in {
		out[i] = CallItem{c}
	}
	return out
}

// Transactions converts a page of transactions into list items.
func Transactions(in []client.Transaction) []list.Item {
	out := make([]list.Item, len(in))
	for i, t := range in {
		out[i] = TxItem{t}
	}
	return out
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// formatCents renders an amount of cents as dollars, e.g. 1299 → "$12.99".
func formatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign, c = "-", -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}

// formatCallDuration converts seconds to "1h 02m", "12m 05s" or "45s".
func formatCallDuration(sec int) string {
	d := time.Duration(sec) * time.Second
	switch {
	case d >= time.Hour:
		return fmt.Sprintf("%dh %02dm", int(d.Hours()), int(d.Minutes())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm %02ds", int(d.Minutes()), sec%60)
	default:
		return fmt.Sprintf("%ds", sec)
	}
}

// formatWhen renders a timestamp relative to now for recent events and as a
// date otherwise.
func formatWhen(t, now time.Time) string {
	if t.IsZero() {
		return "—"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case t.Year() == now.Year():
		return t.Local().Format("Jan 2")
	default:
		return t.Local().Format("Jan 2 2006")
	}
}

// spread places left and right on one line of width cells, truncating left
// when they collide.
func spread(left, right string, width int) string {
	rw := lipgloss.Width(right)
	if width <= rw+1 {
		return ansi.Truncate(right, max(width, 0), "")
	}
	room := width - rw - 1
	if lipgloss.Width(left) > room {
		left = ansi.Truncate(left, room, "…")
	}
	gap := width - lipgloss.Width(left) - rw
	return left + strings.Repeat(" ", max(gap, 1)) + right
}

// now is swapped in tests.
var now = time.Now
