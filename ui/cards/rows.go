package cards

import (
	"fmt"

	"github.com/miosa/osa-feed/client"
	"github.com/miosa/osa-feed/style"
	"github.com/miosa/osa-feed/ui/list"
)

// RenderCall draws one call history row.
func RenderCall(it list.Item, _ int, width int) string {
	c := it.(CallItem)

	glyph := style.CallOK.Render("✓")
	switch c.Status {
	case client.CallMissed:
		glyph = style.CallMissed.Render("↙")
	case client.CallDeclined:
		glyph = style.CallMissed.Render("✗")
	}

	left := fmt.Sprintf("%s %s  %s", glyph, style.Bold.Render("@"+c.CreatorHandle),
		style.CardMeta.Render(formatWhen(c.StartedAt, now())))

	right := style.CardMeta.Render(c.Status)
	if c.Status == client.CallCompleted {
		right = style.CardMeta.Render(formatCallDuration(c.DurationSec)) + "  " +
			style.AmountDebit.Render(formatCents(c.CostCents))
	}
	return spread(left, right, width)
}

// RenderTransaction draws one wallet transaction row.
func RenderTransaction(it list.Item, _ int, width int) string {
	t := it.(TxItem)

	amount := style.AmountDebit.Render("-" + formatCents(t.AmountCents))
	if t.Kind == client.TxCredit {
		amount = style.AmountCredit.Render("+" + formatCents(t.AmountCents))
	}
	left := style.CardMeta.Render(formatWhen(t.CreatedAt, now())) + "  " + t.Description
	right := amount + "  " + style.Faint.Render(formatCents(t.BalanceCents))
	return spread(left, right, width)
}
