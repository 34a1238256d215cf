package status

import (
	"fmt"

	"github.com/miosa/osa-feed/style"
)

// ItemsPill renders the loaded item count, e.g. "42 items".
// Returns an empty string when nothing is loaded.
func ItemsPill(count int) string {
	if count <= 0 {
		return ""
	}
	noun := "items"
	if count == 1 {
		noun = "item"
	}
	return style.StatusValue.Render(fmt.Sprintf("%d", count)) + style.Faint.Render(" "+noun)
}

// PagePill renders the last loaded page, e.g. "page 3".
func PagePill(page int) string {
	if page <= 0 {
		return ""
	}
	return style.Faint.Render("page ") + style.StatusValue.Render(fmt.Sprintf("%d", page))
}
