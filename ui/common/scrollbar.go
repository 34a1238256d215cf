// Package common holds small widgets shared by the feed screens.
package common

import "github.com/miosa/osa-feed/style"

const (
	scrollTrackChar = "│"
	scrollThumbChar = "┃"
)

// Scrollbar renders a one-column vertical scrollbar for a viewport of
// viewportRows showing contentRows total rows from offset. It returns nil when
// everything fits. The thumb is at least one row and never leaves the track.
func Scrollbar(viewportRows, contentRows, offset int) []string {
	vh, ch := viewportRows, contentRows
	if vh <= 0 || ch <= vh {
		return nil
	}

	thumbH := max(vh*vh/ch, 1)
	scrollable := ch - vh
	thumbTop := 0
	if scrollable > 0 {
		thumbTop = (min(max(offset, 0), scrollable) * (vh - thumbH)) / scrollable
	}
	thumbTop = max(min(thumbTop, vh-thumbH), 0)

	rows := make([]string, vh)
	for i := range rows {
		if i >= thumbTop && i < thumbTop+thumbH {
			rows[i] = style.ScrollbarThumb.Render(scrollThumbChar)
		} else {
			rows[i] = style.ScrollbarTrack.Render(scrollTrackChar)
		}
	}
	return rows
}
