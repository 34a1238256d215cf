package list

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Versioned items can ask for their cached render to be dropped by bumping
// ContentVersion.
type Versioned interface {
	ContentVersion() int
}

// Placement is one materialized row of the window: an item (or a placeholder
// for an index with no backing item) positioned at Start inside a spacer
// Total() rows tall.
type Placement struct {
	Index       int
	Key         string
	Item        Item
	Start       int
	Extent      int
	Placeholder bool
}

// Materialize builds placements for every index in r. Nothing outside r is
// touched, so the cost is O(r.Len()) regardless of the store size. Indices
// the store cannot back (it shrank, or the page is still loading) become
// placeholders instead of failing.
func Materialize(r Range, s *Store, l *Layout) []Placement {
	if r.Empty() {
		return nil
	}
	out := make([]Placement, 0, r.Len())
	for i := max(r.Start, 0); i <= r.End; i++ {
		p := Placement{Index: i, Start: l.Start(i), Extent: l.Extent(i)}
		if p.Extent <= 0 {
			p.Extent = minExtent
		}
		if it, ok := s.At(i); ok {
			p.Item = it
			p.Key = it.Key()
		} else {
			p.Placeholder = true
		}
		out = append(out, p)
	}
	return out
}

// ---------------------------------------------------------------------------
// Render node cache
// ---------------------------------------------------------------------------

type cachedRender struct {
	lines   []string
	width   int
	extent  int
	version int
}

// nodeCache keeps rendered rows keyed by item key so a row that only moved
// (scroll, prepend, removal above it) is reused instead of re-rendered.
type nodeCache struct {
	entries map[string]cachedRender
}

func newNodeCache() *nodeCache {
	return &nodeCache{entries: make(map[string]cachedRender)}
}

func (c *nodeCache) reset() { clear(c.entries) }

func (c *nodeCache) len() int { return len(c.entries) }

// lines returns the rendered rows for p, normalised to exactly p.Extent
// lines of at most width cells.
func (c *nodeCache) lines(p Placement, width int, render Renderer) []string {
	version := 0
	if v, ok := p.Item.(Versioned); ok {
		version = v.ContentVersion()
	}
	if cr, ok := c.entries[p.Key]; ok && cr.width == width && cr.extent == p.Extent && cr.version == version {
		return cr.lines
	}
	var raw string
	if render != nil {
		raw = render(p.Item, p.Index, width)
	}
	lines := fitLines(raw, p.Extent, width)
	c.entries[p.Key] = cachedRender{lines: lines, width: width, extent: p.Extent, version: version}
	return lines
}

// retain evicts every entry whose key is not in keep.
func (c *nodeCache) retain(keep map[string]struct{}) {
	for k := range c.entries {
		if _, ok := keep[k]; !ok {
			delete(c.entries, k)
		}
	}
}

// ---------------------------------------------------------------------------
// Window composition
// ---------------------------------------------------------------------------

// composeWindow paints placements into a vp.Extent-row frame. Rows of a
// placement that fall above or below the viewport are clipped.
func composeWindow(placements []Placement, vp ViewportState, width int, rows func(Placement) []string) []string {
	frame := make([]string, max(vp.Extent, 0))
	for _, p := range placements {
		ls := rows(p)
		for j, line := range ls {
			y := p.Start + j - vp.Offset
			if y < 0 {
				continue
			}
			if y >= len(frame) {
				break
			}
			frame[y] = line
		}
	}
	return frame
}

// fitLines splits s into exactly n lines, truncating long lines to width.
func fitLines(s string, n, width int) []string {
	out := make([]string, n)
	if s == "" {
		return out
	}
	for i, line := range strings.SplitN(s, "\n", n+1) {
		if i >= n {
			break
		}
		if width > 0 && ansi.StringWidth(line) > width {
			line = ansi.Truncate(line, width, "…")
		}
		out[i] = line
	}
	return out
}
