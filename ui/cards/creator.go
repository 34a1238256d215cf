package cards

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"github.com/miosa/osa-feed/style"
	"github.com/miosa/osa-feed/ui/list"
)

// maxBioLines caps how much of a bio a card shows.
const maxBioLines = 3

// creatorChrome is the fixed part of a card: title, meta and divider.
const creatorChrome = 3

// RenderCreator draws a creator card. It implements list.Renderer.
func RenderCreator(it list.Item, _ int, width int) string {
	c := it.(CreatorItem)

	dot := style.OfflineDot.Render("○")
	if c.Online {
		dot = style.OnlineDot.Render("●")
	}
	name := c.DisplayName
	if name == "" {
		name = c.Handle
	}
	title := dot + " " + style.CardTitle.Render(name) + " " + style.CardSubtitle.Render("@"+c.Handle)

	meta := formatCents(c.RatePerMin) + "/min"
	if len(c.Tags) > 0 {
		meta += " · " + strings.Join(c.Tags, ", ")
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(style.CardMeta.Render(meta))
	for _, line := range bioLines(c, width) {
		b.WriteString("\n")
		b.WriteString(line)
	}
	b.WriteString("\n")
	b.WriteString(style.CardDivider.Render(strings.Repeat("─", max(width, 1))))
	return b.String()
}

// CreatorExtent measures a creator card at width. It implements
// list.ItemExtentFunc and always agrees with RenderCreator.
func CreatorExtent(it list.Item, width int) int {
	return creatorChrome + len(bioLines(it.(CreatorItem), width))
}

// ---------------------------------------------------------------------------
// Bio rendering
// ---------------------------------------------------------------------------

type bioKey struct {
	id      string
	version int
	width   int
}

// bioCache holds rendered bios; glamour is far too slow to run per frame.
var bioCache = struct {
	sync.Mutex
	m map[bioKey][]string
}{m: make(map[bioKey][]string)}

const bioCacheMax = 512

func bioLines(c CreatorItem, width int) []string {
	if strings.TrimSpace(c.Bio) == "" {
		return nil
	}
	k := bioKey{id: c.ID, version: c.ContentVersion(), width: width}

	bioCache.Lock()
	defer bioCache.Unlock()
	if lines, ok := bioCache.m[k]; ok {
		return lines
	}
	if len(bioCache.m) >= bioCacheMax {
		clear(bioCache.m)
	}

	var lines []string
	for _, l := range strings.Split(renderMarkdown(c.Bio, width), "\n") {
		if strings.TrimSpace(ansi.Strip(l)) == "" {
			continue
		}
		lines = append(lines, l)
		if len(lines) == maxBioLines {
			break
		}
	}
	bioCache.m[k] = lines
	return lines
}

// renderMarkdown renders markdown text using glamour, falling back to plain text on error.
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width-2, 10)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
