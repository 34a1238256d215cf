package list

import "context"

// Item is anything the list can display. The engine only ever looks at the
// key; everything else is the Renderer's business.
type Item interface {
	// Key returns a unique, stable identifier used for dedup, render-cache
	// keying and removal.
	Key() string
}

// Page is one page of results returned by a PageFetcher.
type Page struct {
	Items   []Item
	HasMore bool
}

// PageFetcher loads the given 1-based page. Implementations must honour ctx
// cancellation and abort the underlying network call when it fires.
type PageFetcher func(ctx context.Context, page int) (Page, error)

// Renderer draws one item at the given width. The returned string may span
// several lines; it is clipped or padded to the item's extent.
type Renderer func(item Item, index, width int) string

// ExtentFunc returns the base extent (in rows) of the item at index.
type ExtentFunc func(index int) int

// ItemExtentFunc measures an item directly at the given width.
type ItemExtentFunc func(item Item, width int) int
