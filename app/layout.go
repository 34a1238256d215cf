package app

// minListHeight keeps the list usable in very short terminals.
const minListHeight = 3

// Layout holds computed dimensions for the current frame.
type Layout struct {
	TermWidth    int
	TermHeight   int
	HeaderHeight int // title line + tab bar
	StatusHeight int
	ListWidth    int
	ListHeight   int
}

// ComputeLayout calculates the layout dimensions based on terminal size.
//
// The header takes two lines and the status bar one; the remainder goes to
// the feed list. Toasts and the help overlay are drawn over the bottom of
// the list, so they never resize it.
func ComputeLayout(termW, termH, headerHeight int) Layout {
	l := Layout{
		TermWidth:    termW,
		TermHeight:   termH,
		HeaderHeight: headerHeight,
		StatusHeight: 1,
		ListWidth:    max(termW, 1),
	}
	l.ListHeight = termH - l.HeaderHeight - l.StatusHeight
	if l.ListHeight < minListHeight {
		l.ListHeight = minListHeight
	}
	return l
}
