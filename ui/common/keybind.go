package common

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/miosa/osa-feed/style"
)

// KeyHelp renders a one-line key help for the status bar. Each binding is
// rendered as:
//
//	[key] description
//
// Disabled bindings and bindings without help text are omitted.
func KeyHelp(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		if !b.Enabled() || b.Help().Key == "" {
			continue
		}
		keyStr := style.HelpKey.Render("[" + b.Help().Key + "]")
		helpStr := style.HelpDesc.Render(" " + b.Help().Desc)
		parts = append(parts, keyStr+helpStr)
	}
	return strings.Join(parts, style.HelpSeparator.Render(" · "))
}
