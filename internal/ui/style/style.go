// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Cyan   = lipgloss.Color("#2AA9B8")
	Slate  = lipgloss.Color("#6E7781")
	Green  = lipgloss.Color("#2DA44E")
	Red    = lipgloss.Color("#CF222E")
	Yellow = lipgloss.Color("#D4A72C")
)

// Icons.
const (
	Cross   = "✗"
	Warning = "!"
)

// WatcherBadge is the prefix label on watch-mode diagnostics.
const WatcherBadge = "Watcher"
