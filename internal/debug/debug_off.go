//go:build !debug

// Package debug provides a centralized, categorized debug logging system.
// This is the no-op version for release builds; Error still reports.
package debug

// Enabled indicates whether debug logging is active
const Enabled = false

// Category represents a debug logging category
type Category string

const (
	APP     Category = "APP"
	NAV     Category = "NAV"
	CRUMB   Category = "CRUMB"
	TAGS    Category = "TAGS"
	STORE   Category = "STORE"
	TRASH   Category = "TRASH"
	FS      Category = "FS"
	WATCH   Category = "WATCH"
	CONFIG  Category = "CONFIG"
	FS_WALK Category = "FS_WALK"
	SCHED   Category = "SCHED"
)

// Log is a no-op in release builds
func Log(cat Category, format string, args ...interface{}) {}

// Enable is a no-op in release builds
func Enable(cat Category) {}

// Disable is a no-op in release builds
func Disable(cat Category) {}

// IsEnabled always returns false in release builds
func IsEnabled(cat Category) bool { return false }

// SetCategories is a no-op in release builds
func SetCategories(cats map[Category]bool) {}
