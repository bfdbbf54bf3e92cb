//go:build debug

// Package debug provides a centralized, categorized debug logging system.
// Build with -tags debug to enable logging.
package debug

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Enabled indicates whether debug logging is active
const Enabled = true

// Category represents a debug logging category
type Category string

const (
	APP    Category = "APP"    // Window, tabs, actions
	NAV    Category = "NAV"    // Navigation history, forward buffer
	CRUMB  Category = "CRUMB"  // Path bar resolution and diffing
	TAGS   Category = "TAGS"   // Tag registry mutations and persistence
	STORE  Category = "STORE"  // Window state database
	TRASH  Category = "TRASH"  // Trash and undo
	FS     Category = "FS"     // Mounts, tag folder walks
	WATCH  Category = "WATCH"  // fsnotify events
	CONFIG Category = "CONFIG" // Config loading

	// Verbose
	FS_WALK Category = "FS_WALK" // Individual walk entries
	SCHED   Category = "SCHED"   // Deferred mutation queue
)

var (
	enabledCategories = map[Category]bool{
		APP:    true,
		NAV:    true,
		CRUMB:  true,
		TAGS:   true,
		STORE:  true,
		TRASH:  true,
		FS:     true,
		WATCH:  true,
		CONFIG: true,

		FS_WALK: false,
		SCHED:   false,
	}
	categoryMu sync.RWMutex
)

func init() {
	// PLANE_DEBUG=NAV,CRUMB or PLANE_DEBUG=all or PLANE_DEBUG=none
	if env := os.Getenv("PLANE_DEBUG"); env != "" {
		categoryMu.Lock()
		defer categoryMu.Unlock()

		env = strings.ToUpper(env)
		switch env {
		case "ALL":
			for cat := range enabledCategories {
				enabledCategories[cat] = true
			}
		case "NONE":
			for cat := range enabledCategories {
				enabledCategories[cat] = false
			}
		default:
			for cat := range enabledCategories {
				enabledCategories[cat] = false
			}
			for _, cat := range strings.Split(env, ",") {
				enabledCategories[Category(strings.TrimSpace(cat))] = true
			}
		}
	}
}

// Log logs a debug message for the specified category
func Log(cat Category, format string, args ...interface{}) {
	categoryMu.RLock()
	enabled := enabledCategories[cat]
	categoryMu.RUnlock()

	if !enabled {
		return
	}

	output().Printf("[%s] %s", cat, fmt.Sprintf(format, args...))
}

// Enable enables a debug category
func Enable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = true
	categoryMu.Unlock()
}

// Disable disables a debug category
func Disable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = false
	categoryMu.Unlock()
}

// IsEnabled returns whether a category is enabled
func IsEnabled(cat Category) bool {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	return enabledCategories[cat]
}

// SetCategories sets the enabled state for multiple categories
func SetCategories(cats map[Category]bool) {
	categoryMu.Lock()
	for cat, enabled := range cats {
		enabledCategories[cat] = enabled
	}
	categoryMu.Unlock()
}
