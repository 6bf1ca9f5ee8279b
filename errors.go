// File: speechrules/prefs/errors.go
package prefs

import "errors"

var (
	// ErrRulesDirNotFound is returned when the root rules directory does not
	// exist or cannot be read. There is no degraded mode without it.
	ErrRulesDirNotFound = errors.New("rules directory not found")

	// ErrLocaleDirNotFound is returned when not even the language-level
	// directory exists for a locale, after the fallback locale was tried.
	ErrLocaleDirNotFound = errors.New("no directory for locale")

	// ErrResourceNotFound is returned when a resource file exists at no level
	// of the locale walk, after the fallback locale was tried.
	ErrResourceNotFound = errors.New("resource file not found at any locale level")

	// ErrNilTarget is returned by Scan when the target is not a usable pointer.
	ErrNilTarget = errors.New("scan target must be a non-nil pointer")
)

// IsFatalConfiguration reports whether err represents a configuration failure
// the manager cannot recover from. The caller decides whether to abort, retry
// with different input, or surface the error to the user.
func IsFatalConfiguration(err error) bool {
	return errors.Is(err, ErrRulesDirNotFound) ||
		errors.Is(err, ErrLocaleDirNotFound) ||
		errors.Is(err, ErrResourceNotFound)
}
