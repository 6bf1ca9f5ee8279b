// File: speechrules/prefs/doc.go

// Package prefs provides thread-safe preference management for rule-based
// speech and braille engines: locale fallback resolution over an on-disk
// rules tree, layered preference files, and separate user and API
// preference sets with configurable precedence.
//
// Features:
//   - Locale fallback chains (en-gb falls back to en, then the default locale)
//   - Layered preference files: compiled defaults, system prefs.yaml, per-user override
//   - Per-user overrides in YAML, TOML or JSON, discovered automatically
//   - Separate user and API preference sets; API values win on read
//   - Typed accessors with coercion and compiled-default recovery
//   - Staleness tracking and an optional change watcher for resolved files
//   - Builder pattern for easy initialization
//   - Thread-safe operations using sync.RWMutex
//
// Quick Start:
//
//	m, err := prefs.OpenDir("/opt/speechrules/Rules")
//	if err != nil {
//	    log.Fatal(err) // rules tree missing or locale unresolvable
//	}
//
//	language := m.Language()
//	rate := m.Rate()
//	for _, path := range m.StyleChain() {
//	    // load rule files, general to specific
//	}
//
// Read Precedence (highest to lowest):
//  1. API preferences set by the host (SetAPIPreference)
//  2. User preferences from files (per-user file over system prefs.yaml)
//  3. Compiled defaults
//
// Changing Language or SpeechStyle re-resolves every resource chain before
// anything is committed, so a bad locale never destroys a working state.
//
// Thread Safety:
// All operations are thread-safe. The package uses read-write mutexes to
// allow concurrent reads while protecting writes.
package prefs
