// File: speechrules/prefs/staleness.go
package prefs

import (
	"os"
	"time"
)

// Tracked resource groups, as reported by staleness checks and ChangeEvents.
const (
	GroupPreferences = "preferences"
	GroupStyle       = "style"
	GroupUnicode     = "unicode"
	GroupDefinitions = "definitions"
)

// freshnessRecord pairs a resolved chain with the modification times seen
// when it was captured. captured identifies the load epoch.
type freshnessRecord struct {
	chain    FallbackChain
	modTimes []time.Time
	captured time.Time
}

func captureFreshness(chain FallbackChain) freshnessRecord {
	rec := freshnessRecord{
		chain:    chain,
		modTimes: make([]time.Time, len(chain)),
		captured: time.Now(),
	}
	for i, path := range chain {
		if info, err := os.Stat(path); err == nil {
			rec.modTimes[i] = info.ModTime()
		}
	}
	return rec
}

// staleFile returns the first file in the chain whose modification time
// moved since capture. A file that vanished or became unreadable counts as
// changed. A record that never tracked anything is vacuously fresh.
func (r freshnessRecord) staleFile(log Logger) (string, bool) {
	for i, path := range r.chain {
		info, err := os.Stat(path)
		if err != nil {
			log.Debug("tracked file no longer readable", "path", path, "error", err)
			return path, true
		}
		if !info.ModTime().Equal(r.modTimes[i]) {
			return path, true
		}
	}
	return "", false
}

func (r freshnessRecord) upToDate(log Logger) bool {
	_, stale := r.staleFile(log)
	return !stale
}

// staleGroup names a tracked group whose files changed since capture.
type staleGroup struct {
	name     string
	path     string
	captured time.Time
}

// staleGroups returns every tracked group with at least one changed file.
func (m *PreferenceManager) staleGroups() []staleGroup {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []staleGroup
	for _, g := range []struct {
		name string
		rec  freshnessRecord
	}{
		{GroupPreferences, m.prefFiles},
		{GroupStyle, m.styleRules},
		{GroupUnicode, m.unicodeFiles},
		{GroupDefinitions, m.definitions},
	} {
		if path, stale := g.rec.staleFile(m.log); stale {
			out = append(out, staleGroup{name: g.name, path: path, captured: g.rec.captured})
		}
	}
	return out
}

// IsUpToDate reports whether every tracked resource file is unchanged since
// its chain was resolved. The consumer checks this before a processing pass
// and reloads rule data when it returns false.
func (m *PreferenceManager) IsUpToDate() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.prefFiles.upToDate(m.log) &&
		m.styleRules.upToDate(m.log) &&
		m.unicodeFiles.upToDate(m.log) &&
		m.definitions.upToDate(m.log)
}
