// File: speechrules/prefs/convenience.go
package prefs

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Open creates a fully initialized PreferenceManager with a single call.
// This is the recommended way to initialize preferences for most hosts:
// rules directory from the environment or next to the executable, per-user
// overrides from the platform config directory, compiled defaults.
func Open() (*PreferenceManager, error) {
	return NewBuilder().Build()
}

// OpenDir is like Open with an explicit rules directory.
func OpenDir(rulesDir string) (*PreferenceManager, error) {
	return NewBuilder().WithRulesDir(rulesDir).Build()
}

// MustOpen is like Open but panics on error.
func MustOpen() *PreferenceManager {
	m, err := Open()
	if err != nil {
		panic(fmt.Sprintf("preference initialization failed: %v", err))
	}
	return m
}

// Validate checks that all named preferences resolve to a non-empty value
// in the merged view.
func (m *PreferenceManager) Validate(required ...string) error {
	merged := m.MergePreferences()

	var missing []string
	for _, name := range required {
		v, ok := merged.Get(name)
		if !ok || v.IsEmpty() {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required preferences: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Debug returns a formatted string showing the manager state: file layers,
// both preference sets and the resolved resource chains.
func (m *PreferenceManager) Debug() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var b strings.Builder
	b.WriteString("Preference Debug Info:\n")
	b.WriteString(fmt.Sprintf("Rules dir: %s\n", m.rulesDir))

	b.WriteString("Preference files:\n")
	for _, path := range m.prefFiles.chain {
		b.WriteString(fmt.Sprintf("  %s\n", path))
	}

	b.WriteString("User preferences:\n")
	for _, name := range m.userPrefs.Names() {
		v, _ := m.userPrefs.Get(name)
		b.WriteString(fmt.Sprintf("  %s: %s (%s)\n", name, v.String(), v.Kind()))
	}

	b.WriteString("API preferences:\n")
	for _, name := range m.apiPrefs.Names() {
		v, _ := m.apiPrefs.Get(name)
		b.WriteString(fmt.Sprintf("  %s: %s (%s)\n", name, v.String(), v.Kind()))
	}

	b.WriteString("Style chain:\n")
	for _, path := range m.styleRules.chain {
		b.WriteString(fmt.Sprintf("  %s\n", path))
	}
	b.WriteString("Unicode chain:\n")
	for _, path := range m.unicodeFiles.chain {
		b.WriteString(fmt.Sprintf("  %s\n", path))
	}
	b.WriteString("Definitions chain:\n")
	for _, path := range m.definitions.chain {
		b.WriteString(fmt.Sprintf("  %s\n", path))
	}

	return b.String()
}

// Dump writes the merged preferences to stdout in TOML format.
func (m *PreferenceManager) Dump() error {
	merged := m.MergePreferences()

	data := make(map[string]any, len(merged))
	for _, name := range merged.Names() {
		v, _ := merged.Get(name)
		if iv := v.Interface(); iv != nil {
			data[name] = iv
		}
	}

	encoder := toml.NewEncoder(os.Stdout)
	return encoder.Encode(data)
}
