package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Resource file names inside the rules tree.
const (
	// SystemPreferenceFile sits at the root of the rules directory.
	SystemPreferenceFile = "prefs.yaml"
	// UnicodeFileName maps characters to speech text per locale level.
	UnicodeFileName = "unicode.yaml"
	// DefinitionsFileName holds per-locale word lists and definitions.
	DefinitionsFileName = "definitions.yaml"
	// StyleFileSuffix is appended to the SpeechStyle name, so style
	// "ClearSpeak" resolves ClearSpeak_Rules.yaml.
	StyleFileSuffix = "_Rules.yaml"
)

// PreferenceManager is the single source of truth for preference reads. It
// holds the file-sourced user set and the host-driven API set separately so
// API values always win without destroying what the files said, and it
// tracks when any resolved resource file changes on disk.
//
// Reads and writes are safe for concurrent use; hosts that mutate
// preferences from several goroutines should still serialize writers so
// re-resolution outcomes stay predictable.
type PreferenceManager struct {
	mu  sync.RWMutex
	log Logger

	rulesDir       string
	userConfigDir  string
	fallbackLocale string

	userDefaults PreferenceSet
	apiDefaults  PreferenceSet

	userPrefs PreferenceSet
	apiPrefs  PreferenceSet

	prefFiles    freshnessRecord
	styleRules   freshnessRecord
	unicodeFiles freshnessRecord
	definitions  freshnessRecord

	watcher *watcher
}

// resolvedResources carries one complete resolution outcome so it can be
// committed all-or-nothing.
type resolvedResources struct {
	style       FallbackChain
	unicode     FallbackChain
	definitions FallbackChain
}

// initialize runs the full startup sequence: validate the rules directory,
// layer the preference files over the user defaults, resolve the three
// locale-dependent chains, capture freshness. Nothing is committed unless
// every step succeeds. Callers own the manager exclusively or hold the
// write lock.
func (m *PreferenceManager) initialize() error {
	info, err := os.Stat(m.rulesDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %q", ErrRulesDirNotFound, m.rulesDir)
	}

	paths := m.preferenceFileCandidates()
	prefRecord := captureFreshness(FallbackChain(paths))
	user := LoadPreferenceFiles(m.userDefaults, paths, m.log)

	resources, err := m.resolveAll(user)
	if err != nil {
		return err
	}

	m.userPrefs = user
	m.prefFiles = prefRecord
	m.commitResources(resources)
	if m.apiPrefs == nil {
		m.apiPrefs = m.apiDefaults.Clone()
	}
	return nil
}

// preferenceFileCandidates returns the preference files that exist, system
// level first. A missing system file is worth a warning; most users never
// create the per-user override, so its absence is only a debug note.
func (m *PreferenceManager) preferenceFileCandidates() []string {
	var paths []string

	system := filepath.Join(m.rulesDir, SystemPreferenceFile)
	if fileExists(system) {
		paths = append(paths, system)
	} else {
		m.log.Warn("system preference file missing, using defaults", "path", system)
	}

	if m.userConfigDir != "" {
		if user := findUserPreferenceFile(m.userConfigDir); user != "" {
			paths = append(paths, user)
		} else {
			m.log.Debug("no user preference file", "dir", m.userConfigDir)
		}
	}
	return paths
}

// resolveAll resolves the style, unicode and definitions chains for the
// Language and SpeechStyle held in user.
func (m *PreferenceManager) resolveAll(user PreferenceSet) (resolvedResources, error) {
	language, _ := user.Get(PrefLanguage)
	style, _ := user.Get(PrefSpeechStyle)

	styleChain, err := ResolveChain(m.rulesDir, language.String(), m.fallbackLocale, style.String()+StyleFileSuffix, m.log)
	if err != nil {
		return resolvedResources{}, err
	}
	unicodeChain, err := ResolveChain(m.rulesDir, language.String(), m.fallbackLocale, UnicodeFileName, m.log)
	if err != nil {
		return resolvedResources{}, err
	}
	definitionsChain, err := ResolveChain(m.rulesDir, language.String(), m.fallbackLocale, DefinitionsFileName, m.log)
	if err != nil {
		return resolvedResources{}, err
	}

	return resolvedResources{
		style:       styleChain,
		unicode:     unicodeChain,
		definitions: definitionsChain,
	}, nil
}

func (m *PreferenceManager) commitResources(r resolvedResources) {
	m.styleRules = captureFreshness(r.style)
	m.unicodeFiles = captureFreshness(r.unicode)
	m.definitions = captureFreshness(r.definitions)
}

// Reload re-runs the startup sequence on a live manager: preference files
// are re-read and all chains re-resolved. Host-set API preferences survive.
// On failure the previous state stays in place and remains usable.
func (m *PreferenceManager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialize()
}

// Get returns the user preference stored under name, or the empty Value.
// Absent names are an expected condition, never an error.
func (m *PreferenceManager) Get(name string) Value {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, _ := m.userPrefs.Get(name)
	return v
}

// String returns the user preference under name in text form, "" if absent.
func (m *PreferenceManager) String(name string) string {
	return m.Get(name).String()
}

// lookup finds name in the API set first, then the user set. Callers hold
// at least the read lock.
func (m *PreferenceManager) lookup(name string) (Value, bool) {
	if v, ok := m.apiPrefs.Get(name); ok {
		return v, true
	}
	return m.userPrefs.Get(name)
}

// Float64 returns the preference under name as a float64, API set first. A
// stored value that cannot be coerced is reported and replaced by the
// compiled default for that name; a single bad number never becomes a hard
// failure.
func (m *PreferenceManager) Float64(name string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if v, ok := m.lookup(name); ok {
		if f, err := v.Float64(); err == nil {
			return f
		}
		m.log.Warn("preference is not a usable number", "name", name, "value", v.String())
	}
	if v, ok := m.defaultValue(name); ok {
		if f, err := v.Float64(); err == nil {
			return f
		}
	}
	return 0
}

// Int64 returns the preference under name as an int64, API set first, with
// the same compiled-default recovery as Float64.
func (m *PreferenceManager) Int64(name string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if v, ok := m.lookup(name); ok {
		if i, err := v.Int64(); err == nil {
			return i
		}
		m.log.Warn("preference is not a usable integer", "name", name, "value", v.String())
	}
	if v, ok := m.defaultValue(name); ok {
		if i, err := v.Int64(); err == nil {
			return i
		}
	}
	return 0
}

// Bool returns the preference under name as a bool, API set first, with the
// same compiled-default recovery as Float64.
func (m *PreferenceManager) Bool(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if v, ok := m.lookup(name); ok {
		if b, err := v.Bool(); err == nil {
			return b
		}
		m.log.Warn("preference is not a usable boolean", "name", name, "value", v.String())
	}
	if v, ok := m.defaultValue(name); ok {
		if b, err := v.Bool(); err == nil {
			return b
		}
	}
	return false
}

// defaultValue finds the compiled default for name. Callers hold at least
// the read lock.
func (m *PreferenceManager) defaultValue(name string) (Value, bool) {
	if v, ok := m.apiDefaults.Get(name); ok {
		return v, true
	}
	return m.userDefaults.Get(name)
}

// SetAPIPreference stores v in the API set. The change is visible to the
// next read; the user set and the files on disk are never touched.
func (m *PreferenceManager) SetAPIPreference(name string, v Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiPrefs.Set(name, v)
}

// SetAPIString stores a text preference in the API set.
func (m *PreferenceManager) SetAPIString(name, value string) {
	m.SetAPIPreference(name, TextValue(value))
}

// SetAPIFloat stores a float preference in the API set.
func (m *PreferenceManager) SetAPIFloat(name string, value float64) {
	m.SetAPIPreference(name, FloatValue(value))
}

// SetUserPreference overwrites name in the user set. Changing Language or
// SpeechStyle re-resolves all three resource chains; when that fails the
// manager is left exactly as it was and the error is returned, so a bad
// locale can be retried or surfaced without losing the working state.
func (m *PreferenceManager) SetUserPreference(name string, v Value) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if name != PrefLanguage && name != PrefSpeechStyle {
		m.userPrefs.Set(name, v)
		return nil
	}

	next := m.userPrefs.Clone()
	next.Set(name, v)
	resources, err := m.resolveAll(next)
	if err != nil {
		return err
	}
	m.userPrefs = next
	m.commitResources(resources)
	return nil
}

// SetUserString overwrites a text preference in the user set.
func (m *PreferenceManager) SetUserString(name, value string) error {
	return m.SetUserPreference(name, TextValue(value))
}

// MergePreferences returns the user set overlaid by the API set, computed
// fresh on every call. The rule engine feeds this view to its matchers.
func (m *PreferenceManager) MergePreferences() PreferenceSet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.userPrefs.Merge(m.apiPrefs)
}

// StyleChain returns the resolved speech-style rule files, general first.
func (m *PreferenceManager) StyleChain() FallbackChain {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneChain(m.styleRules.chain)
}

// UnicodeChain returns the resolved unicode table files, general first.
func (m *PreferenceManager) UnicodeChain() FallbackChain {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneChain(m.unicodeFiles.chain)
}

// DefinitionsChain returns the resolved definitions files, general first.
func (m *PreferenceManager) DefinitionsChain() FallbackChain {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneChain(m.definitions.chain)
}

// PreferenceFiles returns the preference files that were layered at the
// last load, in application order.
func (m *PreferenceManager) PreferenceFiles() FallbackChain {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneChain(m.prefFiles.chain)
}

func cloneChain(chain FallbackChain) FallbackChain {
	if chain == nil {
		return nil
	}
	out := make(FallbackChain, len(chain))
	copy(out, chain)
	return out
}

// Language returns the current language preference, falling back to the
// default locale when unset.
func (m *PreferenceManager) Language() string {
	if s := m.String(PrefLanguage); s != "" {
		return s
	}
	return DefaultFallbackLocale
}

// Rate returns the speech rate in words per minute.
func (m *PreferenceManager) Rate() float64 {
	return m.Float64(PrefRate)
}

// TTSKind identifies the speech markup the engine should emit.
type TTSKind uint8

const (
	// TTSNone emits plain text.
	TTSNone TTSKind = iota
	// TTSSSML emits Speech Synthesis Markup Language.
	TTSSSML
	// TTSSAPI5 emits Microsoft SAPI 5 markup.
	TTSSAPI5
)

func (k TTSKind) String() string {
	switch k {
	case TTSSSML:
		return "ssml"
	case TTSSAPI5:
		return "sapi5"
	default:
		return "none"
	}
}

// UnmarshalText lets TTS preferences decode directly into TTSKind fields.
func (k *TTSKind) UnmarshalText(text []byte) error {
	kind, ok := parseTTSKind(string(text))
	if !ok {
		return fmt.Errorf("unrecognized TTS kind %q", text)
	}
	*k = kind
	return nil
}

func parseTTSKind(s string) (TTSKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return TTSNone, true
	case "ssml":
		return TTSSSML, true
	case "sapi5":
		return TTSSAPI5, true
	default:
		return TTSNone, false
	}
}

// TTS returns the speech markup preference, API set first. Unrecognized
// values are reported and read as TTSNone.
func (m *PreferenceManager) TTS() TTSKind {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.lookup(PrefTTS)
	if !ok {
		return TTSNone
	}
	kind, ok := parseTTSKind(v.String())
	if !ok {
		m.log.Warn("unrecognized TTS preference", "value", v.String())
		return TTSNone
	}
	return kind
}
