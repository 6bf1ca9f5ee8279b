// File: speechrules/prefs/builder.go
package prefs

import (
	"fmt"
)

// ValidatorFunc defines the signature for a function that can validate a
// freshly built PreferenceManager. It receives the fully initialized
// manager and should return an error if validation fails.
type ValidatorFunc func(m *PreferenceManager) error

// Builder provides a fluent interface for building preference managers.
type Builder struct {
	log            Logger
	rulesDir       string
	userConfigDir  string
	fallbackLocale string

	// Distinguish "never set" from "set to empty": an empty user config
	// dir disables the per-user override file, an empty fallback locale
	// disables the fallback retry.
	hasUserConfigDir  bool
	hasFallbackLocale bool

	userDefaults PreferenceSet
	apiDefaults  PreferenceSet
	validators   []ValidatorFunc
	err          error
}

// NewBuilder creates a new preference manager builder.
func NewBuilder() *Builder {
	return &Builder{
		validators: make([]ValidatorFunc, 0),
	}
}

// WithLogger sets the diagnostic logger. Unset, diagnostics go to a JSON
// slog handler on stderr; NopLogger silences them.
func (b *Builder) WithLogger(log Logger) *Builder {
	b.log = log
	return b
}

// WithRulesDir sets the rules directory explicitly, bypassing the
// environment variable and the executable-relative default.
func (b *Builder) WithRulesDir(dir string) *Builder {
	b.rulesDir = dir
	return b
}

// WithUserConfigDir sets the directory probed for a per-user preference
// file. Passing "" disables the per-user layer entirely.
func (b *Builder) WithUserConfigDir(dir string) *Builder {
	b.userConfigDir = dir
	b.hasUserConfigDir = true
	return b
}

// WithFallbackLocale sets the locale retried when the requested one has no
// usable resources. Passing "" disables the retry, so resolution failures
// surface immediately.
func (b *Builder) WithFallbackLocale(locale string) *Builder {
	b.fallbackLocale = locale
	b.hasFallbackLocale = true
	return b
}

// WithUserDefaults replaces the compiled user preference defaults. The set
// must cover Language and SpeechStyle; resolution has nothing to work with
// otherwise.
func (b *Builder) WithUserDefaults(defaults PreferenceSet) *Builder {
	b.userDefaults = defaults
	return b
}

// WithAPIDefaults replaces the compiled API preference defaults.
func (b *Builder) WithAPIDefaults(defaults PreferenceSet) *Builder {
	b.apiDefaults = defaults
	return b
}

// WithValidator adds a validation function that runs at the end of the
// build process. Multiple validators can be added and are executed in the
// order they are added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the PreferenceManager with all specified options and runs
// the full startup sequence. An unusable rules directory or an exhausted
// locale fallback is fatal and returned as an error.
func (b *Builder) Build() (*PreferenceManager, error) {
	if b.err != nil {
		return nil, b.err
	}

	log := b.log
	if log == nil {
		log = NewDefaultLogger()
	}

	rulesDir := b.rulesDir
	if rulesDir == "" {
		rulesDir = defaultRulesDir()
	}

	userConfigDir := b.userConfigDir
	if !b.hasUserConfigDir {
		userConfigDir = defaultUserConfigDir()
	}

	fallbackLocale := b.fallbackLocale
	if !b.hasFallbackLocale {
		fallbackLocale = DefaultFallbackLocale
	}

	userDefaults := b.userDefaults
	if userDefaults == nil {
		userDefaults = DefaultUserPreferences()
	}
	apiDefaults := b.apiDefaults
	if apiDefaults == nil {
		apiDefaults = DefaultAPIPreferences()
	}

	m := &PreferenceManager{
		log:            log,
		rulesDir:       rulesDir,
		userConfigDir:  userConfigDir,
		fallbackLocale: fallbackLocale,
		userDefaults:   userDefaults.Clone(),
		apiDefaults:    apiDefaults.Clone(),
	}

	if err := m.initialize(); err != nil {
		return nil, err
	}

	for _, validator := range b.validators {
		if err := validator(m); err != nil {
			return nil, fmt.Errorf("preference validation failed: %w", err)
		}
	}

	return m, nil
}

// MustBuild is like Build but panics on error. Intended for hosts whose
// rules tree is part of the install and cannot legitimately be absent.
func (b *Builder) MustBuild() *PreferenceManager {
	m, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("preference manager build failed: %v", err))
	}
	return m
}
