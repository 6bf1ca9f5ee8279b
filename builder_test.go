// FILE: speechrules/prefs/builder_test.go
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuilder tests the builder pattern
func TestBuilder(t *testing.T) {
	t.Run("BasicBuilder", func(t *testing.T) {
		root := standardRulesTree(t)

		m, err := NewBuilder().
			WithRulesDir(root).
			WithUserConfigDir("").
			WithLogger(NopLogger()).
			Build()

		require.NoError(t, err)
		assert.NotNil(t, m)
		assert.Equal(t, "en", m.Language())
	})

	t.Run("CompiledDefaultsWhenUnset", func(t *testing.T) {
		root := standardRulesTree(t)
		m, _ := openTestManager(t, root)

		assert.True(t, m.Bool("Blind"))
		assert.Equal(t, "read", m.String("NavigationSpeech"))
		assert.Equal(t, 1.0, m.Float64("Pitch"))
		assert.Equal(t, 100.0, m.Float64("Volume"))
	})

	t.Run("CustomUserDefaults", func(t *testing.T) {
		root := standardRulesTree(t)
		defaults := PreferenceSet{
			"Language":    TextValue("zz"),
			"SpeechStyle": TextValue("ClearSpeak"),
		}

		m, err := NewBuilder().
			WithRulesDir(root).
			WithUserConfigDir("").
			WithUserDefaults(defaults).
			WithLogger(NopLogger()).
			Build()

		require.NoError(t, err)
		assert.Equal(t, "zz", m.Language())
		assert.Equal(t, FallbackChain{
			filepath.Join(root, "ClearSpeak_Rules.yaml"),
			filepath.Join(root, "zz", "ClearSpeak_Rules.yaml"),
		}, m.StyleChain())

		// The builder clones; later mutation cannot reach the manager.
		defaults.Set("Language", TextValue("en"))
		require.NoError(t, m.Reload())
		assert.Equal(t, "zz", m.Language())
	})

	t.Run("CustomAPIDefaults", func(t *testing.T) {
		root := standardRulesTree(t)

		m, err := NewBuilder().
			WithRulesDir(root).
			WithUserConfigDir("").
			WithAPIDefaults(PreferenceSet{"Rate": FloatValue(140)}).
			WithLogger(NopLogger()).
			Build()

		require.NoError(t, err)
		assert.Equal(t, 140.0, m.Rate())
	})

	t.Run("BuilderWithValidator", func(t *testing.T) {
		root := standardRulesTree(t)

		validatorCalled := false
		validator := func(m *PreferenceManager) error {
			validatorCalled = true
			if m.String("Verbosity") == "" {
				return fmt.Errorf("verbosity unset")
			}
			return nil
		}

		// Valid case
		m, err := NewBuilder().
			WithRulesDir(root).
			WithUserConfigDir("").
			WithLogger(NopLogger()).
			WithValidator(validator).
			Build()

		require.NoError(t, err)
		assert.NotNil(t, m)
		assert.True(t, validatorCalled)

		// Invalid case
		failing := func(m *PreferenceManager) error {
			return fmt.Errorf("rejected")
		}
		m2, err := NewBuilder().
			WithRulesDir(root).
			WithUserConfigDir("").
			WithLogger(NopLogger()).
			WithValidator(failing).
			Build()

		assert.Nil(t, m2)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "preference validation failed")
	})

	t.Run("BuilderLogsThroughProvidedLogger", func(t *testing.T) {
		root := standardRulesTree(t)
		require.NoError(t, os.Remove(filepath.Join(root, "prefs.yaml")))

		log := &recordingLogger{}
		_, err := NewBuilder().
			WithRulesDir(root).
			WithUserConfigDir("").
			WithLogger(log).
			Build()

		require.NoError(t, err)
		assert.True(t, log.has("warn", "system preference file missing"))
	})

	t.Run("MustBuildPanic", func(t *testing.T) {
		root := standardRulesTree(t)

		// Should not panic with a valid tree
		assert.NotPanics(t, func() {
			m := NewBuilder().
				WithRulesDir(root).
				WithUserConfigDir("").
				WithLogger(NopLogger()).
				MustBuild()
			assert.NotNil(t, m)
		})

		// Should panic when the rules directory is missing
		assert.Panics(t, func() {
			NewBuilder().
				WithRulesDir(filepath.Join(t.TempDir(), "nope")).
				WithUserConfigDir("").
				WithLogger(NopLogger()).
				MustBuild()
		})
	})
}
