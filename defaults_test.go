// File: speechrules/prefs/defaults_test.go
package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultUserPreferences tests the compiled user defaults.
func TestDefaultUserPreferences(t *testing.T) {
	t.Run("CompiledValues", func(t *testing.T) {
		defaults := DefaultUserPreferences()

		lang, _ := defaults.Get(PrefLanguage)
		assert.Equal(t, "en", lang.String())

		style, _ := defaults.Get(PrefSpeechStyle)
		assert.Equal(t, "ClearSpeak", style.String())

		blind, _ := defaults.Get(PrefBlind)
		b, err := blind.Bool()
		require.NoError(t, err)
		assert.True(t, b)

		verbosity, _ := defaults.Get(PrefVerbosity)
		assert.Equal(t, "medium", verbosity.String())
	})

	t.Run("EachCallIsFresh", func(t *testing.T) {
		first := DefaultUserPreferences()
		first.Set(PrefLanguage, TextValue("sv"))
		first.Set("Scratch", TextValue("x"))

		second := DefaultUserPreferences()
		lang, _ := second.Get(PrefLanguage)
		assert.Equal(t, "en", lang.String())
		_, ok := second.Get("Scratch")
		assert.False(t, ok)
	})
}

// TestDefaultAPIPreferences tests the compiled API defaults.
func TestDefaultAPIPreferences(t *testing.T) {
	t.Run("CompiledValues", func(t *testing.T) {
		defaults := DefaultAPIPreferences()

		tts, _ := defaults.Get(PrefTTS)
		assert.Equal(t, "none", tts.String())

		for name, want := range map[string]float64{
			PrefPitch:  1.0,
			PrefRate:   180.0,
			PrefVolume: 100.0,
		} {
			v, ok := defaults.Get(name)
			require.True(t, ok, name)
			f, err := v.Float64()
			require.NoError(t, err, name)
			assert.Equal(t, want, f, name)
		}
	})

	t.Run("EachCallIsFresh", func(t *testing.T) {
		first := DefaultAPIPreferences()
		first.Set(PrefRate, FloatValue(999))

		second := DefaultAPIPreferences()
		rate, _ := second.Get(PrefRate)
		f, err := rate.Float64()
		require.NoError(t, err)
		assert.Equal(t, 180.0, f)
	})
}
