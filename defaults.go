// File: speechrules/prefs/defaults.go
package prefs

// Names of the preferences the engine itself reads. Documents may define any
// further names; these are the ones with compiled defaults.
const (
	PrefLanguage         = "Language"
	PrefSpeechStyle      = "SpeechStyle"
	PrefVerbosity        = "Verbosity"
	PrefBlind            = "Blind"
	PrefNavigationMode   = "NavigationMode"
	PrefNavigationSpeech = "NavigationSpeech"

	PrefTTS    = "TTS"
	PrefPitch  = "Pitch"
	PrefRate   = "Rate"
	PrefVolume = "Volume"
	PrefVoice  = "Voice"
	PrefGender = "Gender"
)

// DefaultUserPreferences returns a fresh copy of the compiled user defaults.
// These seed the file loader, so every name here is always resolvable even
// when no preference file exists.
func DefaultUserPreferences() PreferenceSet {
	return PreferenceSet{
		PrefLanguage:         TextValue("en"),
		PrefSpeechStyle:      TextValue("ClearSpeak"),
		PrefVerbosity:        TextValue("medium"),
		PrefBlind:            BoolValue(true),
		PrefNavigationMode:   TextValue("enhanced"),
		PrefNavigationSpeech: TextValue("read"),
	}
}

// DefaultAPIPreferences returns a fresh copy of the compiled API defaults.
// The API set is never file-sourced; hosts overwrite these at runtime.
func DefaultAPIPreferences() PreferenceSet {
	return PreferenceSet{
		PrefTTS:    TextValue("none"),
		PrefPitch:  FloatValue(1.0),
		PrefRate:   FloatValue(180.0),
		PrefVolume: FloatValue(100.0),
		PrefVoice:  TextValue("none"),
		PrefGender: TextValue("none"),
	}
}
