// FILE: speechrules/prefs/decode.go
package prefs

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the merged preference view into target, a non-nil struct
// pointer. Fields match preference names case-insensitively; a `yaml` tag
// overrides the match. Types implementing encoding.TextUnmarshaler, such
// as TTSKind, decode from their text form.
func (m *PreferenceManager) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: got %T", ErrNilTarget, target)
	}

	merged := m.MergePreferences()

	// Empty values stay unset so struct zero values show through.
	data := make(map[string]any, len(merged))
	for _, name := range merged.Names() {
		v, _ := merged.Get(name)
		if iv := v.Interface(); iv != nil {
			data[name] = iv
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
		DecodeHook:       scanDecodeHook(),
		ZeroFields:       true,
		Metadata:         nil,
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("preference decode failed: %w", err)
	}
	return nil
}

// scanDecodeHook returns the composite decode hook for Scan conversions.
func scanDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	)
}
