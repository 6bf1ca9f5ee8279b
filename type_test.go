// File: speechrules/prefs/type_test.go
package prefs

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueKinds(t *testing.T) {
	assert.Equal(t, KindText, TextValue("x").Kind())
	assert.Equal(t, KindBool, BoolValue(true).Kind())
	assert.Equal(t, KindInt, IntValue(1).Kind())
	assert.Equal(t, KindFloat, FloatValue(1).Kind())

	var zero Value
	assert.Equal(t, KindEmpty, zero.Kind())
	assert.True(t, zero.IsEmpty())
	assert.False(t, TextValue("").IsEmpty(), "empty text is still text")
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"Text", TextValue("ClearSpeak"), "ClearSpeak"},
		{"Bool", BoolValue(true), "true"},
		{"Int", IntValue(42), "42"},
		{"Float", FloatValue(1.5), "1.5"},
		{"WholeFloat", FloatValue(180), "180"},
		{"Empty", Value{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestValueFloat64(t *testing.T) {
	tests := []struct {
		name    string
		v       Value
		want    float64
		wantErr bool
	}{
		{"Float", FloatValue(1.5), 1.5, false},
		{"Int", IntValue(2), 2, false},
		{"BoolTrue", BoolValue(true), 1, false},
		{"BoolFalse", BoolValue(false), 0, false},
		{"NumericText", TextValue("3.25"), 3.25, false},
		{"PaddedText", TextValue(" 2 "), 2, false},
		{"BadText", TextValue("fast"), 0, true},
		{"Empty", Value{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.Float64()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueInt64(t *testing.T) {
	tests := []struct {
		name    string
		v       Value
		want    int64
		wantErr bool
	}{
		{"Int", IntValue(5), 5, false},
		{"FloatTruncates", FloatValue(2.9), 2, false},
		{"Bool", BoolValue(true), 1, false},
		{"DecimalText", TextValue("42"), 42, false},
		{"HexText", TextValue("0x10"), 16, false},
		{"FloatText", TextValue("3.9"), 3, false},
		{"BadText", TextValue("many"), 0, true},
		{"Empty", Value{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.Int64()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueBool(t *testing.T) {
	tests := []struct {
		name    string
		v       Value
		want    bool
		wantErr bool
	}{
		{"Bool", BoolValue(true), true, false},
		{"ZeroInt", IntValue(0), false, false},
		{"NonZeroInt", IntValue(3), true, false},
		{"ZeroFloat", FloatValue(0), false, false},
		{"TextTrue", TextValue("true"), true, false},
		{"TextOne", TextValue("1"), true, false},
		{"BadText", TextValue("maybe"), false, true},
		{"Empty", Value{}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.Bool()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueInterface(t *testing.T) {
	assert.Equal(t, "x", TextValue("x").Interface())
	assert.Equal(t, true, BoolValue(true).Interface())
	assert.Equal(t, int64(7), IntValue(7).Interface())
	assert.Equal(t, 1.5, FloatValue(1.5).Interface())
	assert.Nil(t, Value{}.Interface())
}

func TestValueFromAny(t *testing.T) {
	t.Run("Scalars", func(t *testing.T) {
		v, ok := valueFromAny("  spoken  ")
		require.True(t, ok)
		assert.Equal(t, TextValue("spoken"), v, "text is trimmed")

		v, ok = valueFromAny(true)
		require.True(t, ok)
		assert.Equal(t, BoolValue(true), v)

		v, ok = valueFromAny(3)
		require.True(t, ok)
		assert.Equal(t, IntValue(3), v)

		v, ok = valueFromAny(int64(4))
		require.True(t, ok)
		assert.Equal(t, IntValue(4), v)

		v, ok = valueFromAny(uint64(5))
		require.True(t, ok)
		assert.Equal(t, IntValue(5), v)

		v, ok = valueFromAny(float32(1.5))
		require.True(t, ok)
		assert.Equal(t, FloatValue(1.5), v)

		v, ok = valueFromAny(2.5)
		require.True(t, ok)
		assert.Equal(t, FloatValue(2.5), v)
	})

	t.Run("NullBecomesEmptyText", func(t *testing.T) {
		v, ok := valueFromAny(nil)
		require.True(t, ok)
		assert.Equal(t, TextValue(""), v)
	})

	t.Run("JSONNumbers", func(t *testing.T) {
		v, ok := valueFromAny(json.Number("3"))
		require.True(t, ok)
		assert.Equal(t, IntValue(3), v)

		v, ok = valueFromAny(json.Number("1.5"))
		require.True(t, ok)
		assert.Equal(t, FloatValue(1.5), v)

		// Out of range for both integer and float; kept as text.
		v, ok = valueFromAny(json.Number("12e999"))
		require.True(t, ok)
		assert.Equal(t, TextValue("12e999"), v)
	})

	t.Run("UnsupportedShapes", func(t *testing.T) {
		_, ok := valueFromAny(time.Now())
		assert.False(t, ok, "timestamps have no preference representation")

		_, ok = valueFromAny(struct{}{})
		assert.False(t, ok)
	})
}
