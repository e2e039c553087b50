package dcbor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"unsigned equal", Unsigned(42), Unsigned(42), true},
		{"unsigned differ", Unsigned(42), Unsigned(43), false},
		{"negative equal", NegativeInt64(-1), NegativeArg(0), true},
		{"negative differ", NegativeInt64(-1), NegativeInt64(-2), false},
		{"unsigned vs negative", Unsigned(0), NegativeInt64(-1), false},
		{"bytes equal", Bytes([]byte{1, 2}), Bytes([]byte{1, 2}), true},
		{"bytes differ", Bytes([]byte{1, 2}), Bytes([]byte{1, 3}), false},
		{"text equal", Text("a"), Text("a"), true},
		{"array equal", Array([]Value{Unsigned(1), Unsigned(2)}), Array([]Value{Unsigned(1), Unsigned(2)}), true},
		{"array length differ", Array([]Value{Unsigned(1)}), Array([]Value{Unsigned(1), Unsigned(2)}), false},
		{"tagged equal", Tagged(1, Unsigned(1)), Tagged(1, Unsigned(1)), true},
		{"tagged number differ", Tagged(1, Unsigned(1)), Tagged(2, Unsigned(1)), false},
		{"bool equal", Bool(true), Bool(true), true},
		{"bool differ", Bool(true), Bool(false), false},
		{"null equal", Null(), Null(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestNegativeInt64RoundTrip(t *testing.T) {
	for _, n := range []int64{-1, -2, -255, -256, -65536, -1 << 32} {
		v := NegativeInt64(n)
		assert.True(t, v.IsNegative())
		assert.Equal(t, n, v.AsInt64())
	}
}

func TestNegativeInt64MinInt64(t *testing.T) {
	v := NegativeInt64(-9223372036854775808)
	assert.Equal(t, uint64(9223372036854775807), v.AsNegativeArg())
}

func TestAsInt64OverflowPanics(t *testing.T) {
	v := NegativeArg(1 << 63)
	assert.Panics(t, func() { v.AsInt64() })
}

func TestAccessorsPanicOnWrongKind(t *testing.T) {
	v := Unsigned(1)
	assert.Panics(t, func() { v.AsBytesValue() })
	assert.Panics(t, func() { v.AsTextValue() })
	assert.Panics(t, func() { v.AsArrayValue() })
	assert.Panics(t, func() { v.AsMapValue() })
	assert.Panics(t, func() { v.TagNumber() })
	assert.Panics(t, func() { v.AsFloatValue() })
	assert.Panics(t, func() { v.AsNegativeArg() })
}
