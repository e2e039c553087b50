package dcbor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinimalWidth(t *testing.T) {
	tests := []struct {
		arg  uint64
		want argWidth
	}{
		{0, width0},
		{23, width0},
		{24, width1},
		{255, width1},
		{256, width2},
		{65535, width2},
		{65536, width4},
		{4294967295, width4},
		{4294967296, width8},
		{math.MaxUint64, width8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, minimalWidth(tt.arg))
	}
}

func TestExactIntegerValue(t *testing.T) {
	v, ok := exactIntegerValue(42.0)
	assert.True(t, ok)
	assert.True(t, v.Equal(Unsigned(42)))

	v, ok = exactIntegerValue(-42.0)
	assert.True(t, ok)
	assert.True(t, v.Equal(NegativeInt64(-42)))

	_, ok = exactIntegerValue(1.5)
	assert.False(t, ok)

	_, ok = exactIntegerValue(math.NaN())
	assert.False(t, ok)

	_, ok = exactIntegerValue(math.Inf(1))
	assert.False(t, ok)

	// -2^63 fits exactly; anything smaller does not.
	_, ok = exactIntegerValue(minInt64Bound)
	assert.True(t, ok)
}

func TestCanonicalFloatEncoding(t *testing.T) {
	tests := []struct {
		f    float64
		want floatEncoding
	}{
		{1.5, floatAsF16},
		{100000.0, floatAsF32},
		{1.1, floatAsF64},
		{3.4028234663852886e+38, floatAsF32},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, canonicalFloatEncoding(tt.f))
	}
}
