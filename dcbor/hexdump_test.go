package dcbor

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexDumpUnsigned(t *testing.T) {
	buf := Encode(Unsigned(42))
	out, err := HexDump(buf, nil)
	require.NoError(t, err)
	assert.Equal(t, "182a  # unsigned(42)\n", out)
}

func TestHexDumpArrayIndentsChildren(t *testing.T) {
	buf := Encode(Array([]Value{Unsigned(1), Unsigned(2)}))
	out, err := HexDump(buf, nil)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "array(2)")
	assert.Contains(t, lines[1], "  unsigned(1)")
	assert.Contains(t, lines[2], "  unsigned(2)")
}

func TestHexDumpTaggedShowsRegisteredName(t *testing.T) {
	buf := Encode(Tagged(24, Bytes([]byte{1})))
	out, err := HexDump(buf, DefaultTagRegistry)
	require.NoError(t, err)
	assert.Contains(t, out, "tag(24 encoded-cbor)")
}

func TestHexDumpRejectsNonCanonicalInput(t *testing.T) {
	buf := []byte{0xf9, 0x00, 0x00} // float16(0.0), should have been Unsigned(0)
	_, err := HexDump(buf, nil)
	require.Error(t, err)
	assert.Equal(t, ErrNonCanonicalNumeric, err.(*Error).Kind())
}

func TestHexDumpRejectsF64WhenF16Suffices(t *testing.T) {
	// spec.md §8: fb3ff8000000000000 is 1.5 encoded as f64, which round
	// trips through f16 and so must have been encoded f93e00 instead.
	buf, err := hex.DecodeString("fb3ff8000000000000")
	require.NoError(t, err)
	_, err = HexDump(buf, nil)
	require.Error(t, err)
	assert.Equal(t, ErrNonCanonicalNumeric, err.(*Error).Kind())
}

func TestHexDumpRejectsSpecTrailingByteExample(t *testing.T) {
	// spec.md §8: 0001 decodes unsigned 0 with one trailing byte left over.
	buf, err := hex.DecodeString("0001")
	require.NoError(t, err)
	_, err = HexDump(buf, nil)
	require.Error(t, err)
	assert.Equal(t, ErrUnusedData, err.(*Error).Kind())
}
