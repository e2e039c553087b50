package envelope

import (
	"testing"

	"github.com/schjonhaug/dcbor-envelope/dcbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeLeafRoundTrip(t *testing.T) {
	e := leafText("Alice")
	got, err := Decode(Encode(e))
	require.NoError(t, err)
	assert.True(t, got.Equal(e))
	assert.Equal(t, CaseLeaf, got.Case())
}

func TestEncodeDecodeWrappedRoundTrip(t *testing.T) {
	e := Wrap(leafText("Alice"))
	got, err := Decode(Encode(e))
	require.NoError(t, err)
	assert.True(t, got.Equal(e))
	assert.Equal(t, CaseWrapped, got.Case())
}

func TestEncodeDecodeNodeWithMultipleAssertionsRoundTrip(t *testing.T) {
	_, root, _, _, _ := buildAliceKnowsThree(t)
	got, err := Decode(Encode(root))
	require.NoError(t, err)
	assert.True(t, got.Equal(root))
	assert.Equal(t, CaseNode, got.Case())
	assert.Len(t, got.Assertions(), 3)
}

func TestEncodeDecodeElidedRoundTrip(t *testing.T) {
	e := Elide(leafText("Alice"))
	got, err := Decode(Encode(e))
	require.NoError(t, err)
	assert.Equal(t, CaseElided, got.Case())
	assert.Equal(t, 0, got.ElidedDigest().Compare(e.ElidedDigest()))
}

func TestEncodeDecodeEncryptedRoundTrip(t *testing.T) {
	d := leafText("secret").Digest()
	e := NewEncrypted(d, []byte{0x01, 0x02, 0x03})
	got, err := Decode(Encode(e))
	require.NoError(t, err)
	assert.Equal(t, CaseEncrypted, got.Case())
	assert.Equal(t, 0, got.Digest().Compare(d))
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, got.Blob())
}

func TestEncodeDecodeCompressedRoundTrip(t *testing.T) {
	d := leafText("secret").Digest()
	e := NewCompressed(d, []byte{0xaa, 0xbb})
	got, err := Decode(Encode(e))
	require.NoError(t, err)
	assert.Equal(t, CaseCompressed, got.Case())
	assert.Equal(t, 0, got.Digest().Compare(d))
	assert.Equal(t, []byte{0xaa, 0xbb}, got.Blob())
}

// TestAssertionAlwaysEncodesAsTag221OverGenuineMap resolves the "CborMap
// parsing issue with complex assertions" open question: an Assertion's
// wire form must be tag 221 wrapping an actual 1-entry dcbor.Map, never a
// fused shortcut, so that a decoder can always distinguish the tag from
// its payload unambiguously (§9).
func TestAssertionAlwaysEncodesAsTag221OverGenuineMap(t *testing.T) {
	a := knowsAssertion("Bob")
	cbor := ToCBOR(a)

	payload, err := dcbor.ExpectTag(cbor, TagEnvelope)
	require.NoError(t, err)
	require.True(t, payload.IsTagged())
	assert.Equal(t, uint64(TagAssertion), payload.TagNumber())

	m, err := dcbor.ExpectMap(payload.TagPayload())
	require.NoError(t, err)
	assert.Len(t, m.Entries(), 1)
}

func TestEncodeDecodeAssertionWithComplexObjectRoundTrip(t *testing.T) {
	// The object of the assertion is itself a Node, exercising the case
	// that motivated §9's open question.
	inner, err := AddAssertion(leafText("Bob"), knowsAssertion("Carol"))
	require.NoError(t, err)
	a := NewAssertion(leafText("knows"), inner)

	got, err := Decode(Encode(a))
	require.NoError(t, err)
	assert.True(t, got.Equal(a))
	assert.Equal(t, CaseAssertion, got.Case())
	assert.True(t, got.Object().Equal(inner))
}

func TestDecodeRejectsMissingEnvelopeTag(t *testing.T) {
	_, err := FromCBOR(dcbor.Tagged(TagLeaf, dcbor.Text("Alice")))
	require.Error(t, err)
}

func TestDecodeRejectsAssertionMapWithWrongEntryCount(t *testing.T) {
	m := dcbor.NewMap()
	_ = m.Insert(dcbor.Text("a"), dcbor.Text("b"))
	_ = m.Insert(dcbor.Text("c"), dcbor.Text("d"))
	bad := dcbor.Tagged(TagEnvelope, dcbor.Tagged(TagAssertion, dcbor.MapValue(m)))

	_, err := FromCBOR(bad)
	require.Error(t, err)
}

func TestDecodeRejectsElidedPayloadOfWrongLength(t *testing.T) {
	bad := dcbor.Tagged(TagEnvelope, dcbor.Tagged(TagElided, dcbor.Bytes([]byte{1, 2, 3})))
	_, err := FromCBOR(bad)
	require.Error(t, err)
}

func TestDecodeRecomputesNodeDigestFromChildren(t *testing.T) {
	_, root, _, _, _ := buildAliceKnowsThree(t)
	cbor := ToCBOR(root)
	got, err := FromCBOR(cbor)
	require.NoError(t, err)
	// The digest stored on the decoded Node is recomputed, not taken
	// from the wire, so it must still match the original exactly.
	assert.Equal(t, root.Digest(), got.Digest())
}
