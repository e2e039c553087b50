package envelope

import (
	"github.com/schjonhaug/dcbor-envelope/dcbor"
)

// Envelope tag numbers, adopted as stable wire constants per §6.2 (the
// spec's own instruction: "implementations should adopt the Gordian
// Envelope registry values").
const (
	TagEnvelope   = 200
	TagLeaf       = 24
	TagWrapped    = 224
	TagAssertion  = 221
	TagNode       = 217
	TagElided     = 203
	TagEncrypted  = 204
	TagCompressed = 205
)

// ToCBOR renders e as its tag-200 dCBOR representation (§6.2). Every
// Assertion is always encoded as tag 221 wrapping a genuine 1-entry Map —
// never fused with, or shortcut around, its map payload. This is the fix
// for the "CborMap parsing issue with complex assertions" noted as an open
// question: the ambiguity only arises from shortcuts this encoder never
// takes (§9).
func ToCBOR(e *Envelope) dcbor.Value {
	var inner dcbor.Value
	switch e.kase {
	case CaseLeaf:
		inner = dcbor.Tagged(TagLeaf, e.leafValue)

	case CaseWrapped:
		inner = dcbor.Tagged(TagWrapped, ToCBOR(e.wrapped))

	case CaseAssertion:
		m := dcbor.NewMap()
		_ = m.Insert(ToCBOR(e.predicate), ToCBOR(e.object))
		inner = dcbor.Tagged(TagAssertion, dcbor.MapValue(m))

	case CaseNode:
		assertionItems := make([]dcbor.Value, len(e.assertions))
		for i, a := range e.assertions {
			assertionItems[i] = ToCBOR(a)
		}
		inner = dcbor.Tagged(TagNode, dcbor.Array([]dcbor.Value{
			ToCBOR(e.subject),
			dcbor.Array(assertionItems),
		}))

	case CaseElided:
		inner = dcbor.Tagged(TagElided, dcbor.Bytes(e.elidedDigest[:]))

	case CaseEncrypted:
		inner = dcbor.Tagged(TagEncrypted, dcbor.Array([]dcbor.Value{
			dcbor.Bytes(e.elidedDigest[:]),
			dcbor.Bytes(e.blob),
		}))

	case CaseCompressed:
		inner = dcbor.Tagged(TagCompressed, dcbor.Array([]dcbor.Value{
			dcbor.Bytes(e.elidedDigest[:]),
			dcbor.Bytes(e.blob),
		}))

	default:
		panic("envelope: ToCBOR on an Envelope with unknown Case")
	}
	return dcbor.Tagged(TagEnvelope, inner)
}

// Encode is ToCBOR followed by dcbor.Encode — the canonical byte
// representation of e (§6.1).
func Encode(e *Envelope) []byte {
	return dcbor.Encode(ToCBOR(e))
}

// FromCBOR parses v back into an Envelope, requiring the tag-200 wrapping
// and one of the seven recognised inner tags (§6.2). Digests of
// reconstructed envelopes are recomputed from their decoded children; the
// wire form carries no digest for Leaf, Wrapped, Assertion or Node
// envelopes, and FromCBOR compares no digest against an expected value.
func FromCBOR(v dcbor.Value) (*Envelope, error) {
	payload, err := dcbor.ExpectTag(v, TagEnvelope)
	if err != nil {
		return nil, errInvalidType("expected tag 200 (envelope): " + err.Error())
	}
	if !payload.IsTagged() {
		return nil, errInvalidType("envelope payload is not a tagged value")
	}

	switch payload.TagNumber() {
	case TagLeaf:
		return Leaf(payload.TagPayload()), nil

	case TagWrapped:
		inner, err := FromCBOR(payload.TagPayload())
		if err != nil {
			return nil, err
		}
		return Wrap(inner), nil

	case TagAssertion:
		m, err := dcbor.ExpectMap(payload.TagPayload())
		if err != nil {
			return nil, errInvalidType("assertion payload is not a map")
		}
		entries := m.Entries()
		if len(entries) != 1 {
			return nil, errInvalidType("assertion map must have exactly one entry")
		}
		pred, err := FromCBOR(entries[0].Key)
		if err != nil {
			return nil, err
		}
		obj, err := FromCBOR(entries[0].Value)
		if err != nil {
			return nil, err
		}
		return NewAssertion(pred, obj), nil

	case TagNode:
		items, err := dcbor.ExpectArray(payload.TagPayload())
		if err != nil || len(items) != 2 {
			return nil, errInvalidType("node payload must be a 2-element array")
		}
		subject, err := FromCBOR(items[0])
		if err != nil {
			return nil, err
		}
		assertionItems, err := dcbor.ExpectArray(items[1])
		if err != nil {
			return nil, errInvalidType("node assertion-set payload is not an array")
		}
		assertions := make([]*Envelope, len(assertionItems))
		for i, av := range assertionItems {
			a, err := FromCBOR(av)
			if err != nil {
				return nil, err
			}
			if a.kase != CaseAssertion {
				return nil, errInvalidType("node assertion-set entry is not an Assertion")
			}
			assertions[i] = a
		}
		return newNode(subject, assertions), nil

	case TagElided:
		b, err := dcbor.ExpectBytes(payload.TagPayload())
		if err != nil || len(b) != 32 {
			return nil, errInvalidType("elided payload must be a 32-byte digest")
		}
		var d Digest
		copy(d[:], b)
		return elided(d), nil

	case TagEncrypted, TagCompressed:
		items, err := dcbor.ExpectArray(payload.TagPayload())
		if err != nil || len(items) != 2 {
			return nil, errInvalidType("encrypted/compressed payload must be [digest, blob]")
		}
		digestBytes, err := dcbor.ExpectBytes(items[0])
		if err != nil || len(digestBytes) != 32 {
			return nil, errInvalidType("encrypted/compressed payload's first element must be a 32-byte digest")
		}
		blob, err := dcbor.ExpectBytes(items[1])
		if err != nil {
			return nil, errInvalidType("encrypted/compressed payload's second element must be a byte string")
		}
		var d Digest
		copy(d[:], digestBytes)
		if payload.TagNumber() == TagEncrypted {
			return NewEncrypted(d, blob), nil
		}
		return NewCompressed(d, blob), nil

	default:
		return nil, errInvalidType("unrecognised envelope payload tag")
	}
}

// Decode parses buf as canonical dCBOR and then as an Envelope.
func Decode(buf []byte) (*Envelope, error) {
	v, err := dcbor.Decode(buf)
	if err != nil {
		return nil, err
	}
	return FromCBOR(v)
}
