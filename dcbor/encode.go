package dcbor

import "math"

// Encode serialises v to its canonical CBOR byte representation (§4.4).
// Encode assumes v already satisfies the §3.1 invariants (NFC text,
// correctly-ordered maps, no duplicate keys) — it does not normalise or
// reorder on the caller's behalf; see Normalize for that. Because it trusts
// its input, Encode has no failure modes.
func Encode(v Value) []byte {
	buf := make([]byte, 0, encodedLen(v))
	return appendValue(buf, v)
}

// encodedLen estimates the encoded size of v for buffer pre-sizing. It need
// not be exact (appendValue still grows the slice as needed); it only needs
// to avoid gross under-allocation for the common cases.
func encodedLen(v Value) int {
	switch v.kind {
	case KindUnsigned, KindNegative:
		return encodedHeadLen(v.arg)
	case KindBytes:
		return encodedHeadLen(uint64(len(v.bytes))) + len(v.bytes)
	case KindText:
		return encodedHeadLen(uint64(len(v.text))) + len(v.text)
	case KindArray:
		n := encodedHeadLen(uint64(len(v.array)))
		for _, e := range v.array {
			n += encodedLen(e)
		}
		return n
	case KindMap:
		n := encodedHeadLen(uint64(v.m.Len()))
		for _, e := range v.m.Entries() {
			n += encodedLen(e.Key) + encodedLen(e.Value)
		}
		return n
	case KindTagged:
		return encodedHeadLen(v.tagNumber) + encodedLen(*v.tagPayload)
	case KindSimple:
		return 9 // worst case (f64); appendValue trims to the real size
	default:
		return 1
	}
}

func appendValue(buf []byte, v Value) []byte {
	switch v.kind {
	case KindUnsigned:
		return encodeHead(buf, MajorUnsigned, v.arg)
	case KindNegative:
		return encodeHead(buf, MajorNegative, v.arg)
	case KindBytes:
		buf = encodeHead(buf, MajorBytes, uint64(len(v.bytes)))
		return append(buf, v.bytes...)
	case KindText:
		buf = encodeHead(buf, MajorText, uint64(len(v.text)))
		return append(buf, v.text...)
	case KindArray:
		buf = encodeHead(buf, MajorArray, uint64(len(v.array)))
		for _, e := range v.array {
			buf = appendValue(buf, e)
		}
		return buf
	case KindMap:
		buf = encodeHead(buf, MajorMap, uint64(v.m.Len()))
		for _, e := range v.m.Entries() {
			buf = appendValue(buf, e.Key)
			buf = appendValue(buf, e.Value)
		}
		return buf
	case KindTagged:
		buf = encodeHead(buf, MajorTagged, v.tagNumber)
		return appendValue(buf, *v.tagPayload)
	case KindSimple:
		return appendSimple(buf, v)
	default:
		panic("dcbor: appendValue on a Value with unknown kind")
	}
}

func appendSimple(buf []byte, v Value) []byte {
	switch v.simpleKind {
	case SimpleFalse:
		return append(buf, byte(MajorSimple)<<5|20)
	case SimpleTrue:
		return append(buf, byte(MajorSimple)<<5|21)
	case SimpleNull:
		return append(buf, byte(MajorSimple)<<5|22)
	case SimpleFloat:
		return appendCanonicalFloat(buf, v.float)
	default:
		panic("dcbor: appendSimple on a Value with unknown SimpleKind")
	}
}

// appendCanonicalFloat implements the full §4.1 float cascade: exact
// integers fold into Unsigned/Negative heads, NaN/Inf fold to fixed f16 bit
// patterns, and finite non-integers use the narrowest IEEE-754 width that
// round-trips exactly.
func appendCanonicalFloat(buf []byte, f float64) []byte {
	if iv, ok := exactIntegerValue(f); ok {
		return appendValue(buf, iv)
	}

	if math.IsNaN(f) {
		return appendF16Bits(buf, canonicalNaNBits)
	}
	if math.IsInf(f, 1) {
		return appendF16Bits(buf, canonicalPosInfBits)
	}
	if math.IsInf(f, -1) {
		return appendF16Bits(buf, canonicalNegInfBits)
	}

	switch canonicalFloatEncoding(f) {
	case floatAsF16:
		return appendF16Bits(buf, float16Bits(f))
	case floatAsF32:
		buf = append(buf, byte(MajorSimple)<<5|26)
		return appendUint32(buf, math.Float32bits(float32(f)))
	default:
		buf = append(buf, byte(MajorSimple)<<5|27)
		return appendUint64(buf, math.Float64bits(f))
	}
}

func appendF16Bits(buf []byte, bits uint16) []byte {
	buf = append(buf, byte(MajorSimple)<<5|25)
	return appendUint16(buf, bits)
}
