package dcbor

import "math"

// Decode parses buf as a single canonical CBOR value, requiring that the
// entire input be consumed (§4.5). Any byte sequence that is not already in
// canonical form is rejected; see the ErrorKind constants for the full
// taxonomy.
func Decode(buf []byte) (Value, error) {
	v, n, err := decodeValue(buf)
	if err != nil {
		return Value{}, err
	}
	if n != len(buf) {
		return Value{}, errUnusedData(len(buf) - n)
	}
	return v, nil
}

// decodeValue parses exactly one value from the front of buf and reports
// how many bytes it consumed. Children are fully parsed (and validated)
// before the parent value is constructed, so a rejected child never leaves
// a partially-built parent behind.
func decodeValue(buf []byte) (Value, int, error) {
	h, hn, err := decodeHead(buf)
	if err != nil {
		return Value{}, 0, err
	}

	switch h.major {
	case MajorUnsigned:
		if err := h.checkCanonicalWidth(); err != nil {
			return Value{}, 0, err
		}
		return Unsigned(h.arg), hn, nil

	case MajorNegative:
		if err := h.checkCanonicalWidth(); err != nil {
			return Value{}, 0, err
		}
		return NegativeArg(h.arg), hn, nil

	case MajorBytes:
		if err := h.checkCanonicalWidth(); err != nil {
			return Value{}, 0, err
		}
		n := hn + int(h.arg)
		if uint64(len(buf)) < uint64(n) || n < hn {
			return Value{}, 0, errUnderrun("truncated byte string")
		}
		return Bytes(buf[hn:n]), n, nil

	case MajorText:
		if err := h.checkCanonicalWidth(); err != nil {
			return Value{}, 0, err
		}
		n := hn + int(h.arg)
		if uint64(len(buf)) < uint64(n) || n < hn {
			return Value{}, 0, errUnderrun("truncated text string")
		}
		s, err := checkCanonicalText(buf[hn:n])
		if err != nil {
			return Value{}, 0, err
		}
		return Text(s), n, nil

	case MajorArray:
		return decodeArray(buf, h, hn)

	case MajorMap:
		return decodeMap(buf, h, hn)

	case MajorTagged:
		if err := h.checkCanonicalWidth(); err != nil {
			return Value{}, 0, err
		}
		payload, pn, err := decodeValue(buf[hn:])
		if err != nil {
			return Value{}, 0, err
		}
		return Tagged(h.arg, payload), hn + pn, nil

	case MajorSimple:
		return decodeSimple(buf, h, hn)

	default:
		return Value{}, 0, errUnsupportedHeaderValue(buf[0])
	}
}

func decodeArray(buf []byte, h head, hn int) (Value, int, error) {
	if err := h.checkCanonicalWidth(); err != nil {
		return Value{}, 0, err
	}
	items := make([]Value, 0, h.arg)
	off := hn
	for i := uint64(0); i < h.arg; i++ {
		v, n, err := decodeValue(buf[off:])
		if err != nil {
			return Value{}, 0, err
		}
		items = append(items, v)
		off += n
	}
	return Array(items), off, nil
}

func decodeMap(buf []byte, h head, hn int) (Value, int, error) {
	if err := h.checkCanonicalWidth(); err != nil {
		return Value{}, 0, err
	}
	m := NewMap()
	off := hn
	for i := uint64(0); i < h.arg; i++ {
		keyStart := off
		key, kn, err := decodeValue(buf[off:])
		if err != nil {
			return Value{}, 0, err
		}
		keyBytes := buf[keyStart : keyStart+kn]
		off += kn

		value, vn, err := decodeValue(buf[off:])
		if err != nil {
			return Value{}, 0, err
		}
		off += vn

		if err := m.appendChecked(keyBytes, key, value); err != nil {
			return Value{}, 0, err
		}
	}
	return MapValue(m), off, nil
}

func decodeSimple(buf []byte, h head, hn int) (Value, int, error) {
	switch h.width {
	case width0:
		switch h.arg {
		case 20:
			return Bool(false), hn, nil
		case 21:
			return Bool(true), hn, nil
		case 22:
			return Null(), hn, nil
		default:
			return Value{}, 0, errInvalidSimpleValue("simple value code not in {20, 21, 22}")
		}

	case width1:
		// Additional-info 24: "simple value in the next byte", reserved
		// for the 32-255 extension range this data model does not
		// support.
		return Value{}, 0, errInvalidSimpleValue("extended simple value is not representable")

	case width2: // f16
		f := float64(float16FromBits(uint16(h.arg)).Float32())
		if err := validateCanonicalFloatHead(f, h.arg, width2); err != nil {
			return Value{}, 0, err
		}
		return Float(f), hn, nil

	case width4: // f32
		f := float64(math.Float32frombits(uint32(h.arg)))
		if err := validateCanonicalFloatHead(f, h.arg, width4); err != nil {
			return Value{}, 0, err
		}
		return Float(f), hn, nil

	case width8: // f64
		f := math.Float64frombits(h.arg)
		if err := validateCanonicalFloatHead(f, h.arg, width8); err != nil {
			return Value{}, 0, err
		}
		return Float(f), hn, nil

	default:
		return Value{}, 0, errUnsupportedHeaderValue(buf[0])
	}
}

// validateCanonicalFloatHead reports NonCanonicalNumeric if the float head
// that produced f at actualWidth was not the minimal legal encoding (§4.1):
// an exact integer must have been an Unsigned/Negative head; NaN must be
// the single canonical f16 bit pattern; any finite value must use the
// narrowest width that round-trips it exactly. bits holds the raw argument
// as parsed (used only for the f16 NaN bit-pattern check).
func validateCanonicalFloatHead(f float64, bits uint64, actualWidth argWidth) error {
	if _, ok := exactIntegerValue(f); ok {
		return errNonCanonicalNumeric("float has an exact integer value and must be encoded as Unsigned/Negative")
	}

	if math.IsNaN(f) {
		if actualWidth != width2 || uint16(bits) != canonicalNaNBits {
			return errNonCanonicalNumeric("NaN must use the single canonical half-precision bit pattern 0x7e00")
		}
		return nil
	}

	if math.IsInf(f, 0) {
		if actualWidth != width2 {
			return errNonCanonicalNumeric("infinity must use the 2-byte half-precision encoding")
		}
		return nil
	}

	var want argWidth
	switch canonicalFloatEncoding(f) {
	case floatAsF16:
		want = width2
	case floatAsF32:
		want = width4
	default:
		want = width8
	}
	if actualWidth != want {
		return errNonCanonicalNumeric("float encoded wider than the minimal IEEE-754 width that round-trips it exactly")
	}
	return nil
}
