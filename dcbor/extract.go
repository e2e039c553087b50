package dcbor

import "math"

// The extraction helpers below are the typed convenience layer mentioned in
// §4.5/§7: unlike Decode itself, they can fail on a structurally valid value
// because the caller wanted a different shape or a narrower numeric type.

// ExpectUnsigned extracts a uint64 from v, reporting OutOfRange if v is a
// Negative value (any Negative is, by definition, out of uint64's range)
// and WrongType if v is not an integer at all.
func ExpectUnsigned(v Value) (uint64, error) {
	switch v.kind {
	case KindUnsigned:
		return v.arg, nil
	case KindNegative:
		return 0, errOutOfRange("negative value cannot be represented as an unsigned integer")
	default:
		return 0, errWrongType("expected an unsigned integer")
	}
}

// ExpectInt64 extracts an int64 from v, reporting OutOfRange if the
// magnitude does not fit.
func ExpectInt64(v Value) (int64, error) {
	switch v.kind {
	case KindUnsigned:
		if v.arg > math.MaxInt64 {
			return 0, errOutOfRange("unsigned value exceeds int64 range")
		}
		return int64(v.arg), nil
	case KindNegative:
		if v.arg > math.MaxInt64 {
			return 0, errOutOfRange("negative value exceeds int64 range")
		}
		return -int64(v.arg) - 1, nil
	default:
		return 0, errWrongType("expected an integer")
	}
}

// ExpectBytes extracts the byte slice from v.
func ExpectBytes(v Value) ([]byte, error) {
	if v.kind != KindBytes {
		return nil, errWrongType("expected a byte string")
	}
	return v.AsBytesValue(), nil
}

// ExpectText extracts the string from v.
func ExpectText(v Value) (string, error) {
	if v.kind != KindText {
		return "", errWrongType("expected a text string")
	}
	return v.AsTextValue(), nil
}

// ExpectArray extracts the element slice from v.
func ExpectArray(v Value) ([]Value, error) {
	if v.kind != KindArray {
		return nil, errWrongType("expected an array")
	}
	return v.AsArrayValue(), nil
}

// ExpectMap extracts the *Map from v.
func ExpectMap(v Value) (*Map, error) {
	if v.kind != KindMap {
		return nil, errWrongType("expected a map")
	}
	return v.AsMapValue(), nil
}

// ExpectTag extracts the payload of v, requiring it to be Tagged with tag
// number expected. Reports WrongTag (carrying both the expected and actual
// tag number) on mismatch, WrongType if v is not tagged at all.
func ExpectTag(v Value, expected uint64) (Value, error) {
	if v.kind != KindTagged {
		return Value{}, errWrongType("expected a tagged value")
	}
	if v.tagNumber != expected {
		return Value{}, errWrongTag(expected, v.tagNumber)
	}
	return *v.tagPayload, nil
}

// RequireMapKey looks up key in m, reporting MissingMapKey if absent.
func RequireMapKey(m *Map, key Value) (Value, error) {
	v, ok := m.Get(key)
	if !ok {
		return Value{}, errMissingMapKey(string(Encode(key)))
	}
	return v, nil
}

// RequireTextMapKey is the common case of RequireMapKey with a text key.
func RequireTextMapKey(m *Map, key string) (Value, error) {
	return RequireMapKey(m, Text(key))
}
