// Package dcbor implements deterministic CBOR: a canonical encoding over the
// RFC 8949 data model in which every abstract value has exactly one valid
// byte representation, and decoding rejects any input that is not already in
// that canonical form.
package dcbor

import "math"

// Major identifies a CBOR major type (the top 3 bits of the initial byte).
type Major byte

const (
	MajorUnsigned Major = 0
	MajorNegative Major = 1
	MajorBytes    Major = 2
	MajorText     Major = 3
	MajorArray    Major = 4
	MajorMap      Major = 5
	MajorTagged   Major = 6
	MajorSimple   Major = 7
)

// Kind discriminates the variant carried by a Value.
type Kind int

const (
	KindUnsigned Kind = iota
	KindNegative
	KindBytes
	KindText
	KindArray
	KindMap
	KindTagged
	KindSimple
)

// SimpleKind discriminates the four simple-value shapes: the two booleans,
// null, and float (§3.1).
type SimpleKind int

const (
	SimpleFalse SimpleKind = iota
	SimpleTrue
	SimpleNull
	SimpleFloat
)

// Value is a single canonical CBOR data item. The zero Value is Unsigned(0).
//
// Value is a closed discriminated union: exactly one of the typed accessors
// below is meaningful, selected by Kind(). Construct values with the
// package-level constructors (Unsigned, Negative, Bytes, ...) rather than
// literal struct initialisation.
//
// Unsigned and Negative both store their CBOR-head argument (the raw u64
// that follows the initial byte) directly: for Unsigned that argument IS the
// abstract value; for Negative the abstract value is -(argument+1). Every
// integer representable by a single major-0/1 item fits in a u64 argument,
// so no arbitrary-precision backing is needed (§3.1).
type Value struct {
	kind Kind

	arg uint64 // Unsigned: the value itself. Negative: abs(value)-1.

	bytes []byte
	text  string

	array []Value
	m     *Map

	tagNumber  uint64
	tagPayload *Value

	simpleKind SimpleKind
	float      float64
}

func (v Value) Kind() Kind {
	return v.kind
}

// Unsigned constructs a non-negative integer value, 0 … 2^64-1.
func Unsigned(n uint64) Value {
	return Value{kind: KindUnsigned, arg: n}
}

// negativeFromArg constructs a negative integer from its CBOR-head argument
// (abs(value)-1), which is never itself negative.
func negativeFromArg(argPlusOne uint64) Value {
	return Value{kind: KindNegative, arg: argPlusOne}
}

// NegativeInt64 constructs a negative integer value from its ordinary
// (negative) signed representation. n must be < 0.
func NegativeInt64(n int64) Value {
	if n >= 0 {
		panic("dcbor: NegativeInt64 given a non-negative value")
	}
	// n = -(argPlusOne+1) => argPlusOne = -n-1, computed in uint64 space
	// so that n == math.MinInt64 does not overflow.
	argPlusOne := uint64(-(n + 1))
	return negativeFromArg(argPlusOne)
}

// NegativeArg constructs a negative integer value directly from its
// CBOR-head argument (abs(value)-1), for callers decoding major type 1 who
// already have the raw argument and want to avoid round-tripping through
// int64 (whose range is one bit narrower than the argument's).
func NegativeArg(argPlusOne uint64) Value {
	return negativeFromArg(argPlusOne)
}

// Bytes constructs a byte-string value.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, bytes: append([]byte(nil), b...)}
}

// Text constructs a text-string value. The caller is responsible for
// ensuring s is already NFC-normalised valid UTF-8 (Normalize does this);
// the encoder does not re-normalise (§4.4).
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Array constructs an array value from its elements, in order.
func Array(items []Value) Value {
	return Value{kind: KindArray, array: append([]Value(nil), items...)}
}

// MapValue wraps a *Map into a Value.
func MapValue(m *Map) Value {
	return Value{kind: KindMap, m: m}
}

// Tagged constructs a tagged value.
func Tagged(tag uint64, payload Value) Value {
	return Value{kind: KindTagged, tagNumber: tag, tagPayload: &payload}
}

// Bool constructs the simple value true/false.
func Bool(b bool) Value {
	if b {
		return Value{kind: KindSimple, simpleKind: SimpleTrue}
	}
	return Value{kind: KindSimple, simpleKind: SimpleFalse}
}

// Null constructs the simple value null.
func Null() Value {
	return Value{kind: KindSimple, simpleKind: SimpleNull}
}

// Float constructs a float simple value from its raw IEEE-754 binary64
// semantics. Canonicalisation (§4.1) happens at encode time, not here:
// Float(42.0) is a legal in-memory Value, and it is the encoder's job to
// notice that it canonicalises to Unsigned(42).
func Float(f float64) Value {
	return Value{kind: KindSimple, simpleKind: SimpleFloat, float: f}
}

// IsUnsigned, IsNegative, ... report the variant without panicking.
func (v Value) IsUnsigned() bool { return v.kind == KindUnsigned }
func (v Value) IsNegative() bool { return v.kind == KindNegative }
func (v Value) IsBytes() bool    { return v.kind == KindBytes }
func (v Value) IsText() bool     { return v.kind == KindText }
func (v Value) IsArray() bool    { return v.kind == KindArray }
func (v Value) IsMap() bool      { return v.kind == KindMap }
func (v Value) IsTagged() bool   { return v.kind == KindTagged }
func (v Value) IsSimple() bool   { return v.kind == KindSimple }

// SimpleKindOf reports which simple-value shape v carries. Panics if v is
// not a simple value.
func (v Value) SimpleKindOf() SimpleKind {
	if v.kind != KindSimple {
		panic("dcbor: SimpleKindOf on a non-simple value")
	}
	return v.simpleKind
}

// AsUnsignedValue returns the raw u64 backing an Unsigned value.
func (v Value) AsUnsignedValue() uint64 {
	if v.kind != KindUnsigned {
		panic("dcbor: AsUnsignedValue on a non-unsigned value")
	}
	return v.arg
}

// AsNegativeArg returns the CBOR-head argument (abs(value)-1) backing a
// Negative value.
func (v Value) AsNegativeArg() uint64 {
	if v.kind != KindNegative {
		panic("dcbor: AsNegativeArg on a non-negative value")
	}
	return v.arg
}

// AsInt64 returns a Negative value's ordinary signed representation.
// Panics if the magnitude does not fit in int64 (callers who need the full
// range should use AsNegativeArg).
func (v Value) AsInt64() int64 {
	if v.kind != KindNegative {
		panic("dcbor: AsInt64 on a non-negative value")
	}
	if v.arg > math.MaxInt64 {
		panic("dcbor: AsInt64 overflow; use AsNegativeArg")
	}
	return -int64(v.arg) - 1
}

// AsBytesValue returns the raw bytes backing a Bytes value.
func (v Value) AsBytesValue() []byte {
	if v.kind != KindBytes {
		panic("dcbor: AsBytesValue on a non-bytes value")
	}
	return v.bytes
}

// AsTextValue returns the string backing a Text value.
func (v Value) AsTextValue() string {
	if v.kind != KindText {
		panic("dcbor: AsTextValue on a non-text value")
	}
	return v.text
}

// AsArrayValue returns the elements backing an Array value.
func (v Value) AsArrayValue() []Value {
	if v.kind != KindArray {
		panic("dcbor: AsArrayValue on a non-array value")
	}
	return v.array
}

// AsMapValue returns the *Map backing a Map value.
func (v Value) AsMapValue() *Map {
	if v.kind != KindMap {
		panic("dcbor: AsMapValue on a non-map value")
	}
	return v.m
}

// TagNumber returns the tag number of a Tagged value.
func (v Value) TagNumber() uint64 {
	if v.kind != KindTagged {
		panic("dcbor: TagNumber on a non-tagged value")
	}
	return v.tagNumber
}

// TagPayload returns the payload of a Tagged value.
func (v Value) TagPayload() Value {
	if v.kind != KindTagged {
		panic("dcbor: TagPayload on a non-tagged value")
	}
	return *v.tagPayload
}

// AsFloatValue returns the f64 backing a float simple value.
func (v Value) AsFloatValue() float64 {
	if v.kind != KindSimple || v.simpleKind != SimpleFloat {
		panic("dcbor: AsFloatValue on a non-float value")
	}
	return v.float
}

// Equal reports whether v and other are the same in-memory value. Two
// Values are equal iff they have the same Kind and equal payloads,
// recursively; this is the CBOR-level notion of equality described in §3.1,
// distinct from envelope digest equivalence (§3.2). Equal does not apply
// the float canonicalisation the encoder performs: Float(42.0) and
// Unsigned(42) encode to the same bytes but are not Equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindUnsigned, KindNegative:
		return v.arg == other.arg
	case KindBytes:
		return string(v.bytes) == string(other.bytes)
	case KindText:
		return v.text == other.text
	case KindArray:
		if len(v.array) != len(other.array) {
			return false
		}
		for i := range v.array {
			if !v.array[i].Equal(other.array[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return v.m.Equal(other.m)
	case KindTagged:
		return v.tagNumber == other.tagNumber && v.tagPayload.Equal(*other.tagPayload)
	case KindSimple:
		if v.simpleKind != other.simpleKind {
			return false
		}
		if v.simpleKind == SimpleFloat {
			// Every NaN encodes to the single canonical bit pattern,
			// so any two NaNs are equal; all other floats (including
			// +0/-0) compare by f64 value.
			if math.IsNaN(v.float) && math.IsNaN(other.float) {
				return true
			}
			return v.float == other.float
		}
		return true
	default:
		return false
	}
}
