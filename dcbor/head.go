package dcbor

import "encoding/binary"

// encodeHead appends the canonical (major, argument) head to dst and
// returns the extended slice. It always emits the minimal-width form
// (§4.1); callers never need to pick a width themselves.
func encodeHead(dst []byte, major Major, argument uint64) []byte {
	w := minimalWidth(argument)
	if w == width0 {
		return append(dst, byte(major)<<5|byte(argument))
	}

	dst = append(dst, byte(major)<<5|additionalInfoFor(w))
	switch w {
	case width1:
		return append(dst, byte(argument))
	case width2:
		return appendUint16(dst, uint16(argument))
	case width4:
		return appendUint32(dst, uint32(argument))
	default:
		return appendUint64(dst, argument)
	}
}

// encodedHeadLen reports how many bytes encodeHead would append, without
// allocating.
func encodedHeadLen(argument uint64) int {
	switch minimalWidth(argument) {
	case width0:
		return 1
	case width1:
		return 2
	case width2:
		return 3
	case width4:
		return 5
	default:
		return 9
	}
}

func appendUint16(dst []byte, v uint16) []byte {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return append(dst, buf[:]...)
}

func appendUint32(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

func appendUint64(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

// head is a parsed (major, additional-info, argument) triple, prior to any
// canonicality check.
type head struct {
	major Major
	info  byte // the raw low-5-bits additional-info value, 0-31
	arg   uint64
	// width is the number of bytes the argument itself occupied (0 if the
	// argument was folded into the initial byte), used to check §4.1
	// canonicality on decode.
	width argWidth
}

// decodeHead parses one CBOR head from the front of buf, returning the
// parsed head and the number of bytes consumed. It rejects reserved
// additional-info values (28-30) and indefinite length (31) as
// UnsupportedHeaderValue, but does NOT check minimal-width canonicality —
// that is the caller's job (decode.go), since the legal check differs by
// major type (major 7's additional-info is a simple-value code or a float
// width, not a plain length argument).
func decodeHead(buf []byte) (head, int, error) {
	if len(buf) < 1 {
		return head{}, 0, errUnderrun("expected a CBOR head, found end of input")
	}

	initial := buf[0]
	major := Major(initial >> 5)
	info := initial & 0x1f

	if info < 24 {
		return head{major: major, info: info, arg: uint64(info), width: width0}, 1, nil
	}

	switch info {
	case 24:
		if len(buf) < 2 {
			return head{}, 0, errUnderrun("truncated 1-byte head argument")
		}
		return head{major: major, info: info, arg: uint64(buf[1]), width: width1}, 2, nil
	case 25:
		if len(buf) < 3 {
			return head{}, 0, errUnderrun("truncated 2-byte head argument")
		}
		return head{major: major, info: info, arg: uint64(binary.BigEndian.Uint16(buf[1:3])), width: width2}, 3, nil
	case 26:
		if len(buf) < 5 {
			return head{}, 0, errUnderrun("truncated 4-byte head argument")
		}
		return head{major: major, info: info, arg: uint64(binary.BigEndian.Uint32(buf[1:5])), width: width4}, 5, nil
	case 27:
		if len(buf) < 9 {
			return head{}, 0, errUnderrun("truncated 8-byte head argument")
		}
		return head{major: major, info: info, arg: binary.BigEndian.Uint64(buf[1:9]), width: width8}, 9, nil
	case 28, 29, 30:
		return head{}, 0, errUnsupportedHeaderValue(initial)
	default: // 31: indefinite length / break
		return head{}, 0, errUnsupportedHeaderValue(initial)
	}
}

// checkCanonicalWidth reports NonCanonicalNumeric if h's argument was
// encoded wider than minimalWidth(h.arg) requires. Used for major types
// 0, 1, 2, 3, 4, 5, 6, where the additional-info directly encodes a
// length/value argument (as opposed to major 7, whose codes are validated
// separately in decode.go).
func (h head) checkCanonicalWidth() error {
	if h.width != minimalWidth(h.arg) {
		return errNonCanonicalNumeric("head argument encoded wider than the minimal legal width")
	}
	return nil
}
