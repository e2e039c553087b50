package dcbor

import (
	"encoding/hex"
	"fmt"
	"math"
	"strings"
)

// HexDump renders buf as the annotated, tree-indented hex listing described
// in §4.8: one line per CBOR head or primitive payload, each line showing
// the raw hex bytes for that item followed by a `# <indent><description>`
// comment. buf must already be canonical CBOR; HexDump surfaces the same
// decode errors Decode would.
func HexDump(buf []byte, registry *TagRegistry) (string, error) {
	if registry == nil {
		registry = DefaultTagRegistry
	}
	var b strings.Builder
	n, err := annotate(&b, buf, 0, registry)
	if err != nil {
		return "", err
	}
	if n != len(buf) {
		return "", errUnusedData(len(buf) - n)
	}
	return b.String(), nil
}

func annotate(b *strings.Builder, buf []byte, depth int, reg *TagRegistry) (int, error) {
	h, hn, err := decodeHead(buf)
	if err != nil {
		return 0, err
	}

	switch h.major {
	case MajorUnsigned:
		if err := h.checkCanonicalWidth(); err != nil {
			return 0, err
		}
		writeAnnotatedLine(b, buf[:hn], depth, fmt.Sprintf("unsigned(%d)", h.arg))
		return hn, nil

	case MajorNegative:
		if err := h.checkCanonicalWidth(); err != nil {
			return 0, err
		}
		writeAnnotatedLine(b, buf[:hn], depth, fmt.Sprintf("negative(%s)", negativeDescription(h.arg)))
		return hn, nil

	case MajorBytes:
		if err := h.checkCanonicalWidth(); err != nil {
			return 0, err
		}
		total := hn + int(h.arg)
		if total > len(buf) || total < hn {
			return 0, errUnderrun("truncated byte string")
		}
		writeAnnotatedLine(b, buf[:total], depth, fmt.Sprintf("bytes(%d)", h.arg))
		return total, nil

	case MajorText:
		if err := h.checkCanonicalWidth(); err != nil {
			return 0, err
		}
		total := hn + int(h.arg)
		if total > len(buf) || total < hn {
			return 0, errUnderrun("truncated text string")
		}
		s, err := checkCanonicalText(buf[hn:total])
		if err != nil {
			return 0, err
		}
		writeAnnotatedLine(b, buf[:total], depth, fmt.Sprintf("text(%d) %q", h.arg, s))
		return total, nil

	case MajorArray:
		if err := h.checkCanonicalWidth(); err != nil {
			return 0, err
		}
		writeAnnotatedLine(b, buf[:hn], depth, fmt.Sprintf("array(%d)", h.arg))
		off := hn
		for i := uint64(0); i < h.arg; i++ {
			n, err := annotate(b, buf[off:], depth+1, reg)
			if err != nil {
				return 0, err
			}
			off += n
		}
		return off, nil

	case MajorMap:
		if err := h.checkCanonicalWidth(); err != nil {
			return 0, err
		}
		writeAnnotatedLine(b, buf[:hn], depth, fmt.Sprintf("map(%d)", h.arg))
		off := hn
		var prevKey []byte
		for i := uint64(0); i < h.arg; i++ {
			keyStart := off
			n, err := annotate(b, buf[off:], depth+1, reg)
			if err != nil {
				return 0, err
			}
			keyBytes := buf[keyStart : keyStart+n]
			off += n
			if prevKey != nil {
				switch compareBytes(keyBytes, prevKey) {
				case 0:
					return 0, errDuplicateMapKey()
				case -1:
					return 0, errMisorderedMapKey()
				}
			}
			prevKey = keyBytes

			n, err = annotate(b, buf[off:], depth+1, reg)
			if err != nil {
				return 0, err
			}
			off += n
		}
		return off, nil

	case MajorTagged:
		if err := h.checkCanonicalWidth(); err != nil {
			return 0, err
		}
		desc := fmt.Sprintf("tag(%d)", h.arg)
		if info, ok := reg.Lookup(h.arg); ok && info.Name != "" {
			desc = fmt.Sprintf("tag(%d %s)", h.arg, info.Name)
		}
		writeAnnotatedLine(b, buf[:hn], depth, desc)
		n, err := annotate(b, buf[hn:], depth+1, reg)
		if err != nil {
			return 0, err
		}
		return hn + n, nil

	case MajorSimple:
		return annotateSimple(b, buf, h, hn, depth)

	default:
		return 0, errUnsupportedHeaderValue(buf[0])
	}
}

func annotateSimple(b *strings.Builder, buf []byte, h head, hn int, depth int) (int, error) {
	switch h.width {
	case width0:
		switch h.arg {
		case 20:
			writeAnnotatedLine(b, buf[:hn], depth, "false")
		case 21:
			writeAnnotatedLine(b, buf[:hn], depth, "true")
		case 22:
			writeAnnotatedLine(b, buf[:hn], depth, "null")
		default:
			return 0, errInvalidSimpleValue("simple value code not in {20, 21, 22}")
		}
		return hn, nil

	case width1:
		return 0, errInvalidSimpleValue("extended simple value is not representable")

	case width2:
		f := float64(float16FromBits(uint16(h.arg)).Float32())
		if err := validateCanonicalFloatHead(f, h.arg, width2); err != nil {
			return 0, err
		}
		writeAnnotatedLine(b, buf[:hn], depth, fmt.Sprintf("float16(%s)", floatDescription(f)))
		return hn, nil

	case width4:
		f := float64(math.Float32frombits(uint32(h.arg)))
		if err := validateCanonicalFloatHead(f, h.arg, width4); err != nil {
			return 0, err
		}
		writeAnnotatedLine(b, buf[:hn], depth, fmt.Sprintf("float32(%s)", floatDescription(f)))
		return hn, nil

	case width8:
		f := math.Float64frombits(h.arg)
		if err := validateCanonicalFloatHead(f, h.arg, width8); err != nil {
			return 0, err
		}
		writeAnnotatedLine(b, buf[:hn], depth, fmt.Sprintf("float64(%s)", floatDescription(f)))
		return hn, nil

	default:
		return 0, errUnsupportedHeaderValue(buf[0])
	}
}

func negativeDescription(argPlusOne uint64) string {
	if argPlusOne > math.MaxInt64 {
		return fmt.Sprintf("-(%d+1)", argPlusOne)
	}
	return fmt.Sprintf("%d", -int64(argPlusOne)-1)
}

func floatDescription(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return fmt.Sprintf("%g", f)
	}
}

func writeAnnotatedLine(b *strings.Builder, itemBytes []byte, depth int, description string) {
	b.WriteString(hex.EncodeToString(itemBytes))
	b.WriteString("  # ")
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
	b.WriteString(description)
	b.WriteString("\n")
}

func compareBytes(a, b []byte) int {
	switch {
	case string(a) < string(b):
		return -1
	case string(a) > string(b):
		return 1
	default:
		return 0
	}
}
