package dcbor

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PrintMode selects between the two diagnostic renderings (§4.7).
type PrintMode int

const (
	// PrintFlat renders everything on one line, with a space after every
	// comma and colon.
	PrintFlat PrintMode = iota
	// PrintPretty renders one entry per line with two-space indentation
	// per level.
	PrintPretty
)

// Diagnostic renders v as RFC 8949 §8 diagnostic notation, with the tag- and
// byte-string extensions described in §4.7. Output is deterministic given
// (v, mode, registry); it is not required to round-trip through a parser
// (§1 Non-goals).
func Diagnostic(v Value, mode PrintMode, registry *TagRegistry) string {
	if registry == nil {
		registry = DefaultTagRegistry
	}
	var b strings.Builder
	writeDiagnostic(&b, v, mode, registry, 0)
	return b.String()
}

func writeDiagnostic(b *strings.Builder, v Value, mode PrintMode, reg *TagRegistry, depth int) {
	switch v.kind {
	case KindUnsigned:
		b.WriteString(strconv.FormatUint(v.arg, 10))

	case KindNegative:
		if v.arg > math.MaxInt64 {
			// Magnitude exceeds int64; an explicit "-(arg+1)" form
			// avoids a lying signed cast.
			fmt.Fprintf(b, "-(%d+1)", v.arg)
		} else {
			b.WriteString(strconv.FormatInt(-int64(v.arg)-1, 10))
		}

	case KindBytes:
		b.WriteString("h'")
		b.WriteString(hex.EncodeToString(v.bytes))
		b.WriteString("'")

	case KindText:
		b.WriteString(strconv.Quote(v.text))

	case KindArray:
		writeDiagnosticArray(b, v.array, mode, reg, depth)

	case KindMap:
		writeDiagnosticMap(b, v.m, mode, reg, depth)

	case KindTagged:
		writeDiagnosticTagged(b, v, mode, reg, depth)

	case KindSimple:
		writeDiagnosticSimple(b, v)
	}
}

func writeDiagnosticArray(b *strings.Builder, items []Value, mode PrintMode, reg *TagRegistry, depth int) {
	if len(items) == 0 {
		b.WriteString("[]")
		return
	}
	if mode == PrintFlat {
		b.WriteString("[")
		for i, e := range items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeDiagnostic(b, e, mode, reg, depth)
		}
		b.WriteString("]")
		return
	}

	b.WriteString("[\n")
	for _, e := range items {
		writeIndent(b, depth+1)
		writeDiagnostic(b, e, mode, reg, depth+1)
		b.WriteString(",\n")
	}
	writeIndent(b, depth)
	b.WriteString("]")
}

func writeDiagnosticMap(b *strings.Builder, m *Map, mode PrintMode, reg *TagRegistry, depth int) {
	entries := m.Entries()
	if len(entries) == 0 {
		b.WriteString("{}")
		return
	}
	if mode == PrintFlat {
		b.WriteString("{")
		for i, e := range entries {
			if i > 0 {
				b.WriteString(", ")
			}
			writeDiagnostic(b, e.Key, mode, reg, depth)
			b.WriteString(": ")
			writeDiagnostic(b, e.Value, mode, reg, depth)
		}
		b.WriteString("}")
		return
	}

	b.WriteString("{\n")
	for _, e := range entries {
		writeIndent(b, depth+1)
		writeDiagnostic(b, e.Key, mode, reg, depth+1)
		b.WriteString(": ")
		writeDiagnostic(b, e.Value, mode, reg, depth+1)
		b.WriteString(",\n")
	}
	writeIndent(b, depth)
	b.WriteString("}")
}

func writeDiagnosticTagged(b *strings.Builder, v Value, mode PrintMode, reg *TagRegistry, depth int) {
	payload := v.TagPayload()

	if info, ok := reg.Lookup(v.tagNumber); ok && info.Summarizer != nil {
		b.WriteString(reg.NameOf(v.tagNumber))
		b.WriteString("(")
		b.WriteString(info.Summarizer(payload, mode))
		b.WriteString(")")
		return
	}

	b.WriteString(reg.NameOf(v.tagNumber))
	b.WriteString("(")
	writeDiagnostic(b, payload, mode, reg, depth)
	b.WriteString(")")
}

func writeDiagnosticSimple(b *strings.Builder, v Value) {
	switch v.simpleKind {
	case SimpleFalse:
		b.WriteString("false")
	case SimpleTrue:
		b.WriteString("true")
	case SimpleNull:
		b.WriteString("null")
	case SimpleFloat:
		writeDiagnosticFloat(b, v.float)
	}
}

func writeDiagnosticFloat(b *strings.Builder, f float64) {
	switch {
	case math.IsNaN(f):
		b.WriteString("NaN")
	case math.IsInf(f, 1):
		b.WriteString("Infinity")
	case math.IsInf(f, -1):
		b.WriteString("-Infinity")
	default:
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}
