package envelope

import (
	"fmt"
	"strings"

	"github.com/schjonhaug/dcbor-envelope/dcbor"
)

// digestPrefixLen is the number of hex characters of a digest shown in
// tree output (§6.3: "a short prefix of the digest hex (~7 chars)").
const digestPrefixLen = 7

func (d Digest) shortString() string {
	return d.String()[:digestPrefixLen]
}

// edgeLabel returns the tree-format edge label for kind, or "" for the
// root and for assertion edges (§6.3: "subj", "pred", "obj", "cont").
func edgeLabel(kind EdgeKind) string {
	switch kind {
	case EdgeSubject:
		return "subj"
	case EdgePredicate:
		return "pred"
	case EdgeObject:
		return "obj"
	case EdgeContent:
		return "cont"
	case EdgeAssertion:
		return ""
	default:
		return ""
	}
}

// elementDescription renders the node-kind portion of a tree line (§6.3:
// "NODE", "ASSERTION", leaf summary).
func elementDescription(e *Envelope) string {
	switch e.kase {
	case CaseNode:
		return "NODE"
	case CaseAssertion:
		return "ASSERTION"
	case CaseWrapped:
		return "WRAPPED"
	case CaseElided:
		return "ELIDED"
	case CaseEncrypted:
		return "ENCRYPTED"
	case CaseCompressed:
		return "COMPRESSED"
	case CaseLeaf:
		return "LEAF " + dcbor.Diagnostic(e.leafValue, dcbor.PrintFlat, dcbor.DefaultTagRegistry)
	default:
		return "?"
	}
}

// FormatTree renders e as the §6.3 tree format: one line per envelope
// node, a short digest prefix, the incoming edge label, and an element
// description, indented two spaces per depth level.
func FormatTree(e *Envelope) string {
	var b strings.Builder
	Walk(e, struct{}{}, func(e *Envelope, depth int, edge Edge, state struct{}) (struct{}, bool) {
		for i := 0; i < depth; i++ {
			b.WriteString("  ")
		}
		b.WriteString(e.digest.shortString())
		b.WriteString(" ")
		if label := edgeLabel(edge.Kind); label != "" {
			b.WriteString(label)
			b.WriteString(" ")
		}
		b.WriteString(elementDescription(e))
		b.WriteString("\n")
		return state, false
	})
	return b.String()
}

// Diagnostic renders e's underlying dCBOR representation via the §4.7
// diagnostic printer, for callers that want the raw wire-shape view rather
// than the tree summary.
func Diagnostic(e *Envelope, mode dcbor.PrintMode) string {
	return dcbor.Diagnostic(ToCBOR(e), mode, dcbor.DefaultTagRegistry)
}

// String implements fmt.Stringer as "Envelope(<short digest prefix>)";
// use FormatTree for the full tree rendering.
func (e *Envelope) String() string {
	return fmt.Sprintf("Envelope(%s)", e.digest.shortString())
}
