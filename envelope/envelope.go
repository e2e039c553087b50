package envelope

import (
	"github.com/schjonhaug/dcbor-envelope/dcbor"
)

// Envelope is a single immutable node of the Gordian Envelope DAG (§3.2).
// Every "mutating" operation in this package returns a new Envelope whose
// unchanged children are shared with the original (§4.11, §5 "Memory").
// Digests are computed once, at construction, and cached.
type Envelope struct {
	kase   Case
	digest Digest

	// Leaf
	leafValue dcbor.Value

	// Wrapped
	wrapped *Envelope

	// Assertion
	predicate *Envelope
	object    *Envelope

	// Node. assertions is kept in the order assertions were added;
	// digest computation sorts and dedupes a snapshot of their digests,
	// it never reorders this slice.
	subject    *Envelope
	assertions []*Envelope

	// Elided
	elidedDigest Digest

	// Encrypted / Compressed: an opaque blob. The digest preserved across
	// the transform is held in elidedDigest; ToCBOR writes it as the first
	// element of the [digest, blob] payload (§3.2, §6.2).
	blob []byte
}

// Case reports which of the five core or two extension shapes e is.
func (e *Envelope) Case() Case {
	return e.kase
}

// Digest returns e's cached identity digest.
func (e *Envelope) Digest() Digest {
	return e.digest
}

// Equal reports whether e and other are equivalent: equal digests (§3.2).
func (e *Envelope) Equal(other *Envelope) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.digest.Compare(other.digest) == 0
}

// Leaf wraps a CBOR value into a Leaf envelope.
func Leaf(v dcbor.Value) *Envelope {
	return &Envelope{kase: CaseLeaf, leafValue: v, digest: leafDigest(v)}
}

// LeafValue returns the CBOR value carried by a Leaf envelope. Panics on
// any other case.
func (e *Envelope) LeafValue() dcbor.Value {
	if e.kase != CaseLeaf {
		panic("envelope: LeafValue on a non-Leaf envelope")
	}
	return e.leafValue
}

// Wrap yields Wrapped(e).
func Wrap(e *Envelope) *Envelope {
	return &Envelope{kase: CaseWrapped, wrapped: e, digest: wrappedDigest(e.digest)}
}

// Unwrap succeeds iff e is Wrapped, returning its inner envelope.
func Unwrap(e *Envelope) (*Envelope, error) {
	if e.kase != CaseWrapped {
		return nil, errNotWrapped()
	}
	return e.wrapped, nil
}

// NewAssertion constructs Assertion(predicate, object).
func NewAssertion(predicate, object *Envelope) *Envelope {
	return &Envelope{
		kase:      CaseAssertion,
		predicate: predicate,
		object:    object,
		digest:    assertionDigest(predicate.digest, object.digest),
	}
}

// Predicate returns the predicate envelope of an Assertion. Panics on any
// other case.
func (e *Envelope) Predicate() *Envelope {
	if e.kase != CaseAssertion {
		panic("envelope: Predicate on a non-Assertion envelope")
	}
	return e.predicate
}

// Object returns the object envelope of an Assertion. Panics on any other
// case.
func (e *Envelope) Object() *Envelope {
	if e.kase != CaseAssertion {
		panic("envelope: Object on a non-Assertion envelope")
	}
	return e.object
}

// AddAssertion attaches assertion a to e (§4.11):
//   - a Leaf/Wrapped/Assertion/Elided/Encrypted/Compressed envelope becomes
//     a Node with itself as subject and {a} as its assertion set.
//   - a Node gains a in its assertion set (duplicates collapse by digest at
//     the digest-computation level, not by removing them from the slice).
//
// a must itself be an Assertion envelope, or NotAssertion is returned.
func AddAssertion(e, a *Envelope) (*Envelope, error) {
	if a.kase != CaseAssertion {
		return nil, errNotAssertion()
	}
	if e.kase == CaseNode {
		assertions := append(append([]*Envelope(nil), e.assertions...), a)
		return newNode(e.subject, assertions), nil
	}
	return newNode(e, []*Envelope{a}), nil
}

// newNode builds a Node envelope from a subject and an assertion slice,
// computing its digest from a sorted-deduped snapshot of the assertions'
// digests (§4.10).
func newNode(subject *Envelope, assertions []*Envelope) *Envelope {
	ds := make([]Digest, len(assertions))
	for i, a := range assertions {
		ds[i] = a.digest
	}
	return &Envelope{
		kase:       CaseNode,
		subject:    subject,
		assertions: assertions,
		digest:     nodeDigest(subject.digest, ds),
	}
}

// Subject returns e itself for non-Node cases, and the subject envelope of
// a Node (§4.11).
func (e *Envelope) Subject() *Envelope {
	if e.kase == CaseNode {
		return e.subject
	}
	return e
}

// Assertions returns the assertion sequence of a Node, or nil for any other
// case (§4.11).
func (e *Envelope) Assertions() []*Envelope {
	if e.kase != CaseNode {
		return nil
	}
	return e.assertions
}

// AssertionsWithPredicate filters e's assertions (if any) to those whose
// predicate has the same digest as pred (§4.11).
func AssertionsWithPredicate(e *Envelope, pred *Envelope) []*Envelope {
	var out []*Envelope
	for _, a := range e.Assertions() {
		if a.predicate.digest.Compare(pred.digest) == 0 {
			out = append(out, a)
		}
	}
	return out
}

// ObjectForPredicate returns the object of the unique assertion on e with
// predicate pred, or AmbiguousType if zero or more than one match (§4.11).
func ObjectForPredicate(e *Envelope, pred *Envelope) (*Envelope, error) {
	matches := AssertionsWithPredicate(e, pred)
	switch len(matches) {
	case 0:
		return nil, errAmbiguousType("no assertion with the given predicate")
	case 1:
		return matches[0].object, nil
	default:
		return nil, errAmbiguousType("multiple assertions with the given predicate")
	}
}

// Elide replaces e's entire structure with Elided(e.digest); because
// digest(Elided d) == d, every ancestor's digest is preserved (§4.12).
func Elide(e *Envelope) *Envelope {
	return elided(e.digest)
}

func elided(d Digest) *Envelope {
	return &Envelope{kase: CaseElided, elidedDigest: d, digest: d}
}

// ElidedDigest returns the digest carried by an Elided envelope. Panics on
// any other case.
func (e *Envelope) ElidedDigest() Digest {
	if e.kase != CaseElided {
		panic("envelope: ElidedDigest on a non-Elided envelope")
	}
	return e.elidedDigest
}

// NewEncrypted / NewCompressed construct the two extension cases from the
// digest being preserved across the transform and an opaque blob; the
// envelope's Digest() is that preserved digest (§3.2, §6.2). ElidedDigest
// is not defined for these cases. The core never interprets the blob's
// contents; it exists so the digest-preservation invariant can be checked
// across elision even when the payload is opaque ciphertext or compressed
// data (§1 Non-goals: the core accepts these, it does not produce them).
func NewEncrypted(preservedDigest Digest, blob []byte) *Envelope {
	return &Envelope{kase: CaseEncrypted, elidedDigest: preservedDigest, blob: blob, digest: preservedDigest}
}

func NewCompressed(preservedDigest Digest, blob []byte) *Envelope {
	return &Envelope{kase: CaseCompressed, elidedDigest: preservedDigest, blob: blob, digest: preservedDigest}
}

// Blob returns the opaque payload of an Encrypted or Compressed envelope.
// Panics on any other case.
func (e *Envelope) Blob() []byte {
	if e.kase != CaseEncrypted && e.kase != CaseCompressed {
		panic("envelope: Blob on a non-Encrypted/Compressed envelope")
	}
	return e.blob
}
