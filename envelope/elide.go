package envelope

// DigestSet is a set of target digests, as used by ElideRemoving,
// ElideRevealing, and the inclusion-proof operations.
type DigestSet map[Digest]bool

// NewDigestSet builds a DigestSet from a slice of digests.
func NewDigestSet(ds []Digest) DigestSet {
	s := make(DigestSet, len(ds))
	for _, d := range ds {
		s[d] = true
	}
	return s
}

// ElideRemoving walks e, replacing any subtree whose digest is in targets
// with Elided, leaving everything else intact (§4.12). An Assertion whose
// own digest matches is elided whole; a match on only its predicate or
// object elides just that side.
func ElideRemoving(e *Envelope, targets DigestSet) *Envelope {
	if targets[e.digest] {
		return elided(e.digest)
	}
	switch e.kase {
	case CaseWrapped:
		inner := ElideRemoving(e.wrapped, targets)
		if inner == e.wrapped {
			return e
		}
		return Wrap(inner)

	case CaseAssertion:
		p := ElideRemoving(e.predicate, targets)
		o := ElideRemoving(e.object, targets)
		if p == e.predicate && o == e.object {
			return e
		}
		return NewAssertion(p, o)

	case CaseNode:
		s := ElideRemoving(e.subject, targets)
		assertions := make([]*Envelope, len(e.assertions))
		changed := s != e.subject
		for i, a := range e.assertions {
			assertions[i] = ElideRemoving(a, targets)
			if assertions[i] != a {
				changed = true
			}
		}
		if !changed {
			return e
		}
		return newNode(s, assertions)

	default: // Leaf, Elided, Encrypted, Compressed: no children to descend into
		return e
	}
}

// ElideRevealing is the dual of ElideRemoving: a subtree is kept intact
// iff its own digest or any descendant's digest is in reveal; the root is
// always kept (§4.12). To reveal a leaf's path, reveal must contain the
// digest of every envelope on that path, not just the leaf.
func ElideRevealing(e *Envelope, reveal DigestSet) *Envelope {
	return elideRevealingRec(e, reveal, true)
}

func elideRevealingRec(e *Envelope, reveal DigestSet, isRoot bool) *Envelope {
	if !isRoot && !subtreeContainsAny(e, reveal) {
		return elided(e.digest)
	}
	switch e.kase {
	case CaseWrapped:
		inner := elideRevealingRec(e.wrapped, reveal, false)
		if inner == e.wrapped {
			return e
		}
		return Wrap(inner)

	case CaseAssertion:
		p := elideRevealingRec(e.predicate, reveal, false)
		o := elideRevealingRec(e.object, reveal, false)
		if p == e.predicate && o == e.object {
			return e
		}
		return NewAssertion(p, o)

	case CaseNode:
		s := elideRevealingRec(e.subject, reveal, false)
		assertions := make([]*Envelope, len(e.assertions))
		changed := s != e.subject
		for i, a := range e.assertions {
			assertions[i] = elideRevealingRec(a, reveal, false)
			if assertions[i] != a {
				changed = true
			}
		}
		if !changed {
			return e
		}
		return newNode(s, assertions)

	default: // Leaf, Elided, Encrypted, Compressed
		return e
	}
}

// subtreeContainsAny reports whether e's own digest, or that of any
// descendant, is in set.
func subtreeContainsAny(e *Envelope, set DigestSet) bool {
	if set[e.digest] {
		return true
	}
	switch e.kase {
	case CaseWrapped:
		return subtreeContainsAny(e.wrapped, set)
	case CaseAssertion:
		return subtreeContainsAny(e.predicate, set) || subtreeContainsAny(e.object, set)
	case CaseNode:
		if subtreeContainsAny(e.subject, set) {
			return true
		}
		for _, a := range e.assertions {
			if subtreeContainsAny(a, set) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Unelide traverses e and source in lockstep, replacing every Elided(d) in
// e with the matching subtree from source whose digest equals d. Fails
// with InvalidType if e and source diverge — either a structural mismatch,
// or a digest that source cannot supply (§4.12).
func Unelide(e, source *Envelope) (*Envelope, error) {
	return WalkUnelide(e, []*Envelope{source})
}

// WalkUnelide is Unelide generalised to several candidate sources: each
// Elided(d) in e is replaced by the first source whose digest equals d
// (§4.12).
func WalkUnelide(e *Envelope, sources []*Envelope) (*Envelope, error) {
	if e.kase == CaseElided {
		for _, src := range sources {
			if src.digest.Compare(e.elidedDigest) == 0 {
				return src, nil
			}
		}
		return nil, errInvalidType("no source supplies the digest required to unelide this subtree")
	}

	switch e.kase {
	case CaseWrapped:
		inner, err := WalkUnelide(e.wrapped, sources)
		if err != nil {
			return nil, err
		}
		if inner == e.wrapped {
			return e, nil
		}
		return Wrap(inner), nil

	case CaseAssertion:
		p, err := WalkUnelide(e.predicate, sources)
		if err != nil {
			return nil, err
		}
		o, err := WalkUnelide(e.object, sources)
		if err != nil {
			return nil, err
		}
		if p == e.predicate && o == e.object {
			return e, nil
		}
		return NewAssertion(p, o), nil

	case CaseNode:
		s, err := WalkUnelide(e.subject, sources)
		if err != nil {
			return nil, err
		}
		assertions := make([]*Envelope, len(e.assertions))
		changed := s != e.subject
		for i, a := range e.assertions {
			na, err := WalkUnelide(a, sources)
			if err != nil {
				return nil, err
			}
			assertions[i] = na
			if na != a {
				changed = true
			}
		}
		if !changed {
			return e, nil
		}
		return newNode(s, assertions), nil

	default: // Leaf, Encrypted, Compressed
		return e, nil
	}
}
