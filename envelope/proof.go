package envelope

// ProofContainsSet constructs a digest-preserving partial elision of e
// that still exposes every digest in targets (§4.13). It returns (nil,
// false) if some target digest has no corresponding subtree anywhere in e.
func ProofContainsSet(e *Envelope, targets []Digest) (*Envelope, bool) {
	targetSet := NewDigestSet(targets)

	reveal := DigestSet{}
	found := DigestSet{}
	collectRevealPaths(e, targetSet, nil, reveal, found)

	for t := range targetSet {
		if !found[t] {
			return nil, false
		}
	}

	revealed := ElideRevealing(e, reveal)
	return ElideRemoving(revealed, targetSet), true
}

// collectRevealPaths walks e depth-first, tracking the chain of ancestor
// digests from the root to the current node. Whenever the current node's
// digest is a target, every digest on the current path (root through the
// target itself) is added to reveal, and the target is marked found.
func collectRevealPaths(e *Envelope, targets DigestSet, path []Digest, reveal, found DigestSet) {
	path = append(path, e.digest)

	if targets[e.digest] {
		found[e.digest] = true
		for _, d := range path {
			reveal[d] = true
		}
	}

	switch e.kase {
	case CaseWrapped:
		collectRevealPaths(e.wrapped, targets, path, reveal, found)
	case CaseAssertion:
		collectRevealPaths(e.predicate, targets, path, reveal, found)
		collectRevealPaths(e.object, targets, path, reveal, found)
	case CaseNode:
		collectRevealPaths(e.subject, targets, path, reveal, found)
		for _, a := range e.assertions {
			collectRevealPaths(a, targets, path, reveal, found)
		}
	}
}

// ConfirmContainsSet verifies a proof against a known root digest: it
// succeeds iff proof's digest equals rootDigest and every target digest is
// reachable as the digest of some subtree in proof — including subtrees
// that proof itself has elided down to their bare digest (§4.13). The
// verifier never needs the original envelope, only its root digest.
func ConfirmContainsSet(rootDigest Digest, targets []Digest, proof *Envelope) bool {
	if proof == nil || proof.digest.Compare(rootDigest) != 0 {
		return false
	}
	reachable := DigestSet{}
	collectReachableDigests(proof, reachable)
	for _, t := range targets {
		if !reachable[t] {
			return false
		}
	}
	return true
}

// collectReachableDigests gathers the digest of e and of every descendant
// still present in the tree. An Elided node contributes only its own
// digest (the subtree it stands in for), never anything "inside" it.
func collectReachableDigests(e *Envelope, out DigestSet) {
	out[e.digest] = true
	switch e.kase {
	case CaseWrapped:
		collectReachableDigests(e.wrapped, out)
	case CaseAssertion:
		collectReachableDigests(e.predicate, out)
		collectReachableDigests(e.object, out)
	case CaseNode:
		collectReachableDigests(e.subject, out)
		for _, a := range e.assertions {
			collectReachableDigests(a, out)
		}
	}
}

// ProofContains / ConfirmContains are the single-target convenience
// wrappers over the set operations (§4.13).
func ProofContains(e *Envelope, target *Envelope) (*Envelope, bool) {
	return ProofContainsSet(e, []Digest{target.digest})
}

func ConfirmContains(rootDigest Digest, target *Envelope, proof *Envelope) bool {
	return ConfirmContainsSet(rootDigest, []Digest{target.digest}, proof)
}
