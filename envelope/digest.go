package envelope

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/schjonhaug/dcbor-envelope/dcbor"
)

// Digest is the 32-byte SHA-256 output that serves as an envelope's
// identity (§3.2, §4.10). Two envelopes are equivalent iff their digests are
// equal.
type Digest [32]byte

// String renders the digest as lowercase hex.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Compare orders digests as big-endian integers — equivalently,
// lexicographically byte by byte (§4.10 "sort_asc").
func (d Digest) Compare(other Digest) int {
	for i := range d {
		if d[i] != other[i] {
			if d[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func sha256Of(b []byte) Digest {
	return Digest(sha256.Sum256(b))
}

// leafDigest computes H(tag(24, v)) — the Leaf digest formula of §3.2/§4.10.
func leafDigest(v dcbor.Value) Digest {
	return sha256Of(dcbor.Encode(dcbor.Tagged(24, v)))
}

// wrappedDigest computes H(inner), the Wrapped digest formula.
func wrappedDigest(inner Digest) Digest {
	return sha256Of(inner[:])
}

// assertionDigest computes H(p ∥ o), the Assertion digest formula.
func assertionDigest(predicate, object Digest) Digest {
	buf := make([]byte, 0, 64)
	buf = append(buf, predicate[:]...)
	buf = append(buf, object[:]...)
	return sha256Of(buf)
}

// nodeDigest computes H(s ∥ sort_asc(dedup(assertionDigests))...), the Node
// digest formula. Deduplication happens here so that adding the same
// assertion twice is idempotent at the digest level (§4.10).
func nodeDigest(subject Digest, assertionDigests []Digest) Digest {
	ds := dedupeSortedDigests(assertionDigests)
	buf := make([]byte, 0, 32*(1+len(ds)))
	buf = append(buf, subject[:]...)
	for _, d := range ds {
		buf = append(buf, d[:]...)
	}
	return sha256Of(buf)
}

// dedupeSortedDigests returns ds sorted ascending with duplicates removed,
// without mutating ds.
func dedupeSortedDigests(ds []Digest) []Digest {
	out := append([]Digest(nil), ds...)
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	n := 0
	for i, d := range out {
		if i == 0 || d.Compare(out[n-1]) != 0 {
			out[n] = d
			n++
		}
	}
	return out[:n]
}
