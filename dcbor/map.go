package dcbor

import "bytes"

// MapEntry is a single key/value pair as it appears, in canonical order, in
// a Map's iteration.
type MapEntry struct {
	Key   Value
	Value Value
}

// Map is a key-ordered CBOR map container (§4.3). Its iteration order is
// always the ascending lexicographic order of each key's canonical encoded
// bytes, regardless of insertion order, and it never holds two equal keys.
type Map struct {
	entries []MapEntry
	keyenc  [][]byte // encode(entries[i].Key), same length/order as entries
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{}
}

// NewMapFromPairs builds a Map from an arbitrary-order slice of pairs,
// sorting them into canonical order. It reports DuplicateMapKey if two
// pairs share a key's canonical encoding. This is the "sibling normalise
// step" alluded to in §4.4: the encoder itself never reorders, but
// constructing a Map this way guarantees the encoder's input is already
// canonical.
func NewMapFromPairs(pairs []MapEntry) (*Map, error) {
	m := NewMap()
	for _, p := range pairs {
		if _, found := m.search(Encode(p.Key)); found {
			return nil, errDuplicateMapKey()
		}
		if err := m.Insert(p.Key, p.Value); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Insert adds or replaces the value for key, keeping entries in canonical
// order. Re-inserting an existing key replaces its value without changing
// its position.
func (m *Map) Insert(key, value Value) error {
	kb := Encode(key)
	i, found := m.search(kb)
	if found {
		m.entries[i].Value = value
		return nil
	}
	m.entries = append(m.entries, MapEntry{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = MapEntry{Key: key, Value: value}

	m.keyenc = append(m.keyenc, nil)
	copy(m.keyenc[i+1:], m.keyenc[i:])
	m.keyenc[i] = kb

	return nil
}

// search returns the index at which kb belongs (insertion point if not
// found) and whether it is already present.
func (m *Map) search(kb []byte) (int, bool) {
	lo, hi := 0, len(m.keyenc)
	for lo < hi {
		mid := (lo + hi) / 2
		switch bytes.Compare(m.keyenc[mid], kb) {
		case -1:
			lo = mid + 1
		case 1:
			hi = mid
		default:
			return mid, true
		}
	}
	return lo, false
}

// Get looks up key and reports whether it was present.
func (m *Map) Get(key Value) (Value, bool) {
	i, found := m.search(Encode(key))
	if !found {
		return Value{}, false
	}
	return m.entries[i].Value, true
}

// Len reports the number of entries.
func (m *Map) Len() int {
	return len(m.entries)
}

// Entries returns the entries in canonical order. The returned slice must
// not be mutated.
func (m *Map) Entries() []MapEntry {
	return m.entries
}

// Equal reports whether m and other have the same entries in the same
// canonical order.
func (m *Map) Equal(other *Map) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	if len(m.entries) != len(other.entries) {
		return false
	}
	for i := range m.entries {
		if !m.entries[i].Key.Equal(other.entries[i].Key) {
			return false
		}
		if !m.entries[i].Value.Equal(other.entries[i].Value) {
			return false
		}
	}
	return true
}

// appendChecked is used only by the decoder: it appends an entry whose
// caller has already computed the canonical key encoding, requiring that it
// sort strictly after every previously appended entry. This is what turns
// §4.3's ordering rule into MisorderedMapKey/DuplicateMapKey decode errors
// instead of a silent re-sort.
func (m *Map) appendChecked(keyBytes []byte, key, value Value) error {
	if n := len(m.keyenc); n > 0 {
		switch bytes.Compare(keyBytes, m.keyenc[n-1]) {
		case 0:
			return errDuplicateMapKey()
		case -1:
			return errMisorderedMapKey()
		}
	}
	m.entries = append(m.entries, MapEntry{Key: key, Value: value})
	m.keyenc = append(m.keyenc, keyBytes)
	return nil
}
