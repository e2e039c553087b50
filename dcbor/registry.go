package dcbor

import (
	"fmt"
	"log/slog"
	"sync"
)

// Summarizer renders a tagged value's payload for diagnostic output,
// overriding the default recursive rendering (§4.6, §4.7). It receives the
// already-decoded payload and the printer mode it is being asked to render
// under.
type Summarizer func(payload Value, mode PrintMode) string

// TagInfo is what the registry knows about a tag number: an optional
// display name and an optional custom summariser.
type TagInfo struct {
	Name       string
	Summarizer Summarizer
}

// TagRegistry is a process-wide (or caller-owned) mapping from tag number to
// display metadata, consulted only during diagnostic rendering (§4.6). It
// never affects encoding/decoding semantics: unknown tags round-trip
// unchanged, and a stale registry read can never produce wrong bytes.
//
// Reads are lock-free-ish via RWMutex (many concurrent readers, exclusive
// writers), matching §5's "read-mostly, safe to query from multiple
// threads" requirement.
type TagRegistry struct {
	mu   sync.RWMutex
	byID map[uint64]TagInfo
}

// NewTagRegistry returns an empty registry. Most callers want the
// process-wide DefaultTagRegistry instead; NewTagRegistry exists for tests
// and for diagnostic code that wants an isolated registry (§9: "prefer
// passing a registry argument where possible").
func NewTagRegistry() *TagRegistry {
	return &TagRegistry{byID: make(map[uint64]TagInfo)}
}

// Insert registers (or replaces) the display info for tag.
func (r *TagRegistry) Insert(tag uint64, info TagInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[tag] = info
	slog.Debug("dcbor: registered tag", "tag", tag, "name", info.Name)
}

// InsertAll bulk-registers every entry in infos.
func (r *TagRegistry) InsertAll(infos map[uint64]TagInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for tag, info := range infos {
		r.byID[tag] = info
	}
}

// Remove unregisters tag, if present.
func (r *TagRegistry) Remove(tag uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, tag)
}

// Lookup returns the TagInfo for tag, if registered.
func (r *TagRegistry) Lookup(tag uint64) (TagInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.byID[tag]
	return info, ok
}

// LookupByName returns the tag number registered under name, if any. Linear
// in the registry size; intended for interactive/debug use, not a hot path.
func (r *TagRegistry) LookupByName(name string) (uint64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for tag, info := range r.byID {
		if info.Name == name {
			return tag, true
		}
	}
	return 0, false
}

// SetSummarizer registers (or replaces) just the summariser for tag,
// leaving its name (if any) untouched.
func (r *TagRegistry) SetSummarizer(tag uint64, fn Summarizer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	info := r.byID[tag]
	info.Summarizer = fn
	r.byID[tag] = info
}

// NameOf returns the tag's registered name, or its numeric string form if
// unregistered — queries always tolerate the unregistered case (§4.6).
func (r *TagRegistry) NameOf(tag uint64) string {
	if info, ok := r.Lookup(tag); ok && info.Name != "" {
		return info.Name
	}
	return fmt.Sprintf("%d", tag)
}

// DefaultTagRegistry is the process-wide registry consulted by the
// diagnostic printer and hex dump when no explicit registry is passed
// (§4.6, §9). It is seeded at init() time with the well-known envelope tags
// so that diagnostic output for envelopes is readable out of the box.
var DefaultTagRegistry = NewTagRegistry()

func init() {
	DefaultTagRegistry.InsertAll(map[uint64]TagInfo{
		24:  {Name: "encoded-cbor"},
		200: {Name: "envelope"},
		203: {Name: "elided"},
		204: {Name: "encrypted"},
		205: {Name: "compressed"},
		217: {Name: "node"},
		221: {Name: "assertion"},
		224: {Name: "wrapped"},
	})
}
