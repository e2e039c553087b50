package dcbor

// EdgeKind identifies which edge the walker descended through to reach the
// current element (§4.9).
type EdgeKind int

const (
	EdgeNone EdgeKind = iota
	EdgeArrayElement
	EdgeMapKeyValue
	EdgeMapKey
	EdgeMapValue
	EdgeTaggedContent
)

// Edge is the incoming-edge tag passed to a Visitor. Index is meaningful
// only when Kind is EdgeArrayElement.
type Edge struct {
	Kind  EdgeKind
	Index int
}

// ElementKind discriminates the two shapes a walked Element can take.
type ElementKind int

const (
	ElementSingle ElementKind = iota
	ElementKeyValue
)

// Element is what the walker hands the visitor on each call: either a
// single value, or — once per map entry, before the walker descends into
// the key and then the value individually — a KeyValue pairing.
type Element struct {
	kind  ElementKind
	value Value
	key   Value
}

func singleElement(v Value) Element {
	return Element{kind: ElementSingle, value: v}
}

func keyValueElement(key, value Value) Element {
	return Element{kind: ElementKeyValue, key: key, value: value}
}

func (e Element) Kind() ElementKind {
	return e.kind
}

// Value returns the wrapped value of a Single element. Panics on KeyValue.
func (e Element) Value() Value {
	if e.kind != ElementSingle {
		panic("dcbor: Value() on a KeyValue element")
	}
	return e.value
}

// Key returns the key of a KeyValue element. Panics on Single.
func (e Element) Key() Value {
	if e.kind != ElementKeyValue {
		panic("dcbor: Key() on a Single element")
	}
	return e.key
}

// MapValue returns the value of a KeyValue element. Panics on Single.
func (e Element) MapValue() Value {
	if e.kind != ElementKeyValue {
		panic("dcbor: MapValue() on a Single element")
	}
	return e.value
}

// Visitor is called once per walked element. It returns the updated state
// and whether the walker should skip descending into this element's
// children (stopDescent); siblings are still visited either way (§4.9).
//
// State is threaded by value, not mutated in place, so callers in the
// functional style (§9 "walker state threading") can use an immutable
// state type directly; callers who prefer a mutable accumulator can make
// State a pointer type and ignore the returned copy.
type Visitor[State any] func(elem Element, depth int, edge Edge, state State) (State, bool)

// Walk performs a single-threaded, cooperative depth-first traversal of v,
// calling visit once per element in the order described in §4.9. It is
// implemented with an explicit frame stack (see stack.go) rather than plain
// recursion, so a pathologically deep value degrades into heap growth
// instead of a call-stack overflow.
func Walk[State any](v Value, initial State, visit Visitor[State]) State {
	type frame struct {
		isPair bool
		edge   Edge
		depth  int

		v Value // meaningful when !isPair

		pairKey   Value // meaningful when isPair
		pairValue Value
	}

	var frames stack[frame]
	frames.push(frame{v: v, edge: Edge{Kind: EdgeNone}, depth: 0})

	state := initial

	for {
		f, ok := frames.pop()
		if !ok {
			break
		}

		if f.isPair {
			var stop bool
			state, stop = visit(keyValueElement(f.pairKey, f.pairValue), f.depth, f.edge, state)
			if stop {
				continue
			}
			// Push value before key so the key frame pops first: the
			// walker visits the key, then the value (§4.9).
			frames.push(frame{v: f.pairValue, edge: Edge{Kind: EdgeMapValue}, depth: f.depth})
			frames.push(frame{v: f.pairKey, edge: Edge{Kind: EdgeMapKey}, depth: f.depth})
			continue
		}

		var stop bool
		state, stop = visit(singleElement(f.v), f.depth, f.edge, state)
		if stop {
			continue
		}

		switch f.v.Kind() {
		case KindArray:
			items := f.v.AsArrayValue()
			for i := len(items) - 1; i >= 0; i-- {
				frames.push(frame{v: items[i], edge: Edge{Kind: EdgeArrayElement, Index: i}, depth: f.depth + 1})
			}
		case KindMap:
			entries := f.v.AsMapValue().Entries()
			for i := len(entries) - 1; i >= 0; i-- {
				e := entries[i]
				frames.push(frame{isPair: true, pairKey: e.Key, pairValue: e.Value, edge: Edge{Kind: EdgeMapKeyValue}, depth: f.depth + 1})
			}
		case KindTagged:
			frames.push(frame{v: f.v.TagPayload(), edge: Edge{Kind: EdgeTaggedContent}, depth: f.depth + 1})
		}
	}

	return state
}
