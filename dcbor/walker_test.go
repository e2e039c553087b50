package dcbor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalkVisitsArrayElementsInOrder(t *testing.T) {
	v := Array([]Value{Unsigned(1), Unsigned(2), Unsigned(3)})

	var visited []int64
	Walk(v, struct{}{}, func(elem Element, depth int, edge Edge, state struct{}) (struct{}, bool) {
		if elem.Kind() == ElementSingle && elem.Value().IsUnsigned() {
			visited = append(visited, int64(elem.Value().AsUnsignedValue()))
		}
		return state, false
	})

	assert.Equal(t, []int64{1, 2, 3}, visited)
}

func TestWalkStopDescentSkipsChildrenNotSiblings(t *testing.T) {
	v := Array([]Value{
		Array([]Value{Unsigned(100), Unsigned(101)}),
		Unsigned(2),
	})

	var visited []string
	Walk(v, struct{}{}, func(elem Element, depth int, edge Edge, state struct{}) (struct{}, bool) {
		if elem.Kind() != ElementSingle || edge.Kind != EdgeArrayElement {
			return state, false
		}
		val := elem.Value()
		switch {
		case val.IsArray():
			visited = append(visited, "array")
			return state, true // stop descent into the nested array
		case val.IsUnsigned():
			visited = append(visited, "unsigned")
		}
		return state, false
	})

	assert.Equal(t, []string{"array", "unsigned"}, visited)
}

func TestWalkMapVisitsKeyValuePairThenKeyThenValue(t *testing.T) {
	m := NewMap()
	_ = m.Insert(Unsigned(1), Text("one"))

	var edges []EdgeKind
	Walk(MapValue(m), struct{}{}, func(elem Element, depth int, edge Edge, state struct{}) (struct{}, bool) {
		edges = append(edges, edge.Kind)
		return state, false
	})

	// root, then the single entry's KeyValue pair, then its key, then its
	// value.
	assert.Equal(t, []EdgeKind{EdgeNone, EdgeMapKeyValue, EdgeMapKey, EdgeMapValue}, edges)
}

func TestWalkDescendsIntoTaggedContent(t *testing.T) {
	v := Tagged(24, Unsigned(7))

	var sawContent bool
	Walk(v, struct{}{}, func(elem Element, depth int, edge Edge, state struct{}) (struct{}, bool) {
		if edge.Kind == EdgeTaggedContent {
			sawContent = true
			assert.True(t, elem.Value().Equal(Unsigned(7)))
		}
		return state, false
	})

	assert.True(t, sawContent)
}

func TestWalkThreadsStateAcrossCalls(t *testing.T) {
	v := Array([]Value{Unsigned(1), Unsigned(2), Unsigned(3)})

	total := Walk(v, 0, func(elem Element, depth int, edge Edge, state int) (int, bool) {
		if elem.Kind() == ElementSingle && elem.Value().IsUnsigned() {
			return state + int(elem.Value().AsUnsignedValue()), false
		}
		return state, false
	})

	assert.Equal(t, 6, total)
}
