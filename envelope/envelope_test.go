package envelope

import (
	"testing"

	"github.com/schjonhaug/dcbor-envelope/dcbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leafText(s string) *Envelope {
	return Leaf(dcbor.Text(s))
}

func knowsAssertion(name string) *Envelope {
	return NewAssertion(leafText("knows"), leafText(name))
}

func TestLeafDigestIsStable(t *testing.T) {
	a := leafText("Alice")
	b := leafText("Alice")
	assert.Equal(t, a.Digest(), b.Digest())
	assert.True(t, a.Equal(b))
}

func TestWrapUnwrapRoundTrip(t *testing.T) {
	inner := leafText("Alice")
	wrapped := Wrap(inner)
	assert.Equal(t, CaseWrapped, wrapped.Case())

	got, err := Unwrap(wrapped)
	require.NoError(t, err)
	assert.True(t, got.Equal(inner))
}

func TestUnwrapNonWrappedFails(t *testing.T) {
	_, err := Unwrap(leafText("Alice"))
	require.Error(t, err)
	assert.Equal(t, ErrNotWrapped, err.(*Error).Kind())
}

func TestAddAssertionToLeafProducesNode(t *testing.T) {
	alice := leafText("Alice")
	a := knowsAssertion("Bob")

	node, err := AddAssertion(alice, a)
	require.NoError(t, err)
	assert.Equal(t, CaseNode, node.Case())
	assert.True(t, node.Subject().Equal(alice))
	require.Len(t, node.Assertions(), 1)
	assert.True(t, node.Assertions()[0].Equal(a))
}

func TestAddAssertionToNodeAppendsToSet(t *testing.T) {
	alice := leafText("Alice")
	n1, err := AddAssertion(alice, knowsAssertion("Bob"))
	require.NoError(t, err)
	n2, err := AddAssertion(n1, knowsAssertion("Carol"))
	require.NoError(t, err)

	assert.Equal(t, CaseNode, n2.Case())
	assert.True(t, n2.Subject().Equal(alice))
	assert.Len(t, n2.Assertions(), 2)
}

func TestAddAssertionRejectsNonAssertion(t *testing.T) {
	_, err := AddAssertion(leafText("Alice"), leafText("not an assertion"))
	require.Error(t, err)
	assert.Equal(t, ErrNotAssertion, err.(*Error).Kind())
}

func TestSubjectOfNonNodeIsItself(t *testing.T) {
	alice := leafText("Alice")
	assert.True(t, alice.Subject().Equal(alice))
}

func TestAssertionsOfNonNodeIsEmpty(t *testing.T) {
	assert.Empty(t, leafText("Alice").Assertions())
}

func TestObjectForPredicate(t *testing.T) {
	alice := leafText("Alice")
	knows := leafText("knows")
	node, err := AddAssertion(alice, NewAssertion(knows, leafText("Bob")))
	require.NoError(t, err)

	obj, err := ObjectForPredicate(node, knows)
	require.NoError(t, err)
	assert.True(t, obj.Equal(leafText("Bob")))

	_, err = ObjectForPredicate(node, leafText("age"))
	require.Error(t, err)
	assert.Equal(t, ErrAmbiguousType, err.(*Error).Kind())
}

func TestObjectForPredicateAmbiguousOnMultipleMatches(t *testing.T) {
	alice := leafText("Alice")
	knows := leafText("knows")
	n1, err := AddAssertion(alice, NewAssertion(knows, leafText("Bob")))
	require.NoError(t, err)
	n2, err := AddAssertion(n1, NewAssertion(knows, leafText("Carol")))
	require.NoError(t, err)

	_, err = ObjectForPredicate(n2, knows)
	require.Error(t, err)
	assert.Equal(t, ErrAmbiguousType, err.(*Error).Kind())
}

func TestAddingSameAssertionTwiceIsIdempotentAtDigestLevel(t *testing.T) {
	alice := leafText("Alice")
	knowsBob := knowsAssertion("Bob")

	n1, err := AddAssertion(alice, knowsBob)
	require.NoError(t, err)
	n2, err := AddAssertion(n1, knowsBob)
	require.NoError(t, err)

	assert.Equal(t, n1.Digest(), n2.Digest())
	assert.Len(t, n1.Assertions(), 1)
	assert.Len(t, n2.Assertions(), 2)
}

func TestNodeDigestIndependentOfAssertionInsertionOrder(t *testing.T) {
	alice := leafText("Alice")
	bob := knowsAssertion("Bob")
	carol := knowsAssertion("Carol")

	forward, err := AddAssertion(alice, bob)
	require.NoError(t, err)
	forward, err = AddAssertion(forward, carol)
	require.NoError(t, err)

	backward, err := AddAssertion(alice, carol)
	require.NoError(t, err)
	backward, err = AddAssertion(backward, bob)
	require.NoError(t, err)

	assert.Equal(t, forward.Digest(), backward.Digest())
}
