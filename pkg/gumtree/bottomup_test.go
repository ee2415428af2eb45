package gumtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// handleRoot links root-to-root on type match alone, independent of any
// prior child matching.
func TestBottomUp_HandleRoot_MatchesByTypeAlone(t *testing.T) {
	t.Parallel()

	t1 := mustBuild(node("Root", node("A")))
	t2 := mustBuild(node("Root", node("B")))

	m := NewMapping(t1, t2)
	params := DefaultParams()
	params.MaxSize = 1 // keep the Zhang-Shasha pass from swallowing the whole tree

	BottomUp(t1, t2, m, params)

	dst, ok := m.Dst(t1.Root)
	require.True(t, ok)
	assert.Equal(t, t2.Root, dst)
}

// Main loop: an inner node whose children are already matched (by a prior
// phase) is itself matched by candidate()/similarity, without relying on the
// Zhang-Shasha pass (disabled here via MaxSize=1).
func TestBottomUp_MainLoop_MatchesParentOfMatchedChild(t *testing.T) {
	t.Parallel()

	t1 := mustBuild(node("Root", node("Box", node("A"))))
	t2 := mustBuild(node("Root", node("Box", node("A"))))

	m := NewMapping(t1, t2)

	aPost1 := onlyPostIDOfType(t, t1, "A")
	aPost2 := onlyPostIDOfType(t, t2, "A")
	m.Link(aPost1, aPost2) // simulate a prior phase already matching the leaf

	params := DefaultParams()
	params.MaxSize = 1

	BottomUp(t1, t2, m, params)

	boxPost1 := onlyPostIDOfType(t, t1, "Box")
	boxPost2 := onlyPostIDOfType(t, t2, "Box")

	dst, ok := m.Dst(boxPost1)
	require.True(t, ok, "Box must be matched once its only child is")
	assert.Equal(t, boxPost2, dst)
}

// Fix-up pass: a still-unmatched node whose parent is already matched has
// its candidate search restricted to that parent's matched subtree, even
// when an identically-typed node exists elsewhere in the destination tree.
func TestBottomUp_FixUp_RestrictsSearchToMatchedParentSubtree(t *testing.T) {
	t.Parallel()

	t1 := mustBuild(node("Root",
		node("P", node("A"), node("Leaf")),
	))
	t2 := mustBuild(node("Root",
		node("P", node("A"), node("Leaf")),
		node("Other", node("Leaf")),
	))

	m := NewMapping(t1, t2)

	aPost1 := onlyPostIDOfType(t, t1, "A")
	aPost2 := onlyPostIDOfType(t, t2, "A")
	m.Link(aPost1, aPost2)

	pPost1 := onlyPostIDOfType(t, t1, "P")
	pPost2 := onlyPostIDOfType(t, t2, "P")
	m.Link(pPost1, pPost2) // simulate P already matched by a prior phase

	params := DefaultParams()
	params.MaxSize = 1

	BottomUp(t1, t2, m, params)

	leafPost1 := onlyPostIDOfType(t, t1, "Leaf")

	dst, ok := m.Dst(leafPost1)
	require.True(t, ok)

	leafUnderP2 := t2.NodeAt(dst)
	parent := t2.NodeAt(leafUnderP2.Parent)
	assert.Equal(t, "P", parent.Type, "the fix-up pass must not match the Leaf under Other")
}
