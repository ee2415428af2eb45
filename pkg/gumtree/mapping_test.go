package gumtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapping_LinkUnlink(t *testing.T) {
	t.Parallel()

	t1 := mustBuild(node("X", node("A"), node("B")))
	t2 := mustBuild(node("X", node("A"), node("B")))

	m := NewMapping(t1, t2)
	m.Link(0, 0)
	m.Link(1, 1)

	d, ok := m.Dst(0)
	require.True(t, ok)
	assert.Equal(t, 0, d)

	s, ok := m.Src(1)
	require.True(t, ok)
	assert.Equal(t, 1, s)

	assert.True(t, m.HasSrc(0))
	assert.True(t, m.HasDst(1))

	m.Unlink(0, 0)
	assert.False(t, m.HasSrc(0))
	assert.True(t, m.HasSrc(1), "unlinking (0,0) must not affect (1,1)")
}

func TestMapping_SingleEdgeUnlink(t *testing.T) {
	t.Parallel()

	t1 := mustBuild(node("X", node("A"), node("A")))
	t2 := mustBuild(node("X", node("A"), node("A")))

	m := NewMapping(t1, t2)
	m.Link(0, 0)
	m.Link(0, 1) // multi-valued during top-down's unresolved window

	assert.ElementsMatch(t, []int{0, 1}, m.Dsts(0))

	m.Unlink(0, 0)
	assert.Equal(t, []int{1}, m.Dsts(0), "unlink(s,d) removes exactly one edge, not all of s's edges")
}

func TestMapping_NumCommonDescendants(t *testing.T) {
	t.Parallel()

	t1 := mustBuild(node("X", node("A"), node("B")))
	t2 := mustBuild(node("X", node("A"), node("B")))

	m := NewMapping(t1, t2)
	m.Link(0, 0) // A <-> A
	m.Link(1, 1) // B <-> B

	root1 := t1.NodeAt(t1.Root)
	root2 := t2.NodeAt(t2.Root)

	assert.Equal(t, 2, m.NumCommonDescendants(root1, root2))
}

func TestMapping_Pairs_SortedAndStable(t *testing.T) {
	t.Parallel()

	t1 := mustBuild(node("X", node("A"), node("B")))
	t2 := mustBuild(node("X", node("A"), node("B")))

	m := NewMapping(t1, t2)
	m.Link(1, 1)
	m.Link(0, 0)

	assert.Equal(t, [][2]int{{0, 0}, {1, 1}}, m.Pairs())
}
