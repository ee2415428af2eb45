package gumtree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteHTMLSummary_ProducesNonEmptyDocument(t *testing.T) {
	t.Parallel()

	t1 := mustBuild(node("X", node("A"), node("B")))
	t2 := mustBuild(node("X", node("A"), node("B"), node("C")))

	m := NewMapping(t1, t2)
	m.Link(t1.Root, t2.Root)
	m.Link(t1.NodeAt(t1.Root).Children[0], t2.NodeAt(t2.Root).Children[0])
	m.Link(t1.NodeAt(t1.Root).Children[1], t2.NodeAt(t2.Root).Children[1])

	actions := []Action{
		{Kind: ActionInsert, Node: t2.NodeAt(t2.NodeAt(t2.Root).Children[2]), Parent: t2.NodeAt(t2.Root)},
	}

	var buf bytes.Buffer

	require.NoError(t, WriteHTMLSummary(&buf, t1, t2, m, actions))

	out := buf.String()
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "Edit script action counts")
	assert.Contains(t, out, "Matched vs unmatched nodes")
}

func TestMatchCounts_ComputedFromMapping(t *testing.T) {
	t.Parallel()

	t1 := mustBuild(node("X", node("A"), node("B")))
	t2 := mustBuild(node("X", node("A")))

	m := NewMapping(t1, t2)
	m.Link(t1.Root, t2.Root)
	m.Link(t1.NodeAt(t1.Root).Children[0], t2.NodeAt(t2.Root).Children[0])

	var buf bytes.Buffer
	require.NoError(t, WriteHTMLSummary(&buf, t1, t2, m, nil))
	assert.NotEmpty(t, buf.String())
}
