package gumtree

import "fmt"

// ActionKind identifies the kind of edit-script action.
type ActionKind string

// Action kinds, per SPEC_FULL.md §4.7/§6.
const (
	ActionUpdate ActionKind = "Update"
	ActionInsert ActionKind = "Insert"
	ActionDelete ActionKind = "Delete"
	ActionMove   ActionKind = "Move"
)

// Action is one edit-script step. Node is always the acted-upon node: a T1
// node for Update/Delete/Move, a T2 node for Insert (the node being
// inserted, rendered from the destination tree). Parent, when set, is the
// destination-side (T2) context node describing where the action lands.
type Action struct {
	Kind     ActionKind
	Node     *Node
	Parent   *Node
	Pos      int
	NewValue string
}

// GenerateEditScript derives the Update/Insert/Delete/Move script from a
// frozen mapping, per SPEC_FULL.md §4.7 ("G", edit-script half). Grounded on
// prototype/out.py's generate_edit_script. Must run after Annotate, since
// the Move pass reads Change labels written by the annotator.
//
// This mutates t1: Insert actions append a phantom node to t1's arena and
// link it into m (mirroring the phantom-node technique of prototype/out.py),
// and Delete actions detach nodes from their parent's child list.
//
// Returns ErrInconsistentMapping if m is not a partial bijection (an
// assertion failure per SPEC_FULL.md §7: every phantom-insertion splice
// below assumes each node has at most one partner) and ErrUnmappedParent if
// an Insert's T2 parent has no T1 partner despite being present, which BFS
// processing order should always prevent.
func GenerateEditScript(t1, t2 *Tree, m *Mapping) ([]Action, error) {
	if err := m.ValidatePartialBijection(); err != nil {
		return nil, err
	}

	var actions []Action

	queue := []int{t2.Root}

	for len(queue) > 0 {
		d := queue[0]
		queue = queue[1:]

		dNode := t2.NodeAt(d)
		queue = append(queue, dNode.Children...)

		if s, ok := m.Src(d); ok {
			sNode := t1.NodeAt(s)
			if sNode.HasValue != dNode.HasValue || sNode.Value != dNode.Value {
				actions = append(actions, Action{Kind: ActionUpdate, Node: sNode, NewValue: dNode.Value})
			}

			continue
		}

		parentD := dNode.Parent
		pos := posOf(t2, d)

		var parentT2 *Node
		if parentD != noParent {
			parentT2 = t2.NodeAt(parentD)
		}

		insertedPos, err := insertPhantom(t1, t2, m, d, parentD, pos)
		if err != nil {
			return nil, err
		}

		actions = append(actions, Action{Kind: ActionInsert, Node: dNode, Parent: parentT2, Pos: insertedPos})
	}

	for s := 0; s < t1.Len(); s++ {
		if m.HasSrc(s) {
			continue
		}

		detachFromParent(t1, s)
		actions = append(actions, Action{Kind: ActionDelete, Node: t1.NodeAt(s)})
	}

	for s := 0; s < t1.Len(); s++ {
		sNode := t1.NodeAt(s)
		if sNode.Change != "m" && sNode.Change != "u m" {
			continue
		}

		d, ok := m.Dst(s)
		if !ok {
			continue
		}

		dNode := t2.NodeAt(d)

		var parentT2 *Node
		if dNode.Parent != noParent {
			parentT2 = t2.NodeAt(dNode.Parent)
		}

		actions = append(actions, Action{Kind: ActionMove, Node: sNode, Parent: parentT2, Pos: posOf(t2, d) + 1})
	}

	return actions, nil
}

// insertPhantom creates a fresh T1 node mirroring t2's type/value, links it
// to t2 in m, and splices it into parentD's T1 partner's child list at pos
// (clamped to that list's current length). It returns the clamped position
// actually used for the splice, so the caller can record the same value on
// the emitted Insert action instead of the raw, unclamped T2-side index.
func insertPhantom(t1, t2 *Tree, m *Mapping, t2PostID, parentD, pos int) (int, error) {
	dNode := t2.NodeAt(t2PostID)

	phantom := Node{
		Type:     dNode.Type,
		Value:    dNode.Value,
		HasValue: dNode.HasValue,
		Begin:    dNode.Begin,
		End:      dNode.End,
		PostID:   len(t1.Nodes),
		PreID:    -1, // phantom nodes are never rendered directly
		RMD:      -1,
		Height:   1,
		Parent:   noParent,
	}

	insertAt := pos

	if parentD != noParent {
		parentS, ok := m.Src(parentD)
		if !ok {
			return 0, fmt.Errorf("%w: t2 node %d", ErrUnmappedParent, parentD)
		}

		phantom.Parent = parentS

		if limit := len(t1.NodeAt(parentS).Children); insertAt > limit {
			insertAt = limit
		}
	}

	newPostID := phantom.PostID
	t1.Nodes = append(t1.Nodes, phantom)

	if phantom.Parent != noParent {
		parentNode := t1.NodeAt(phantom.Parent)

		children := append(parentNode.Children, 0)
		copy(children[insertAt+1:], children[insertAt:])
		children[insertAt] = newPostID
		parentNode.Children = children
	}

	m.Link(newPostID, t2PostID)

	return insertAt, nil
}

func detachFromParent(t *Tree, postID int) {
	n := t.NodeAt(postID)
	if n.Parent == noParent {
		return
	}

	p := t.NodeAt(n.Parent)
	p.Children = removeInt(p.Children, postID)
}
