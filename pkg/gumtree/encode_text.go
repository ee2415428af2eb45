package gumtree

import (
	"fmt"
	"io"
	"sort"
)

// EncodeText renders m/actions in GumTree text mode, per SPEC_FULL.md §6.
// Grounded on prototype/out.py's textual diff printer.
func EncodeText(w io.Writer, t1, t2 *Tree, m *Mapping, actions []Action) error {
	for _, s := range matchedSrcInPreOrder(t1, m) {
		d, _ := m.Dst(s)

		if _, err := fmt.Fprintf(w, "Match %s to %s\n", renderNode(t1.NodeAt(s)), renderNode(t2.NodeAt(d))); err != nil {
			return fmt.Errorf("gumtree: write match line: %w", err)
		}
	}

	for _, a := range actions {
		if err := writeAction(w, a); err != nil {
			return err
		}
	}

	return nil
}

func writeAction(w io.Writer, a Action) error {
	var err error

	switch a.Kind {
	case ActionUpdate:
		_, err = fmt.Fprintf(w, "Update %s to %s\n", renderNode(a.Node), a.NewValue)
	case ActionInsert:
		_, err = fmt.Fprintf(w, "Insert %s into %s at %d\n", renderNode(a.Node), renderNode(a.Parent), a.Pos)
	case ActionDelete:
		_, err = fmt.Fprintf(w, "Delete %s\n", renderNode(a.Node))
	case ActionMove:
		_, err = fmt.Fprintf(w, "Move %s into %s at %d\n", renderNode(a.Node), renderNode(a.Parent), a.Pos)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, a.Kind)
	}

	if err != nil {
		return fmt.Errorf("gumtree: write %s line: %w", a.Kind, err)
	}

	return nil
}

// renderNode formats a node as "<type>: <value>(<pre_id>)", omitting the
// value segment when absent.
func renderNode(n *Node) string {
	if n == nil {
		return "<nil>"
	}

	if !n.HasValue {
		return fmt.Sprintf("%s(%d)", n.Type, n.PreID)
	}

	return fmt.Sprintf("%s: %s(%d)", n.Type, n.Value, n.PreID)
}

// matchedSrcInPreOrder returns matched T1 post-ids ordered by PreID, the
// order the "Match" lines are emitted in.
func matchedSrcInPreOrder(t1 *Tree, m *Mapping) []int {
	matched := make([]int, 0, t1.Len())

	for s := 0; s < t1.Len(); s++ {
		if m.HasSrc(s) {
			matched = append(matched, s)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return t1.NodeAt(matched[i]).PreID < t1.NodeAt(matched[j]).PreID
	})

	return matched
}
