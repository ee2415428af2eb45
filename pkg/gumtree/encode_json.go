package gumtree

import (
	"encoding/json"
	"fmt"
	"io"
)

// jsonNode is the wire shape of one node in JSON diff mode, per
// SPEC_FULL.md §6. tid, when present, is the matched partner's PreID.
type jsonNode struct {
	ID       int         `json:"id"`
	Type     string      `json:"type"`
	Begin    int         `json:"begin"`
	End      int         `json:"end"`
	Change   string      `json:"change,omitempty"`
	Value    string      `json:"value,omitempty"`
	TID      *int        `json:"tid,omitempty"`
	Children []*jsonNode `json:"children"`
}

type jsonTree struct {
	Filename string    `json:"filename"`
	Root     *jsonNode `json:"root"`
}

type jsonDiff struct {
	Src *jsonTree `json:"src"`
	Dst *jsonTree `json:"dst"`
}

// EncodeJSON renders m as the dual-tree {"src":...,"dst":...} document
// consumed by the browser viewer, per SPEC_FULL.md §6. Grounded on
// prototype/out.py's JSON tree serializer.
func EncodeJSON(w io.Writer, t1, t2 *Tree, m *Mapping) error {
	doc := jsonDiff{
		Src: buildJSONTree(t1, t2, m, true),
		Dst: buildJSONTree(t2, t1, m, false),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("gumtree: encode json diff: %w", err)
	}

	return nil
}

func buildJSONTree(t, other *Tree, m *Mapping, isSrc bool) *jsonTree {
	return &jsonTree{
		Filename: t.Filename,
		Root:     buildJSONNode(t, other, m, isSrc, t.Root),
	}
}

func buildJSONNode(t, other *Tree, m *Mapping, isSrc bool, postID int) *jsonNode {
	n := t.NodeAt(postID)

	jn := &jsonNode{
		ID:     n.PreID,
		Type:   n.Type,
		Begin:  n.Begin,
		End:    n.End,
		Change: n.Change,
	}

	if n.HasValue {
		jn.Value = n.Value
	}

	var (
		partner int
		ok      bool
	)

	if isSrc {
		partner, ok = m.Dst(postID)
	} else {
		partner, ok = m.Src(postID)
	}

	if ok {
		tid := other.NodeAt(partner).PreID
		jn.TID = &tid
	}

	jn.Children = make([]*jsonNode, 0, len(n.Children))
	for _, c := range n.Children {
		jn.Children = append(jn.Children, buildJSONNode(t, other, m, isSrc, c))
	}

	return jn
}
