// Package gumtree implements a GumTree-style structural tree-diff engine:
// top-down isomorphic-subtree anchor matching, bottom-up container matching
// aided by Zhang-Shasha tree-edit-distance, and edit-script derivation.
package gumtree

import "github.com/Sumatoshi-tech/gumtree/pkg/safeconv"

// noParent is the sentinel Parent index for a tree's root node.
const noParent = -1

// RawNode is the shape produced by the external parser (see SPEC_FULL.md §6).
// Only Type and Children are required; Value, Begin, End default to "", 0, 0.
type RawNode struct {
	Type     string     `json:"type"`
	Value    *string    `json:"value,omitempty"`
	Begin    int        `json:"begin"`
	End      int        `json:"end"`
	Children []*RawNode `json:"children"`
}

// RawTree is the top-level document shape produced by the external parser.
type RawTree struct {
	Filename string   `json:"filename"`
	Root     *RawNode `json:"root"`
}

// Node is a single tree node. Fields are filled in at construction time
// (PostID/PreID/RMD/Height/Parent) and, later, by the annotator (Change/Shift).
//
// Parent is an arena index rather than a pointer: nodes live in a Tree's
// arena slice indexed by PostID, so a pointer would dangle whenever the
// arena is appended to (the edit-script phase appends phantom nodes).
type Node struct {
	Type     string
	Value    string
	HasValue bool
	Begin    int
	End      int

	Children []int // arena indices (PostID), in order

	PostID int
	PreID  int
	RMD    int
	Height int
	Parent int // arena index, or noParent at the root

	Change string // one of "", "i", "d", "u", "m", "u m"
	Shift  int
}

// Tree is a rooted ordered tree with precomputed orderings, per SPEC_FULL.md §3.
type Tree struct {
	Filename string
	Root     int // PostID of the root

	// Nodes is the arena, indexed by PostID.
	Nodes []Node

	// PreToPost maps pre_id -> PostID.
	PreToPost []int
}

// NodeAt returns the node with the given PostID.
func (t *Tree) NodeAt(postID int) *Node {
	return &t.Nodes[postID]
}

// NodeAtPre returns the node with the given pre_id.
func (t *Tree) NodeAtPre(preID int) *Node {
	return &t.Nodes[t.PreToPost[preID]]
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// IsDescendantOf reports whether d is in p's subtree (itself included),
// using the pre_id/rmd interval test of SPEC_FULL.md §3.
func IsDescendantOf(d, p *Node) bool {
	return d.PreID >= p.PreID && d.PreID <= p.RMD
}

// NumDescendants returns the size of t's subtree (itself included).
func NumDescendants(t *Node) int {
	return t.RMD - t.PreID + 1
}

// BuildTree constructs a Tree from a RawTree, assigning PostID/PreID/RMD/Height
// via the pre-order and post-order traversals of SPEC_FULL.md §4.1.
func BuildTree(raw *RawTree) (*Tree, error) {
	if raw == nil || raw.Root == nil {
		return nil, ErrMissingRoot
	}

	if err := validateRaw(raw.Root); err != nil {
		return nil, err
	}

	b := &treeBuilder{
		preID:  make(map[*RawNode]int),
		postID: make(map[*RawNode]int),
		parent: make(map[*RawNode]*RawNode),
	}

	b.assignPre(raw.Root)
	b.assignPost(raw.Root)

	n := len(b.preID)

	tree := &Tree{
		Filename:  raw.Filename,
		Nodes:     make([]Node, n),
		PreToPost: make([]int, n),
		Root:      b.postID[raw.Root],
	}

	for rawN, postID := range b.postID {
		value := ""
		hasValue := false

		if rawN.Value != nil {
			value = *rawN.Value
			hasValue = true
		}

		children := make([]int, 0, len(rawN.Children))
		for _, c := range rawN.Children {
			children = append(children, b.postID[c])
		}

		parentPost := noParent
		if p, ok := b.parent[rawN]; ok {
			parentPost = b.postID[p]
		}

		tree.Nodes[postID] = Node{
			Type:     rawN.Type,
			Value:    value,
			HasValue: hasValue,
			Begin:    rawN.Begin,
			End:      rawN.End,
			Children: children,
			PostID:   postID,
			PreID:    b.preID[rawN],
			RMD:      b.rmd[rawN],
			Height:   b.height[rawN],
			Parent:   parentPost,
		}
	}

	for postID := range tree.Nodes {
		tree.PreToPost[tree.Nodes[postID].PreID] = postID
	}

	return tree, nil
}

func validateRaw(n *RawNode) error {
	if n.Begin < 0 || n.End < 0 {
		return ErrInvalidOffset
	}

	for _, c := range n.Children {
		if c == nil {
			return ErrInvalidChildren
		}

		if err := validateRaw(c); err != nil {
			return err
		}
	}

	return nil
}

// treeBuilder accumulates pre-order and post-order bookkeeping keyed by raw
// node identity before the arena is assembled.
type treeBuilder struct {
	preID  map[*RawNode]int
	postID map[*RawNode]int
	parent map[*RawNode]*RawNode
	rmd    map[*RawNode]int
	height map[*RawNode]int

	nextPre  int
	nextPost int
}

func (b *treeBuilder) assignPre(n *RawNode) {
	b.preID[n] = b.nextPre
	b.nextPre++

	for _, c := range n.Children {
		b.parent[c] = n
		b.assignPre(c)
	}
}

// assignPost walks n's children first (true post-order) so every child
// receives a smaller PostID than n, then records n's height and rmd.
func (b *treeBuilder) assignPost(n *RawNode) {
	if b.rmd == nil {
		b.rmd = make(map[*RawNode]int)
		b.height = make(map[*RawNode]int)
	}

	height := 1
	rmd := b.preID[n]

	for _, c := range n.Children {
		b.assignPost(c)

		if h := b.height[c] + 1; h > height {
			height = h
		}

		if r := b.rmd[c]; r > rmd {
			rmd = r
		}
	}

	b.height[n] = height
	b.rmd[n] = rmd
	b.postID[n] = b.nextPost
	b.nextPost++
}

// clampNonNegative panics via safeconv if v is negative. Nothing in this
// module calls it: validateRaw rejects negative offsets with ErrInvalidOffset.
func clampNonNegative(v int) int {
	return safeconv.MustUintToInt(safeconv.MustIntToUint(v))
}
