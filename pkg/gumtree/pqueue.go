package gumtree

import (
	"container/heap"
	"sort"
)

// heightQueue is a max-heap over nodes of a single tree, keyed by Height
// (ties broken by PostID), per SPEC_FULL.md §4.2. It is grounded on
// prototype/common.py's GTpriorityList/GTpush/GTpeekMax/GTopen, which bucket
// nodes by height in a Python heapq; here container/heap fills the same role,
// with heightQueue itself implementing heap.Interface over a slice of PostIDs.
type heightQueue struct {
	tree  *Tree
	items []int // PostIDs
}

func newHeightQueue(tree *Tree) *heightQueue {
	q := &heightQueue{tree: tree}
	heap.Init(q)

	return q
}

// push adds a node (by PostID) to the queue.
func (q *heightQueue) push(postID int) {
	heap.Push(q, postID)
}

// open pushes every child of the node with the given PostID.
func (q *heightQueue) open(postID int) {
	for _, c := range q.tree.NodeAt(postID).Children {
		q.push(c)
	}
}

// peekMax returns the current maximum height, or 0 when empty.
func (q *heightQueue) peekMax() int {
	if len(q.items) == 0 {
		return 0
	}

	return q.tree.NodeAt(q.items[0]).Height
}

// popMax removes all nodes at the current maximum height and returns their
// PostIDs sorted by PreID (the determinism requirement of SPEC_FULL.md §4.2).
func (q *heightQueue) popMax() []int {
	if len(q.items) == 0 {
		return nil
	}

	maxHeight := q.peekMax()

	var batch []int

	for len(q.items) > 0 && q.tree.NodeAt(q.items[0]).Height == maxHeight {
		batch = append(batch, heap.Pop(q).(int)) //nolint:forcetypeassert // heightQueue always holds ints
	}

	sort.Slice(batch, func(i, j int) bool {
		return q.tree.NodeAt(batch[i]).PreID < q.tree.NodeAt(batch[j]).PreID
	})

	return batch
}

// heap.Interface implementation. Ordering: max-heap by Height, ties by PostID.

func (q *heightQueue) Len() int { return len(q.items) }

func (q *heightQueue) Less(i, j int) bool {
	ni, nj := q.tree.NodeAt(q.items[i]), q.tree.NodeAt(q.items[j])
	if ni.Height != nj.Height {
		return ni.Height > nj.Height
	}

	return ni.PostID > nj.PostID
}

func (q *heightQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *heightQueue) Push(x any) {
	q.items = append(q.items, x.(int)) //nolint:forcetypeassert // only ints are ever pushed
}

func (q *heightQueue) Pop() any {
	old := q.items
	n := len(old)
	v := old[n-1]
	q.items = old[:n-1]

	return v
}
