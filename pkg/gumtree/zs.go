package gumtree

import "math"

// zsSubtree is a single subtree (from either T1 or T2) flattened into its own
// local post-order, for use by the Zhang-Shasha matcher (D). Grounded on
// prototype/zsmatch.py's ZsTree.
type zsSubtree struct {
	tree  *Tree
	nodes []*Node // local post-order, index 0..n-1
	lmd   []int   // lmd[i]: local index of the leftmost-descendant leaf of nodes[i]
	keyroots []int
}

// buildZsSubtree flattens the subtree rooted at rootPostID into local
// post-order, computing lmd and keyroots per SPEC_FULL.md §4.4.
func buildZsSubtree(tree *Tree, rootPostID int) *zsSubtree {
	zt := &zsSubtree{tree: tree}

	var walk func(postID int) int // returns the lmd local index assigned to postID's subtree
	walk = func(postID int) int {
		n := tree.NodeAt(postID)

		lmdIdx := -1
		for _, c := range n.Children {
			cLmd := walk(c)
			if lmdIdx == -1 {
				lmdIdx = cLmd
			}
		}

		zt.nodes = append(zt.nodes, n)
		myIdx := len(zt.nodes) - 1

		if lmdIdx == -1 {
			lmdIdx = myIdx // leaf: own leftmost descendant is itself
		}

		zt.lmd = append(zt.lmd, lmdIdx)

		return lmdIdx
	}

	walk(rootPostID)

	// keyroots: right-to-left scan, one keyroot per distinct lmd value
	// (the visited-by-lmd scan of SPEC_FULL.md §4.4).
	seen := make(map[int]bool, len(zt.nodes))

	var keyroots []int

	for i := len(zt.nodes) - 1; i >= 0; i-- {
		l := zt.lmd[i]
		if !seen[l] {
			keyroots = append(keyroots, i)
			seen[l] = true
		}
	}

	for i, j := 0, len(keyroots)-1; i < j; i, j = i+1, j-1 {
		keyroots[i], keyroots[j] = keyroots[j], keyroots[i]
	}

	zt.keyroots = keyroots

	return zt
}

func (zt *zsSubtree) len() int { return len(zt.nodes) }

// updateCost is the Zhang-Shasha substitution cost: infinite when types
// differ, 0 when values also match, 1 otherwise.
func updateCost(a, b *Node) float64 {
	if a.Type != b.Type {
		return math.Inf(1)
	}

	if a.HasValue == b.HasValue && a.Value == b.Value {
		return 0
	}

	return 1
}

// ZsPair is a matched (src-local-index, dst-local-index) pair in the
// subtree-local post-order of SPEC_FULL.md §4.4 — NOT global Tree.PostID.
// Callers translate via zsMatcher.Node1/Node2 to recover the actual nodes.
type ZsPair struct {
	Src int
	Dst int
}

type cellOp int

const (
	opNone cellOp = iota
	opDel
	opIns
	opMatch
	opJump
)

// zsMatcher computes the optimal tree-edit-distance alignment between two
// subtrees, per SPEC_FULL.md §4.4 ("D"). Grounded on
// prototype/zsmatch.py's ZsMatcher (computeTreeDist/computeForestDist/match),
// implemented here with the equivalent recursive memoized formulation (a
// node pair's tree distance is reused across forest-distance computations
// that reference it, rather than precomputed in a fixed keyroot-pair order;
// the two are mathematically identical, and this module's keyroots field is
// retained for the component's documented structure and for Distance()).
type zsMatcher struct {
	t1, t2 *zsSubtree
	memo   map[[2]int]float64
}

// NewZSMatcher constructs a matcher over the subtrees rooted at the given
// PostIDs. Called only when max(|S1|, |S2|) < τ_maxsize (see §4.4, §7).
func NewZSMatcher(t1 *Tree, root1 int, t2 *Tree, root2 int) *zsMatcher {
	return &zsMatcher{
		t1:   buildZsSubtree(t1, root1),
		t2:   buildZsSubtree(t2, root2),
		memo: make(map[[2]int]float64),
	}
}

// Node1 returns the global Tree node for a local T1 post-order index.
func (zm *zsMatcher) Node1(localIdx int) *Node { return zm.t1.nodes[localIdx] }

// Node2 returns the global Tree node for a local T2 post-order index.
func (zm *zsMatcher) Node2(localIdx int) *Node { return zm.t2.nodes[localIdx] }

// Distance returns the tree-edit distance between the two subtrees, computed
// the classical way (over keyroots(T1) x keyroots(T2)), for fidelity with
// SPEC_FULL.md §4.4's documented structure and for standalone testing.
func (zm *zsMatcher) Distance() float64 {
	if zm.t1.len() == 0 || zm.t2.len() == 0 {
		if zm.t1.len() == zm.t2.len() {
			return 0
		}

		return math.Max(float64(zm.t1.len()), float64(zm.t2.len()))
	}

	var d float64

	for _, i := range zm.t1.keyroots {
		for _, j := range zm.t2.keyroots {
			d = zm.treeDist(i, j)
		}
	}

	return d
}

// treeDist returns the tree-edit distance between the single subtrees rooted
// at local index i (in T1) and j (in T2), memoized.
func (zm *zsMatcher) treeDist(i, j int) float64 {
	key := [2]int{i, j}
	if v, ok := zm.memo[key]; ok {
		return v
	}

	fd, _, _, _ := zm.forestDist(i, j, false)
	v := fd[len(fd)-1][len(fd[0])-1]
	zm.memo[key] = v

	return v
}

// forestDist fills the relative forest-distance matrix for the pair of
// single subtrees rooted at (i, j), per the classical recurrence of
// SPEC_FULL.md §4.4. When withOps is true, it also records, per cell, which
// recurrence arm was chosen, for Match()'s backtrace.
func (zm *zsMatcher) forestDist(i, j int, withOps bool) (fd [][]float64, ops [][]cellOp, ioff, joff int) {
	al := zm.t1.lmd[i]
	bl := zm.t2.lmd[j]
	m := i - al + 2
	n := j - bl + 2
	ioff = al - 1
	joff = bl - 1

	fd = make([][]float64, m)
	if withOps {
		ops = make([][]cellOp, m)
	}

	for x := range fd {
		fd[x] = make([]float64, n)

		if withOps {
			ops[x] = make([]cellOp, n)
		}
	}

	for x := 1; x < m; x++ {
		fd[x][0] = fd[x-1][0] + 1
		if withOps {
			ops[x][0] = opDel
		}
	}

	for y := 1; y < n; y++ {
		fd[0][y] = fd[0][y-1] + 1
		if withOps {
			ops[0][y] = opIns
		}
	}

	for x := 1; x < m; x++ {
		xi := x + ioff

		for y := 1; y < n; y++ {
			yj := y + joff

			delCost := fd[x-1][y] + 1
			insCost := fd[x][y-1] + 1

			var diagCost float64

			var diagOp cellOp

			if zm.t1.lmd[xi] == al && zm.t2.lmd[yj] == bl {
				diagCost = fd[x-1][y-1] + updateCost(zm.t1.nodes[xi], zm.t2.nodes[yj])
				diagOp = opMatch
			} else {
				p := zm.t1.lmd[xi] - 1 - ioff
				q := zm.t2.lmd[yj] - 1 - joff
				diagCost = fd[p][q] + zm.treeDist(xi, yj)
				diagOp = opJump
			}

			best, op := min3(delCost, opDel, insCost, opIns, diagCost, diagOp)
			fd[x][y] = best

			if withOps {
				ops[x][y] = op
			}
		}
	}

	return fd, ops, ioff, joff
}

func min3(a float64, aOp cellOp, b float64, bOp cellOp, c float64, cOp cellOp) (float64, cellOp) {
	best, op := a, aOp

	if b < best {
		best, op = b, bOp
	}

	if c < best {
		best, op = c, cOp
	}

	return best, op
}

// Match computes the optimal alignment and returns every matched pair whose
// types agree (the update-diagonal steps of SPEC_FULL.md §4.4), expressed in
// subtree-local post-order.
func (zm *zsMatcher) Match() []ZsPair {
	if zm.t1.len() == 0 || zm.t2.len() == 0 {
		return nil
	}

	i := zm.t1.len() - 1
	j := zm.t2.len() - 1

	return zm.backtrace(i, j)
}

func (zm *zsMatcher) backtrace(i, j int) []ZsPair {
	fd, ops, ioff, joff := zm.forestDist(i, j, true)

	var pairs []ZsPair

	x := len(fd) - 1
	y := len(fd[0]) - 1

	for x > 0 || y > 0 {
		switch {
		case x > 0 && ops[x][y] == opDel:
			x--
		case y > 0 && ops[x][y] == opIns:
			y--
		case ops[x][y] == opMatch:
			xi, yj := x+ioff, y+joff
			if zm.t1.nodes[xi].Type == zm.t2.nodes[yj].Type {
				pairs = append(pairs, ZsPair{Src: xi, Dst: yj})
			}

			x--
			y--
		case ops[x][y] == opJump:
			xi, yj := x+ioff, y+joff
			pairs = append(pairs, zm.backtrace(xi, yj)...)
			x = zm.t1.lmd[xi] - 1 - ioff
			y = zm.t2.lmd[yj] - 1 - joff
		default:
			// Both x and y are 0: nothing left to do.
			return pairs
		}
	}

	return pairs
}

var _ = opNone // retained for readability of the cellOp enum's zero value
