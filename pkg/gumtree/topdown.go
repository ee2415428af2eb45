package gumtree

import "github.com/Sumatoshi-tech/gumtree/pkg/alg/mapx"

// iso reports structural isomorphism: equal type, equal value, equal arity,
// and pairwise-recursively isomorphic children. Grounded on
// prototype/diff.py's compare_trees/identical.
func iso(t1, t2 *Node, tree1, tree2 *Tree) bool {
	if t1.Type != t2.Type {
		return false
	}

	if t1.HasValue != t2.HasValue || t1.Value != t2.Value {
		return false
	}

	if len(t1.Children) != len(t2.Children) {
		return false
	}

	for i := range t1.Children {
		c1 := tree1.NodeAt(t1.Children[i])
		c2 := tree2.NodeAt(t2.Children[i])

		if !iso(c1, c2, tree1, tree2) {
			return false
		}
	}

	return true
}

// TopDown runs the anchor-matching phase of SPEC_FULL.md §4.5 ("E"),
// populating m with a unique partial bijection of large isomorphic subtree
// matches. Grounded on prototype/diff.py's top_down.
func TopDown(t1, t2 *Tree, m *Mapping, params Params) {
	l1 := newHeightQueue(t1)
	l1.push(t1.Root)

	l2 := newHeightQueue(t2)
	l2.push(t2.Root)

	for {
		h1, h2 := l1.peekMax(), l2.peekMax()

		minH := h1
		if h2 < minH {
			minH = h2
		}

		if minH <= params.MinHeight {
			break
		}

		if h1 != h2 {
			taller := l1
			if h2 > h1 {
				taller = l2
			}

			for _, id := range taller.popMax() {
				taller.open(id)
			}

			continue
		}

		batch1 := l1.popMax()
		batch2 := l2.popMax()

		matched1 := make(map[int]bool, len(batch1))
		matched2 := make(map[int]bool, len(batch2))

		for _, a := range batch1 {
			for _, b := range batch2 {
				if iso(t1.NodeAt(a), t2.NodeAt(b), t1, t2) {
					m.Link(a, b)
					matched1[a] = true
					matched2[b] = true
				}
			}
		}

		for _, a := range batch1 {
			if !matched1[a] {
				l1.open(a)
			}
		}

		for _, b := range batch2 {
			if !matched2[b] {
				l2.open(b)
			}
		}
	}

	resolveTopDown(t1, t2, m, params)
}

// resolveTopDown collapses the multi-valued mapping produced by the anchor
// loop above into a unique partial bijection, per the three-pass procedure
// of §4.5: unique-destination acceptance, then max-similarity tie-breaking
// among remaining multi-candidates, then lockstep expansion of every
// accepted pair's descendants.
func resolveTopDown(t1, t2 *Tree, m *Mapping, params Params) {
	bySrc := make(map[int][]int)
	for _, p := range m.Pairs() {
		bySrc[p[0]] = append(bySrc[p[0]], p[1])
	}

	for _, p := range m.Pairs() {
		m.Unlink(p[0], p[1])
	}

	taken1 := make(map[int]bool)
	taken2 := make(map[int]bool)

	var accepted [][2]int

	srcs := mapx.SortedKeys(bySrc)

	// Pass 1: unique destination.
	for _, s := range srcs {
		ds := bySrc[s]
		if len(ds) != 1 {
			continue
		}

		d := ds[0]
		if taken1[s] || taken2[d] {
			continue
		}

		accepted = append(accepted, [2]int{s, d})
		taken1[s] = true
		taken2[d] = true
	}

	for _, p := range accepted {
		m.Link(p[0], p[1])
	}

	// Pass 2: multiple destinations, pick max similarity under the
	// now-partially-populated mapping; ties broken by smallest PostID.
	for _, s := range srcs {
		ds := bySrc[s]
		if len(ds) <= 1 || taken1[s] {
			continue
		}

		bestD := -1
		bestSim := -1.0

		for _, d := range ds {
			if taken2[d] {
				continue
			}

			sim := similarity(t1, t2, t1.NodeAt(s), t2.NodeAt(d), m, params.MinSimilarity)

			if sim > bestSim || (sim == bestSim && (bestD == -1 || d < bestD)) {
				bestSim = sim
				bestD = d
			}
		}

		if bestD == -1 {
			continue
		}

		accepted = append(accepted, [2]int{s, bestD})
		taken1[s] = true
		taken2[bestD] = true
		m.Link(s, bestD)
	}

	// Pass 3: lockstep expansion — isomorphism guarantees correspondence.
	for _, p := range accepted {
		expandLockstep(t1, t2, m, p[0], p[1])
	}
}

func expandLockstep(t1, t2 *Tree, m *Mapping, s, d int) {
	m.Link(s, d)

	sNode := t1.NodeAt(s)
	dNode := t2.NodeAt(d)

	for i := range sNode.Children {
		expandLockstep(t1, t2, m, sNode.Children[i], dNode.Children[i])
	}
}
