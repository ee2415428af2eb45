package gumtree

// BottomUp runs the container-matching phase of SPEC_FULL.md §4.6 ("F"),
// extending m with matches for inner nodes whose children were matched by
// TopDown, invoking the Zhang-Shasha matcher (D) on small enough pairs.
// Grounded on prototype/diff.py's bottom_up/GTcandidate/
// map_to_best_candidate/add_optimal_mapping.
func BottomUp(t1, t2 *Tree, m *Mapping, params Params) {
	for s := 0; s < t1.Len(); s++ {
		if s == t1.Root {
			handleRoot(t1, t2, m, params)

			continue
		}

		if m.HasSrc(s) {
			continue
		}

		if !hasMatchedChild(t1, m, s) {
			continue
		}

		matchWithDisplacement(t1, t2, m, params, s, nil)
	}

	// Fix-up pass, pre-order: for any still-unmatched t1 whose parent is
	// mapped, restrict candidate search to the matched parent's subtree.
	for preID := 0; preID < t1.Len(); preID++ {
		s := t1.PreToPost[preID]
		node := t1.NodeAt(s)

		if m.HasSrc(s) {
			continue
		}

		if node.Parent == noParent || !m.HasSrc(node.Parent) {
			continue
		}

		parentDst, _ := m.Dst(node.Parent)
		restrict := t2.NodeAt(parentDst)

		matchWithDisplacement(t1, t2, m, params, s, restrict)
	}
}

// handleRoot implements the root special-case of §4.6: map root-to-root when
// types match and neither is taken, then invoke the Zhang-Shasha matcher on
// the whole pair if small enough.
func handleRoot(t1, t2 *Tree, m *Mapping, params Params) {
	r1, r2 := t1.Root, t2.Root

	if !m.HasSrc(r1) && !m.HasDst(r2) && t1.NodeAt(r1).Type == t2.NodeAt(r2).Type {
		m.Link(r1, r2)
	}

	if dst, ok := m.Dst(r1); ok && dst == r2 {
		addOptimalMapping(t1, t2, m, r1, r2, params.MaxSize)
	}
}

func hasMatchedChild(t1 *Tree, m *Mapping, s int) bool {
	for _, c := range t1.NodeAt(s).Children {
		if m.HasSrc(c) {
			return true
		}
	}

	return false
}

// matchWithDisplacement runs candidate-selection and, when a displacement
// occurs, reprocesses the displaced predecessor — "repeat while a displaced
// predecessor is produced" (§4.6). restrict, when non-nil, limits the
// destination-tree pre-order scan to that subtree (the fix-up pass).
func matchWithDisplacement(t1, t2 *Tree, m *Mapping, params Params, start int, restrict *Node) {
	cur := start

	for {
		d, displaced, ok := candidate(t1, t2, m, t1.NodeAt(cur), params.MinSimilarity, restrict)
		if !ok {
			return
		}

		if displaced != -1 {
			m.Unlink(displaced, d)
		}

		m.Link(cur, d)
		addOptimalMapping(t1, t2, m, cur, d, params.MaxSize)

		if displaced == -1 {
			return
		}

		cur = displaced
	}
}

// candidate scans the destination tree in pre-order (restricted to
// restrict's subtree when non-nil) for the best partner of t1: maximal
// similarity, >= minSim, with allowed types. If the best candidate is
// already taken, it is only selected when t1's similarity to it strictly
// exceeds the incumbent source's (evaluated against the current, evolving
// mapping — SPEC_FULL.md §9's resolved open question), in which case the
// incumbent is returned as the displaced source for reprocessing.
func candidate(t1T, t2T *Tree, m *Mapping, t1 *Node, minSim float64, restrict *Node) (dst, displaced int, ok bool) {
	loPre, hiPre := 0, t2T.Len()-1
	if restrict != nil {
		loPre, hiPre = restrict.PreID, restrict.RMD
	}

	bestDst := -1
	bestSim := -1.0
	bestDisplaced := -1

	for preID := loPre; preID <= hiPre; preID++ {
		c := t2T.NodeAtPre(preID)

		if c.Type != t1.Type {
			continue
		}

		if !isMappingAllowed(t1T, t2T, t1, c) {
			continue
		}

		sim := similarity(t1T, t2T, t1, c, m, minSim)
		if sim < minSim {
			continue
		}

		thisDisplaced := -1

		if m.HasDst(c.PostID) {
			oldSrc, _ := m.Src(c.PostID)
			oldSim := similarity(t1T, t2T, t1T.NodeAt(oldSrc), c, m, minSim)

			if sim <= oldSim {
				continue
			}

			thisDisplaced = oldSrc
		}

		if sim > bestSim {
			bestSim = sim
			bestDst = c.PostID
			bestDisplaced = thisDisplaced
		}
	}

	if bestDst == -1 {
		return 0, 0, false
	}

	return bestDst, bestDisplaced, true
}

// addOptimalMapping invokes the Zhang-Shasha matcher (D) on (s, d) when both
// subtrees are small enough, linking every resulting pair whose endpoints
// are free and whose types (and, per the stricter definition, parent types)
// are allowed.
func addOptimalMapping(t1, t2 *Tree, m *Mapping, s, d int, maxSize int) {
	sNode := t1.NodeAt(s)
	dNode := t2.NodeAt(d)

	size1 := NumDescendants(sNode)
	size2 := NumDescendants(dNode)

	maxSz := size1
	if size2 > maxSz {
		maxSz = size2
	}

	if maxSz >= maxSize {
		return
	}

	zm := NewZSMatcher(t1, s, t2, d)

	for _, p := range zm.Match() {
		srcPost := zm.Node1(p.Src).PostID
		dstPost := zm.Node2(p.Dst).PostID

		if m.HasSrc(srcPost) || m.HasDst(dstPost) {
			continue
		}

		if !isMappingAllowed(t1, t2, t1.NodeAt(srcPost), t2.NodeAt(dstPost)) {
			continue
		}

		m.Link(srcPost, dstPost)
	}
}
