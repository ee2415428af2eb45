package gumtree

import (
	"fmt"
	"sort"

	"github.com/Sumatoshi-tech/gumtree/pkg/alg/interval"
	"github.com/Sumatoshi-tech/gumtree/pkg/alg/mapx"
)

// Mapping is the bidirectional src<->dst post_id relation of SPEC_FULL.md §4.3
// ("B"). It is multi-valued during the top-down phase and a partial bijection
// afterward. Grounded on prototype/mapping.py's class mapping, generalized to
// single-edge unlink per SPEC_FULL.md §9 (the Python prototype's unlink drops
// an entire source's edge list; this spec requires removing exactly one edge).
type Mapping struct {
	t1, t2 *Tree

	src2dst map[int][]int
	dst2src map[int][]int

	// maxsize is max(|T1|, |T2|), used by the similarity function (§4.6).
	maxsize int

	// index accelerates number_of_common_descendants: one point interval per
	// linked edge, keyed by the source node's pre_id, carrying the
	// destination partner's pre_id as its value. A deterministic, exact
	// index — never an approximation — per the §5 determinism contract.
	index *interval.Tree[int, int]
}

// NewMapping creates an empty Mapping over the given source/destination trees.
func NewMapping(t1, t2 *Tree) *Mapping {
	maxsize := t1.Len()
	if t2.Len() > maxsize {
		maxsize = t2.Len()
	}

	return &Mapping{
		t1:      t1,
		t2:      t2,
		src2dst: make(map[int][]int),
		dst2src: make(map[int][]int),
		maxsize: maxsize,
		index:   interval.New[int, int](),
	}
}

// MaxSize returns max(|T1|, |T2|).
func (m *Mapping) MaxSize() int { return m.maxsize }

// Link adds the edge (s, d). Re-linking an already-present edge is a no-op.
func (m *Mapping) Link(s, d int) {
	if containsInt(m.src2dst[s], d) {
		return
	}

	m.src2dst[s] = append(m.src2dst[s], d)
	m.dst2src[d] = append(m.dst2src[d], s)

	sPre := m.t1.NodeAt(s).PreID
	dPre := m.t2.NodeAt(d).PreID
	m.index.Insert(sPre, sPre, dPre)
}

// Unlink removes exactly the edge (s, d), leaving any other edges for s or d
// untouched.
func (m *Mapping) Unlink(s, d int) {
	m.src2dst[s] = removeInt(m.src2dst[s], d)
	if len(m.src2dst[s]) == 0 {
		delete(m.src2dst, s)
	}

	m.dst2src[d] = removeInt(m.dst2src[d], s)
	if len(m.dst2src[d]) == 0 {
		delete(m.dst2src, d)
	}

	sPre := m.t1.NodeAt(s).PreID
	dPre := m.t2.NodeAt(d).PreID
	m.index.Delete(sPre, sPre, dPre)
}

// Dsts returns all destinations currently linked to s, sorted ascending.
func (m *Mapping) Dsts(s int) []int {
	return sortedCopy(m.src2dst[s])
}

// Srcs returns all sources currently linked to d, sorted ascending.
func (m *Mapping) Srcs(d int) []int {
	return sortedCopy(m.dst2src[d])
}

// Dst returns s's unique destination partner. Precondition: HasSrc(s).
func (m *Mapping) Dst(s int) (int, bool) {
	ds := m.src2dst[s]
	if len(ds) == 0 {
		return 0, false
	}

	return ds[0], true
}

// Src returns d's unique source partner. Precondition: HasDst(d).
func (m *Mapping) Src(d int) (int, bool) {
	ss := m.dst2src[d]
	if len(ss) == 0 {
		return 0, false
	}

	return ss[0], true
}

// HasSrc reports whether s has at least one linked destination.
func (m *Mapping) HasSrc(s int) bool { return len(m.src2dst[s]) > 0 }

// HasDst reports whether d has at least one linked source.
func (m *Mapping) HasDst(d int) bool { return len(m.dst2src[d]) > 0 }

// NumCommonDescendants counts matched pairs (s, d) with s a descendant of t1n
// (in T1) and d a descendant of t2n (in T2), via the interval index.
// Grounded on prototype/diff.py's number_of_common_descendants.
func (m *Mapping) NumCommonDescendants(t1n, t2n *Node) int {
	hits := m.index.QueryOverlap(t1n.PreID, t1n.RMD)

	count := 0

	for _, iv := range hits {
		if iv.Value >= t2n.PreID && iv.Value <= t2n.RMD {
			count++
		}
	}

	return count
}

// Pairs returns every currently-linked (s, d) edge, sorted by s then d — used
// only by the invariant checks in tests and by callers needing a stable scan.
func (m *Mapping) Pairs() [][2]int {
	srcs := mapx.SortedKeys(m.src2dst)

	pairs := make([][2]int, 0, len(srcs))
	for _, s := range srcs {
		for _, d := range sortedCopy(m.src2dst[s]) {
			pairs = append(pairs, [2]int{s, d})
		}
	}

	return pairs
}

// ValidatePartialBijection reports ErrInconsistentMapping if any node on
// either side is linked to more than one partner. Top-down matching builds
// src2dst/dst2src multi-valued, but every later phase (bottom-up matching,
// annotation, edit-script generation) assumes the mapping has since been
// narrowed to a true partial bijection; this is the defensive check for that
// assumption, per SPEC_FULL.md §7's "precondition violations must not be
// swallowed."
func (m *Mapping) ValidatePartialBijection() error {
	for _, s := range mapx.SortedKeys(m.src2dst) {
		if n := len(m.src2dst[s]); n > 1 {
			return fmt.Errorf("%w: src %d has %d destinations", ErrInconsistentMapping, s, n)
		}
	}

	for _, d := range mapx.SortedKeys(m.dst2src) {
		if n := len(m.dst2src[d]); n > 1 {
			return fmt.Errorf("%w: dst %d has %d sources", ErrInconsistentMapping, d, n)
		}
	}

	return nil
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}

	return false
}

func removeInt(s []int, v int) []int {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}

	return s
}

func sortedCopy(s []int) []int {
	out := mapx.CloneSlice(s)
	sort.Ints(out)

	return out
}
