package gumtree

import "strings"

// identifierHeuristicTypes are the syntactic tags for which the qualified-
// identifier comparison of SPEC_FULL.md §6 ("identifier heuristic") applies.
// Grounded on prototype/common.py's idmatch.
var identifierHeuristicTypes = map[string]bool{
	"CXXMethodDecl":      true,
	"FunctionDecl":       true,
	"CXXConstructorDecl": true,
}

// extractIdentifier pulls the identifier prefix (up to the first "(") out of
// a declaration's Value, returning both its fully qualified form and its
// unqualified (last scope component) form. Returns ("", "") when value has
// no "(" (not a call/declaration signature).
//
// A leading "(" is skipped before searching for the terminal one, mirroring
// prototype/common.py's idmatch regex `^.[^(]+\(`: its leading wildcard
// character exists specifically to step over the opening paren of
// "(anonymous namespace)::foo(int)" so the match lands on foo's own paren
// instead of splitting the value at the namespace wrapper.
func extractIdentifier(value string) (qualified, unqualified string) {
	search := value

	offset := 0
	if strings.HasPrefix(value, "(") {
		search = value[1:]
		offset = 1
	}

	idx := strings.IndexByte(search, '(')
	if idx < 0 {
		return "", ""
	}

	idx += offset

	qualified = value[:idx]
	if qualified == "" {
		return "", ""
	}

	parts := strings.Split(qualified, "::")
	unqualified = parts[len(parts)-1]

	return qualified, unqualified
}

// sameIdent returns 1 when t1 and t2 are both identifier-heuristic node
// types and their fully qualified identifiers match, 0.5 when only the
// unqualified name matches, else 0.
func sameIdent(t1, t2 *Node) float64 {
	if !identifierHeuristicTypes[t1.Type] || !identifierHeuristicTypes[t2.Type] {
		return 0
	}

	q1, u1 := extractIdentifier(t1.Value)
	q2, u2 := extractIdentifier(t2.Value)

	if q1 != "" && q1 == q2 {
		return 1
	}

	if u1 != "" && u1 == u2 {
		return 0.5
	}

	return 0
}

// sameParents reports whether t1 and t2's parents are "congruent": both nil,
// or both mapped to each other in M. Grounded on prototype/common.py's
// same_parents.
func sameParents(t1T *Tree, t2T *Tree, t1, t2 *Node, m *Mapping) bool {
	p1, p2 := t1.Parent, t2.Parent

	if p1 == noParent && p2 == noParent {
		return true
	}

	if p1 == noParent || p2 == noParent {
		return false
	}

	dst, ok := m.Dst(p1)

	return ok && dst == p2
}

// jaccard computes the Jaccard/Dice similarity of §4.6: the ratio of common
// matched descendants to the union of the two subtrees' descendant counts.
func jaccard(t1, t2 *Node, m *Mapping) float64 {
	common := m.NumCommonDescendants(t1, t2)
	total := NumDescendants(t1) + NumDescendants(t2) - common

	if total <= 0 {
		return 0
	}

	return float64(common) / float64(total)
}

// nodeSim is the weighted node-level similarity component of §4.6.
func nodeSim(t1T, t2T *Tree, t1, t2 *Node, m *Mapping) float64 {
	valueEqual := 0.0
	if t1.HasValue == t2.HasValue && t1.Value == t2.Value {
		valueEqual = 1
	}

	same := 0.0
	if sameParents(t1T, t2T, t1, t2, m) {
		same = 1
	}

	return 0.5*same + 0.5*valueEqual + 1.0*sameIdent(t1, t2)
}

// similarity combines nodeSim and jaccard as defined in §4.6.
func similarity(t1T, t2T *Tree, t1, t2 *Node, m *Mapping, minSim float64) float64 {
	return minSim*nodeSim(t1T, t2T, t1, t2, m) + jaccard(t1, t2, m)
}

// isMappingAllowed implements the stricter parent-type-aware definition of
// §4.6 (not prototype/common.py's type-only is_mapping_allowed — see
// SPEC_FULL.md §9 for why this spec follows the stricter variant).
func isMappingAllowed(t1T, t2T *Tree, t1, t2 *Node) bool {
	if t1.Type != t2.Type {
		return false
	}

	p1, p2 := t1.Parent, t2.Parent
	if p1 == noParent && p2 == noParent {
		return true
	}

	if p1 == noParent || p2 == noParent {
		return false
	}

	return t1T.NodeAt(p1).Type == t2T.NodeAt(p2).Type
}
