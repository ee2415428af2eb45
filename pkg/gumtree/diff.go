package gumtree

import "context"

// Diff runs the full matching pipeline (E -> F -> G) over t1/t2 and returns
// the frozen mapping and edit script, per SPEC_FULL.md §2's data flow.
//
// Single-threaded and strictly sequential per §5: ctx is only checked before
// starting (so a deadline/cancellation set before the call is honored), not
// polled mid-phase, since the algorithm has no suspension points.
func Diff(ctx context.Context, t1, t2 *Tree, params Params) (*Mapping, []Action, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	m := NewMapping(t1, t2)

	TopDown(t1, t2, m, params)
	BottomUp(t1, t2, m, params)
	Annotate(t1, t2, m)

	// GenerateEditScript links phantom insert nodes into the mapping it is
	// given; hand it a copy so the returned mapping holds only matched pairs.
	script := NewMapping(t1, t2)
	for _, p := range m.Pairs() {
		script.Link(p[0], p[1])
	}

	actions, err := GenerateEditScript(t1, t2, script)
	if err != nil {
		return nil, nil, err
	}

	return m, actions, nil
}
