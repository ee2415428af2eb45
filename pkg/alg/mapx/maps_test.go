package mapx

// Exercises the generic map helpers via the shapes pkg/gumtree/mapping.go
// and pkg/gumtree/profile.go actually build: src2dst/dst2src adjacency maps
// keyed by post-order node id, and per-phase node/mapping-size counters.

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClone_MappingAdjacencySnapshot(t *testing.T) {
	t.Parallel()

	t.Run("nil_returns_nil", func(t *testing.T) {
		t.Parallel()

		got := Clone[int, int](nil)
		assert.Nil(t, got)
	})

	t.Run("empty_returns_empty", func(t *testing.T) {
		t.Parallel()

		got := Clone(map[int]int{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("snapshot_is_independent_of_later_links", func(t *testing.T) {
		t.Parallel()

		// A narrowed src->dst view (one edge per node) after bottom-up
		// matching has resolved the mapping to a partial bijection.
		src2dst := map[int]int{0: 0, 1: 2}
		snapshot := Clone(src2dst)
		assert.Equal(t, src2dst, snapshot)

		src2dst[2] = 3 // a later Link call must not leak into the snapshot.

		assert.NotContains(t, snapshot, 2)
	})
}

func TestCloneFunc_PerPostIDDestinationLists(t *testing.T) {
	t.Parallel()

	t.Run("nil_returns_nil", func(t *testing.T) {
		t.Parallel()

		got := CloneFunc[int, []int](nil, nil)
		assert.Nil(t, got)
	})

	t.Run("deep_copy_of_dst_id_slices", func(t *testing.T) {
		t.Parallel()

		// Mapping.src2dst during the multi-valued top-down phase, before
		// bottom-up narrows each src to a single dst.
		src2dst := map[int][]int{
			0: {0},
			1: {2, 3},
		}

		got := CloneFunc(src2dst, func(v []int) []int {
			cp := make([]int, len(v))
			copy(cp, v)

			return cp
		})

		assert.Equal(t, src2dst, got)

		// Narrowing the clone to one edge must not touch the original.
		got[1][0] = 2
		got[1] = got[1][:1]

		assert.Equal(t, []int{2, 3}, src2dst[1])
	})
}

func TestCloneNested_PerPhasePerNodeCounters(t *testing.T) {
	t.Parallel()

	t.Run("nil_returns_nil", func(t *testing.T) {
		t.Parallel()

		got := CloneNested[string, int, int](nil)
		assert.Nil(t, got)
	})

	t.Run("empty_returns_empty", func(t *testing.T) {
		t.Parallel()

		got := CloneNested(map[string]map[int]int{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("deep_independence_across_phases", func(t *testing.T) {
		t.Parallel()

		// A hypothetical per-phase, per-node shift ledger.
		byPhase := map[string]map[int]int64{
			"top-down":  {0: 1, 1: 0},
			"bottom-up": {0: 2},
		}

		got := CloneNested(byPhase)
		assert.Equal(t, byPhase, got)

		got["top-down"][0] = 99
		assert.Equal(t, int64(1), byPhase["top-down"][0])

		got["top-down"][5] = 1
		assert.NotContains(t, byPhase["top-down"], 5)
	})

	t.Run("nil_inner_maps_preserved", func(t *testing.T) {
		t.Parallel()

		byPhase := map[string]map[int]int64{
			"parse":    nil,
			"annotate": {0: 1},
		}

		got := CloneNested(byPhase)
		assert.Nil(t, got["parse"])
		assert.Equal(t, map[int]int64{0: 1}, got["annotate"])
	})
}

func TestMergeAdditive_AccumulatesPhaseNodeCounts(t *testing.T) {
	t.Parallel()

	t.Run("nil_src_no_op", func(t *testing.T) {
		t.Parallel()

		totals := map[string]int{"insert": 1}
		MergeAdditive(totals, nil)
		assert.Equal(t, map[string]int{"insert": 1}, totals)
	})

	t.Run("nil_dst_no_panic", func(t *testing.T) {
		t.Parallel()

		assert.NotPanics(t, func() {
			MergeAdditive(nil, map[string]int{"insert": 1})
		})
	})

	t.Run("action_counts_across_two_diff_runs", func(t *testing.T) {
		t.Parallel()

		totals := map[string]int{"insert": 2, "delete": 1}
		run2 := map[string]int{"delete": 3, "move": 4}
		MergeAdditive(totals, run2)

		assert.Equal(t, 2, totals["insert"])
		assert.Equal(t, 4, totals["delete"])
		assert.Equal(t, 4, totals["move"])
	})

	t.Run("phase_duration_nanos_int64", func(t *testing.T) {
		t.Parallel()

		totals := map[int]int64{0: 1000}
		run2 := map[int]int64{0: 500, 1: 2000}
		MergeAdditive(totals, run2)

		assert.Equal(t, int64(1500), totals[0])
		assert.Equal(t, int64(2000), totals[1])
	})

	t.Run("similarity_scores_float64", func(t *testing.T) {
		t.Parallel()

		totals := map[string]float64{"x": 0.5}
		run2 := map[string]float64{"x": 0.25, "y": 1.0}
		MergeAdditive(totals, run2)

		assert.InDelta(t, 0.75, totals["x"], 0.0001)
		assert.InDelta(t, 1.0, totals["y"], 0.0001)
	})
}

func TestSortedKeys_DeterministicPairIteration(t *testing.T) {
	t.Parallel()

	t.Run("nil_returns_nil", func(t *testing.T) {
		t.Parallel()

		got := SortedKeys[int, any](nil)
		assert.Nil(t, got)
	})

	t.Run("empty_returns_empty", func(t *testing.T) {
		t.Parallel()

		got := SortedKeys(map[int]string{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("src_post_ids_sorted_for_pairs_output", func(t *testing.T) {
		t.Parallel()

		src2dst := map[int][]int{3: {30}, 1: {10}, 2: {20}}
		got := SortedKeys(src2dst)
		assert.Equal(t, []int{1, 2, 3}, got)
	})

	t.Run("phase_names_sorted_lexically", func(t *testing.T) {
		t.Parallel()

		m := map[string]int{"top-down": 1, "annotate": 2, "bottom-up": 3}
		got := SortedKeys(m)
		assert.Equal(t, []string{"annotate", "bottom-up", "top-down"}, got)
	})
}
