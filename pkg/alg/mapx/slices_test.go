package mapx

// Exercises the generic slice helpers on tree-diff shaped data: cloning a
// node's Children list before a splice, and deduplicating candidate anchors
// proposed more than once. pkg/gumtree itself calls CloneSlice only to copy
// a slice before sorting it, and does not call Unique.

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneSlice_ChildListSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("nil_returns_nil", func(t *testing.T) {
		t.Parallel()

		got := CloneSlice[int](nil)
		assert.Nil(t, got)
	})

	t.Run("leaf_has_no_children", func(t *testing.T) {
		t.Parallel()

		got := CloneSlice([]int{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("splicing_the_clone_leaves_the_original_children_untouched", func(t *testing.T) {
		t.Parallel()

		// A node's Children, as post-order ids, before insertPhantom splices
		// a new sibling in.
		children := []int{3, 7, 9}
		got := CloneSlice(children)
		assert.Equal(t, children, got)

		got[0] = 99 // simulate splicing a phantom into the clone

		assert.Equal(t, 3, children[0], "the original Children slice must not alias the clone's backing array")
	})

	t.Run("type_tags_slice", func(t *testing.T) {
		t.Parallel()

		src := []string{"FunctionDecl", "CXXMethodDecl", "IfStmt"}
		got := CloneSlice(src)
		assert.Equal(t, src, got)
	})
}

func TestUnique_DedupesCandidateAnchors(t *testing.T) {
	t.Parallel()

	t.Run("nil_returns_nil", func(t *testing.T) {
		t.Parallel()

		got := Unique[int](nil)
		assert.Nil(t, got)
	})

	t.Run("no_candidates_returns_empty", func(t *testing.T) {
		t.Parallel()

		got := Unique([]int{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("already_distinct_anchors_unchanged", func(t *testing.T) {
		t.Parallel()

		got := Unique([]int{4, 7, 12})
		assert.Equal(t, []int{4, 7, 12}, got)
	})

	t.Run("height_queue_drops_duplicate_post_ids_preserves_order", func(t *testing.T) {
		t.Parallel()

		// A candidate list holding repeated post-order ids keeps only the
		// first occurrence of each, in first-seen order.
		got := Unique([]int{9, 3, 4, 3, 9, 11, 4})
		assert.Equal(t, []int{9, 3, 4, 11}, got)
	})

	t.Run("all_candidates_identical", func(t *testing.T) {
		t.Parallel()

		got := Unique([]string{"FunctionDecl", "FunctionDecl", "FunctionDecl"})
		assert.Equal(t, []string{"FunctionDecl"}, got)
	})

	t.Run("single_candidate", func(t *testing.T) {
		t.Parallel()

		got := Unique([]int{42})
		assert.Equal(t, []int{42}, got)
	})
}
