package gumtree

// Default thresholds, per SPEC_FULL.md §6 and prototype/diff.py's module-level
// minHeight/minSimilarity/maxSize constants.
const (
	DefaultMinHeight    = 2
	DefaultMinSimilarity = 0.5
	DefaultMaxSize      = 100
)

// Params bundles the three tunable thresholds that govern matching.
type Params struct {
	// MinHeight (τ_h): top-down stops once both heaps' max height is ≤ this.
	MinHeight int
	// MinSimilarity (τ_sim): bottom-up candidate acceptance threshold.
	MinSimilarity float64
	// MaxSize (τ_maxsize): cap on max(|subtree1|,|subtree2|) for invoking
	// the Zhang-Shasha matcher.
	MaxSize int
}

// DefaultParams returns the compiled-in default thresholds.
func DefaultParams() Params {
	return Params{
		MinHeight:     DefaultMinHeight,
		MinSimilarity: DefaultMinSimilarity,
		MaxSize:       DefaultMaxSize,
	}
}
