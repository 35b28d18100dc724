package doctor

import (
	"iter"
	"slices"
)

// Category is a labelled group of diagnostics. Diagnostics is ranged once
// per run; ranging it again must produce an equivalent fresh sequence.
type Category struct {
	Label       string
	Diagnostics iter.Seq[Diagnostic]
}

// NewCategory returns a Category.
func NewCategory(label string, diagnostics iter.Seq[Diagnostic]) Category {
	return Category{Label: label, Diagnostics: diagnostics}
}

// Diagnostics returns a sequence over a fixed list of diagnostics.
func Diagnostics(ds ...Diagnostic) iter.Seq[Diagnostic] {
	return slices.Values(ds)
}

// Categories returns a sequence over a fixed list of categories.
func Categories(cs ...Category) iter.Seq[Category] {
	return slices.Values(cs)
}

// Chain flattens seqs into one sequence, pulling each lazily in order.
// Labels of the categories the sequences came from are not printed.
func Chain(seqs ...iter.Seq[Diagnostic]) iter.Seq[Diagnostic] {
	return func(yield func(Diagnostic) bool) {
		for _, seq := range seqs {
			if seq == nil {
				continue
			}
			for d := range seq {
				if !yield(d) {
					return
				}
			}
		}
	}
}

// Filter returns the categories for which keep returns true.
func Filter(cats iter.Seq[Category], keep func(Category) bool) iter.Seq[Category] {
	return func(yield func(Category) bool) {
		for c := range cats {
			if keep(c) && !yield(c) {
				return
			}
		}
	}
}
