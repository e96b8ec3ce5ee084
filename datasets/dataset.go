// Package datasets implements the columnar table, normalization, balanced
// epoch sampling and partitioning used to prepare jet datasets
package datasets

// Dataset maps a jet index to its label, true being signal
type Dataset map[int]bool

func (d *Dataset) Init() {
	*d = make(map[int]bool)
}

type SplittedDataset [2]map[int]struct{}

// SplitDataset splits dataset into a background (false) set and a signal (true) set
func SplitDataset(d Dataset) (o SplittedDataset) {
	o[0] = make(map[int]struct{})
	o[1] = make(map[int]struct{})
	for k, v := range d {
		if v {
			o[1][k] = struct{}{}
		} else {
			o[0][k] = struct{}{}
		}
	}
	return
}

// Indexed is a random access dataset of items
type Indexed[T any] interface {
	Len() int
	Get(i int) T
}

// Subset views a dataset through a list of indices
type Subset[T any] struct {
	Dataset Indexed[T]
	Indices []int
}

// NewSubset creates a Subset of ds, the indices are not copied
func NewSubset[T any](ds Indexed[T], indices []int) Subset[T] {
	return Subset[T]{Dataset: ds, Indices: indices}
}

func (s Subset[T]) Len() int {
	return len(s.Indices)
}

func (s Subset[T]) Get(i int) T {
	return s.Dataset.Get(s.Indices[i])
}
