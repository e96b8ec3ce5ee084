package svj

import "math/rand"

import "github.com/neurlang/jetclassifier/datasets"

// Item is one labelled jet
type Item struct {
	Label    int // 0 background, 1 signal
	Points   [2][]float64
	Features [][]float64
	MCType   int
	PTLab    int
	PT       float64
	MT       float64
	Weight   float64
	MMed     float64
	MDark    float64
	RInv     float64
	Alpha    int
}

// OneHot returns the label as [background, signal]
func (it Item) OneHot() [2]float64 {
	if it.Label == 1 {
		return [2]float64{0, 1}
	}
	return [2]float64{1, 0}
}

// Input flattens the points followed by the feature channels into one network input row
func (it Item) Input() []float64 {
	var out []float64
	for _, p := range it.Points {
		out = append(out, p...)
	}
	for _, f := range it.Features {
		out = append(out, f...)
	}
	return out
}

// InputSize returns the length of Item.Input for numFeatures channels of numConst constituents
func InputSize(numFeatures, numConst int) int {
	return (2 + numFeatures) * numConst
}

// Dataset is the labelled per-jet dataset. Items must not be modified.
type Dataset struct {
	items        []Item
	fileIndex    []int
	signalFiles  []int
	featureNames []string
	normNames    []string
	normMean     []float64
	normStd      []float64
	numConst     int
}

// NewDataset assembles a dataset from items and the source file index of each item
func NewDataset(items []Item, fileIndex, signalFiles []int, featureNames []string, numConst int) *Dataset {
	return &Dataset{
		items:        items,
		fileIndex:    fileIndex,
		signalFiles:  signalFiles,
		featureNames: featureNames,
		numConst:     numConst,
	}
}

func (d *Dataset) Len() int {
	return len(d.items)
}

func (d *Dataset) Get(i int) Item {
	return d.items[i]
}

// FileIndex returns the input file index of every jet
func (d *Dataset) FileIndex() []int {
	return d.fileIndex
}

// SignalFiles returns the indices of the signal input files
func (d *Dataset) SignalFiles() []int {
	return d.signalFiles
}

// FeatureNames returns the feature channel names in channel order
func (d *Dataset) FeatureNames() []string {
	return d.featureNames
}

// NumConst returns the padded constituent count
func (d *Dataset) NumConst() int {
	return d.numConst
}

// InputSize returns the flattened network input length
func (d *Dataset) InputSize() int {
	return InputSize(len(d.featureNames), d.numConst)
}

// Norm returns the means and standard deviations used to normalize the
// training variables, keyed by column name
func (d *Dataset) Norm() (mean, std map[string]float64) {
	mean = make(map[string]float64, len(d.normNames))
	std = make(map[string]float64, len(d.normNames))
	for i, name := range d.normNames {
		mean[name], std[name] = d.normMean[i], d.normStd[i]
	}
	return
}

// Labels returns the jet labels keyed by jet index
func (d *Dataset) Labels() datasets.Dataset {
	var labels datasets.Dataset
	labels.Init()
	for i, it := range d.items {
		labels[i] = it.Label == 1
	}
	return labels
}

// Epochs draws n balanced index sets with the given seed
func Epochs(d *Dataset, seed int64, n int) ([][]int, error) {
	return datasets.BalanceEpochs(d.fileIndex, d.signalFiles, rand.New(rand.NewSource(seed)), n)
}
