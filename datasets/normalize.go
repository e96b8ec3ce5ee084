package datasets

import "math"

import "github.com/montanaflynn/stats"
import "github.com/pkg/errors"

// Describe returns the mean and the sample standard deviation of values
func Describe(values []float64) (mean, std float64, err error) {
	data := stats.Float64Data(values)
	mean, err = stats.Mean(data)
	if err != nil {
		return 0, 0, err
	}
	if len(values) < 2 {
		return mean, 0, nil
	}
	std, err = stats.StandardDeviationSample(data)
	return mean, std, err
}

// Normalize standardizes the named columns of t in place to zero mean and unit
// sample standard deviation. It returns the means and deviations used. A column
// without spread is only centred.
func Normalize(t *Table, names []string) (means, stds []float64, err error) {
	means = make([]float64, len(names))
	stds = make([]float64, len(names))
	for i, name := range names {
		col := t.Column(name)
		if col == nil {
			return nil, nil, errors.Errorf("normalize: no column %q", name)
		}
		mean, std, err := Describe(col)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "normalize %q", name)
		}
		means[i], stds[i] = mean, std
		scale := std
		if scale == 0 || math.IsNaN(scale) {
			scale = 1
		}
		for j := range col {
			col[j] = (col[j] - mean) / scale
		}
	}
	return means, stds, nil
}
