package trainer

import "github.com/pkg/errors"

import "github.com/neurlang/jetclassifier/datasets"
import "github.com/neurlang/jetclassifier/datasets/svj"
import "github.com/neurlang/jetclassifier/net/feedforward"

// Batch gathers the network input rows and labels of the given jets
func Batch(data datasets.Indexed[svj.Item], indices []int) (x []float64, labels []int) {
	for _, i := range indices {
		it := data.Get(i)
		x = append(x, it.Input()...)
		labels = append(labels, it.Label)
	}
	return
}

// NewEvaluateFunc returns a function summing the mean loss of every batch of
// batchSize jets, the last batch possibly shorter.
func NewEvaluateFunc(net *feedforward.FeedforwardNetwork, data datasets.Indexed[svj.Item], batchSize int) func(indices []int) (float64, error) {
	return func(indices []int) (float64, error) {
		var total float64
		for start := 0; start < len(indices); start += batchSize {
			end := start + batchSize
			if end > len(indices) {
				end = len(indices)
			}
			x, labels := Batch(data, indices[start:end])
			loss, err := net.Loss(x, labels)
			if err != nil {
				return 0, errors.Wrapf(err, "evaluate batch at %d", start)
			}
			total += loss
		}
		return total, nil
	}
}
