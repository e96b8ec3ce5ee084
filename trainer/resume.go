package trainer

import "github.com/neurlang/jetclassifier/net/feedforward"

// Resume loads the weights saved at path into net. An empty path leaves the
// freshly initialized weights and reports false.
func Resume(net *feedforward.FeedforwardNetwork, path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if err := net.ReadCompressedWeightsFromFile(path); err != nil {
		return false, err
	}
	return true, nil
}
