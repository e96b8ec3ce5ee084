package svj

import "sort"
import "strconv"
import "strings"

import "github.com/pkg/errors"

// Process type codes
const (
	MCOtherSignal    = 0
	MCBaselineSignal = 1
	MCQCD            = 2
	MCTTJets         = 3
)

// mediator mass spellings of s-channel and t-channel sample names
var mediatorParams = []string{"mMed", "mZprime"}

// ParseParam extracts the value of a signal model parameter from a file name such
// as tree_SVJ_mMed-3000_mDark-20_rinv-0.3_alpha-peak_MC2017. Background files
// have no model parameters and yield 0. Alpha labels low, peak and high map to 1, 2 and 3.
func ParseParam(fileName, name string, signal bool) (float64, error) {
	if !signal {
		return 0, nil
	}
	ind := strings.Index(fileName, name)
	if ind < 0 || len(fileName) <= ind+len(name) {
		return 0, errors.Errorf("file %q has no parameter %q", fileName, name)
	}
	value := fileName[ind+len(name)+1:]
	if und := strings.Index(value, "_"); und >= 0 {
		value = value[:und]
	}
	if name == "alpha" {
		switch value {
		case "low":
			return 1, nil
		case "peak":
			return 2, nil
		case "high":
			return 3, nil
		}
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "file %q parameter %q", fileName, name)
	}
	return v, nil
}

// ParseMediator parses the mediator mass, trying preferred before the other known spellings
func ParseMediator(fileName, preferred string, signal bool) (float64, error) {
	v, err := ParseParam(fileName, preferred, signal)
	if err == nil {
		return v, nil
	}
	for _, name := range mediatorParams {
		if name == preferred || !strings.Contains(fileName, name) {
			continue
		}
		return ParseParam(fileName, name, signal)
	}
	return 0, err
}

// MCType classifies the process of a file
func MCType(fileName string, signal bool, baseline string) int {
	if signal {
		if fileName == baseline {
			return MCBaselineSignal
		}
		return MCOtherSignal
	}
	if strings.Contains(fileName, "QCD") {
		return MCQCD
	}
	return MCTTJets
}

// PTLabel returns the index of the bin holding pt: -1 below the first edge,
// len(bins)-1 at or above the last edge.
func PTLabel(pt float64, bins []float64) int {
	return sort.Search(len(bins), func(i int) bool { return bins[i] > pt }) - 1
}
