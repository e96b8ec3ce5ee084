package datasets

import "math"
import "math/rand"

import "github.com/pkg/errors"

// Split holds the partition sizes
type Split struct {
	Train, Val, Test int
}

// Sizes computes partition sizes for l items from train, validation and test
// fractions. Validation and test are truncated, train takes the remainder.
func Sizes(l int, fractions []float64) (Split, error) {
	if len(fractions) != 3 {
		return Split{}, errors.Errorf("need three fractions for train, validation and test, got %d", len(fractions))
	}
	var sum float64
	for _, f := range fractions {
		if f < 0 {
			return Split{}, errors.Errorf("negative fraction %v", f)
		}
		sum += f
	}
	if math.Abs(sum-1) > 1e-9 {
		return Split{}, errors.Errorf("sum of fractions %v does not equal 1.0", sum)
	}
	var s Split
	s.Val = int(fractions[1] * float64(l))
	s.Test = int(fractions[2] * float64(l))
	s.Train = l - s.Val - s.Test
	return s, nil
}

// RandomSplit permutes indices with a seeded generator and cuts the permutation
// into consecutive train, validation and test parts
func RandomSplit(indices []int, s Split, seed int64) (train, val, test []int, err error) {
	if s.Train+s.Val+s.Test != len(indices) {
		return nil, nil, nil, errors.Errorf("split sizes %d+%d+%d do not add up to %d", s.Train, s.Val, s.Test, len(indices))
	}
	perm := rand.New(rand.NewSource(seed)).Perm(len(indices))
	shuffled := make([]int, len(indices))
	for i, p := range perm {
		shuffled[i] = indices[p]
	}
	train = shuffled[:s.Train:s.Train]
	val = shuffled[s.Train : s.Train+s.Val : s.Train+s.Val]
	test = shuffled[s.Train+s.Val:]
	return train, val, test, nil
}
