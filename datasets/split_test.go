package datasets

import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestSizes(t *testing.T) {
	for _, l := range []int{0, 1, 7, 10, 99, 1001, 123457} {
		s, err := Sizes(l, []float64{0.8, 0.1, 0.1})
		require.NoError(t, err)
		assert.Equal(t, l, s.Train+s.Val+s.Test)
		assert.Equal(t, int(0.1*float64(l)), s.Val)
		assert.Equal(t, int(0.1*float64(l)), s.Test)
	}
	s, err := Sizes(99, []float64{0.7, 0.2, 0.1})
	require.NoError(t, err)
	assert.Equal(t, Split{Train: 71, Val: 19, Test: 9}, s)
}

func TestSizesErrors(t *testing.T) {
	_, err := Sizes(10, []float64{0.8, 0.1})
	assert.Error(t, err)
	_, err = Sizes(10, []float64{0.8, 0.1, 0.2})
	assert.Error(t, err)
	_, err = Sizes(10, []float64{1.2, -0.1, -0.1})
	assert.Error(t, err)
}

func TestRandomSplit(t *testing.T) {
	indices := []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}
	s, err := Sizes(len(indices), []float64{0.8, 0.1, 0.1})
	require.NoError(t, err)
	train, val, test, err := RandomSplit(indices, s, 42)
	require.NoError(t, err)
	assert.Len(t, train, 8)
	assert.Len(t, val, 1)
	assert.Len(t, test, 1)
	all := append(append(append([]int{}, train...), val...), test...)
	assert.ElementsMatch(t, indices, all)

	train2, _, _, err := RandomSplit(indices, s, 42)
	require.NoError(t, err)
	assert.Equal(t, train, train2)

	_, _, _, err = RandomSplit(indices, Split{Train: 1}, 42)
	assert.Error(t, err)
}

func TestSubset(t *testing.T) {
	sub := NewSubset[int](squares(10), []int{3, 1})
	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, 9, sub.Get(0))
	assert.Equal(t, 1, sub.Get(1))
}

type squares int

func (s squares) Len() int      { return int(s) }
func (s squares) Get(i int) int { return i * i }
