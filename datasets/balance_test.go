package datasets

import "math/rand"
import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestChunkIndices(t *testing.T) {
	list := []int{0, 1, 2, 3, 4, 5, 6}
	assert.Equal(t, [][]int{{0, 1, 2}, {3, 4, 5}}, ChunkIndices(list, 3))
	assert.Equal(t, [][]int{list}, ChunkIndices(list, 100))
	assert.Nil(t, ChunkIndices(list, 0))
	assert.Nil(t, ChunkIndices(nil, 3))
}

func TestBalanceEpochsPerFileLimit(t *testing.T) {
	// files 0,1 background (big), 2 signal (small)
	var fileIndex []int
	for f, n := range []int{40, 25, 10} {
		for i := 0; i < n; i++ {
			fileIndex = append(fileIndex, f)
		}
	}
	rng := rand.New(rand.NewSource(2022))
	epochs, err := BalanceEpochs(fileIndex, []int{2}, rng, 10)
	require.NoError(t, err)
	require.Len(t, epochs, 10)

	limits := map[int]int{0: 5, 1: 5, 2: 10}
	for _, set := range epochs {
		per := map[int]int{}
		seen := map[int]bool{}
		for _, idx := range set {
			per[fileIndex[idx]]++
			assert.False(t, seen[idx], "index drawn twice in one epoch")
			seen[idx] = true
		}
		for f, n := range per {
			assert.LessOrEqual(t, n, limits[f])
		}
		assert.Len(t, set, 20)
	}
}

func TestBalanceEpochsReproducible(t *testing.T) {
	fileIndex := []int{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 2, 2}
	a, err := BalanceEpochs(fileIndex, []int{2}, rand.New(rand.NewSource(7)), 3)
	require.NoError(t, err)
	b, err := BalanceEpochs(fileIndex, []int{2}, rand.New(rand.NewSource(7)), 3)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	for i := range a {
		assert.Equal(t, Fingerprint(a[i]), Fingerprint(b[i]))
	}
}

func TestBalanceEpochsErrors(t *testing.T) {
	_, err := BalanceEpochs(nil, []int{0}, rand.New(rand.NewSource(1)), 1)
	assert.Error(t, err)
	// no signal files gives background chunks of size zero
	_, err = BalanceEpochs([]int{0, 0, 1}, nil, rand.New(rand.NewSource(1)), 1)
	assert.Error(t, err)
}

func TestSplitDataset(t *testing.T) {
	var d Dataset
	d.Init()
	d[0], d[1], d[2] = true, false, true
	s := SplitDataset(d)
	assert.Len(t, s[1], 2)
	assert.Len(t, s[0], 1)
}
