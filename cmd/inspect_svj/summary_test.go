package main

import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/neurlang/jetclassifier/datasets"
import "github.com/neurlang/jetclassifier/datasets/svj"

func TestSummarize(t *testing.T) {
	items := []svj.Item{
		{Label: 1, Points: [2][]float64{{1, 3}, {0, 0}}, Features: [][]float64{{2, 2}}, MMed: 3000, MDark: 20, RInv: 0.3, Alpha: 2},
		{Label: 0, Points: [2][]float64{{5, 7}, {0, 0}}, Features: [][]float64{{2, 2}}},
		{Label: 1, Points: [2][]float64{{0, 0}, {0, 0}}, Features: [][]float64{{2, 2}}, MMed: 2000, MDark: 20, RInv: 0.3, Alpha: 1},
	}
	data := svj.NewDataset(items, []int{1, 0, 1}, []int{1}, []string{"jCstPt"}, 2)

	s, err := summarize(datasets.NewSubset[svj.Item](data, []int{0, 1}), data.FeatureNames())
	require.NoError(t, err)
	assert.Equal(t, 2, s.Jets)
	assert.Equal(t, 1, s.Signal)
	assert.Equal(t, 1, s.Background)
	assert.Zero(t, s.NaN)
	require.Len(t, s.Channels, 3)
	assert.Equal(t, svj.Eta, s.Channels[0].Name)
	assert.Equal(t, 4.0, s.Channels[0].Mean)
	assert.Equal(t, 4.0, s.Channels[0].Median)
	assert.Equal(t, svj.Phi, s.Channels[1].Name)
	assert.Zero(t, s.Channels[1].Mean)
	assert.Equal(t, "jCstPt", s.Channels[2].Name)
	assert.Equal(t, 2.0, s.Channels[2].Mean)
	assert.Zero(t, s.Channels[2].Std)

	p := signalParams(data)
	assert.Equal(t, []float64{2000, 3000}, p.MMed)
	assert.Equal(t, []float64{20}, p.MDark)
	assert.Equal(t, []int{1, 2}, p.Alpha)
}
