package trainer

import "context"
import "math"
import "math/rand"
import "os"
import "path/filepath"
import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/neurlang/jetclassifier/datasets/svj"
import "github.com/neurlang/jetclassifier/net/feedforward"

func TestPlateau(t *testing.T) {
	p := &Plateau{Factor: 0.1, Patience: 2, Threshold: 1e-4}
	lr := 1.0
	var reduced bool
	for _, m := range []float64{5, 4, 4, 4} {
		lr, reduced = p.Step(m, lr)
		assert.False(t, reduced)
	}
	lr, reduced = p.Step(4, lr)
	assert.True(t, reduced)
	assert.InDelta(t, 0.1, lr, 1e-12)
	assert.Equal(t, 4.0, p.Best())

	// improvement resets the counter
	lr, reduced = p.Step(3, lr)
	assert.False(t, reduced)
	lr, reduced = p.Step(2.99999, lr)
	assert.False(t, reduced)
	assert.Equal(t, 3.0, p.Best())

	p = &Plateau{Factor: 0.1, Patience: 0, MinLR: 0.5}
	p.Step(1, 1)
	lr, reduced = p.Step(1, 1)
	assert.True(t, reduced)
	assert.Equal(t, 0.5, lr)
	_, reduced = p.Step(1, 0.5)
	assert.False(t, reduced)
}

func TestPlateauNaNFirst(t *testing.T) {
	p := &Plateau{Factor: 0.1, Patience: 1}
	lr := 1.0
	var reduced bool
	lr, reduced = p.Step(math.NaN(), lr)
	assert.False(t, reduced)
	for _, m := range []float64{5, 4, 3, 2, 1} {
		lr, reduced = p.Step(m, lr)
		assert.False(t, reduced, "metric %v", m)
	}
	assert.Equal(t, 1.0, lr)
	assert.Equal(t, 1.0, p.Best())

	// NaN after a finite best is a bad epoch
	p.Step(math.NaN(), lr)
	lr, reduced = p.Step(math.NaN(), lr)
	assert.True(t, reduced)
	assert.InDelta(t, 0.1, lr, 1e-12)
}

func TestNewPlateauDefaults(t *testing.T) {
	p := NewPlateau()
	assert.Equal(t, 0.1, p.Factor)
	assert.Equal(t, 10, p.Patience)
	assert.Equal(t, 1e-4, p.Threshold)
}

// toyItems makes jets of two constituents whose label is the sign of the first eta
func toyItems(rng *rand.Rand, n int) (items []svj.Item, fileIndex []int) {
	for i := 0; i < n; i++ {
		label := i % 2
		eta := float64(2*label-1) + rng.NormFloat64()*0.1
		items = append(items, svj.Item{
			Label:    label,
			Points:   [2][]float64{{eta, eta / 2}, {rng.Float64(), rng.Float64()}},
			Features: [][]float64{{rng.NormFloat64(), 0}},
		})
		fileIndex = append(fileIndex, label)
	}
	return
}

func TestRun(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	items, fileIndex := toyItems(rng, 200)
	data := svj.NewDataset(items, fileIndex, []int{1}, []string{"jCstPt"}, 2)
	sets, err := svj.Epochs(data, 2022, 3)
	require.NoError(t, err)

	net, err := feedforward.New(feedforward.Config{NVar: data.InputSize(), NLayers: 1, NNodes: 8, NOutputs: 2})
	require.NoError(t, err)
	ckpt := filepath.Join(t.TempDir(), "net.ckpt")

	h, err := Run(context.Background(), Options{
		Net:        net,
		Data:       data,
		Sets:       sets,
		Fractions:  []float64{0.8, 0.1, 0.1},
		SplitSeed:  42,
		Epochs:     5,
		BatchSize:  16,
		LearnRate:  0.01,
		Checkpoint: ckpt,
	})
	require.NoError(t, err)
	require.Len(t, h.Train, 5)
	require.Len(t, h.Val, 5)
	require.Len(t, h.LearnRate, 5)
	assert.NotEmpty(t, h.RunID)
	assert.Less(t, h.Val[4], h.Val[0])
	assert.Greater(t, h.Test, 0.0)

	_, err = os.Stat(ckpt)
	require.NoError(t, err)
	loaded, err := feedforward.New(net.Config())
	require.NoError(t, err)
	ok, err := Resume(loaded, ckpt)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, h.RunID, loaded.Info.RunID)
	assert.Equal(t, 4, loaded.Info.Epoch)

	ok, err = Resume(loaded, "")
	require.NoError(t, err)
	assert.False(t, ok)

	plot := filepath.Join(t.TempDir(), "loss_plot.png")
	require.NoError(t, PlotLosses(plot, h.Train, h.Val))
	st, err := os.Stat(plot)
	require.NoError(t, err)
	assert.NotZero(t, st.Size())
	assert.Error(t, PlotLosses(plot, h.Train[:1], h.Val[:1]))
}

func TestRunCancelled(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	items, fileIndex := toyItems(rng, 40)
	data := svj.NewDataset(items, fileIndex, []int{1}, []string{"jCstPt"}, 2)
	net, err := feedforward.New(feedforward.Config{NVar: data.InputSize(), NNodes: 4, NOutputs: 2})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, Options{
		Net:       net,
		Data:      data,
		Sets:      [][]int{{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		Fractions: []float64{0.8, 0.1, 0.1},
		Epochs:    1,
		BatchSize: 4,
		LearnRate: 0.01,
	})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = Run(context.Background(), Options{Net: net, Data: data})
	assert.Error(t, err)
}

func TestEvaluateSumsBatches(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	items, fileIndex := toyItems(rng, 10)
	data := svj.NewDataset(items, fileIndex, []int{1}, []string{"jCstPt"}, 2)
	net, err := feedforward.New(feedforward.Config{NVar: data.InputSize(), NNodes: 4, NOutputs: 2})
	require.NoError(t, err)

	all := []int{0, 1, 2, 3, 4}
	total, err := NewEvaluateFunc(net, data, 2)(all)
	require.NoError(t, err)
	var want float64
	for _, part := range [][]int{{0, 1}, {2, 3}, {4}} {
		x, labels := Batch(data, part)
		loss, err := net.Loss(x, labels)
		require.NoError(t, err)
		want += loss
	}
	assert.InDelta(t, want, total, 1e-12)
}

func TestDevice(t *testing.T) {
	assert.Contains(t, Device(), "cpu")
}
