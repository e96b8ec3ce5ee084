package feedforward

import "bytes"
import "math/rand"
import "path/filepath"
import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

// separable returns rows where the class is the sign of the first input
func separable(rng *rand.Rand, rows, nvar int) (x []float64, labels []int) {
	for i := 0; i < rows; i++ {
		label := i % 2
		for j := 0; j < nvar; j++ {
			v := rng.NormFloat64() * 0.1
			if j == 0 {
				v += float64(2*label - 1)
			}
			x = append(x, v)
		}
		labels = append(labels, label)
	}
	return
}

func TestNewShape(t *testing.T) {
	net, err := New(Config{NVar: 6, NLayers: 1, NNodes: 4, NOutputs: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, net.Len())
	assert.Equal(t, 6*4+4+4*4+4+4*2+2, net.Params())
	assert.Equal(t, []int{6, 4, 4, 2}, net.dims())

	_, err = New(Config{NVar: 0, NNodes: 4, NOutputs: 2})
	assert.Error(t, err)
	_, err = New(Config{NVar: 2, NNodes: 4, NOutputs: 2, DropOut: 1})
	assert.Error(t, err)
}

func TestPredictIsDistribution(t *testing.T) {
	net, err := New(Config{NVar: 3, NLayers: 2, NNodes: 5, NOutputs: 2, DropOut: 0.3})
	require.NoError(t, err)
	probs, err := net.Predict([]float64{1, 2, 3, -1, 0, 0.5})
	require.NoError(t, err)
	require.Len(t, probs, 2)
	for _, p := range probs {
		require.Len(t, p, 2)
		assert.InDelta(t, 1.0, p[0]+p[1], 1e-9)
	}

	_, err = net.Predict([]float64{1, 2})
	assert.Error(t, err)
}

func TestTrainingReducesLoss(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	net, err := New(Config{NVar: 4, NLayers: 1, NNodes: 8, NOutputs: 2})
	require.NoError(t, err)
	x, labels := separable(rng, 64, 4)

	before, err := net.Loss(x, labels)
	require.NoError(t, err)

	s, err := net.Trainer(16, 0.01)
	require.NoError(t, err)
	defer s.Close()
	for epoch := 0; epoch < 40; epoch++ {
		for start := 0; start < 64; start += 16 {
			_, err := s.Step(x[start*4:(start+16)*4], labels[start:start+16])
			require.NoError(t, err)
		}
	}
	after, err := net.Loss(x, labels)
	require.NoError(t, err)
	assert.Less(t, after, before)
	assert.Less(t, after, 0.3)

	probs, err := net.Predict(x[:8])
	require.NoError(t, err)
	assert.Greater(t, probs[0][0], probs[0][1])
	assert.Greater(t, probs[1][1], probs[1][0])
}

func TestStepRejectsWrongBatch(t *testing.T) {
	net, err := New(Config{NVar: 2, NLayers: 0, NNodes: 3, NOutputs: 2})
	require.NoError(t, err)
	s, err := net.Trainer(4, 0.001)
	require.NoError(t, err)
	defer s.Close()
	_, err = s.Step([]float64{1, 2}, []int{0})
	assert.Error(t, err)
	_, err = s.Step(make([]float64, 8), []int{0, 1, 2, 0})
	assert.Error(t, err)

	s.SetLearnRate(1e-4)
	assert.Equal(t, 1e-4, s.LearnRate())
}

func TestCheckpointRoundTrip(t *testing.T) {
	cfg := Config{NVar: 5, NLayers: 1, NNodes: 6, NOutputs: 2, DropOut: 0.2}
	src, err := New(cfg)
	require.NoError(t, err)
	src.Info = Info{RunID: "run", Epoch: 3, NormMean: map[string]float64{"jCstPt": 1.5}}

	var buf bytes.Buffer
	require.NoError(t, src.WriteCompressedWeights(&buf))

	cfg.DropOut = 0
	dst, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, dst.ReadCompressedWeights(bytes.NewReader(buf.Bytes())))
	assert.Equal(t, src.Info, dst.Info)
	for i := range src.weights {
		assert.Equal(t, src.weights[i].Data(), dst.weights[i].Data())
		assert.Equal(t, src.biases[i].Data(), dst.biases[i].Data())
	}

	other, err := New(Config{NVar: 5, NLayers: 2, NNodes: 6, NOutputs: 2})
	require.NoError(t, err)
	assert.Error(t, other.ReadCompressedWeights(bytes.NewReader(buf.Bytes())))
}

func TestCheckpointFile(t *testing.T) {
	net, err := New(Config{NVar: 2, NLayers: 0, NNodes: 2, NOutputs: 2})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "net.ckpt")
	require.NoError(t, net.WriteCompressedWeightsToFile(path))
	require.NoError(t, net.ReadCompressedWeightsFromFile(path))
	assert.Error(t, net.ReadCompressedWeightsFromFile(filepath.Join(t.TempDir(), "missing.ckpt")))
}
