// Package feedforward implements a fully connected feedforward classifier
// trained with softmax cross entropy on gorgonia graphs
package feedforward

import "fmt"

import "github.com/pkg/errors"
import "gorgonia.org/gorgonia"
import "gorgonia.org/tensor"

// Config describes the network shape
type Config struct {
	NVar     int     `json:"n_var"`
	NLayers  int     `json:"n_layers"`
	NNodes   int     `json:"n_nodes"`
	NOutputs int     `json:"n_outputs"`
	DropOut  float64 `json:"drop_out_p"`
}

// Info is carried along with the weights in checkpoints
type Info struct {
	RunID    string             `json:"run_id"`
	Epoch    int                `json:"epoch"`
	NormMean map[string]float64 `json:"norm_mean,omitempty"`
	NormStd  map[string]float64 `json:"norm_std,omitempty"`
}

// FeedforwardNetwork is the feedforward network. Layer i maps dims[i] inputs to
// dims[i+1] outputs, hidden layers use ReLU followed by dropout while training.
type FeedforwardNetwork struct {
	config  Config
	weights []*tensor.Dense
	biases  []*tensor.Dense

	Info Info
}

// New creates a network with NVar inputs, an input layer and NLayers hidden
// layers of NNodes nodes, and NOutputs outputs. Weights are Xavier uniform,
// biases 0.01.
func New(c Config) (*FeedforwardNetwork, error) {
	if c.NVar < 1 || c.NNodes < 1 || c.NOutputs < 1 || c.NLayers < 0 {
		return nil, errors.Errorf("invalid network shape %+v", c)
	}
	if c.DropOut < 0 || c.DropOut >= 1 {
		return nil, errors.Errorf("dropout probability %v out of range", c.DropOut)
	}
	f := &FeedforwardNetwork{config: c}
	dims := f.dims()
	for i := 0; i+1 < len(dims); i++ {
		backing := gorgonia.GlorotU(1.0)(tensor.Float64, dims[i], dims[i+1]).([]float64)
		f.weights = append(f.weights, tensor.New(tensor.WithShape(dims[i], dims[i+1]), tensor.WithBacking(backing)))
		bias := make([]float64, dims[i+1])
		for j := range bias {
			bias[j] = 0.01
		}
		f.biases = append(f.biases, tensor.New(tensor.WithShape(1, dims[i+1]), tensor.WithBacking(bias)))
	}
	return f, nil
}

func (f *FeedforwardNetwork) dims() []int {
	dims := []int{f.config.NVar}
	for i := 0; i <= f.config.NLayers; i++ {
		dims = append(dims, f.config.NNodes)
	}
	return append(dims, f.config.NOutputs)
}

// Config returns the network shape
func (f *FeedforwardNetwork) Config() Config {
	return f.config
}

// Len returns the number of linear layers
func (f *FeedforwardNetwork) Len() int {
	return len(f.weights)
}

// Params returns the number of trainable parameters
func (f *FeedforwardNetwork) Params() (n int) {
	for i := range f.weights {
		n += f.weights[i].Shape().TotalSize() + f.biases[i].Shape().TotalSize()
	}
	return
}

// forward adds the network to g on input x and returns the logits with the weight and bias nodes
func (f *FeedforwardNetwork) forward(g *gorgonia.ExprGraph, x *gorgonia.Node, train bool) (out *gorgonia.Node, learnables gorgonia.Nodes, err error) {
	out = x
	for i := range f.weights {
		w := gorgonia.NewMatrix(g, tensor.Float64, gorgonia.WithShape(f.weights[i].Shape()...),
			gorgonia.WithName(fmt.Sprintf("w%d", i)), gorgonia.WithValue(f.weights[i].Clone()))
		b := gorgonia.NewMatrix(g, tensor.Float64, gorgonia.WithShape(f.biases[i].Shape()...),
			gorgonia.WithName(fmt.Sprintf("b%d", i)), gorgonia.WithValue(f.biases[i].Clone()))
		learnables = append(learnables, w, b)

		if out, err = gorgonia.Mul(out, w); err != nil {
			return nil, nil, errors.Wrapf(err, "layer %d", i)
		}
		if out, err = gorgonia.BroadcastAdd(out, b, nil, []byte{0}); err != nil {
			return nil, nil, errors.Wrapf(err, "layer %d bias", i)
		}
		if i == len(f.weights)-1 {
			break
		}
		if out, err = gorgonia.Rectify(out); err != nil {
			return nil, nil, errors.Wrapf(err, "layer %d activation", i)
		}
		if train && f.config.DropOut > 0 {
			if out, err = gorgonia.Dropout(out, f.config.DropOut); err != nil {
				return nil, nil, errors.Wrapf(err, "layer %d dropout", i)
			}
		}
	}
	return out, learnables, nil
}

// crossEntropy is the batch mean of -log softmax(logits) at the one-hot targets y
func crossEntropy(logits, y *gorgonia.Node) (*gorgonia.Node, error) {
	prob, err := gorgonia.SoftMax(logits)
	if err != nil {
		return nil, err
	}
	// keeps log finite on saturated outputs
	eps := gorgonia.NewConstant(1e-12)
	if prob, err = gorgonia.Add(prob, eps); err != nil {
		return nil, err
	}
	logp, err := gorgonia.Log(prob)
	if err != nil {
		return nil, err
	}
	picked, err := gorgonia.HadamardProd(logp, y)
	if err != nil {
		return nil, err
	}
	perSample, err := gorgonia.Sum(picked, 1)
	if err != nil {
		return nil, err
	}
	mean, err := gorgonia.Mean(perSample)
	if err != nil {
		return nil, err
	}
	return gorgonia.Neg(mean)
}

// OneHot encodes class labels as a rows x classes matrix
func OneHot(labels []int, classes int) (*tensor.Dense, error) {
	backing := make([]float64, len(labels)*classes)
	for i, l := range labels {
		if l < 0 || l >= classes {
			return nil, errors.Errorf("label %d of sample %d out of range", l, i)
		}
		backing[i*classes+l] = 1
	}
	return tensor.New(tensor.WithShape(len(labels), classes), tensor.WithBacking(backing)), nil
}

func (f *FeedforwardNetwork) input(x []float64) (*tensor.Dense, int, error) {
	if len(x) == 0 || len(x)%f.config.NVar != 0 {
		return nil, 0, errors.Errorf("input length %d is not a positive multiple of %d", len(x), f.config.NVar)
	}
	rows := len(x) / f.config.NVar
	return tensor.New(tensor.WithShape(rows, f.config.NVar), tensor.WithBacking(x)), rows, nil
}

// Predict returns the class probabilities of every row of x, x being row major
// with NVar columns. Dropout is not applied.
func (f *FeedforwardNetwork) Predict(x []float64) ([][]float64, error) {
	xT, rows, err := f.input(x)
	if err != nil {
		return nil, err
	}
	g := gorgonia.NewGraph()
	xn := gorgonia.NewMatrix(g, tensor.Float64, gorgonia.WithShape(rows, f.config.NVar), gorgonia.WithName("x"), gorgonia.WithValue(xT))
	logits, _, err := f.forward(g, xn, false)
	if err != nil {
		return nil, err
	}
	prob, err := gorgonia.SoftMax(logits)
	if err != nil {
		return nil, err
	}
	var probVal gorgonia.Value
	gorgonia.Read(prob, &probVal)
	vm := gorgonia.NewTapeMachine(g)
	defer vm.Close()
	if err := vm.RunAll(); err != nil {
		return nil, errors.Wrap(err, "predict")
	}
	data := probVal.Data().([]float64)
	out := make([][]float64, rows)
	for i := range out {
		out[i] = append([]float64{}, data[i*f.config.NOutputs:(i+1)*f.config.NOutputs]...)
	}
	return out, nil
}

// Loss returns the mean cross entropy of x against labels without dropout
func (f *FeedforwardNetwork) Loss(x []float64, labels []int) (float64, error) {
	xT, rows, err := f.input(x)
	if err != nil {
		return 0, err
	}
	if rows != len(labels) {
		return 0, errors.Errorf("%d input rows but %d labels", rows, len(labels))
	}
	yT, err := OneHot(labels, f.config.NOutputs)
	if err != nil {
		return 0, err
	}
	g := gorgonia.NewGraph()
	xn := gorgonia.NewMatrix(g, tensor.Float64, gorgonia.WithShape(rows, f.config.NVar), gorgonia.WithName("x"), gorgonia.WithValue(xT))
	yn := gorgonia.NewMatrix(g, tensor.Float64, gorgonia.WithShape(rows, f.config.NOutputs), gorgonia.WithName("y"), gorgonia.WithValue(yT))
	logits, _, err := f.forward(g, xn, false)
	if err != nil {
		return 0, err
	}
	loss, err := crossEntropy(logits, yn)
	if err != nil {
		return 0, err
	}
	var lossVal gorgonia.Value
	gorgonia.Read(loss, &lossVal)
	vm := gorgonia.NewTapeMachine(g)
	defer vm.Close()
	if err := vm.RunAll(); err != nil {
		return 0, errors.Wrap(err, "loss")
	}
	return lossVal.Data().(float64), nil
}
