package feedforward

import "github.com/pkg/errors"
import "gorgonia.org/gorgonia"
import "gorgonia.org/tensor"

// Session trains a network on fixed size batches with Adam
type Session struct {
	net        *FeedforwardNetwork
	batch      int
	lr         float64
	x, y       *gorgonia.Node
	learnables gorgonia.Nodes
	loss       gorgonia.Value
	vm         gorgonia.VM
	solver     gorgonia.Solver
}

// Trainer compiles a training graph for batches of batchSize rows
func (f *FeedforwardNetwork) Trainer(batchSize int, lr float64) (*Session, error) {
	if batchSize < 1 {
		return nil, errors.Errorf("batch size %d", batchSize)
	}
	if lr <= 0 {
		return nil, errors.Errorf("learning rate %v", lr)
	}
	s := &Session{net: f, batch: batchSize}
	g := gorgonia.NewGraph()
	s.x = gorgonia.NewMatrix(g, tensor.Float64, gorgonia.WithShape(batchSize, f.config.NVar), gorgonia.WithName("x"))
	s.y = gorgonia.NewMatrix(g, tensor.Float64, gorgonia.WithShape(batchSize, f.config.NOutputs), gorgonia.WithName("y"))

	logits, learnables, err := f.forward(g, s.x, true)
	if err != nil {
		return nil, err
	}
	loss, err := crossEntropy(logits, s.y)
	if err != nil {
		return nil, err
	}
	gorgonia.Read(loss, &s.loss)
	if _, err := gorgonia.Grad(loss, learnables...); err != nil {
		return nil, errors.Wrap(err, "gradient")
	}
	s.learnables = learnables
	s.vm = gorgonia.NewTapeMachine(g, gorgonia.BindDualValues(learnables...))
	s.SetLearnRate(lr)
	return s, nil
}

// BatchSize returns the rows per step
func (s *Session) BatchSize() int {
	return s.batch
}

// LearnRate returns the current learning rate
func (s *Session) LearnRate() float64 {
	return s.lr
}

// SetLearnRate replaces the solver with one using the new rate, resetting Adam moments
func (s *Session) SetLearnRate(lr float64) {
	s.lr = lr
	s.solver = gorgonia.NewAdamSolver(gorgonia.WithLearnRate(lr))
}

// Step runs one forward and backward pass on a batch and updates the network
// weights. It returns the batch mean loss.
func (s *Session) Step(x []float64, labels []int) (float64, error) {
	if len(labels) != s.batch || len(x) != s.batch*s.net.config.NVar {
		return 0, errors.Errorf("batch of %d rows and %d values, expected %d rows", len(labels), len(x), s.batch)
	}
	yT, err := OneHot(labels, s.net.config.NOutputs)
	if err != nil {
		return 0, err
	}
	xT := tensor.New(tensor.WithShape(s.batch, s.net.config.NVar), tensor.WithBacking(x))
	if err := gorgonia.Let(s.x, xT); err != nil {
		return 0, err
	}
	if err := gorgonia.Let(s.y, yT); err != nil {
		return 0, err
	}
	defer s.vm.Reset()
	if err := s.vm.RunAll(); err != nil {
		return 0, errors.Wrap(err, "forward")
	}
	if err := s.solver.Step(gorgonia.NodesToValueGrads(s.learnables)); err != nil {
		return 0, errors.Wrap(err, "solver")
	}
	s.sync()
	return s.loss.Data().(float64), nil
}

// sync copies the graph weights back into the network
func (s *Session) sync() {
	_, tensors := s.net.named()
	for i, n := range s.learnables {
		copy(tensors[i].Data().([]float64), n.Value().Data().([]float64))
	}
}

// Close releases the graph
func (s *Session) Close() error {
	return s.vm.Close()
}
