package trainer

import "context"

import "github.com/google/uuid"
import "github.com/pkg/errors"
import "github.com/sbwhitecap/tqdm"
import "github.com/sbwhitecap/tqdm/iterators"
import "go.uber.org/zap"

import "github.com/neurlang/jetclassifier/datasets"
import "github.com/neurlang/jetclassifier/datasets/svj"
import "github.com/neurlang/jetclassifier/net/feedforward"

// Options configures Run
type Options struct {
	Net  *feedforward.FeedforwardNetwork
	Data datasets.Indexed[svj.Item]
	// Sets are the balanced index sets, epoch e trains on Sets[e%len(Sets)]
	Sets      [][]int
	Fractions []float64
	SplitSeed int64

	Epochs    int
	BatchSize int
	LearnRate float64
	Scheduler *Plateau

	// Checkpoint is written after every epoch unless empty
	Checkpoint string
	Log        *zap.SugaredLogger
}

// History holds the per epoch losses of a run
type History struct {
	RunID     string
	Train     []float64
	Val       []float64
	LearnRate []float64
	// Test is the loss on the test part of the last epoch set
	Test float64
}

func (o *Options) check() error {
	switch {
	case o.Net == nil || o.Data == nil:
		return errors.New("network and data are required")
	case len(o.Sets) == 0:
		return errors.New("no epoch sets")
	case o.Epochs < 1:
		return errors.Errorf("epochs %d", o.Epochs)
	case o.BatchSize < 1:
		return errors.Errorf("batch size %d", o.BatchSize)
	case o.LearnRate <= 0:
		return errors.Errorf("learning rate %v", o.LearnRate)
	}
	return nil
}

// Run trains the network for the configured epochs. Each epoch splits its set
// with the split seed, sums the batch losses over the train part, dropping the
// last partial batch, and evaluates the summed validation loss which drives
// the scheduler. Cancellation is checked between batches.
func Run(ctx context.Context, o Options) (*History, error) {
	if err := o.check(); err != nil {
		return nil, err
	}
	if o.Log == nil {
		o.Log = zap.NewNop().Sugar()
	}
	if o.Scheduler == nil {
		o.Scheduler = NewPlateau()
	}
	evaluate := NewEvaluateFunc(o.Net, o.Data, o.BatchSize)
	h := &History{RunID: uuid.NewString()}
	o.Net.Info.RunID = h.RunID

	var (
		session *feedforward.Session
		lr      = o.LearnRate
		test    []int
	)
	defer func() {
		if session != nil {
			session.Close()
		}
	}()

	for epoch := 0; epoch < o.Epochs; epoch++ {
		o.Log.Infow("Beginning epoch", "epoch", epoch)
		set := o.Sets[epoch%len(o.Sets)]
		sizes, err := datasets.Sizes(len(set), o.Fractions)
		if err != nil {
			return h, err
		}
		var train, val []int
		train, val, test, err = datasets.RandomSplit(set, sizes, o.SplitSeed)
		if err != nil {
			return h, err
		}
		if len(train) == 0 {
			return h, errors.Errorf("epoch %d has an empty train part", epoch)
		}

		batch := o.BatchSize
		if batch > len(train) {
			batch = len(train)
		}
		if session == nil || session.BatchSize() != batch {
			if session != nil {
				session.Close()
			}
			if session, err = o.Net.Trainer(batch, lr); err != nil {
				return h, err
			}
		}

		var trainLoss float64
		var stepErr error
		batches := len(train) / batch
		err = tqdm.With(iterators.Interval(0, batches), "Training", func(v interface{}) (brk bool) {
			if stepErr = ctx.Err(); stepErr != nil {
				return true
			}
			start := v.(int) * batch
			x, labels := Batch(o.Data, train[start:start+batch])
			var loss float64
			if loss, stepErr = session.Step(x, labels); stepErr != nil {
				return true
			}
			trainLoss += loss
			return
		})
		if stepErr != nil {
			err = stepErr
		}
		if err != nil {
			return h, errors.Wrapf(err, "epoch %d", epoch)
		}
		o.Log.Infow("t", "loss", trainLoss)

		valLoss, err := evaluate(val)
		if err != nil {
			return h, errors.Wrapf(err, "epoch %d", epoch)
		}
		o.Log.Infow("v", "loss", valLoss)

		if next, reduced := o.Scheduler.Step(valLoss, lr); reduced {
			o.Log.Infow("Reducing learning rate", "epoch", epoch, "from", lr, "to", next)
			lr = next
			session.SetLearnRate(lr)
		}
		h.Train = append(h.Train, trainLoss)
		h.Val = append(h.Val, valLoss)
		h.LearnRate = append(h.LearnRate, lr)

		o.Net.Info.Epoch = epoch
		if o.Checkpoint != "" {
			if err := o.Net.WriteCompressedWeightsToFile(o.Checkpoint); err != nil {
				return h, err
			}
		}
	}

	if len(test) > 0 {
		testLoss, err := evaluate(test)
		if err != nil {
			return h, errors.Wrap(err, "test")
		}
		h.Test = testLoss
		o.Log.Infow("Test loss", "loss", testLoss, "jets", len(test))
	}
	return h, nil
}
