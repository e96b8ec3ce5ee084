package main

import "context"
import "os"
import "os/signal"
import "path/filepath"

import "github.com/alexflint/go-arg"
import "github.com/pkg/errors"
import "go.uber.org/zap"

import "github.com/neurlang/jetclassifier/config"
import "github.com/neurlang/jetclassifier/datasets/svj"
import "github.com/neurlang/jetclassifier/net/feedforward"
import "github.com/neurlang/jetclassifier/trainer"

type args struct {
	Config      string  `arg:"--config,required" help:"YAML run configuration"`
	Outf        string  `arg:"--outf" default:"logs" help:"directory receiving the configuration, checkpoint and loss plot"`
	Epochs      int     `arg:"--epochs" default:"2" help:"number of training epochs"`
	LR          float64 `arg:"--lr" default:"0.001" help:"initial learning rate"`
	BatchSize   int     `arg:"--batchSize" default:"10000" help:"jets per training batch"`
	Model       string  `arg:"--model" help:"checkpoint to continue training from"`
	NumOfLayers int     `arg:"--num_of_layers" default:"1" help:"hidden layers"`
	NumOfNodes  int     `arg:"--num_of_nodes" default:"20" help:"nodes per hidden layer"`
	DropOut     float64 `arg:"--dropout" default:"0.3" help:"dropout probability"`
	Pgo         bool    `arg:"--pgo" help:"write a CPU profile to default.pgo"`
}

func (args) Description() string {
	return "trains the semi-visible jet classifier on balanced epoch sets"
}

func main() {
	var a args
	arg.MustParse(&a)

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err.Error())
	}
	log := logger.Sugar()

	if a.Pgo {
		stop := startProfile()
		defer stop()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, a, log)
	cancel()
	if err != nil {
		log.Errorw("training failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(ctx context.Context, a args, log *zap.SugaredLogger) error {
	cfg, err := config.Load(a.Config)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(a.Outf, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", a.Outf)
	}
	if err := cfg.Write(filepath.Join(a.Outf, "config_out.yaml")); err != nil {
		return err
	}
	log.Infow("Using device", "device", trainer.Device())

	data, err := svj.Load(cfg, log)
	if err != nil {
		return err
	}
	sets, err := svj.Epochs(data, cfg.Hyper.BalanceSeed, cfg.Hyper.NumEpochSets)
	if err != nil {
		return err
	}

	net, err := feedforward.New(feedforward.Config{
		NVar:     data.InputSize(),
		NLayers:  a.NumOfLayers,
		NNodes:   a.NumOfNodes,
		NOutputs: 2,
		DropOut:  a.DropOut,
	})
	if err != nil {
		return err
	}
	resumed, err := trainer.Resume(net, a.Model)
	if err != nil {
		return err
	}
	if resumed {
		log.Infow("Loading model from file", "model", a.Model)
	} else {
		log.Infow("Creating new model", "parameters", net.Params())
	}
	net.Info.NormMean, net.Info.NormStd = data.Norm()

	history, err := trainer.Run(ctx, trainer.Options{
		Net:        net,
		Data:       data,
		Sets:       sets,
		Fractions:  cfg.Dataset.SampleFractions,
		SplitSeed:  cfg.Hyper.SplitSeed,
		Epochs:     a.Epochs,
		BatchSize:  a.BatchSize,
		LearnRate:  a.LR,
		Checkpoint: filepath.Join(a.Outf, "net.ckpt"),
		Log:        log,
	})
	if err != nil {
		return err
	}

	plot := filepath.Join(a.Outf, "loss_plot.png")
	if err := trainer.PlotLosses(plot, history.Train, history.Val); err != nil {
		log.Warnw("loss plot not written", "error", err)
	} else {
		log.Infow("wrote loss plot", "path", plot)
	}
	return nil
}
