package main

import "math/rand"
import "os"
import "path/filepath"

import "github.com/alexflint/go-arg"
import "github.com/pkg/errors"
import "go.uber.org/zap"

import "github.com/neurlang/jetclassifier/config"
import "github.com/neurlang/jetclassifier/datasets/rootio"
import "github.com/neurlang/jetclassifier/datasets/svj"

type args struct {
	Out        string   `arg:"--out" default:"toy" help:"output directory"`
	Events     int      `arg:"--events" default:"2000" help:"events per background file, signal files get half"`
	Seed       int64    `arg:"--seed" default:"1" help:"random seed"`
	Signal     []string `arg:"--signal" help:"signal file names, without .root"`
	Background []string `arg:"--background" help:"background file names, without .root"`
}

func main() {
	var a args
	arg.MustParse(&a)
	if len(a.Signal) == 0 {
		a.Signal = []string{
			"tree_SVJ_mMed-3000_mDark-20_rinv-0.3_alpha-peak_MC2017",
			"tree_SVJ_mMed-2000_mDark-20_rinv-0.5_alpha-low_MC2017",
		}
	}
	if len(a.Background) == 0 {
		a.Background = []string{
			"tree_QCD_Pt_600to800_MC2017",
			"tree_TTJets_MC2017",
		}
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err.Error())
	}
	defer logger.Sync()
	log := logger.Sugar()

	if err := run(a, log); err != nil {
		log.Errorw("writing toy samples failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(a args, log *zap.SugaredLogger) error {
	if a.Events < 1 {
		return errors.Errorf("events %d", a.Events)
	}
	if err := os.MkdirAll(a.Out, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", a.Out)
	}
	rng := rand.New(rand.NewSource(a.Seed))

	write := func(name string, events int, signal bool) error {
		path := filepath.Join(a.Out, name+".root")
		t := svj.GenerateToy(rng, events, signal)
		if err := rootio.WriteTable(path, "tree", t); err != nil {
			return err
		}
		log.Infow("wrote sample", "path", path, "constituents", t.Len(), "signal", signal)
		return nil
	}
	for _, name := range a.Background {
		if err := write(name, a.Events, false); err != nil {
			return err
		}
	}
	for _, name := range a.Signal {
		if err := write(name, a.Events/2+1, true); err != nil {
			return err
		}
	}

	cfg := config.Default()
	cfg.Dataset.Path = a.Out
	cfg.Dataset.Signal = a.Signal
	cfg.Dataset.Background = a.Background
	cfg.Dataset.BaselineSignal = a.Signal[0]
	cfg.Features.Train = []string{svj.ToyPt, svj.Eta, svj.Phi, svj.EvtNum, svj.JetNum}
	cfg.Features.Uniform = svj.ToyPT
	cfg.Features.MT = svj.ToyMT
	cfg.Features.Weight = svj.ToyWeight
	cfg.Hyper.PTBins = []float64{0, 300, 500, 700}
	cfg.Hyper.NumConst = 12
	path := filepath.Join(a.Out, "toy.yaml")
	if err := cfg.Write(path); err != nil {
		return err
	}
	log.Infow("wrote configuration", "path", path)
	return nil
}
