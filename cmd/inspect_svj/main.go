package main

import "fmt"
import "os"

import "github.com/alexflint/go-arg"
import "go.uber.org/zap"

import "github.com/neurlang/jetclassifier/config"
import "github.com/neurlang/jetclassifier/datasets"
import "github.com/neurlang/jetclassifier/datasets/svj"

type args struct {
	Config string `arg:"--config,required" help:"YAML run configuration"`
	Sets   int    `arg:"--sets" help:"number of epoch sets to show, all when zero"`
}

func main() {
	var a args
	arg.MustParse(&a)

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err.Error())
	}
	defer logger.Sync()
	log := logger.Sugar()

	if err := run(a, log); err != nil {
		log.Errorw("inspection failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(a args, log *zap.SugaredLogger) error {
	cfg, err := config.Load(a.Config)
	if err != nil {
		return err
	}
	data, err := svj.Load(cfg, log)
	if err != nil {
		return err
	}
	sets, err := svj.Epochs(data, cfg.Hyper.BalanceSeed, cfg.Hyper.NumEpochSets)
	if err != nil {
		return err
	}
	if a.Sets > 0 && a.Sets < len(sets) {
		sets = sets[:a.Sets]
	}

	labels := datasets.SplitDataset(data.Labels())
	fmt.Printf("jets: %d (%d background, %d signal), input size %d, features %v\n",
		data.Len(), len(labels[0]), len(labels[1]), data.InputSize(), data.FeatureNames())
	mean, std := data.Norm()
	for name := range mean {
		fmt.Printf("normalized %s: mean %g std %g\n", name, mean[name], std[name])
	}
	p := signalParams(data)
	fmt.Printf("mMed %v\nmDark %v\nrinv %v\nalpha %v\n", p.MMed, p.MDark, p.RInv, p.Alpha)

	for e, set := range sets {
		fmt.Printf("epoch set %d: %d jets, fingerprint %x\n", e, len(set), datasets.Fingerprint(set))
		sizes, err := datasets.Sizes(len(set), cfg.Dataset.SampleFractions)
		if err != nil {
			return err
		}
		train, val, test, err := datasets.RandomSplit(set, sizes, cfg.Hyper.SplitSeed)
		if err != nil {
			return err
		}
		for _, part := range []struct {
			name    string
			indices []int
		}{{"train", train}, {"val", val}, {"test", test}} {
			s, err := summarize(datasets.NewSubset[svj.Item](data, part.indices), data.FeatureNames())
			if err != nil {
				return err
			}
			fmt.Printf("  %s: %d jets, %d signal, %d background, %d non-finite\n", part.name, s.Jets, s.Signal, s.Background, s.NaN)
			for _, ch := range s.Channels {
				fmt.Printf("    %-16s mean %10.4g std %10.4g median %10.4g\n", ch.Name, ch.Mean, ch.Std, ch.Median)
			}
		}
	}
	return nil
}
