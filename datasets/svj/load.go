package svj

import "path/filepath"

import "github.com/pkg/errors"
import "go.uber.org/zap"

import "github.com/neurlang/jetclassifier/config"
import "github.com/neurlang/jetclassifier/datasets"
import "github.com/neurlang/jetclassifier/datasets/rootio"

// DarkCategories are the hidden valley categories of constituents kept from signal files
var DarkCategories = []float64{3, 5, 9}

// Source is one input file
type Source struct {
	Index  int
	Name   string
	Signal bool
}

// Sources lists the configured files, background before signal, with their file index
func Sources(cfg *config.Config) (out []Source) {
	for _, name := range cfg.Dataset.Background {
		out = append(out, Source{Index: len(out), Name: name})
	}
	for _, name := range cfg.Dataset.Signal {
		out = append(out, Source{Index: len(out), Name: name, Signal: true})
	}
	return
}

// fileRows are the cleaned constituents of one file with per-row auxiliary values
type fileRows struct {
	table  *datasets.Table
	pt     []float64
	mt     []float64
	weight []float64
}

// CapRows limits the constituents kept from one file: at most minNum*maxMultiple,
// and a whole multiple of minNum in between. A non-positive minNum disables the cap.
func CapRows(n, minNum, maxMultiple int) int {
	if minNum <= 0 {
		return n
	}
	maxNum := minNum * maxMultiple
	if n > maxNum {
		return maxNum
	}
	if minNum < n && n < maxNum {
		return (n / minNum) * minNum
	}
	return n
}

func loadFile(cfg *config.Config, src Source) (*fileRows, error) {
	path := filepath.Join(cfg.Dataset.Path, src.Name+".root")
	r, err := rootio.Open(path, cfg.Dataset.Tree)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	vars := cfg.Features.Train
	aux := []string{cfg.Features.Uniform, cfg.Features.MT, cfg.Features.Weight}
	if src.Signal {
		aux = append(aux, HVCategory)
	}
	var names = append([]string{}, vars...)
	var seen = make(map[string]bool)
	for _, v := range vars {
		seen[v] = true
	}
	for _, a := range aux {
		if !seen[a] {
			seen[a] = true
			names = append(names, a)
		}
	}
	all, err := r.Read(names...)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	if src.Signal {
		hv := all.Column(HVCategory)
		all = all.Filter(func(row int) bool {
			for _, c := range DarkCategories {
				if hv[row] == c {
					return true
				}
			}
			return false
		})
	}
	if all, err = all.DropNonFinite(vars...); err != nil {
		return nil, errors.Wrapf(err, "clean %s", path)
	}
	all = all.Head(CapRows(all.Len(), cfg.Hyper.MinConstituents, cfg.Hyper.MaxMultiple))

	cols := make([][]float64, len(vars))
	for i, v := range vars {
		cols[i] = all.Column(v)
	}
	table, err := datasets.NewTable(vars, cols)
	if err != nil {
		return nil, err
	}
	file := make([]float64, table.Len())
	for i := range file {
		file[i] = float64(src.Index)
	}
	if err := table.AddColumn(InputFile, file); err != nil {
		return nil, err
	}
	return &fileRows{
		table:  table,
		pt:     all.Column(cfg.Features.Uniform),
		mt:     all.Column(cfg.Features.MT),
		weight: all.Column(cfg.Features.Weight),
	}, nil
}

// Load reads every configured file and prepares the labelled jet dataset
func Load(cfg *config.Config, log *zap.SugaredLogger) (*Dataset, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	var tables []*datasets.Table
	var pt, mt, weight []float64
	var signalFiles []int

	for _, src := range Sources(cfg) {
		log.Infow("reading input file", "file", src.Name, "index", src.Index, "signal", src.Signal)
		rows, err := loadFile(cfg, src)
		if err != nil {
			return nil, err
		}
		log.Infow("constituents kept", "file", src.Name, "count", rows.table.Len())
		if src.Signal {
			signalFiles = append(signalFiles, src.Index)
		}
		tables = append(tables, rows.table)
		pt = append(pt, rows.pt...)
		mt = append(mt, rows.mt...)
		weight = append(weight, rows.weight...)
	}

	table, err := datasets.Concat(tables...)
	if err != nil {
		return nil, errors.Wrap(err, "concatenate input files")
	}
	return Prepare(cfg, table, Aux{PT: pt, MT: mt, Weight: weight}, Sources(cfg), signalFiles, log)
}

// Aux holds per-constituent auxiliary values aligned with the constituent table
type Aux struct {
	PT     []float64
	MT     []float64
	Weight []float64
}

// Prepare turns the concatenated constituent table of all sources into the jet
// dataset: it adds jet ids, normalizes the training variables, builds padded
// point clouds and attaches labels and auxiliary scalars.
func Prepare(cfg *config.Config, table *datasets.Table, aux Aux, sources []Source, signalFiles []int, log *zap.SugaredLogger) (*Dataset, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if len(aux.PT) != table.Len() || len(aux.MT) != table.Len() || len(aux.Weight) != table.Len() {
		return nil, errors.Errorf("auxiliary columns do not match %d constituents", table.Len())
	}
	if err := AddJetID(table); err != nil {
		return nil, err
	}
	counts := table.Counts(InputFile)
	for _, f := range datasets.SortedKeys(counts) {
		log.Infow("constituents per input file", "inputFile", int(f), "count", counts[f])
	}

	if err := table.AddColumn(EtaNorm, append([]float64{}, table.Column(Eta)...)); err != nil {
		return nil, err
	}
	if err := table.AddColumn(PhiNorm, append([]float64{}, table.Column(Phi)...)); err != nil {
		return nil, err
	}
	var normNames []string
	for _, v := range cfg.Features.Train {
		switch v {
		case Eta, Phi, InputFile, EvtNum, JetNum:
			continue
		}
		normNames = append(normNames, v)
	}
	means, stds, err := datasets.Normalize(table, normNames)
	if err != nil {
		return nil, err
	}

	jets, err := BuildJets(table, signalFiles, cfg.Hyper.NumConst)
	if err != nil {
		return nil, err
	}
	log.Infow("jets built", "jets", len(jets), "numConst", cfg.Hyper.NumConst)

	byIndex := make(map[int]Source, len(sources))
	for _, src := range sources {
		byIndex[src.Index] = src
	}
	type params struct {
		mcType int
		mMed   float64
		mDark  float64
		rinv   float64
		alpha  float64
	}
	fileParams := make(map[int]params, len(sources))
	for _, src := range sources {
		var p params
		p.mcType = MCType(src.Name, src.Signal, cfg.Dataset.BaselineSignal)
		if p.mMed, err = ParseMediator(src.Name, cfg.Dataset.MediatorParam, src.Signal); err != nil {
			return nil, err
		}
		if p.mDark, err = ParseParam(src.Name, "mDark", src.Signal); err != nil {
			return nil, err
		}
		if p.rinv, err = ParseParam(src.Name, "rinv", src.Signal); err != nil {
			return nil, err
		}
		if p.alpha, err = ParseParam(src.Name, "alpha", src.Signal); err != nil {
			return nil, err
		}
		fileParams[src.Index] = p
	}

	items := make([]Item, len(jets))
	fileIndex := make([]int, len(jets))
	for i, jet := range jets {
		if _, ok := byIndex[jet.File]; !ok {
			return nil, errors.Errorf("jet %d comes from unknown input file %d", jet.ID, jet.File)
		}
		p := fileParams[jet.File]
		it := Item{
			Points:   jet.Points,
			Features: jet.Features,
			MCType:   p.mcType,
			PTLab:    PTLabel(aux.PT[jet.Row], cfg.Hyper.PTBins),
			PT:       aux.PT[jet.Row],
			MT:       aux.MT[jet.Row],
			Weight:   aux.Weight[jet.Row],
			MMed:     p.mMed,
			MDark:    p.mDark,
			RInv:     p.rinv,
			Alpha:    int(p.alpha),
		}
		if jet.Signal {
			it.Label = 1
		}
		items[i] = it
		fileIndex[i] = jet.File
	}

	ds := NewDataset(items, fileIndex, signalFiles, FeatureColumns(table), cfg.Hyper.NumConst)
	ds.normNames, ds.normMean, ds.normStd = normNames, means, stds

	split := datasets.SplitDataset(ds.Labels())
	log.Infow("jet totals", "total", len(items), "signal", len(split[1]), "background", len(split[0]))
	return ds, nil
}
