package svj

import "sort"

import "github.com/pkg/errors"
import "github.com/sbwhitecap/tqdm"
import "github.com/sbwhitecap/tqdm/iterators"

import "github.com/neurlang/jetclassifier/datasets"
import "github.com/neurlang/jetclassifier/parallel"

// Column names of the constituent trees and of the columns added while loading
const (
	EvtNum     = "jCstEvtNum"
	JetNum     = "jCstJNum"
	Eta        = "jCstEta"
	Phi        = "jCstPhi"
	HVCategory = "jCsthvCategory"
	InputFile  = "inputFile"
	JetID      = "jID"
	EtaNorm    = "jCstEta_Norm"
	PhiNorm    = "jCstPhi_Norm"
)

// identity columns would give away the jet origin, they are never features
var identity = map[string]bool{
	Eta: true, Phi: true, EvtNum: true, JetNum: true, InputFile: true, HVCategory: true, JetID: true,
}

// Key builds the composite jet identifier from event number, input file index and jet number
func Key(evt, file, jet float64) int64 {
	return int64(evt)*1000000 + int64(file)*1000 + int64(jet)
}

// AddJetID adds the jID column to a table holding event, jet and input file columns
func AddJetID(t *datasets.Table) error {
	evt, jet, file := t.Column(EvtNum), t.Column(JetNum), t.Column(InputFile)
	if evt == nil || jet == nil || file == nil {
		return errors.Errorf("jet id needs columns %s, %s and %s", EvtNum, JetNum, InputFile)
	}
	ids := make([]float64, t.Len())
	for i := range ids {
		ids[i] = float64(Key(evt[i], file[i], jet[i]))
	}
	return t.AddColumn(JetID, ids)
}

// FeatureColumns lists the columns of t used as per-constituent feature channels
func FeatureColumns(t *datasets.Table) (names []string) {
	for _, name := range t.Columns() {
		if !identity[name] {
			names = append(names, name)
		}
	}
	return
}

// Jet is one jet as a fixed size point cloud
type Jet struct {
	ID       int64
	File     int
	Signal   bool
	Row      int          // first constituent row
	Size     int          // constituents before padding or truncation
	Points   [2][]float64 // eta, phi
	Features [][]float64  // channel major, each numConst long
}

// BuildJets groups the constituent rows of t by jet id in ascending id order and
// pads with zeros or truncates every jet to numConst constituents. Jets from a
// file listed in signalFiles are labelled signal.
func BuildJets(t *datasets.Table, signalFiles []int, numConst int) ([]Jet, error) {
	if numConst < 1 {
		return nil, errors.Errorf("constituent count must be positive, got %d", numConst)
	}
	ids, file := t.Column(JetID), t.Column(InputFile)
	eta, phi := t.Column(Eta), t.Column(Phi)
	if ids == nil || file == nil || eta == nil || phi == nil {
		return nil, errors.Errorf("building jets needs columns %s, %s, %s and %s", JetID, InputFile, Eta, Phi)
	}
	featureNames := FeatureColumns(t)
	features := make([][]float64, len(featureNames))
	for i, name := range featureNames {
		features[i] = t.Column(name)
	}
	isSignal := make(map[int]bool, len(signalFiles))
	for _, f := range signalFiles {
		isSignal[f] = true
	}

	order := make([]int, t.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return ids[order[a]] < ids[order[b]] })

	var groups [][]int
	err := tqdm.With(iterators.Interval(0, len(order)), "Grouping constituents", func(v interface{}) (brk bool) {
		i := v.(int)
		row := order[i]
		if i == 0 || ids[row] != ids[order[i-1]] {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], row)
		return
	})
	if err != nil {
		return nil, errors.Wrap(err, "group constituents")
	}

	jets := make([]Jet, len(groups))
	parallel.ForEach(len(groups), 0, func(j int) {
		rows := groups[j]
		first := rows[0]
		jet := Jet{
			ID:       int64(ids[first]),
			File:     int(file[first]),
			Row:      first,
			Size:     len(rows),
			Features: make([][]float64, len(features)),
		}
		jet.Signal = isSignal[jet.File]
		jet.Points[0] = pad(eta, rows, numConst)
		jet.Points[1] = pad(phi, rows, numConst)
		for c := range features {
			jet.Features[c] = pad(features[c], rows, numConst)
		}
		jets[j] = jet
	})
	return jets, nil
}

func pad(col []float64, rows []int, n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n && i < len(rows); i++ {
		out[i] = col[rows[i]]
	}
	return out
}
