package svj

import "math"
import "math/rand"

import "github.com/neurlang/jetclassifier/datasets"

// Toy branch names written by GenerateToy, next to the constituent branches
const (
	ToyPT     = "jCstPtAK8"
	ToyMT     = "jCstMT"
	ToyWeight = "jCstWeightAK8"
	ToyPt     = "jCstPt"
)

// GenerateToy creates a flat constituent table shaped like the SVJ ntuples:
// events with two jets each and a random number of constituents per jet.
// Signal constituents are more collimated and carry hidden valley categories,
// some of them outside DarkCategories.
func GenerateToy(rng *rand.Rand, events int, signal bool) *datasets.Table {
	names := []string{ToyPt, Eta, Phi, EvtNum, JetNum, HVCategory, ToyPT, ToyMT, ToyWeight}
	cols := make([][]float64, len(names))
	spread := 0.8
	hardness := 20.0
	if signal {
		spread = 0.3
		hardness = 45.0
	}
	for evt := 0; evt < events; evt++ {
		mt := 1500 + 500*rng.Float64()
		for jet := 0; jet < 2; jet++ {
			jetEta := 2*rng.Float64() - 1
			jetPhi := math.Pi * (2*rng.Float64() - 1)
			jetPt := 200 + 600*rng.Float64()
			n := 1 + rng.Intn(12)
			for c := 0; c < n; c++ {
				category := 0.0
				if signal {
					category = []float64{3, 5, 9, 1}[rng.Intn(4)]
				}
				row := []float64{
					hardness * rng.ExpFloat64(),
					jetEta + spread*rng.NormFloat64(),
					jetPhi + spread*rng.NormFloat64(),
					float64(evt),
					float64(jet),
					category,
					jetPt,
					mt,
					1,
				}
				for i := range cols {
					cols[i] = append(cols[i], row[i])
				}
			}
		}
	}
	t, _ := datasets.NewTable(names, cols)
	return t
}
