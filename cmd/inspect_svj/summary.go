package main

import "math"
import "sort"

import "github.com/montanaflynn/stats"

import "github.com/neurlang/jetclassifier/datasets"
import "github.com/neurlang/jetclassifier/datasets/svj"

// channel summarizes one input channel over every constituent slot
type channel struct {
	Name   string
	Mean   float64
	Std    float64
	Median float64
}

type summary struct {
	Jets       int
	Signal     int
	Background int
	NaN        int
	Channels   []channel
}

func summarize(data datasets.Indexed[svj.Item], features []string) (s summary, err error) {
	names := append([]string{svj.Eta, svj.Phi}, features...)
	values := make([][]float64, len(names))
	for i := 0; i < data.Len(); i++ {
		it := data.Get(i)
		s.Jets++
		if it.Label == 1 {
			s.Signal++
		} else {
			s.Background++
		}
		for c, col := range append(it.Points[:], it.Features...) {
			for _, v := range col {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					s.NaN++
					continue
				}
				values[c] = append(values[c], v)
			}
		}
	}
	for c, name := range names {
		if len(values[c]) == 0 {
			continue
		}
		ch := channel{Name: name}
		if ch.Mean, ch.Std, err = datasets.Describe(values[c]); err != nil {
			return s, err
		}
		if ch.Median, err = stats.Median(values[c]); err != nil {
			return s, err
		}
		s.Channels = append(s.Channels, ch)
	}
	return s, nil
}

// params lists the distinct signal model parameters among the signal jets
type params struct {
	MMed, MDark, RInv []float64
	Alpha             []int
}

func signalParams(data datasets.Indexed[svj.Item]) (p params) {
	med := map[float64]bool{}
	dark := map[float64]bool{}
	rinv := map[float64]bool{}
	alpha := map[int]bool{}
	for i := 0; i < data.Len(); i++ {
		it := data.Get(i)
		if it.Label != 1 {
			continue
		}
		med[it.MMed], dark[it.MDark], rinv[it.RInv], alpha[it.Alpha] = true, true, true, true
	}
	p.MMed, p.MDark, p.RInv = keys(med), keys(dark), keys(rinv)
	for a := range alpha {
		p.Alpha = append(p.Alpha, a)
	}
	sort.Ints(p.Alpha)
	return
}

func keys(m map[float64]bool) (out []float64) {
	for k := range m {
		out = append(out, k)
	}
	sort.Float64s(out)
	return
}
