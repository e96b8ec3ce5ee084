// Package svj loads semi-visible jet (SVJ) signal and QCD/TTJets background
// constituent trees, groups constituents into fixed size point clouds and
// provides the labelled per-jet dataset used for training.
package svj
