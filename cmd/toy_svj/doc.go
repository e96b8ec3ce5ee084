// Package main writes synthetic signal and background ROOT ntuples together
// with a matching run configuration, for trying the training pipeline without
// the real samples.
package main
