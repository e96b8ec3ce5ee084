// Package main prints the prepared semi-visible jet dataset: the balanced
// epoch sets, their train, validation and test parts, label balance, missing
// values, channel means and the signal model parameters present.
package main
