// Package main trains the semi-visible jet classifier. It loads the
// configured ROOT files, draws balanced epoch sets, fits the feedforward
// network and writes the effective configuration, the checkpoint and a loss
// plot into the output directory.
package main
