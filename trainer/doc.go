// Package trainer runs the epoch loop of the jet classifier: balanced epoch
// sets are split into train, validation and test parts, the network is fitted
// on mini-batches, and losses, learning rate reductions and checkpoints are
// tracked per epoch.
package trainer
