package trainer

import "math"

// Plateau lowers the learning rate once a minimized metric stops improving
type Plateau struct {
	Factor    float64
	Patience  int
	Threshold float64
	MinLR     float64

	best  float64
	bad   int
	ready bool
}

// NewPlateau returns a scheduler with factor 0.1, patience 10 and relative threshold 1e-4
func NewPlateau() *Plateau {
	return &Plateau{Factor: 0.1, Patience: 10, Threshold: 1e-4}
}

// Step records metric and returns the learning rate to use next
// and whether it was reduced. A NaN metric counts as no improvement.
func (p *Plateau) Step(metric, lr float64) (float64, bool) {
	if !p.ready {
		p.best, p.ready = math.Inf(1), true
	}
	if metric < p.best*(1-p.Threshold) {
		p.best = metric
		p.bad = 0
		return lr, false
	}
	p.bad++
	if p.bad <= p.Patience {
		return lr, false
	}
	p.bad = 0
	next := lr * p.Factor
	if next < p.MinLR {
		next = p.MinLR
	}
	if lr-next <= 1e-8 {
		return lr, false
	}
	return next, true
}

// Best returns the best metric seen so far
func (p *Plateau) Best() float64 {
	return p.best
}
