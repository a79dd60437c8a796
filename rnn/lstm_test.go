package rnn

import (
	"math"
	"math/rand"
	"testing"
)

// sseLoss computes the full-batch sum-of-squared-errors loss for the given
// parameters without touching gradients.
func sseLoss(p *lstmParams, windows [][]float64, targets []float64) float64 {
	loss := 0.0
	for i := range windows {
		diff := p.forward(windows[i], nil) - targets[i]
		loss += diff * diff
	}
	return loss
}

// Verifies backpropagation through time against central finite differences
// on every parameter group.
func TestLSTMGradientCheck(t *testing.T) {
	const (
		hidden = 3
		steps  = 4
		eps    = 1e-6
	)

	rng := rand.New(rand.NewSource(7))
	p := newLSTMParams(hidden)
	p.initRandom(rng)

	windows := [][]float64{
		{0.1, 0.4, 0.2, 0.8},
		{0.5, 0.3, 0.9, 0.1},
		{0.2, 0.2, 0.6, 0.7},
	}
	targets := []float64{0.6, 0.2, 0.5}

	// Analytic gradients accumulated over the batch.
	grads := newLSTMParams(hidden)
	cache := newLSTMCache(steps, hidden)
	for i := range windows {
		pred := p.forward(windows[i], cache)
		p.backward(2*(pred-targets[i]), cache, grads)
	}

	for _, name := range p.groupOrder() {
		params := p.group(name)
		analytic := grads.group(name)

		for i := range params {
			orig := params[i]

			params[i] = orig + eps
			lossPlus := sseLoss(p, windows, targets)
			params[i] = orig - eps
			lossMinus := sseLoss(p, windows, targets)
			params[i] = orig

			numeric := (lossPlus - lossMinus) / (2 * eps)
			diff := math.Abs(numeric - analytic[i])
			scale := math.Max(1, math.Abs(numeric)+math.Abs(analytic[i]))
			if diff/scale > 1e-5 {
				t.Errorf("%s[%d]: analytic %v vs numeric %v", name, i, analytic[i], numeric)
			}
		}
	}
}

func TestLSTMForwardDeterministic(t *testing.T) {
	p1 := newLSTMParams(4)
	p1.initRandom(rand.New(rand.NewSource(1)))
	p2 := newLSTMParams(4)
	p2.initRandom(rand.New(rand.NewSource(1)))

	window := []float64{0.3, 0.7, 0.1}
	if got1, got2 := p1.forward(window, nil), p2.forward(window, nil); got1 != got2 {
		t.Errorf("same seed produced different outputs: %v vs %v", got1, got2)
	}
}

func TestLSTMForwardCacheMatchesNoCache(t *testing.T) {
	p := newLSTMParams(5)
	p.initRandom(rand.New(rand.NewSource(3)))

	window := []float64{0.2, 0.9, 0.4, 0.6}
	cache := newLSTMCache(len(window), 5)

	if got, want := p.forward(window, cache), p.forward(window, nil); got != want {
		t.Errorf("cached forward = %v, uncached = %v", got, want)
	}
}

func TestSGDUpdate(t *testing.T) {
	opt := NewSGD(0.1)
	params := []float64{1.0, -2.0}
	grads := []float64{0.5, -0.5}

	opt.Advance()
	opt.Update("w", params, grads)

	if math.Abs(params[0]-0.95) > 1e-12 || math.Abs(params[1]+1.95) > 1e-12 {
		t.Errorf("params = %v, want [0.95 -1.95]", params)
	}
}

func TestAdamFirstStep(t *testing.T) {
	// With bias correction the very first step moves each parameter by
	// almost exactly lr in the direction opposing the gradient.
	opt := NewAdam(0.01)
	params := []float64{1.0, -1.0}
	grads := []float64{0.3, -0.7}

	opt.Advance()
	opt.Update("w", params, grads)

	if math.Abs(params[0]-(1.0-0.01)) > 1e-6 {
		t.Errorf("params[0] = %v, want ~0.99", params[0])
	}
	if math.Abs(params[1]-(-1.0+0.01)) > 1e-6 {
		t.Errorf("params[1] = %v, want ~-0.99", params[1])
	}
}

func TestAdamKeepsPerGroupState(t *testing.T) {
	opt := NewAdam(0.1)

	a := []float64{0}
	b := []float64{0}

	opt.Advance()
	opt.Update("a", a, []float64{1})
	opt.Update("b", b, []float64{-1})

	// Groups with opposite gradients move in opposite directions.
	if a[0] >= 0 || b[0] <= 0 {
		t.Errorf("a = %v, b = %v; want a < 0 < b", a[0], b[0])
	}

	// Zero gradient on a later step still decays the moment, so the
	// parameter keeps drifting rather than snapping back.
	before := a[0]
	opt.Advance()
	opt.Update("a", a, []float64{0})
	if a[0] == before {
		t.Error("expected momentum to keep updating parameter with zero gradient")
	}
}
