package demo

import (
	"math"
	"testing"
)

func TestGaussian_Validation(t *testing.T) {
	if _, err := Gaussian([]float64{0, 1}, []float64{1}); err == nil {
		t.Error("mismatched lengths should fail")
	}
	if _, err := Gaussian([]float64{0}, []float64{-1}); err == nil {
		t.Error("negative sigma should fail")
	}
}

func TestRun_Shape(t *testing.T) {
	target, err := Gaussian([]float64{0, 5}, []float64{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewSampler(target, 0.5, 1).Run(50, 20)
	if err != nil {
		t.Fatal(err)
	}

	steps, walkers, dim := c.Shape()
	if steps != 50 || walkers != 20 || dim != 2 {
		t.Errorf("shape = (%d, %d, %d), want (50, 20, 2)", steps, walkers, dim)
	}
	if !c.IsValid() {
		t.Error("chain contains NaN/Inf")
	}
}

func TestRun_Deterministic(t *testing.T) {
	target, err := Gaussian([]float64{1}, []float64{0.5})
	if err != nil {
		t.Fatal(err)
	}

	a, err := NewSampler(target, 0.5, 7).Run(30, 8)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSampler(target, 0.5, 7).Run(30, 8)
	if err != nil {
		t.Fatal(err)
	}

	for ts := 0; ts < 30; ts++ {
		for w := 0; w < 8; w++ {
			if a.At(ts, w, 0) != b.At(ts, w, 0) {
				t.Fatalf("same seed diverged at (%d, %d)", ts, w)
			}
		}
	}
}

func TestRun_Converges(t *testing.T) {
	target, err := Gaussian([]float64{3}, []float64{1})
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewSampler(target, 0.5, 3).Run(400, 64)
	if err != nil {
		t.Fatal(err)
	}

	spread := func(step int) float64 {
		lo, hi := c.StepRange(step, 0)
		return hi - lo
	}
	if spread(399) >= spread(0) {
		t.Errorf("walkers did not contract: initial spread %g, final %g", spread(0), spread(399))
	}

	mean := 0.0
	for w := 0; w < 64; w++ {
		mean += c.At(399, w, 0)
	}
	mean /= 64
	if math.Abs(mean-3) > 1.0 {
		t.Errorf("final ensemble mean %g far from target 3", mean)
	}
}
