package ml

import (
	"math"
	"testing"
)

func TestCyclicalLearningRate(t *testing.T) {
	var tests = []struct {
		processed int64
		expected  float64
	}{
		{0, 0.1},
		{250, 0.5},
		{500, 0.9},
		{750, 0.5},
		{1000, 0.1},
		{1250, 0.5},
	}
	for _, test := range tests {
		var lr = CyclicalLearningRate(0.1, 0.9, 2, test.processed, 2000)
		if math.Abs(lr-test.expected) > 1e-9 {
			t.Error(test, lr)
		}
	}
	if CyclicalLearningRate(0.5, 0.5, 10, 123, 1000) != 0.5 {
		t.Error("constant schedule")
	}
}

func TestAdamDeterminism(t *testing.T) {
	var run = func() (float64, Gradient) {
		var g = Gradient{M1: 0.01, M2: 0.002}
		var adam = NewAdam(0.5, 0.999, 3)
		var w = 10.0
		w -= adam.Calculate(&g, -0.3)
		w = Fobos(w, 0.1, 0.99)
		return w, g
	}
	var w1, g1 = run()
	var w2, g2 = run()
	if w1 != w2 || g1 != g2 {
		t.Error(w1, w2, g1, g2)
	}
}

func TestAdamFirstStep(t *testing.T) {
	var adam = NewAdam(2, 0.999, 1)
	var g Gradient
	// The first bias-corrected step has magnitude close to the rate.
	var step = adam.Calculate(&g, -0.004)
	if math.Abs(step+2) > 1e-4 {
		t.Error(step)
	}
}

func TestFobos(t *testing.T) {
	var tests = []struct {
		w, l1, l2, expected float64
	}{
		{5, 1, 1, 4},
		{-5, 1, 1, -4},
		{0.5, 1, 1, 0},
		{10, 0, 0.5, 5},
	}
	for _, test := range tests {
		if r := Fobos(test.w, test.l1, test.l2); r != test.expected {
			t.Error(test, r)
		}
	}
}

func TestRoundClamp(t *testing.T) {
	if RoundClamp[int16](40000) != math.MaxInt16 || RoundClamp[int16](-40000) != math.MinInt16 {
		t.Error("int16 clamp")
	}
	if RoundClamp[int32](2.5) != 3 || RoundClamp[int32](-2.4) != -2 {
		t.Error("int32 round")
	}
	if RoundClamp[int32](1e12) != math.MaxInt32 {
		t.Error("int32 clamp")
	}
}

func TestCrossEntropy(t *testing.T) {
	var p, q = 0.7, 0.4
	if math.Abs(KLDivergence(p, p)) > 1e-12 {
		t.Error("kl of equal distributions")
	}
	if KLDivergence(p, q) <= 0 {
		t.Error("kl must be positive")
	}
	if math.Abs(CrossEntropy(p, q)-Entropy(p)-KLDivergence(p, q)) > 1e-12 {
		t.Error("decomposition")
	}
}
