package math

import (
	"math"
	"testing"
)

func TestWinningRate(t *testing.T) {
	var tests = []struct {
		value    float64
		expected float64
	}{
		{0, 0.5},
		{600, Sigmoid(1)},
		{-600, 1 - Sigmoid(1)},
	}
	for _, test := range tests {
		var p = WinningRate(test.value, 600)
		if math.Abs(p-test.expected) > 1e-12 {
			t.Error(test, p)
		}
		if math.Abs(ValueFromWinningRate(p, 600)-test.value) > 1e-6 {
			t.Error("inverse", test, ValueFromWinningRate(p, 600))
		}
	}
}
