package math

import "math"

func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func ReverseSigmoid(x float64) float64 {
	return -math.Log(1/x - 1)
}

// WinningRate converts an evaluation to the expected score of the side it
// is counted for; k is the number of evaluation units per logit.
func WinningRate(value, k float64) float64 {
	return Sigmoid(value / k)
}

// ValueFromWinningRate is the inverse of WinningRate.
func ValueFromWinningRate(p, k float64) float64 {
	return ReverseSigmoid(p) * k
}
