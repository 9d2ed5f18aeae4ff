package ml

import "math"

const probEpsilon = 1e-12

func clampProb(p float64) float64 {
	return math.Max(probEpsilon, math.Min(1-probEpsilon, p))
}

// CrossEntropy of the prediction q against the target distribution p.
func CrossEntropy(p, q float64) float64 {
	q = clampProb(q)
	return -p*math.Log(q) - (1-p)*math.Log(1-q)
}

// Entropy of the binary distribution p.
func Entropy(p float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}
	return -p*math.Log(p) - (1-p)*math.Log(1-p)
}

// KLDivergence of q from p: CrossEntropy(p, q) - Entropy(p).
func KLDivergence(p, q float64) float64 {
	return CrossEntropy(p, q) - Entropy(p)
}
