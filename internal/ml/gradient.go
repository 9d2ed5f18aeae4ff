package ml

import "math"

const (
	Beta1   = 0.9
	Epsilon = 1e-8
)

// Gradient is the Adam state of one parameter.
type Gradient struct {
	M1 float64
	M2 float64
}

// Adam holds the constants of one optimizer step, shared by every
// parameter of a mini-batch.
type Adam struct {
	LearningRate float64
	Beta1        float64
	Beta2        float64
	corr1        float64
	corr2        float64
}

// NewAdam prepares the bias-corrected step for time step t (t >= 1).
func NewAdam(learningRate, beta2 float64, t int) Adam {
	return Adam{
		LearningRate: learningRate,
		Beta1:        Beta1,
		Beta2:        beta2,
		corr1:        1 - math.Pow(Beta1, float64(t)),
		corr2:        1 - math.Pow(beta2, float64(t)),
	}
}

// Calculate folds value into g's moments and returns the step to subtract
// from the parameter.
func (a *Adam) Calculate(g *Gradient, value float64) float64 {
	g.M1 = g.M1*a.Beta1 + value*(1-a.Beta1)
	g.M2 = g.M2*a.Beta2 + (value*value)*(1-a.Beta2)
	var m = g.M1 / a.corr1
	var v = g.M2 / a.corr2
	return a.LearningRate * m / (math.Sqrt(v) + Epsilon)
}

// Fobos shrinks w toward zero by l1 and then scales it by l2.
func Fobos(w, l1, l2 float64) float64 {
	if w > l1 {
		w -= l1
	} else if w < -l1 {
		w += l1
	} else {
		w = 0
	}
	return w * l2
}
