package tuner

import (
	"math"

	. "github.com/ChizhovVadim/kpptlearn/internal/math"
	"github.com/ChizhovVadim/kpptlearn/internal/ml"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	slotEmpty uint8 = iota
	slotUsed
	slotMismatch
)

// LossMeter collects per-sample loss terms of one pass. Every sample
// index is written by exactly one worker, so Observe and Mismatch need no
// locking as long as indexes are distinct.
type LossMeter struct {
	k      float64
	state  []uint8
	weight []float64

	sqValue    []float64
	sqWinRate  []float64
	crossEnt   []float64
	crossEval  []float64
	crossWin   []float64
	entEval    []float64
	kldEval    []float64
	norm       []float64
	sqWinLose  []float64
	sqMaterial []float64
}

func NewLossMeter(n int, k float64) *LossMeter {
	return &LossMeter{
		k:          k,
		state:      make([]uint8, n),
		weight:     make([]float64, n),
		sqValue:    make([]float64, n),
		sqWinRate:  make([]float64, n),
		crossEnt:   make([]float64, n),
		crossEval:  make([]float64, n),
		crossWin:   make([]float64, n),
		entEval:    make([]float64, n),
		kldEval:    make([]float64, n),
		norm:       make([]float64, n),
		sqWinLose:  make([]float64, n),
		sqMaterial: make([]float64, n),
	}
}

func (m *LossMeter) Len() int {
	return len(m.state)
}

// Reset forgets every observation.
func (m *LossMeter) Reset() {
	for i := range m.state {
		m.state[i] = slotEmpty
		m.weight[i] = 0
	}
}

func (m *LossMeter) Observe(index int, sample *Sample) {
	var p = WinningRate(float64(sample.Recorded), m.k)
	var q = WinningRate(float64(sample.Value), m.k)
	var t = 0.0
	if sample.Win {
		t = 1
	}
	var diff = float64(sample.Recorded - sample.Value)
	var crossEval = ml.CrossEntropy(p, q)
	var crossWin = ml.CrossEntropy(t, q)
	var entEval = ml.Entropy(p)
	var diffMaterial = float64(sample.Recorded - sample.Material)

	m.state[index] = slotUsed
	m.weight[index] = 1
	m.sqValue[index] = diff * diff
	m.sqWinRate[index] = (q - p) * (q - p)
	m.crossEval[index] = crossEval
	m.crossWin[index] = crossWin
	m.crossEnt[index] = sample.Lambda*crossEval + (1-sample.Lambda)*crossWin
	m.entEval[index] = entEval
	m.kldEval[index] = crossEval - entEval
	m.norm[index] = math.Abs(float64(sample.Value))
	m.sqWinLose[index] = (q - t) * (q - t)
	m.sqMaterial[index] = diffMaterial * diffMaterial
}

// Mismatch marks a sample dropped because search and replay disagreed.
func (m *LossMeter) Mismatch(index int) {
	m.state[index] = slotMismatch
	m.weight[index] = 0
}

// LossSummary holds means over the observed samples.
type LossSummary struct {
	Samples          int
	Mismatches       int
	RMSEValue        float64
	RMSEWinningRate  float64
	CrossEntropy     float64
	CrossEntropyEval float64
	CrossEntropyWin  float64
	EntropyEval      float64
	KLDEval          float64
	Norm             float64
	RMSEWinOrLose    float64
	RMSEMaterial     float64
}

func (s LossSummary) MismatchRate() float64 {
	var total = s.Samples + s.Mismatches
	if total == 0 {
		return 0
	}
	return float64(s.Mismatches) / float64(total)
}

func (m *LossMeter) Summary() LossSummary {
	var result LossSummary
	for _, st := range m.state {
		switch st {
		case slotUsed:
			result.Samples++
		case slotMismatch:
			result.Mismatches++
		}
	}
	if floats.Sum(m.weight) == 0 {
		return result
	}
	var mean = func(x []float64) float64 {
		return stat.Mean(x, m.weight)
	}
	result.RMSEValue = math.Sqrt(mean(m.sqValue))
	result.RMSEWinningRate = math.Sqrt(mean(m.sqWinRate))
	result.CrossEntropy = mean(m.crossEnt)
	result.CrossEntropyEval = mean(m.crossEval)
	result.CrossEntropyWin = mean(m.crossWin)
	result.EntropyEval = mean(m.entEval)
	result.KLDEval = mean(m.kldEval)
	result.Norm = mean(m.norm)
	result.RMSEWinOrLose = math.Sqrt(mean(m.sqWinLose))
	result.RMSEMaterial = math.Sqrt(mean(m.sqMaterial))
	return result
}
