package tuner

import (
	"context"

	"github.com/ChizhovVadim/kpptlearn/internal/feature"
	. "github.com/ChizhovVadim/kpptlearn/internal/math"
	"github.com/ChizhovVadim/kpptlearn/internal/ml"
	"github.com/ChizhovVadim/kpptlearn/internal/parallel"
	"github.com/ChizhovVadim/kpptlearn/internal/weights"
	"github.com/ChizhovVadim/kpptlearn/pkg/common"
)

// Delta is the derivative of the elmo loss by the leaf winning rate:
// lambda*(q-p) + (1-lambda)*(q-t).
func Delta(recorded, value int, win bool, lambda, k float64) float64 {
	var p = WinningRate(float64(recorded), k)
	var q = WinningRate(float64(value), k)
	var t = 0.0
	if win {
		t = 1
	}
	return lambda*(q-p) + (1-lambda)*(q-t)
}

// Accumulate adds the delta of one sample to the raw gradient of every
// feature active at the sample's leaf. It is safe for concurrent use.
func Accumulate(table *weights.Table, sample *Sample, k float64) {
	var delta = Delta(sample.Recorded, sample.Value, sample.Win, sample.Lambda, k)
	var pos = sample.Pos
	var color, turn = feature.SplitDelta(delta,
		sample.RootColor == common.Black,
		pos.SideToMove() == sample.RootColor)
	feature.ForEachActive(table.Space(),
		pos.KingSquare(common.Black), pos.KingSquare(common.White),
		pos.ListFb(), pos.ListFw(),
		func(index int, colorSign float64) {
			table.Cell(index + int(feature.Color)).AddRaw(colorSign * color)
			table.Cell(index + int(feature.Turn)).AddRaw(turn)
		})
}

// Redistribute sets every cell's lower gradient to the signed sum of the
// raw gradients of its symmetry group. Each worker writes only the cells
// of its own range, so the pass needs no locking.
func Redistribute(ctx context.Context, table *weights.Table, threads int) error {
	var space = table.Space()
	var n = table.Len()
	return parallel.For(ctx, threads, n, parallel.ChunkSize(n, threads),
		func(thread, begin, end int) error {
			for i := begin; i < end; i++ {
				var lower float64
				for _, m := range space.GroupOf(i) {
					var g = table.Cell(m.Index).Raw()
					if m.Negate {
						g = -g
					}
					lower += g
				}
				table.Cell(i).Lower = lower
			}
			return nil
		})
}

// Optimizer holds the update parameters of one mini-batch.
type Optimizer struct {
	Adam    ml.Adam
	FobosL1 float64
	FobosL2 float64
}

func NewOptimizer(cfg *Config, learningRate float64, miniBatch int) Optimizer {
	return Optimizer{
		Adam:    ml.NewAdam(learningRate, cfg.AdamBeta2, miniBatch),
		FobosL1: cfg.FobosL1,
		FobosL2: cfg.FobosL2,
	}
}

// Optimize applies one Adam step and the FOBOS shrinkage to every cell
// and writes the rounded values back to the evaluator arrays. Both
// gradient accumulators are cleared afterwards.
func Optimize(ctx context.Context, table *weights.Table, threads int, opt Optimizer) error {
	var n = table.Len()
	return parallel.For(ctx, threads, n, parallel.ChunkSize(n, threads),
		func(thread, begin, end int) error {
			var adam = opt.Adam
			for i := begin; i < end; i++ {
				var cell = table.Cell(i)
				var w = cell.W - adam.Calculate(&cell.Gradient, cell.Lower)
				table.Store(i, ml.Fobos(w, opt.FobosL1, opt.FobosL2))
				cell.ResetGradients()
			}
			return nil
		})
}

// LearningRate is the cyclical rate for a mini-batch starting after
// processed samples.
func LearningRate(cfg *Config, processed int64) float64 {
	return ml.CyclicalLearningRate(cfg.MinLearningRate, cfg.MaxLearningRate,
		cfg.NumLearningRateCycles, processed, cfg.NumPositions)
}
