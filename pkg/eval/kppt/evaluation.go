package kppt

import (
	. "github.com/ChizhovVadim/kpptlearn/pkg/common"
)

const FVScale = 32

// EvaluationService computes KPPT values. Sums are cached in the
// position's per-ply EvalState and updated from the previous ply when only
// non-king pieces changed.
type EvaluationService struct {
	*Weights
}

func NewEvaluationService(weights *Weights) *EvaluationService {
	return &EvaluationService{Weights: weights}
}

func (e *EvaluationService) Evaluate(p *Position) int {
	var st = p.EvalState()
	if !st.Computed {
		var prev = p.PrevEvalState()
		var dirty = p.Dirty()
		if prev != nil && prev.Computed && !dirty.KingMoved {
			st.Sum = prev.Sum
			e.update(p, &st.Sum, &dirty)
		} else {
			st.Sum = e.compute(p)
		}
		st.Computed = true
	}
	return e.value(p, &st.Sum)
}

// EvaluateFull ignores any cached state.
func (e *EvaluationService) EvaluateFull(p *Position) int {
	var sum = e.compute(p)
	return e.value(p, &sum)
}

func (e *EvaluationService) value(p *Position, sum *[3][2]int64) int {
	var color = sum[0][0] - sum[1][0] + sum[2][0]
	var turn = sum[0][1] + sum[1][1] + sum[2][1]
	if p.SideToMove() == White {
		color = -color
	}
	return int((color+turn)/FVScale) + p.Material()
}

func (e *EvaluationService) compute(p *Position) [3][2]int64 {
	var sum [3][2]int64
	var bk = p.KingSquare(Black)
	var wk = p.KingSquare(White)
	var iwk = p.Geometry().InverseSquare(wk)
	var fb, fw = p.ListFb(), p.ListFw()
	var kk = e.KKIndex(bk, wk)
	sum[2][0] = int64(e.KK[kk])
	sum[2][1] = int64(e.KK[kk+1])
	for i := range fb {
		var k0, k1 = int(fb[i]), int(fw[i])
		for j := 0; j < i; j++ {
			e.addKPP(&sum[0], bk, k0, int(fb[j]), 1)
			e.addKPP(&sum[1], iwk, k1, int(fw[j]), 1)
		}
		e.addKKP(&sum[2], bk, wk, k0, 1)
	}
	return sum
}

func (e *EvaluationService) update(p *Position, sum *[3][2]int64, dirty *DirtyPiece) {
	var bk = p.KingSquare(Black)
	var wk = p.KingSquare(White)
	var iwk = p.Geometry().InverseSquare(wk)
	var fb, fw = p.ListFb(), p.ListFw()
	var changed = dirty.Pieces[:dirty.Count]
	for _, c := range changed {
		for j := range fb {
			if isChanged(changed, j) {
				continue
			}
			e.addKPP(&sum[0], bk, int(c.NewFb), int(fb[j]), 1)
			e.addKPP(&sum[0], bk, int(c.OldFb), int(fb[j]), -1)
			e.addKPP(&sum[1], iwk, int(c.NewFw), int(fw[j]), 1)
			e.addKPP(&sum[1], iwk, int(c.OldFw), int(fw[j]), -1)
		}
		e.addKKP(&sum[2], bk, wk, int(c.NewFb), 1)
		e.addKKP(&sum[2], bk, wk, int(c.OldFb), -1)
	}
	if len(changed) == 2 {
		var a, b = &changed[0], &changed[1]
		e.addKPP(&sum[0], bk, int(a.NewFb), int(b.NewFb), 1)
		e.addKPP(&sum[0], bk, int(a.OldFb), int(b.OldFb), -1)
		e.addKPP(&sum[1], iwk, int(a.NewFw), int(b.NewFw), 1)
		e.addKPP(&sum[1], iwk, int(a.OldFw), int(b.OldFw), -1)
	}
}

func isChanged(changed []ChangedPiece, slot int) bool {
	for i := range changed {
		if changed[i].Slot == slot {
			return true
		}
	}
	return false
}

// addKPP reads the (min, max) ordered cell so both orders of a pair agree.
func (e *EvaluationService) addKPP(s *[2]int64, k, p0, p1 int, sign int64) {
	if p0 > p1 {
		p0, p1 = p1, p0
	}
	var index = e.KPPIndex(k, p0, p1)
	s[0] += sign * int64(e.KPP[index])
	s[1] += sign * int64(e.KPP[index+1])
}

func (e *EvaluationService) addKKP(s *[2]int64, bk, wk, p int, sign int64) {
	var index = e.KKPIndex(bk, wk, p)
	s[0] += sign * int64(e.KKP[index])
	s[1] += sign * int64(e.KKP[index+1])
}
