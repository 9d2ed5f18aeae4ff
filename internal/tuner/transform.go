package tuner

import (
	"github.com/ChizhovVadim/kpptlearn/internal/dataset"
	"github.com/ChizhovVadim/kpptlearn/internal/domain"
	"github.com/ChizhovVadim/kpptlearn/pkg/common"
	"github.com/ChizhovVadim/kpptlearn/pkg/eval/kppt"
)

// QSearchTransform replaces the position of every record by the leaf of
// its quiescence principal variation. The best move is cleared. Score and
// game result are negated when the side to move at the leaf differs from
// the root.
func QSearchTransform(geo *common.Geometry, weights *kppt.Weights, threads int) dataset.Transform {
	var strappers = make([]*Strapper, threads)
	for i := range strappers {
		strappers[i] = NewStrapper(geo, weights)
	}
	return func(thread int, rec *domain.Record) (bool, error) {
		return strappers[thread].applyQSearch(rec)
	}
}

func (s *Strapper) applyQSearch(rec *domain.Record) (bool, error) {
	var pos, err = s.Load(rec, false)
	if err != nil {
		return false, err
	}
	var root = pos.SideToMove()
	var _, pv = s.qs.Search(pos)
	for _, move := range pv {
		pos.MakeMove(move)
	}
	rec.Board = pos.Pack()
	rec.Move = 0
	if pos.SideToMove() != root {
		rec.Score = -rec.Score
		rec.GameResult = -rec.GameResult
	}
	for range pv {
		pos.UnmakeMove()
	}
	return true, nil
}
