package tuner

import (
	"fmt"

	"github.com/ChizhovVadim/kpptlearn/internal/domain"
	"github.com/ChizhovVadim/kpptlearn/internal/quiet"
	"github.com/ChizhovVadim/kpptlearn/pkg/common"
	"github.com/ChizhovVadim/kpptlearn/pkg/eval/kppt"
)

// Sample is one record after the shallow search. Values are counted for
// the side to move at the root. Pos is at the leaf of the principal
// variation and is only valid inside the callback.
type Sample struct {
	Recorded  int
	Win       bool
	Value     int
	Material  int
	RootColor common.Color
	Lambda    float64
	Pos       *common.Position
}

// Strapper runs the shallow search of one worker. It owns a position
// that is reused for every record.
type Strapper struct {
	geo        *common.Geometry
	pos        common.Position
	evaluation *kppt.EvaluationService
	qs         *quiet.QuietService
}

func NewStrapper(geo *common.Geometry, weights *kppt.Weights) *Strapper {
	var evaluation = kppt.NewEvaluationService(weights)
	return &Strapper{
		geo:        geo,
		evaluation: evaluation,
		qs:         quiet.NewQuietService(evaluation),
	}
}

// Load decodes rec into the worker's position, optionally mirrored.
func (s *Strapper) Load(rec *domain.Record, mirror bool) (*common.Position, error) {
	var err = s.pos.Unpack(s.geo, &rec.Board)
	if err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if mirror {
		err = s.pos.Mirror()
		if err != nil {
			return nil, fmt.Errorf("mirror record: %w", err)
		}
	}
	return &s.pos, nil
}

// Strap searches the position of the last Load, replays the principal
// variation through the incremental evaluator and calls fn with the leaf.
// The position is back at the root when Strap returns. It returns false
// without calling fn when the replayed value differs from the search value.
func (s *Strapper) Strap(rec *domain.Record, lambda float64, fn func(sample *Sample)) bool {
	var pos = &s.pos
	var root = pos.SideToMove()
	var searched, pv = s.qs.Search(pos)

	var value = s.evaluation.Evaluate(pos)
	for _, move := range pv {
		pos.MakeMove(move)
		value = s.evaluation.Evaluate(pos)
	}
	defer func() {
		for range pv {
			pos.UnmakeMove()
		}
	}()

	var material = pos.Material()
	if pos.SideToMove() != root {
		value = -value
		material = -material
	}
	if value != searched {
		return false
	}
	fn(&Sample{
		Recorded:  int(rec.Score),
		Win:       rec.Win(),
		Value:     value,
		Material:  material,
		RootColor: root,
		Lambda:    lambda,
		Pos:       pos,
	})
	return true
}
