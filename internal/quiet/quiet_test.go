package quiet

import (
	"testing"

	"github.com/ChizhovVadim/kpptlearn/pkg/common"
	"github.com/ChizhovVadim/kpptlearn/pkg/eval/kppt"
)

var miniGeometry = common.NewGeometry(5, 5,
	[common.KIND_NB]int{common.Pawn: 2, common.Silver: 2, common.Gold: 2, common.Bishop: 2, common.Rook: 2}, 1, 3)

func TestQuietSearch(t *testing.T) {
	var tests = []struct {
		geo   *common.Geometry
		sfen  string
		value int
		pv    string
	}{
		{common.Tiny, "kg1/1p1/1GK b P", 0, ""},
		{miniGeometry, "4k/5/2p2/2G2/K4 b -", 630, "3d3c"},
		{common.Tiny, "1k1/2g/2K b -", -MateValue, ""},
	}
	for _, test := range tests {
		var p, err = common.NewPositionFromSFEN(test.geo, test.sfen)
		if err != nil {
			t.Fatal(test.sfen, err)
		}
		var weights = kppt.NewWeights(test.geo.SquareCount(), test.geo.PieceCount())
		var qs = NewQuietService(kppt.NewEvaluationService(weights))
		var value, pv = qs.Search(p)
		if value != test.value || test.geo.LineString(pv) != test.pv {
			t.Error(test.sfen, value, test.geo.LineString(pv))
		}
		if p.String() != test.sfen {
			t.Error("position not restored", p.String())
		}
	}
}

func TestPrincipalVariationLeaf(t *testing.T) {
	var geo = miniGeometry
	var p, err = common.NewPositionFromSFEN(geo, "rbsgk/4p/5/P1B2/KGS1R b -")
	if err != nil {
		t.Fatal(err)
	}
	var weights = kppt.NewWeights(geo.SquareCount(), geo.PieceCount())
	for i := range weights.KKP {
		weights.KKP[i] = int32(i%97-48) * 10
	}
	var e = kppt.NewEvaluationService(weights)
	var qs = NewQuietService(e)
	var value, pv = qs.Search(p)
	var root = p.SideToMove()
	for _, m := range pv {
		p.MakeMove(m)
	}
	var leaf = e.Evaluate(p)
	if p.SideToMove() != root {
		leaf = -leaf
	}
	if leaf != value {
		t.Error(value, leaf, geo.LineString(pv))
	}
}
