package kppt

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	. "github.com/ChizhovVadim/kpptlearn/pkg/common"
)

func randomWeights(rnd *rand.Rand, geo *Geometry) *Weights {
	var w = NewWeights(geo.SquareCount(), geo.PieceCount())
	for i := range w.KK {
		w.KK[i] = int32(rnd.Intn(2001) - 1000)
	}
	for i := range w.KKP {
		w.KKP[i] = int32(rnd.Intn(2001) - 1000)
	}
	for i := range w.KPP {
		w.KPP[i] = int16(rnd.Intn(2001) - 1000)
	}
	return w
}

var miniGeometry = NewGeometry(5, 5,
	[KIND_NB]int{Pawn: 2, Silver: 2, Gold: 2, Bishop: 2, Rook: 2}, 1, 3)

func TestIncrementalEvaluation(t *testing.T) {
	var tests = []struct {
		geo  *Geometry
		sfen string
	}{
		{Tiny, "kg1/1p1/1GK b P"},
		{Tiny, "1k1/b1s/K1R w Pg"},
		{miniGeometry, "rbsgk/4p/5/P4/KGSBR b -"},
		{miniGeometry, "rbsgk/5/2p2/P1B2/KGS1R w -"},
	}
	var rnd = rand.New(rand.NewSource(1))
	for _, test := range tests {
		var e = NewEvaluationService(randomWeights(rnd, test.geo))
		var p, err = NewPositionFromSFEN(test.geo, test.sfen)
		if err != nil {
			t.Fatal(err)
		}
		var buffer [MaxMoves]Move
		for game := 0; game < 20; game++ {
			var played = 0
			for ply := 0; ply < 30; ply++ {
				var inc, full = e.Evaluate(p), e.EvaluateFull(p)
				if inc != full {
					t.Fatal(test.sfen, p.String(), inc, full)
				}
				var ml = p.GenerateMoves(buffer[:0])
				if len(ml) == 0 {
					break
				}
				p.MakeMove(ml[rnd.Intn(len(ml))])
				played++
			}
			for ; played > 0; played-- {
				p.UnmakeMove()
			}
			if p.String() != test.sfen {
				t.Fatal("not restored", p.String())
			}
		}
	}
}

func TestEvaluationSymmetry(t *testing.T) {
	var geo = Tiny
	var w = NewWeights(geo.SquareCount(), geo.PieceCount())
	var e = NewEvaluationService(w)
	var p, err = NewPositionFromSFEN(geo, "kg1/1p1/1GK b P")
	if err != nil {
		t.Fatal(err)
	}
	if e.Evaluate(p) != p.Material() {
		t.Error("zero weights must give material", e.Evaluate(p), p.Material())
	}
	var kk = w.KKIndex(p.KingSquare(Black), p.KingSquare(White))
	w.KK[kk] = 64 * FVScale
	w.KK[kk+1] = 16 * FVScale
	var black = e.EvaluateFull(p)
	if black != p.Material()+64+16 {
		t.Error(black)
	}
}

func TestSaveLoad(t *testing.T) {
	var rnd = rand.New(rand.NewSource(2))
	var w = randomWeights(rnd, Tiny)
	var dir = t.TempDir()
	if err := w.Save(dir); err != nil {
		t.Fatal(err)
	}
	var loaded = NewWeights(Tiny.SquareCount(), Tiny.PieceCount())
	if err := loaded.Load(dir); err != nil {
		t.Fatal(err)
	}
	for i := range w.KPP {
		if w.KPP[i] != loaded.KPP[i] {
			t.Fatal("kpp", i)
		}
	}
	for i := range w.KKP {
		if w.KKP[i] != loaded.KKP[i] {
			t.Fatal("kkp", i)
		}
	}
	for i := range w.KK {
		if w.KK[i] != loaded.KK[i] {
			t.Fatal("kk", i)
		}
	}

	if err := os.Truncate(filepath.Join(dir, KPPFileName), 10); err != nil {
		t.Fatal(err)
	}
	if err := loaded.Load(dir); !errors.Is(err, ErrShortFile) {
		t.Error(err)
	}
	if err := loaded.Load(t.TempDir()); !errors.Is(err, ErrShortFile) {
		t.Error(err)
	}
}
