package common

import (
	"sort"
	"testing"
)

var testSFENs = []struct {
	geo  *Geometry
	sfen string
}{
	{Tiny, "kg1/1p1/1GK b P"},
	{Tiny, "1k1/b1s/K1R w Pg"},
	{Tiny, "GSK/3/k2 b -"},
	{Standard, "4k4/9/9/9/9/9/9/9/4K4 b -"},
	{Standard, "4k4/2s1g4/p1p6/9/4B4/9/P1P6/4G1S2/4K4 b Rr"},
	{Standard, "3gk4/9/2pp5/1b7/9/5P3/4SP3/9/3GKG3 w 2Pr"},
}

func TestSFEN(t *testing.T) {
	for _, test := range testSFENs {
		var p, err = NewPositionFromSFEN(test.geo, test.sfen)
		if err != nil {
			t.Error(test.sfen, err)
			continue
		}
		if p.String() != test.sfen {
			t.Error(test.sfen, p.String())
		}
	}
}

func TestPack(t *testing.T) {
	for _, test := range testSFENs {
		var p, err = NewPositionFromSFEN(test.geo, test.sfen)
		if err != nil {
			t.Fatal(test.sfen, err)
		}
		var packed = p.Pack()
		q, err := NewPositionFromPacked(test.geo, &packed)
		if err != nil {
			t.Error(test.sfen, err)
			continue
		}
		if q.String() != test.sfen {
			t.Error(test.sfen, q.String())
		}
		if test.geo != Standard {
			if _, err := NewPositionFromPacked(Standard, &packed); err == nil {
				t.Error("geometry mismatch accepted", test.sfen)
			}
		}
	}
}

func TestMakeUnmake(t *testing.T) {
	for _, test := range testSFENs {
		var p, err = NewPositionFromSFEN(test.geo, test.sfen)
		if err != nil {
			t.Fatal(test.sfen, err)
		}
		walk(t, p, 2)
		if p.String() != test.sfen || p.Ply() != 0 {
			t.Error("position not restored", test.sfen, p.String())
		}
	}
}

func walk(t *testing.T, p *Position, depth int) {
	var before = p.String()
	var fb = append([]BonaPiece(nil), p.ListFb()...)
	var fw = append([]BonaPiece(nil), p.ListFw()...)
	var buffer [MaxMoves]Move
	for _, move := range p.GenerateMoves(buffer[:0]) {
		p.MakeMove(move)
		if p.LastMove() != move {
			t.Fatal("last move", before, p.geo.MoveString(move))
		}
		if parsed, err := p.geo.ParseMove(p.geo.MoveString(move)); err != nil || parsed != move {
			t.Fatal("parse move", p.geo.MoveString(move), err)
		}
		checkLists(t, p)
		if depth > 1 {
			walk(t, p, depth-1)
		}
		p.UnmakeMove()
		if p.String() != before {
			t.Fatal(before, p.geo.MoveString(move), p.String())
		}
		if !equalPieces(fb, p.ListFb()) || !equalPieces(fw, p.ListFw()) {
			t.Fatal("piece list not restored", before, p.geo.MoveString(move))
		}
	}
}

func checkLists(t *testing.T, p *Position) {
	var fresh, err = NewPositionFromSFEN(p.geo, p.String())
	if err != nil {
		t.Fatal(p.String(), err)
	}
	if !equalPieces(sorted(fresh.ListFb()), sorted(p.ListFb())) {
		t.Fatal("black list differs", p.String())
	}
	for i, fb := range p.ListFb() {
		if p.ListFw()[i] != BonaPiece(p.geo.InversePiece(int(fb))) {
			t.Fatal("white list differs", p.String(), i)
		}
	}
	if fresh.Material() != p.Material() {
		t.Fatal("material differs", p.String(), fresh.Material(), p.Material())
	}
	var dirty = p.Dirty()
	if dirty.Count == 0 && !dirty.KingMoved {
		t.Fatal("no dirty piece", p.String())
	}
}

func sorted(list []BonaPiece) []BonaPiece {
	var result = append([]BonaPiece(nil), list...)
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func equalPieces(l, r []BonaPiece) bool {
	if len(l) != len(r) {
		return false
	}
	for i := range l {
		if l[i] != r[i] {
			return false
		}
	}
	return true
}

func TestGameEnd(t *testing.T) {
	var tests = []struct {
		sfen        string
		check       bool
		mated       bool
		declaration bool
	}{
		{"1k1/2g/2K b -", true, true, false},
		{"GSK/3/k2 b -", false, false, true},
		{"kg1/1p1/1GK b P", false, false, false},
	}
	for _, test := range tests {
		var p, err = NewPositionFromSFEN(Tiny, test.sfen)
		if err != nil {
			t.Fatal(test.sfen, err)
		}
		if p.IsCheck() != test.check || p.IsMated() != test.mated ||
			p.DeclarationWin() != test.declaration {
			t.Error(test, p.IsCheck(), p.IsMated(), p.DeclarationWin())
		}
	}
}

func TestInvalidPositions(t *testing.T) {
	var tests = []string{
		"1k1/2g/2K w -",
		"1k1/3/3 b -",
		"kK1/3/3 b 3P",
		"1k1/3/2K x -",
	}
	for _, sfen := range tests {
		if _, err := NewPositionFromSFEN(Tiny, sfen); err == nil {
			t.Error("accepted", sfen)
		}
	}
}

func TestPieceTransforms(t *testing.T) {
	for _, g := range []*Geometry{Tiny, Standard} {
		for p := 1; p < g.PieceCount(); p++ {
			if g.MirrorPiece(g.MirrorPiece(p)) != p || g.InversePiece(g.InversePiece(p)) != p {
				t.Fatal(g, p)
			}
			if g.MirrorPiece(g.InversePiece(p)) != g.InversePiece(g.MirrorPiece(p)) {
				t.Fatal("transforms do not commute", g, p)
			}
		}
	}
}

func TestMirror(t *testing.T) {
	var p, err = NewPositionFromSFEN(Tiny, "kg1/1p1/1GK b P")
	if err != nil {
		t.Fatal(err)
	}
	if err = p.Mirror(); err != nil {
		t.Fatal(err)
	}
	if p.String() != "1gk/1p1/KG1 b P" {
		t.Error(p.String())
	}
}
