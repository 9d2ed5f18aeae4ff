package feature

import (
	"math/rand"
	"testing"

	"github.com/ChizhovVadim/kpptlearn/pkg/common"
)

func TestBijection(t *testing.T) {
	var s = NewSpace(common.Tiny)
	for i := 0; i < s.Len(); i++ {
		if err := s.Check(i); err != nil {
			t.Fatal(err)
		}
	}
	var rnd = rand.New(rand.NewSource(1))
	var squares, pieces = common.Tiny.SquareCount(), common.Tiny.PieceCount()
	for n := 0; n < 10000; n++ {
		var k = Key{
			Family: Family(rnd.Intn(int(FamilyCount))),
			King0:  rnd.Intn(squares),
			Kind:   WeightKind(rnd.Intn(int(KindCount))),
		}
		switch k.Family {
		case KPP:
			k.Piece0, k.Piece1 = rnd.Intn(pieces), rnd.Intn(pieces)
		case KKP:
			k.King1, k.Piece0 = rnd.Intn(squares), rnd.Intn(pieces)
		case KK:
			k.King1 = rnd.Intn(squares)
		}
		if s.FromIndex(s.ToIndex(k)) != k {
			t.Fatal(k, s.FromIndex(s.ToIndex(k)))
		}
	}
}

func TestFamilyPartition(t *testing.T) {
	var tests = []struct {
		geo  *common.Geometry
		size int
	}{
		{common.Tiny, 9*107*107*2 + 9*9*107*2 + 9*9*2},
		{common.Standard, 81*871*871*2 + 81*81*871*2 + 81*81*2},
	}
	for _, test := range tests {
		var s = NewSpace(test.geo)
		if s.Len() != test.size {
			t.Error(test.geo, s.Len(), test.size)
		}
		if s.Min(KPP) != 0 || s.Max(KK) != s.Len() {
			t.Error("ranges do not cover the space", test.geo)
		}
		for f := KPP; f < FamilyCount; f++ {
			if s.Min(f) >= s.Max(f) {
				t.Error("empty family", f)
			}
			if f+1 < FamilyCount && s.Max(f) != s.Min(f+1) {
				t.Error("gap or overlap after", f)
			}
			for _, i := range []int{s.Min(f), s.Max(f) - 1} {
				if s.FamilyOf(i) != f {
					t.Error(test.geo, f, i, s.FamilyOf(i))
				}
			}
		}
	}
}

func TestSymmetryGroup(t *testing.T) {
	var s = NewSpace(common.Tiny)
	for i := 0; i < s.Len(); i++ {
		var k = s.FromIndex(i)
		if s.Mirror(s.Inverse(s.Mirror(s.Inverse(k)))) != k {
			t.Fatal("mirror and inverse is not an involution", k)
		}
		if s.Swap(s.Mirror(s.Swap(s.Mirror(k)))) != k {
			t.Fatal("mirror and swap is not an involution", k)
		}
		var group = s.GroupOf(i)
		if len(group) != GroupSize || group[0].Index != i || group[0].Negate {
			t.Fatal("group must start with the key itself", k)
		}
		for _, m := range group {
			if !containsMember(s.GroupOf(m.Index), i, m.Negate) {
				t.Fatal("group relation is not symmetric", k, s.FromIndex(m.Index))
			}
		}
	}
}

func containsMember(group [GroupSize]IndexMember, index int, negate bool) bool {
	for _, m := range group {
		if m.Index == index && m.Negate == negate {
			return true
		}
	}
	return false
}

func TestGroupSigns(t *testing.T) {
	var s = NewSpace(common.Tiny)
	var tests = []struct {
		key    Key
		negate [GroupSize]bool
	}{
		{Key{Family: KK, King0: 0, King1: 8, Kind: Color}, [GroupSize]bool{false, false, true, true}},
		{Key{Family: KK, King0: 0, King1: 8, Kind: Turn}, [GroupSize]bool{}},
		{Key{Family: KKP, King0: 2, King1: 6, Piece0: 20, Kind: Color}, [GroupSize]bool{false, false, true, true}},
		{Key{Family: KPP, King0: 4, Piece0: 20, Piece1: 30, Kind: Color}, [GroupSize]bool{}},
	}
	for _, test := range tests {
		var group = s.Group(test.key)
		for i, m := range group {
			if m.Negate != test.negate[i] {
				t.Error(test.key, i, m)
			}
		}
	}
	// A position and its color-inverse share a KK cell with opposite sign.
	var kk = Key{Family: KK, King0: 2, King1: 6, Kind: Color}
	if s.Inverse(kk) != kk {
		t.Error("expected a self-inverse KK key", s.Inverse(kk))
	}
}

func TestSplitDelta(t *testing.T) {
	var tests = []struct {
		rootIsBlack    bool
		nodeSideIsRoot bool
		color, turn    float64
	}{
		{true, true, 0.25, 0.25},
		{true, false, 0.25, -0.25},
		{false, true, -0.25, 0.25},
		{false, false, -0.25, -0.25},
	}
	for _, test := range tests {
		var color, turn = SplitDelta(0.25, test.rootIsBlack, test.nodeSideIsRoot)
		if color != test.color || turn != test.turn {
			t.Error(test, color, turn)
		}
	}
}

func TestForEachActive(t *testing.T) {
	var p, err = common.NewPositionFromSFEN(common.Tiny, "kg1/1p1/1GK b P")
	if err != nil {
		t.Fatal(err)
	}
	var s = NewSpace(common.Tiny)
	var n = len(p.ListFb())
	var counts [FamilyCount]int
	var negative int
	ForEachActive(s, p.KingSquare(common.Black), p.KingSquare(common.White), p.ListFb(), p.ListFw(),
		func(index int, colorSign float64) {
			var k = s.FromIndex(index)
			if k.Kind != Color {
				t.Fatal("index must address the color cell", k)
			}
			if k.Family == KPP && k.Piece0 > k.Piece1 {
				t.Fatal("KPP key is not canonical", k)
			}
			counts[k.Family]++
			if colorSign < 0 {
				negative++
			}
		})
	if counts[KK] != 1 || counts[KKP] != n || counts[KPP] != n*(n-1) {
		t.Error(n, counts)
	}
	if negative != n*(n-1)/2 {
		t.Error("white KPP terms", negative)
	}
}
