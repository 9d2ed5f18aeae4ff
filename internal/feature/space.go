package feature

import "fmt"

type Family int

const (
	KPP Family = iota
	KKP
	KK
	FamilyCount
)

func (f Family) String() string {
	switch f {
	case KPP:
		return "KPP"
	case KKP:
		return "KKP"
	case KK:
		return "KK"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// WeightKind selects the color-relative or the turn-relative value of a
// feature. It is the last mixed-radix digit of every index, so the turn
// cell of a feature directly follows its color cell.
type WeightKind int

const (
	Color WeightKind = iota
	Turn
	KindCount
)

// Key is a structured feature. KPP uses King0, Piece0 and Piece1; KKP uses
// King0, King1 and Piece0; KK uses King0 and King1.
type Key struct {
	Family Family
	King0  int
	King1  int
	Piece0 int
	Piece1 int
	Kind   WeightKind
}

// Geometry provides the square and piece transforms of the board.
type Geometry interface {
	SquareCount() int
	PieceCount() int
	MirrorSquare(sq int) int
	InverseSquare(sq int) int
	MirrorPiece(p int) int
	InversePiece(p int) int
}

// Space maps keys to flat indices. Families are laid out KPP, KKP, KK;
// within a family the index minus the family minimum equals the offset of
// the same value in the evaluator's native array.
type Space struct {
	geo     Geometry
	squares int
	pieces  int
	min     [FamilyCount + 1]int
}

func NewSpace(geo Geometry) *Space {
	var s = &Space{
		geo:     geo,
		squares: geo.SquareCount(),
		pieces:  geo.PieceCount(),
	}
	var sizes = [FamilyCount]int{
		KPP: s.squares * s.pieces * s.pieces * int(KindCount),
		KKP: s.squares * s.squares * s.pieces * int(KindCount),
		KK:  s.squares * s.squares * int(KindCount),
	}
	for f := KPP; f < FamilyCount; f++ {
		s.min[f+1] = s.min[f] + sizes[f]
	}
	return s
}

func (s *Space) Geometry() Geometry {
	return s.geo
}

// Len is the total number of weight cells.
func (s *Space) Len() int {
	return s.min[FamilyCount]
}

func (s *Space) Min(f Family) int {
	return s.min[f]
}

func (s *Space) Max(f Family) int {
	return s.min[f+1]
}

// FamilyOf tests the family ranges in the fixed order KPP, KKP, KK.
func (s *Space) FamilyOf(index int) Family {
	for f := KPP; f < FamilyCount; f++ {
		if index >= s.min[f] && index < s.min[f+1] {
			return f
		}
	}
	panic(fmt.Errorf("index %v out of range [0, %v)", index, s.Len()))
}

func (s *Space) ToIndex(k Key) int {
	var offset int
	switch k.Family {
	case KPP:
		offset = (k.King0*s.pieces+k.Piece0)*s.pieces + k.Piece1
	case KKP:
		offset = (k.King0*s.squares+k.King1)*s.pieces + k.Piece0
	case KK:
		offset = k.King0*s.squares + k.King1
	default:
		panic(fmt.Errorf("bad family %v", k.Family))
	}
	return s.min[k.Family] + offset*int(KindCount) + int(k.Kind)
}

func (s *Space) FromIndex(index int) Key {
	var f = s.FamilyOf(index)
	var offset = index - s.min[f]
	var k = Key{Family: f, Kind: WeightKind(offset % int(KindCount))}
	offset /= int(KindCount)
	switch f {
	case KPP:
		k.Piece1 = offset % s.pieces
		offset /= s.pieces
		k.Piece0 = offset % s.pieces
		k.King0 = offset / s.pieces
	case KKP:
		k.Piece0 = offset % s.pieces
		offset /= s.pieces
		k.King1 = offset % s.squares
		k.King0 = offset / s.squares
	case KK:
		k.King1 = offset % s.squares
		k.King0 = offset / s.squares
	}
	return k
}

// Valid reports whether every coordinate used by k's family is in range.
func (s *Space) Valid(k Key) bool {
	var sq = func(x int) bool { return x >= 0 && x < s.squares }
	var pc = func(x int) bool { return x >= 0 && x < s.pieces }
	if k.Kind < Color || k.Kind >= KindCount {
		return false
	}
	switch k.Family {
	case KPP:
		return sq(k.King0) && pc(k.Piece0) && pc(k.Piece1)
	case KKP:
		return sq(k.King0) && sq(k.King1) && pc(k.Piece0)
	case KK:
		return sq(k.King0) && sq(k.King1)
	}
	return false
}

// Check verifies the invariants that hold for every index: the round trip,
// family membership and the symmetry group.
func (s *Space) Check(index int) error {
	var k = s.FromIndex(index)
	if !s.Valid(k) {
		return fmt.Errorf("index %v decodes to invalid key %+v", index, k)
	}
	if s.ToIndex(k) != index {
		return fmt.Errorf("index %v round trips to %v", index, s.ToIndex(k))
	}
	for _, m := range s.Group(k) {
		if !s.Valid(m.Key) || m.Key.Family != k.Family || m.Key.Kind != k.Kind {
			return fmt.Errorf("index %v has bad group member %+v", index, m.Key)
		}
	}
	return nil
}
