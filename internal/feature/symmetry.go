package feature

const GroupSize = 4

// Member is one element of a symmetry group. Negate is set when the value
// of Key means the opposite of the value of the group's origin.
type Member struct {
	Key    Key
	Negate bool
}

// Mirror reflects every square and piece code left-right.
func (s *Space) Mirror(k Key) Key {
	var g = s.geo
	switch k.Family {
	case KPP:
		k.King0 = g.MirrorSquare(k.King0)
		k.Piece0 = g.MirrorPiece(k.Piece0)
		k.Piece1 = g.MirrorPiece(k.Piece1)
	case KKP:
		k.King0 = g.MirrorSquare(k.King0)
		k.King1 = g.MirrorSquare(k.King1)
		k.Piece0 = g.MirrorPiece(k.Piece0)
	case KK:
		k.King0 = g.MirrorSquare(k.King0)
		k.King1 = g.MirrorSquare(k.King1)
	}
	return k
}

// Inverse swaps the colors: the kings trade roles and every square is seen
// from the other side. KPP tables are already shared by both colors, so
// KPP keys are returned unchanged.
func (s *Space) Inverse(k Key) Key {
	var g = s.geo
	switch k.Family {
	case KKP:
		k.King0, k.King1 = g.InverseSquare(k.King1), g.InverseSquare(k.King0)
		k.Piece0 = g.InversePiece(k.Piece0)
	case KK:
		k.King0, k.King1 = g.InverseSquare(k.King1), g.InverseSquare(k.King0)
	}
	return k
}

// Swap exchanges the two pieces of a KPP key.
func (s *Space) Swap(k Key) Key {
	if k.Family == KPP {
		k.Piece0, k.Piece1 = k.Piece1, k.Piece0
	}
	return k
}

// Canonical orders the pieces of a KPP key so that Piece0 <= Piece1.
func (s *Space) Canonical(k Key) Key {
	if k.Family == KPP && k.Piece0 > k.Piece1 {
		return s.Swap(k)
	}
	return k
}

// InverseNegates reports whether color inversion flips the sign of a
// value of this kind. Color-relative values are counted from black, so
// they change sign; turn-relative values do not.
func InverseNegates(kind WeightKind) bool {
	return kind == Color
}

// Group returns the 4 keys sharing statistics with k: for KKP and KK the
// identity, mirror, inverse and mirrored inverse; for KPP the identity,
// swapped pieces, mirror and mirrored swap. Self-symmetric keys repeat.
func (s *Space) Group(k Key) [GroupSize]Member {
	if k.Family == KPP {
		var m = s.Mirror(k)
		return [GroupSize]Member{
			{Key: k},
			{Key: s.Swap(k)},
			{Key: m},
			{Key: s.Swap(m)},
		}
	}
	var negate = InverseNegates(k.Kind)
	var inv = s.Inverse(k)
	return [GroupSize]Member{
		{Key: k},
		{Key: s.Mirror(k)},
		{Key: inv, Negate: negate},
		{Key: s.Mirror(inv), Negate: negate},
	}
}

// IndexMember is a group member addressed by flat index.
type IndexMember struct {
	Index  int
	Negate bool
}

func (s *Space) GroupOf(index int) [GroupSize]IndexMember {
	var result [GroupSize]IndexMember
	for i, m := range s.Group(s.FromIndex(index)) {
		result[i] = IndexMember{Index: s.ToIndex(m.Key), Negate: m.Negate}
	}
	return result
}
