package feature

import "golang.org/x/exp/constraints"

// ForEachActive calls fn for every feature present on a board with the
// black king on bk, the white king on wk and the piece lists fb (black's
// view) and fw (white's view, squares inverted). index addresses the
// color-relative cell; index+1 is the turn-relative cell. colorSign is the
// sign the color-relative delta takes in that cell: white's KPP terms are
// subtracted from the color sum, so they receive -1.
func ForEachActive[P constraints.Integer](s *Space, bk, wk int, fb, fw []P,
	fn func(index int, colorSign float64)) {
	var iwk = s.geo.InverseSquare(wk)
	fn(s.ToIndex(Key{Family: KK, King0: bk, King1: wk}), 1)
	for i := range fb {
		var k0, k1 = int(fb[i]), int(fw[i])
		for j := 0; j < i; j++ {
			var l0, l1 = int(fb[j]), int(fw[j])
			fn(s.ToIndex(s.Canonical(Key{Family: KPP, King0: bk, Piece0: k0, Piece1: l0})), 1)
			fn(s.ToIndex(s.Canonical(Key{Family: KPP, King0: iwk, Piece0: k1, Piece1: l1})), -1)
		}
		fn(s.ToIndex(Key{Family: KKP, King0: bk, King1: wk, Piece0: k0}), 1)
	}
}

// SplitDelta converts a delta measured for the root side to move into
// the color-relative part (counted from black) and the turn-relative part
// (counted from the side to move at the node the features come from).
func SplitDelta(delta float64, rootIsBlack, nodeSideIsRoot bool) (color, turn float64) {
	color = delta
	if !rootIsBlack {
		color = -delta
	}
	turn = delta
	if !nodeSideIsRoot {
		turn = -delta
	}
	return color, turn
}
